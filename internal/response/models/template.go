package models

import (
	qmodels "github.com/yvesls/ethicalsoft-compliance-sub000/internal/questionnaire/models"
	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
)

// BuildTemplate synthesises one blank answer entry per question, in catalogue
// order. Stage and role ids are copied so later edits to a question's
// associations never reach existing documents.
func BuildTemplate(questions []qmodels.Question) []AnswerEntry {
	template := make([]AnswerEntry, 0, len(questions))
	for _, q := range questions {
		template = append(template, AnswerEntry{
			QuestionID:   q.ID,
			QuestionText: q.Text,
			StageIDs:     dedupe(q.StageIDs),
			RoleIDs:      dedupe(q.RoleIDs),
			Response:     AnswerUnset,
			Attachments:  []Link{},
		})
	}
	return template
}

// dedupe returns a fresh slice with duplicates removed, order preserved.
func dedupe[T id.StageID | id.RoleID](values []T) []T {
	seen := make(map[T]struct{}, len(values))
	out := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
