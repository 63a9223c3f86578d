package models

import (
	"time"

	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
)

// AnswerView is the read shape of one answer entry.
type AnswerView struct {
	QuestionID    id.QuestionID `json:"question_id"`
	QuestionText  string        `json:"question_text"`
	StageIDs      []id.StageID  `json:"stage_ids"`
	RoleIDs       []id.RoleID   `json:"role_ids"`
	Response      AnswerValue   `json:"response"`
	Justification *Link         `json:"justification"`
	Evidence      *Link         `json:"evidence"`
	Attachments   []Link        `json:"attachments"`
}

// ToAnswerView maps an entry to its read shape. The view shares nothing with e.
func ToAnswerView(e AnswerEntry) AnswerView {
	c := e.Clone()
	return AnswerView{
		QuestionID:    c.QuestionID,
		QuestionText:  c.QuestionText,
		StageIDs:      c.StageIDs,
		RoleIDs:       c.RoleIDs,
		Response:      c.Response,
		Justification: c.Justification,
		Evidence:      c.Evidence,
		Attachments:   c.Attachments,
	}
}

// PageResult is one page of a document's answers.
type PageResult struct {
	Page       int          `json:"page"`
	Size       int          `json:"size"`
	TotalPages int          `json:"total_pages"`
	Completed  bool         `json:"completed"`
	Answers    []AnswerView `json:"answers"`
}

// Summary reports a document's completion without its answers.
type Summary struct {
	RepresentativeID *id.RepresentativeID `json:"representative_id"`
	Status           Status               `json:"status"`
	SubmissionDate   *time.Time           `json:"submission_date"`
}
