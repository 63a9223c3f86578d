package models

import (
	"time"

	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
)

// Questionnaire is a named question set applied within a project stage or
// iteration window. StageID is nil for iteration-based projects.
type Questionnaire struct {
	ID        id.QuestionnaireID `json:"id"`
	ProjectID id.ProjectID       `json:"project_id"`
	StageID   *id.StageID        `json:"stage_id,omitempty"`
	Name      string             `json:"name"`
	CreatedAt time.Time          `json:"created_at"`
}

// BelongsTo reports whether the questionnaire is part of the given project.
func (q *Questionnaire) BelongsTo(projectID id.ProjectID) bool {
	return q != nil && q.ProjectID == projectID
}

// Question is one catalogue entry of a questionnaire. Position orders the
// questions; catalogue reads always return them sorted by Position.
type Question struct {
	ID              id.QuestionID      `json:"id"`
	QuestionnaireID id.QuestionnaireID `json:"questionnaire_id"`
	Position        int                `json:"position"`
	Text            string             `json:"text"`
	StageIDs        []id.StageID       `json:"stage_ids"`
	RoleIDs         []id.RoleID        `json:"role_ids"`
}
