package audit

import (
	"time"

	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
)

// Action names the audited operation.
type Action string

const (
	ActionAnswersSubmitted     Action = "answers_submitted"
	ActionResponsesProvisioned Action = "responses_provisioned"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp        time.Time           `json:"timestamp"`
	Action           Action              `json:"action"`
	UserID           id.UserID           `json:"user_id"`
	ProjectID        id.ProjectID        `json:"project_id"`
	QuestionnaireID  id.QuestionnaireID  `json:"questionnaire_id,omitempty"`
	RepresentativeID id.RepresentativeID `json:"representative_id,omitempty"`
	Scope            string              `json:"scope,omitempty"`
	Status           string              `json:"status,omitempty"`
	Count            int                 `json:"count,omitempty"`
	RequestID        string              `json:"request_id,omitempty"`
	ClientIP         string              `json:"client_ip,omitempty"`
	UserAgent        string              `json:"user_agent,omitempty"`
}
