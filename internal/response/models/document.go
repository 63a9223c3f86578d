package models

import (
	"time"

	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
)

// ResponseDocument holds one representative's answers to one questionnaire.
//
// Invariants:
//   - at most one document per (ProjectID, QuestionnaireID, RepresentativeID)
//   - RepresentativeID == nil marks the shared document of a project without representatives
//   - the set and order of Answers is fixed at creation
//   - Status is always CalculateStatus(Answers)
//   - SubmissionDate is set iff Status is COMPLETED
//   - Version increases by one on every successful save
type ResponseDocument struct {
	ID               id.DocumentID        `json:"id"`
	ProjectID        id.ProjectID         `json:"project_id"`
	QuestionnaireID  id.QuestionnaireID   `json:"questionnaire_id"`
	RepresentativeID *id.RepresentativeID `json:"representative_id"`
	StageID          *id.StageID          `json:"stage_id"`
	Status           Status               `json:"status"`
	SubmissionDate   *time.Time           `json:"submission_date"`
	Answers          []AnswerEntry        `json:"answers"`
	Version          int64                `json:"version"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// DocumentKey is the uniqueness key of a document. Representative 0 is the shared document.
type DocumentKey struct {
	ProjectID        id.ProjectID
	QuestionnaireID  id.QuestionnaireID
	RepresentativeID id.RepresentativeID
}

// KeyFor builds the key for an optional representative.
func KeyFor(projectID id.ProjectID, questionnaireID id.QuestionnaireID, representativeID *id.RepresentativeID) DocumentKey {
	k := DocumentKey{ProjectID: projectID, QuestionnaireID: questionnaireID}
	if representativeID != nil {
		k.RepresentativeID = *representativeID
	}
	return k
}

// NewResponseDocument creates a pending document from its own copy of template.
func NewResponseDocument(
	projectID id.ProjectID,
	questionnaireID id.QuestionnaireID,
	representativeID *id.RepresentativeID,
	stageID *id.StageID,
	template []AnswerEntry,
	now time.Time,
) *ResponseDocument {
	answers := CloneAnswers(template)
	return &ResponseDocument{
		ProjectID:        projectID,
		QuestionnaireID:  questionnaireID,
		RepresentativeID: cloneRepresentativeID(representativeID),
		StageID:          cloneStageID(stageID),
		Status:           CalculateStatus(answers),
		Answers:          answers,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (d *ResponseDocument) Key() DocumentKey {
	return KeyFor(d.ProjectID, d.QuestionnaireID, d.RepresentativeID)
}

// IsShared reports whether this is the project-wide document.
func (d *ResponseDocument) IsShared() bool {
	return d.RepresentativeID == nil
}

// Clone returns a deep copy.
func (d *ResponseDocument) Clone() *ResponseDocument {
	if d == nil {
		return nil
	}
	c := *d
	c.RepresentativeID = cloneRepresentativeID(d.RepresentativeID)
	c.StageID = cloneStageID(d.StageID)
	if d.SubmissionDate != nil {
		t := *d.SubmissionDate
		c.SubmissionDate = &t
	}
	c.Answers = CloneAnswers(d.Answers)
	return &c
}

// ApplySubmission validates and applies answers to a working copy of d and
// returns it with status and submission date recomputed. d is never modified,
// so a failed submission leaves the caller's document exactly as it was.
func (d *ResponseDocument) ApplySubmission(answers []SubmittedAnswer, now time.Time) (*ResponseDocument, error) {
	working := d.Clone()
	byID := IndexAnswers(working.Answers)
	for _, a := range answers {
		if err := ApplyAnswer(a, byID); err != nil {
			return nil, err
		}
	}
	working.Status = CalculateStatus(working.Answers)
	if working.Status == StatusCompleted {
		t := now
		working.SubmissionDate = &t
	} else {
		working.SubmissionDate = nil
	}
	working.UpdatedAt = now
	return working, nil
}

// Summary is the completion view of a document used in listings.
func (d *ResponseDocument) Summary() Summary {
	s := Summary{
		RepresentativeID: cloneRepresentativeID(d.RepresentativeID),
		Status:           d.Status,
	}
	if d.SubmissionDate != nil {
		t := *d.SubmissionDate
		s.SubmissionDate = &t
	}
	return s
}

func cloneRepresentativeID(v *id.RepresentativeID) *id.RepresentativeID {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneStageID(v *id.StageID) *id.StageID {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
