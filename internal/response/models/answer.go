package models

import (
	"encoding/json"
	"fmt"
	"slices"

	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
)

// AnswerValue is the tri-state response to a yes/no compliance question.
// It encodes to JSON as true, false or null.
type AnswerValue int8

const (
	AnswerUnset AnswerValue = iota
	AnswerTrue
	AnswerFalse
)

// AnswerValueOf converts an optional bool.
func AnswerValueOf(b *bool) AnswerValue {
	switch {
	case b == nil:
		return AnswerUnset
	case *b:
		return AnswerTrue
	default:
		return AnswerFalse
	}
}

// IsSet reports whether the question has been answered.
func (v AnswerValue) IsSet() bool {
	return v == AnswerTrue || v == AnswerFalse
}

// Bool returns the value as an optional bool.
func (v AnswerValue) Bool() *bool {
	if !v.IsSet() {
		return nil
	}
	b := v == AnswerTrue
	return &b
}

func (v AnswerValue) String() string {
	switch v {
	case AnswerTrue:
		return "true"
	case AnswerFalse:
		return "false"
	default:
		return "unset"
	}
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Bool())
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var b *bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("answer value must be true, false or null: %w", err)
	}
	*v = AnswerValueOf(b)
	return nil
}

// AnswerEntry is one question's answer slot inside a response document.
// QuestionID, QuestionText, StageIDs and RoleIDs are snapshots taken when the
// document was created; only Response, Justification, Evidence and
// Attachments change afterwards.
type AnswerEntry struct {
	QuestionID    id.QuestionID `json:"question_id"`
	QuestionText  string        `json:"question_text"`
	StageIDs      []id.StageID  `json:"stage_ids"`
	RoleIDs       []id.RoleID   `json:"role_ids"`
	Response      AnswerValue   `json:"response"`
	Justification *Link         `json:"justification"`
	Evidence      *Link         `json:"evidence"`
	Attachments   []Link        `json:"attachments"`
}

// Clone returns a deep copy sharing no slices or links with e.
func (e AnswerEntry) Clone() AnswerEntry {
	c := e
	c.StageIDs = slices.Clone(e.StageIDs)
	c.RoleIDs = slices.Clone(e.RoleIDs)
	c.Justification = e.Justification.Clone()
	c.Evidence = e.Evidence.Clone()
	c.Attachments = slices.Clone(e.Attachments)
	return c
}

// CloneAnswers deep-copies an ordered answer list.
func CloneAnswers(answers []AnswerEntry) []AnswerEntry {
	out := make([]AnswerEntry, len(answers))
	for i := range answers {
		out[i] = answers[i].Clone()
	}
	return out
}

// SubmittedAnswer is a caller's proposed value for one question.
type SubmittedAnswer struct {
	QuestionID    id.QuestionID `json:"question_id"`
	Response      AnswerValue   `json:"response"`
	Justification *Link         `json:"justification"`
	Evidence      *Link         `json:"evidence"`
	Attachments   []Link        `json:"attachments"`
}
