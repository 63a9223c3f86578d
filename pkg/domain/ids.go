// Package domain holds typed identifiers shared across modules.
//
// Catalogue and project identifiers are positive int64 values assigned by the
// relational store. Users are identified by UUID, as issued by the identity
// provider that signs access tokens.
package domain

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	dErrors "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain-errors"
)

type (
	ProjectID        int64
	QuestionnaireID  int64
	QuestionID       int64
	RepresentativeID int64
	StageID          int64
	RoleID           int64
	DocumentID       int64
)

// UserID identifies an authenticated caller.
type UserID uuid.UUID

func (id UserID) String() string { return uuid.UUID(id).String() }

// IsNil reports whether the id is the zero UUID.
func (id UserID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id UserID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *UserID) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return err
	}
	*id = UserID(u)
	return nil
}

func (id ProjectID) String() string        { return strconv.FormatInt(int64(id), 10) }
func (id QuestionnaireID) String() string  { return strconv.FormatInt(int64(id), 10) }
func (id QuestionID) String() string       { return strconv.FormatInt(int64(id), 10) }
func (id RepresentativeID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id StageID) String() string          { return strconv.FormatInt(int64(id), 10) }
func (id RoleID) String() string           { return strconv.FormatInt(int64(id), 10) }
func (id DocumentID) String() string       { return strconv.FormatInt(int64(id), 10) }

// ParseUserID parses a non-nil UUID.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user_id")
	return UserID(u), err
}

func ParseProjectID(s string) (ProjectID, error) {
	n, err := parsePositive(s, "project_id")
	return ProjectID(n), err
}

func ParseQuestionnaireID(s string) (QuestionnaireID, error) {
	n, err := parsePositive(s, "questionnaire_id")
	return QuestionnaireID(n), err
}

func ParseQuestionID(s string) (QuestionID, error) {
	n, err := parsePositive(s, "question_id")
	return QuestionID(n), err
}

func ParseRepresentativeID(s string) (RepresentativeID, error) {
	n, err := parsePositive(s, "representative_id")
	return RepresentativeID(n), err
}

func parseUUID(s, field string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" must not be nil")
	}
	return u, nil
}

func parsePositive(s, field string) (int64, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, field+" must be a positive integer")
	}
	return n, nil
}
