package models

import (
	dErrors "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain-errors"
)

// Input-validation errors. Always caller-correctable.
var (
	ErrInvalidPageSize = dErrors.New(dErrors.CodeValidation, "page size must be greater than zero")
	ErrOutOfRangePage  = dErrors.New(dErrors.CodeValidation, "page is out of range")
)

// Domain-rule errors. Rejected operations have no partial effect.
var (
	ErrQuestionNotInQuestionnaire = dErrors.New(dErrors.CodeUnprocessable, "question does not belong to questionnaire")
	ErrAttachmentsRequired        = dErrors.New(dErrors.CodeUnprocessable, "attachments are required when the response is true")
	ErrJustificationRequired      = dErrors.New(dErrors.CodeUnprocessable, "justification is required when the response is false")
	ErrQuestionnaireNotInProject  = dErrors.New(dErrors.CodeNotFound, "questionnaire does not belong to project")
	ErrQuestionnaireNotFound      = dErrors.New(dErrors.CodeNotFound, "questionnaire not found")
	ErrResponseNotFound           = dErrors.New(dErrors.CodeNotFound, "response document not found")
	ErrRepresentativeNotFound     = dErrors.New(dErrors.CodeNotFound, "representative not found for project")
	ErrConcurrentModification     = dErrors.New(dErrors.CodeConflict, "response document was modified concurrently")
)
