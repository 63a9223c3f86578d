package models

import (
	"fmt"

	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
	dErrors "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain-errors"
)

// IndexAnswers maps question ids to the entries of answers. The pointers alias
// the slice, so mutations through the map land in answers.
func IndexAnswers(answers []AnswerEntry) map[id.QuestionID]*AnswerEntry {
	byID := make(map[id.QuestionID]*AnswerEntry, len(answers))
	for i := range answers {
		byID[answers[i].QuestionID] = &answers[i]
	}
	return byID
}

// ValidateAnswer checks a submitted answer against its target without mutating anything.
func ValidateAnswer(submitted SubmittedAnswer, answersByID map[id.QuestionID]*AnswerEntry) error {
	if _, ok := answersByID[submitted.QuestionID]; !ok {
		return dErrors.Wrap(ErrQuestionNotInQuestionnaire, dErrors.CodeUnprocessable,
			fmt.Sprintf("question %d does not belong to questionnaire", submitted.QuestionID))
	}
	switch submitted.Response {
	case AnswerTrue:
		if len(submitted.Attachments) == 0 {
			return dErrors.Wrap(ErrAttachmentsRequired, dErrors.CodeUnprocessable,
				fmt.Sprintf("question %d: attachments are required when the response is true", submitted.QuestionID))
		}
	case AnswerFalse:
		if submitted.Justification == nil {
			return dErrors.Wrap(ErrJustificationRequired, dErrors.CodeUnprocessable,
				fmt.Sprintf("question %d: justification is required when the response is false", submitted.QuestionID))
		}
	}
	return nil
}

// ApplyAnswer validates submitted and, on success, replaces the four mutable
// fields of the target entry. Nothing is written when validation fails.
func ApplyAnswer(submitted SubmittedAnswer, answersByID map[id.QuestionID]*AnswerEntry) error {
	if err := ValidateAnswer(submitted, answersByID); err != nil {
		return err
	}
	target := answersByID[submitted.QuestionID]
	target.Response = submitted.Response
	target.Justification = submitted.Justification.Clone()
	target.Evidence = submitted.Evidence.Clone()
	target.Attachments = cloneLinks(submitted.Attachments)
	return nil
}
