package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qmodels "github.com/yvesls/ethicalsoft-compliance-sub000/internal/questionnaire/models"
	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
)

func catalogue() []qmodels.Question {
	return []qmodels.Question{
		{ID: 11, Position: 1, Text: "Is there a data protection officer?", StageIDs: []id.StageID{1, 2, 1}, RoleIDs: []id.RoleID{5}},
		{ID: 12, Position: 2, Text: "Are access logs retained?", StageIDs: []id.StageID{2}, RoleIDs: nil},
		{ID: 13, Position: 3, Text: "Is consent recorded?", StageIDs: nil, RoleIDs: []id.RoleID{5, 6}},
	}
}

func TestBuildTemplate(t *testing.T) {
	t.Run("one blank entry per question in order", func(t *testing.T) {
		template := BuildTemplate(catalogue())
		require.Len(t, template, 3)
		for i, q := range catalogue() {
			e := template[i]
			assert.Equal(t, q.ID, e.QuestionID)
			assert.Equal(t, q.Text, e.QuestionText)
			assert.Equal(t, AnswerUnset, e.Response)
			assert.Nil(t, e.Justification)
			assert.Nil(t, e.Evidence)
			assert.NotNil(t, e.Attachments)
			assert.Empty(t, e.Attachments)
		}
	})

	t.Run("stage and role sets are deduplicated snapshots", func(t *testing.T) {
		questions := catalogue()
		template := BuildTemplate(questions)
		assert.Equal(t, []id.StageID{1, 2}, template[0].StageIDs)

		questions[0].StageIDs[0] = 99
		questions[2].RoleIDs[1] = 99
		assert.Equal(t, []id.StageID{1, 2}, template[0].StageIDs, "later catalogue edits do not leak into the snapshot")
		assert.Equal(t, []id.RoleID{5, 6}, template[2].RoleIDs)
	})

	t.Run("empty catalogue yields empty template", func(t *testing.T) {
		assert.Empty(t, BuildTemplate(nil))
	})
}

func TestCloneAnswers_SharesNothing(t *testing.T) {
	template := BuildTemplate(catalogue())
	template[0].Justification = &Link{Description: "why"}
	template[0].Attachments = append(template[0].Attachments, Link{URL: "a"})

	a := CloneAnswers(template)
	b := CloneAnswers(template)

	a[0].Justification.Description = "changed"
	a[0].Attachments[0].URL = "changed"
	a[0].StageIDs[0] = 42

	assert.Equal(t, "why", b[0].Justification.Description)
	assert.Equal(t, "a", b[0].Attachments[0].URL)
	assert.Equal(t, id.StageID(1), b[0].StageIDs[0])
	assert.Equal(t, "why", template[0].Justification.Description)
	assert.NotSame(t, a[0].Justification, b[0].Justification)
}
