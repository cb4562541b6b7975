package validation

import (
	"testing"

	"studyaid/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestValidateSubmission_Valid(t *testing.T) {
	v := NewValidator()

	errs := v.ValidateSubmission("quiz-1", []dto.SubmitAnswerItem{
		{QuizID: strPtr("quiz-1"), QuestionIndex: intPtr(1), StudentSelectedIndex: intPtr(0)},
		{QuestionIndex: intPtr(2), StudentSelectedIndex: intPtr(3)},
	})

	assert.Empty(t, errs)
}

func TestValidateSubmission_EmptyList(t *testing.T) {
	v := NewValidator()

	errs := v.ValidateSubmission("quiz-1", nil)

	require.Len(t, errs, 1)
	assert.Equal(t, "answers", errs[0].Field)
}

func TestValidateSubmission_QuizIDMismatch(t *testing.T) {
	v := NewValidator()

	errs := v.ValidateSubmission("quiz-1", []dto.SubmitAnswerItem{
		{QuizID: strPtr("quiz-2"), QuestionIndex: intPtr(1), StudentSelectedIndex: intPtr(0)},
	})

	require.Len(t, errs, 1)
	assert.Equal(t, "answers[0].quiz_id", errs[0].Field)
}

func TestValidateSubmission_MissingFields(t *testing.T) {
	v := NewValidator()

	errs := v.ValidateSubmission("quiz-1", []dto.SubmitAnswerItem{{}})

	require.Len(t, errs, 2)
	assert.Equal(t, "answers[0].question_index", errs[0].Field)
	assert.Equal(t, "answers[0].student_selected_index", errs[1].Field)
}

func TestValidateSubmission_SelectedIndexRange(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		wantErrs int
	}{
		{"lower bound", 0, 0},
		{"upper bound", 3, 0},
		{"negative", -1, 1},
		{"too large", 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator()

			errs := v.ValidateSubmission("quiz-1", []dto.SubmitAnswerItem{
				{QuestionIndex: intPtr(1), StudentSelectedIndex: intPtr(tt.selected)},
			})

			assert.Len(t, errs, tt.wantErrs)
		})
	}
}

func TestValidateSubmission_ReportsEveryViolation(t *testing.T) {
	v := NewValidator()

	errs := v.ValidateSubmission("quiz-1", []dto.SubmitAnswerItem{
		{QuestionIndex: intPtr(1), StudentSelectedIndex: intPtr(0)},
		{QuizID: strPtr("other"), StudentSelectedIndex: intPtr(9)},
	})

	require.Len(t, errs, 3)
	assert.Equal(t, "answers[1].quiz_id", errs[0].Field)
	assert.Equal(t, "answers[1].question_index", errs[1].Field)
	assert.Equal(t, "answers[1].student_selected_index", errs[2].Field)
}
