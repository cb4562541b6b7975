package validation

import (
	"fmt"

	"studyaid/internal/domain"
	"studyaid/internal/dto"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSubmission checks the shape of a submission body against the path
// quiz id. Any violation fails the whole batch before a single write is
// attempted; errors identify the offending item and field. Non-integer
// index values are rejected earlier, at JSON decode time.
func (v *Validator) ValidateSubmission(pathQuizID string, answers []dto.SubmitAnswerItem) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(answers) == 0 {
		errors = append(errors, domain.NewValidationError("answers", "answer list is empty"))
		return errors
	}

	for i, answer := range answers {
		if answer.QuizID != nil && *answer.QuizID != pathQuizID {
			errors = append(errors, domain.NewValidationError(
				fmt.Sprintf("answers[%d].quiz_id", i),
				fmt.Sprintf("quiz_id %q does not match path quiz id %q", *answer.QuizID, pathQuizID),
			))
		}
		if answer.QuestionIndex == nil {
			errors = append(errors, domain.NewValidationError(
				fmt.Sprintf("answers[%d].question_index", i),
				"question_index is required",
			))
		}
		if answer.StudentSelectedIndex == nil {
			errors = append(errors, domain.NewValidationError(
				fmt.Sprintf("answers[%d].student_selected_index", i),
				"student_selected_index is required",
			))
		} else if *answer.StudentSelectedIndex < 0 || *answer.StudentSelectedIndex >= domain.OptionCount {
			errors = append(errors, domain.NewValidationError(
				fmt.Sprintf("answers[%d].student_selected_index", i),
				"student_selected_index must be 0..3",
			))
		}
	}

	return errors
}
