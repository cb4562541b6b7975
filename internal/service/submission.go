package service

import (
	"context"

	"studyaid/internal/cache"
	"studyaid/internal/domain"
	"studyaid/internal/dto"
	"studyaid/internal/logger"
	"studyaid/internal/validation"

	"go.uber.org/zap"
)

// QuizSubmissionService records student answers and grades a quiz
type QuizSubmissionService interface {
	SubmitQuiz(ctx context.Context, quizID string, answers []dto.SubmitAnswerItem) (*dto.SubmitQuizPayload, error)
}

type quizSubmissionService struct {
	quizzes   domain.QuizRepository
	txManager domain.TransactionManager
	validator *validation.Validator
	cache     domain.Cache // optional; invalidates cached detail payloads
}

// NewQuizSubmissionService creates a new instance of quizSubmissionService
func NewQuizSubmissionService(
	quizzes domain.QuizRepository,
	txManager domain.TransactionManager,
	validator *validation.Validator,
	cacheClient domain.Cache,
) QuizSubmissionService {
	return &quizSubmissionService{
		quizzes:   quizzes,
		txManager: txManager,
		validator: validator,
		cache:     cacheClient,
	}
}

// SubmitQuiz implements QuizSubmissionService. Shape validation fails the
// whole batch before any write; answers referencing unknown question
// indices are reported as data, not errors. The question updates and the
// quiz flag update commit as one transaction, overwriting any prior
// submission; re-submission simply recomputes state.
func (s *quizSubmissionService) SubmitQuiz(ctx context.Context, quizID string, answers []dto.SubmitAnswerItem) (*dto.SubmitQuizPayload, error) {
	if validationErrs := s.validator.ValidateSubmission(quizID, answers); len(validationErrs) > 0 {
		return nil, validationErrs
	}

	updated := 0
	correctCount := 0
	missing := []int{}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, answer := range answers {
			questionIndex := *answer.QuestionIndex
			selectedIndex := *answer.StudentSelectedIndex

			question, err := s.quizzes.GetQuestionByIndex(txCtx, quizID, questionIndex)
			if err != nil {
				return domain.NewInternalError("Failed to load question", err)
			}
			if question == nil {
				missing = append(missing, questionIndex)
				continue
			}

			// Last write wins, also across repeated submissions.
			if err := s.quizzes.UpdateQuestionSelection(txCtx, question.ID, selectedIndex); err != nil {
				return domain.NewInternalError("Failed to record answer", err)
			}
			updated++
			if selectedIndex == question.CorrectIndex {
				correctCount++
			}
		}

		quiz, err := s.quizzes.GetQuizByID(txCtx, quizID)
		if err != nil {
			return domain.NewInternalError("Failed to load quiz", err)
		}
		if quiz == nil {
			return domain.NewQuizNotFoundError(quizID)
		}

		return s.quizzes.UpdateQuizSubmission(txCtx, quizID, correctCount)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateDetail(ctx, quizID)

	logger.Get().Info("Quiz submitted",
		zap.String("quiz_id", quizID),
		zap.Int("updated", updated),
		zap.Int("correct_count", correctCount),
		zap.Ints("missing_questions", missing))

	return &dto.SubmitQuizPayload{
		QuizID:           quizID,
		Updated:          updated,
		MissingQuestions: missing,
		CorrectCount:     correctCount,
		IsSubmitted:      true,
	}, nil
}

// invalidateDetail drops the cached detail payload after a submission.
// Cache failures are logged, never surfaced.
func (s *quizSubmissionService) invalidateDetail(ctx context.Context, quizID string) {
	if s.cache == nil {
		return
	}
	key := cache.GenerateCacheKey("quiz", "detail", quizID)
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Get().Warn("Failed to invalidate quiz detail cache",
			zap.String("quiz_id", quizID),
			zap.String("cache_key", key),
			zap.Error(err))
	}
}
