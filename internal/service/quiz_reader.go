package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"studyaid/internal/cache"
	"studyaid/internal/domain"
	"studyaid/internal/dto"
	"studyaid/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuizReaderService assembles quiz state for listing and detail retrieval
type QuizReaderService interface {
	// ListQuizzes returns a course's submitted quizzes, newest first.
	// Draft quizzes are invisible to listing.
	ListQuizzes(ctx context.Context, courseID string) (*dto.QuizListPayload, error)

	// GetQuizDetail returns quiz metadata plus all questions ordered by
	// question_index, including current selections and correct indices.
	GetQuizDetail(ctx context.Context, quizID string) (*dto.QuizDetailPayload, error)
}

type quizReaderService struct {
	quizzes   domain.QuizRepository
	cache     domain.Cache // optional read-through cache for detail payloads
	detailTTL time.Duration
	group     singleflight.Group
}

// NewQuizReaderService creates a new instance of quizReaderService.
// cacheClient may be nil, in which case every read hits the database.
func NewQuizReaderService(quizzes domain.QuizRepository, cacheClient domain.Cache, detailTTL time.Duration) QuizReaderService {
	return &quizReaderService{
		quizzes:   quizzes,
		cache:     cacheClient,
		detailTTL: detailTTL,
	}
}

// ListQuizzes implements QuizReaderService
func (s *quizReaderService) ListQuizzes(ctx context.Context, courseID string) (*dto.QuizListPayload, error) {
	quizzes, err := s.quizzes.ListSubmittedByCourse(ctx, courseID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quizzes", err)
	}

	summaries := make([]dto.QuizSummary, 0, len(quizzes))
	for _, quiz := range quizzes {
		summaries = append(summaries, dto.QuizSummary{
			QuizID:       quiz.ID,
			QuizTitle:    quiz.Title,
			CreatedAt:    quiz.CreatedAt.Format(time.RFC3339),
			CorrectCount: quiz.CorrectCount,
		})
	}

	return &dto.QuizListPayload{
		CourseID: courseID,
		Quizzes:  summaries,
	}, nil
}

// GetQuizDetail implements QuizReaderService
func (s *quizReaderService) GetQuizDetail(ctx context.Context, quizID string) (*dto.QuizDetailPayload, error) {
	if s.cache == nil {
		return s.assembleDetail(ctx, quizID)
	}

	key := cache.GenerateCacheKey("quiz", "detail", quizID)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var payload dto.QuizDetailPayload
		if unmarshalErr := json.Unmarshal([]byte(cached), &payload); unmarshalErr == nil {
			return &payload, nil
		}
		// Unreadable cache entries fall through to the database.
	} else if err != domain.ErrCacheMiss {
		logger.Get().Warn("Quiz detail cache read failed",
			zap.String("quiz_id", quizID),
			zap.Error(err))
	}

	// Collapse concurrent assemblies of the same quiz on cache miss.
	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		payload, err := s.assembleDetail(ctx, quizID)
		if err != nil {
			return nil, err
		}
		if encoded, marshalErr := json.Marshal(payload); marshalErr == nil {
			if setErr := s.cache.Set(ctx, key, string(encoded), s.detailTTL); setErr != nil {
				logger.Get().Warn("Quiz detail cache write failed",
					zap.String("quiz_id", quizID),
					zap.Error(setErr))
			}
		}
		return payload, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*dto.QuizDetailPayload), nil
}

func (s *quizReaderService) assembleDetail(ctx context.Context, quizID string) (*dto.QuizDetailPayload, error) {
	questions, err := s.quizzes.GetQuestionsByQuizID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load quiz questions", err)
	}
	if len(questions) == 0 {
		return nil, domain.NewNotFoundError(fmt.Sprintf("No questions found for quiz_id=%s", quizID))
	}

	quiz, err := s.quizzes.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	details := make([]dto.QuestionDetail, 0, len(questions))
	for _, question := range questions {
		options := question.Options
		if options == nil {
			options = []string{}
		}
		details = append(details, dto.QuestionDetail{
			QuestionIndex:        question.QuestionIndex,
			Type:                 question.QuestionType,
			Question:             question.QuestionText,
			Options:              options,
			CorrectIndex:         question.CorrectIndex,
			StudentSelectedIndex: question.SelectedIndex,
		})
	}

	return &dto.QuizDetailPayload{
		QuizID:       quiz.ID,
		QuizTitle:    quiz.Title,
		CreatedAt:    quiz.CreatedAt.Format(time.RFC3339),
		IsSubmitted:  quiz.IsSubmitted,
		CorrectCount: quiz.CorrectCount,
		Questions:    details,
	}, nil
}
