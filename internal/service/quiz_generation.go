package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"studyaid/internal/domain"
	"studyaid/internal/dto"
	"studyaid/internal/logger"

	"go.uber.org/zap"
)

const (
	// contentPromptLimit truncates course content fed into the user prompt.
	contentPromptLimit = 6000

	// titleMaxLength truncates a course name used to derive a quiz title.
	titleMaxLength = 32
)

const baseSystemPrompt = `You are a careful quiz generator for students.
Return ONLY one JSON object with shape:
{"questions":[{"type":"mcq|fitb","question":"...","options":["...","...","...","..."],"correct_index":0}]}
Rules:
- Exactly 10 questions total (mix mcq and fitb; fitb has a single '____' in the question text).
- For FITB: choose a concrete term/phrase FROM THE CONTENT as the correct option; make 3 plausible domain-specific distractors. Do NOT use meta options like 'Correct', 'None of these', 'Not applicable', 'I'm not sure', 'All of the above'.
- Each question MUST have 4 short distinct options; exactly one correct.
- correct_index is an integer 0..3. No commentary/backticks; JSON only.`

const retryAmendment = "\n\nYour previous options contained generic/invalid choices. " +
	"Regenerate following the rules strictly; options must be concrete domain terms."

// QuizGenerationService drives a model round-trip into a persisted quiz
type QuizGenerationService interface {
	GenerateQuiz(ctx context.Context, courseID string, req *dto.GenerateQuizRequest) (*dto.GenerateQuizPayload, error)
}

type quizGenerationService struct {
	courses   domain.CourseRepository
	quizzes   domain.QuizRepository
	generator domain.QuizGenerator
	txManager domain.TransactionManager
}

// NewQuizGenerationService creates a new instance of quizGenerationService
func NewQuizGenerationService(
	courses domain.CourseRepository,
	quizzes domain.QuizRepository,
	generator domain.QuizGenerator,
	txManager domain.TransactionManager,
) QuizGenerationService {
	return &quizGenerationService{
		courses:   courses,
		quizzes:   quizzes,
		generator: generator,
		txManager: txManager,
	}
}

// GenerateQuiz implements QuizGenerationService. One or two model calls,
// one transaction on success, zero writes on any failure.
func (s *quizGenerationService) GenerateQuiz(ctx context.Context, courseID string, req *dto.GenerateQuizRequest) (*dto.GenerateQuizPayload, error) {
	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load course", err)
	}
	if course == nil {
		return nil, domain.NewCourseNotFoundError(courseID)
	}
	if !course.HasContent() {
		return nil, domain.NewCourseNoContentError()
	}

	userPrompt := buildUserPrompt(course.Content)

	questions, err := s.attemptGeneration(ctx, userPrompt)
	if err != nil {
		if de, ok := err.(*domain.DomainError); ok && de.Code == domain.ErrConfig {
			return nil, err
		}
		logger.Get().Warn("First generation attempt failed, retrying once",
			zap.String("course_id", courseID),
			zap.String("error_kind", domain.ErrorKind(err)),
			zap.Error(err))

		questions, err = s.attemptGeneration(ctx, userPrompt+retryAmendment)
		if err != nil {
			return nil, domain.NewError(domain.ErrLLMServiceError,
				fmt.Sprintf("Quiz generation failed after retry: %s", domain.ErrorKind(err)), err)
		}
	}

	requestedTitle := ""
	if req != nil {
		requestedTitle = req.QuizTitle
	}
	quiz := domain.NewQuiz(courseID, deriveQuizTitle(requestedTitle, course.Name))

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.quizzes.SaveQuiz(txCtx, quiz); err != nil {
			return err
		}
		for _, question := range questions {
			question.QuizID = quiz.ID
		}
		return s.quizzes.SaveQuestions(txCtx, questions)
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to persist generated quiz", err)
	}

	logger.Get().Info("New quiz created",
		zap.String("quiz_id", quiz.ID),
		zap.String("course_id", courseID),
		zap.Int("questions_saved", len(questions)))

	return &dto.GenerateQuizPayload{
		QuizID:         quiz.ID,
		CourseID:       courseID,
		QuizTitle:      quiz.Title,
		CreatedAt:      quiz.CreatedAt.Format(time.RFC3339),
		QuestionsSaved: domain.QuestionsPerQuiz,
	}, nil
}

// attemptGeneration performs one model round-trip, parse, and normalization.
func (s *quizGenerationService) attemptGeneration(ctx context.Context, userPrompt string) ([]*domain.QuizQuestion, error) {
	raw, err := s.generator.Generate(ctx, baseSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	payload, err := parseModelPayload(raw)
	if err != nil {
		return nil, domain.NewMalformedPayloadError("Model response is not a JSON object", err)
	}

	return normalizeQuizPayload(payload)
}

func buildUserPrompt(content string) string {
	return fmt.Sprintf("Create a quiz from this course content (trimmed):\n\n%s",
		truncateRunes(content, contentPromptLimit))
}

// truncateRunes cuts s to at most limit characters. Slicing on bytes would
// split multi-byte runes and emit invalid UTF-8.
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// deriveQuizTitle picks the caller's trimmed title, else derives one from
// the course name, else falls back to the literal "Quiz".
func deriveQuizTitle(requested, courseName string) string {
	if title := strings.TrimSpace(requested); title != "" {
		return title
	}
	if courseName != "" {
		return truncateRunes(courseName, titleMaxLength) + " - Quiz"
	}
	return "Quiz"
}
