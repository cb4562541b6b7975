package handler

import (
	"encoding/json"
	"errors"
	"fmt"

	"studyaid/internal/domain"
	"studyaid/internal/dto"
	"studyaid/internal/logger"
	"studyaid/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests. Every response is the
// uniform envelope with transport code 200; failures are signaled through
// the status field only.
type QuizHandler struct {
	generation service.QuizGenerationService
	submission service.QuizSubmissionService
	reader     service.QuizReaderService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(
	generation service.QuizGenerationService,
	submission service.QuizSubmissionService,
	reader service.QuizReaderService,
) *QuizHandler {
	return &QuizHandler{
		generation: generation,
		submission: submission,
		reader:     reader,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz for a course
// @Description Generates a new ten-question quiz from the course content
// @Tags quiz
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param request body dto.GenerateQuizRequest false "Optional quiz title"
// @Success 200 {object} dto.Response
// @Router /courses/{courseId}/quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var req dto.GenerateQuizRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.JSON(dto.NewFailResponse("Invalid request body"))
		}
	}

	payload, err := h.generation.GenerateQuiz(c.Context(), courseID, &req)
	if err != nil {
		logger.Get().Error("Quiz generation failed",
			zap.Error(err),
			zap.String("course_id", courseID))
		return c.JSON(failFromError(err))
	}

	return c.JSON(successFromPayload(payload,
		fmt.Sprintf("New quiz created for course_id=%s.", courseID)))
}

// ListQuizzes godoc
// @Summary List submitted quizzes for a course
// @Description Returns submitted quizzes newest first; drafts are excluded
// @Tags quiz
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.Response
// @Router /courses/{courseId}/quizzes [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	payload, err := h.reader.ListQuizzes(c.Context(), courseID)
	if err != nil {
		logger.Get().Error("Failed to list quizzes",
			zap.Error(err),
			zap.String("course_id", courseID))
		return c.JSON(failFromError(err))
	}

	return c.JSON(successFromPayload(payload,
		fmt.Sprintf("Found %d quizzes for course_id=%s.", len(payload.Quizzes), courseID)))
}

// GetQuiz godoc
// @Summary Get a quiz with its questions
// @Description Returns quiz metadata and questions ordered by question index
// @Tags quiz
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Success 200 {object} dto.Response
// @Router /quizzes/{quizId} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quizID := c.Params("quizId")

	payload, err := h.reader.GetQuizDetail(c.Context(), quizID)
	if err != nil {
		logger.Get().Error("Failed to get quiz detail",
			zap.Error(err),
			zap.String("quiz_id", quizID))
		return c.JSON(failFromError(err))
	}

	return c.JSON(successFromPayload(payload, fmt.Sprintf("Quiz %s fetched.", quizID)))
}

// SubmitQuiz godoc
// @Summary Submit answers for a quiz
// @Description Records selections, grades the quiz, and marks it submitted
// @Tags quiz
// @Accept json
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Param answers body []dto.SubmitAnswerItem true "Answer selections"
// @Success 200 {object} dto.Response
// @Router /quizzes/{quizId}/submit [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	quizID := c.Params("quizId")

	answers, err := decodeAnswers(c.Body())
	if err != nil {
		return c.JSON(failFromError(err))
	}

	payload, err := h.submission.SubmitQuiz(c.Context(), quizID, answers)
	if err != nil {
		logger.Get().Error("Quiz submission failed",
			zap.Error(err),
			zap.String("quiz_id", quizID))
		return c.JSON(failFromError(err))
	}

	return c.JSON(successFromPayload(payload, fmt.Sprintf("Quiz %s submitted.", quizID)))
}

// decodeAnswers decodes the submission body item by item. Type faults name
// the offending item index and field rather than failing the array as a
// whole; a body that is not a JSON array fails up front.
func decodeAnswers(body []byte) ([]dto.SubmitAnswerItem, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, domain.ValidationErrors{
			domain.NewValidationError("answers", "expected a JSON array of answers"),
		}
	}

	answers := make([]dto.SubmitAnswerItem, 0, len(raw))
	for i, item := range raw {
		var answer dto.SubmitAnswerItem
		if err := json.Unmarshal(item, &answer); err != nil {
			field := fmt.Sprintf("answers[%d]", i)
			message := "malformed answer object"
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				if typeErr.Field != "" {
					field = fmt.Sprintf("answers[%d].%s", i, typeErr.Field)
				}
				message = fmt.Sprintf("must be a valid %s", typeErr.Type)
			}
			return nil, domain.ValidationErrors{domain.NewValidationError(field, message)}
		}
		answers = append(answers, answer)
	}
	return answers, nil
}

// successFromPayload JSON-encodes the payload into the envelope's data field.
func successFromPayload(payload interface{}, message string) dto.Response {
	encoded, err := json.Marshal(payload)
	if err != nil {
		logger.Get().Error("Failed to encode response payload", zap.Error(err))
		return dto.NewFailResponse("Internal server error")
	}
	return dto.NewSuccessResponse(string(encoded), message)
}

// failFromError converts service errors into the FAIL envelope. Internal
// causes stay in the logs; the client sees the domain message only.
func failFromError(err error) dto.Response {
	var validationErrs domain.ValidationErrors
	if errors.As(err, &validationErrs) {
		return dto.NewFailResponse(validationErrs.Error())
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return dto.NewFailResponse(domainErr.Message)
	}

	return dto.NewFailResponse("Internal server error")
}
