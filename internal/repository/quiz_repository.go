package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"studyaid/internal/domain"
	"studyaid/internal/repository/models"
	"studyaid/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

// SaveQuiz implements domain.QuizRepository
func (a *QuizDatabaseAdapter) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	modelQuiz := toModelQuiz(quiz)
	if modelQuiz == nil {
		return fmt.Errorf("cannot save nil quiz")
	}
	modelQuiz.ID = util.NewULID()
	modelQuiz.CreatedAt = time.Now()

	executor := GetExecutor(ctx, a.db)
	query := `INSERT INTO quizzes (
		id, course_id, quiz_title, created_at, is_submitted, correct_count
	) VALUES (
		:1, :2, :3, :4, :5, :6
	)`

	_, err := executor.ExecContext(ctx, query,
		modelQuiz.ID,
		modelQuiz.CourseID,
		modelQuiz.Title,
		modelQuiz.CreatedAt,
		modelQuiz.IsSubmitted,
		modelQuiz.CorrectCount,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}

	quiz.ID = modelQuiz.ID
	quiz.CreatedAt = modelQuiz.CreatedAt
	return nil
}

// SaveQuestions implements domain.QuizRepository
func (a *QuizDatabaseAdapter) SaveQuestions(ctx context.Context, questions []*domain.QuizQuestion) error {
	executor := GetExecutor(ctx, a.db)
	query := `INSERT INTO quiz_questions (
		id, quiz_id, question_index, question_type, question_text,
		options_json, correct_index, student_selected_index
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8
	)`

	for _, question := range questions {
		modelQuestion := toModelQuestion(question)
		if modelQuestion == nil {
			return fmt.Errorf("cannot save nil question")
		}
		modelQuestion.ID = util.NewULID()

		optionsValue, err := modelQuestion.OptionsJSON.Value()
		if err != nil {
			return fmt.Errorf("failed to serialize options for question %d: %w", question.QuestionIndex, err)
		}

		_, err = executor.ExecContext(ctx, query,
			modelQuestion.ID,
			modelQuestion.QuizID,
			modelQuestion.QuestionIndex,
			modelQuestion.QuestionType,
			modelQuestion.QuestionText,
			optionsValue,
			modelQuestion.CorrectIndex,
			modelQuestion.SelectedIndex,
		)
		if err != nil {
			return fmt.Errorf("failed to save question %d: %w", question.QuestionIndex, err)
		}
		question.ID = modelQuestion.ID
	}
	return nil
}

// GetQuizByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	executor := GetExecutor(ctx, a.db)

	var modelQuiz models.Quiz
	query := `SELECT
		id "id",
		course_id "course_id",
		quiz_title "quiz_title",
		created_at "created_at",
		is_submitted "is_submitted",
		correct_count "correct_count"
	FROM quizzes
	WHERE id = :1`

	err := executor.GetContext(ctx, &modelQuiz, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}
	return toDomainQuiz(&modelQuiz), nil
}

// GetQuestionsByQuizID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuestionsByQuizID(ctx context.Context, quizID string) ([]*domain.QuizQuestion, error) {
	executor := GetExecutor(ctx, a.db)

	var modelQuestions []*models.QuizQuestion
	query := `SELECT
		id "id",
		quiz_id "quiz_id",
		question_index "question_index",
		question_type "question_type",
		question_text "question_text",
		options_json "options_json",
		correct_index "correct_index",
		student_selected_index "student_selected_index"
	FROM quiz_questions
	WHERE quiz_id = :1
	ORDER BY question_index ASC`

	err := executor.SelectContext(ctx, &modelQuestions, query, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %s: %w", quizID, err)
	}

	domainQuestions := make([]*domain.QuizQuestion, 0, len(modelQuestions))
	for _, mq := range modelQuestions {
		domainQuestions = append(domainQuestions, toDomainQuestion(mq))
	}
	return domainQuestions, nil
}

// GetQuestionByIndex implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuestionByIndex(ctx context.Context, quizID string, questionIndex int) (*domain.QuizQuestion, error) {
	executor := GetExecutor(ctx, a.db)

	var modelQuestion models.QuizQuestion
	query := `SELECT
		id "id",
		quiz_id "quiz_id",
		question_index "question_index",
		question_type "question_type",
		question_text "question_text",
		options_json "options_json",
		correct_index "correct_index",
		student_selected_index "student_selected_index"
	FROM quiz_questions
	WHERE quiz_id = :1
	AND question_index = :2`

	err := executor.GetContext(ctx, &modelQuestion, query, quizID, questionIndex)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question (%s, %d): %w", quizID, questionIndex, err)
	}
	return toDomainQuestion(&modelQuestion), nil
}

// UpdateQuestionSelection implements domain.QuizRepository
func (a *QuizDatabaseAdapter) UpdateQuestionSelection(ctx context.Context, questionID string, selectedIndex int) error {
	executor := GetExecutor(ctx, a.db)

	query := `UPDATE quiz_questions SET
		student_selected_index = :1
	WHERE id = :2`

	result, err := executor.ExecContext(ctx, query, selectedIndex, questionID)
	if err != nil {
		return fmt.Errorf("failed to update question selection: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("question with ID %s not found or not updated", questionID)
	}
	return nil
}

// UpdateQuizSubmission implements domain.QuizRepository
func (a *QuizDatabaseAdapter) UpdateQuizSubmission(ctx context.Context, quizID string, correctCount int) error {
	executor := GetExecutor(ctx, a.db)

	query := `UPDATE quizzes SET
		is_submitted = 1,
		correct_count = :1
	WHERE id = :2`

	result, err := executor.ExecContext(ctx, query, correctCount, quizID)
	if err != nil {
		return fmt.Errorf("failed to update quiz submission: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("quiz with ID %s not found or not updated", quizID)
	}
	return nil
}

// ListSubmittedByCourse implements domain.QuizRepository
func (a *QuizDatabaseAdapter) ListSubmittedByCourse(ctx context.Context, courseID string) ([]*domain.Quiz, error) {
	executor := GetExecutor(ctx, a.db)

	var modelQuizzes []*models.Quiz
	query := `SELECT
		id "id",
		course_id "course_id",
		quiz_title "quiz_title",
		created_at "created_at",
		is_submitted "is_submitted",
		correct_count "correct_count"
	FROM quizzes
	WHERE course_id = :1
	AND is_submitted = 1
	ORDER BY created_at DESC`

	err := executor.SelectContext(ctx, &modelQuizzes, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submitted quizzes for course %s: %w", courseID, err)
	}

	domainQuizzes := make([]*domain.Quiz, 0, len(modelQuizzes))
	for _, mq := range modelQuizzes {
		domainQuizzes = append(domainQuizzes, toDomainQuiz(mq))
	}
	return domainQuizzes, nil
}

// Helper functions for model conversion

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	if m == nil {
		return nil
	}
	quiz := &domain.Quiz{
		ID:          m.ID,
		CourseID:    m.CourseID,
		Title:       m.Title,
		CreatedAt:   m.CreatedAt,
		IsSubmitted: m.IsSubmitted != 0,
	}
	if m.CorrectCount.Valid {
		count := int(m.CorrectCount.Int64)
		quiz.CorrectCount = &count
	}
	return quiz
}

func toModelQuiz(d *domain.Quiz) *models.Quiz {
	if d == nil {
		return nil
	}
	m := &models.Quiz{
		ID:       d.ID,
		CourseID: d.CourseID,
		Title:    d.Title,
	}
	if d.IsSubmitted {
		m.IsSubmitted = 1
	}
	if d.CorrectCount != nil {
		m.CorrectCount = sql.NullInt64{Int64: int64(*d.CorrectCount), Valid: true}
	}
	return m
}

func toDomainQuestion(m *models.QuizQuestion) *domain.QuizQuestion {
	if m == nil {
		return nil
	}
	question := &domain.QuizQuestion{
		ID:            m.ID,
		QuizID:        m.QuizID,
		QuestionIndex: m.QuestionIndex,
		QuestionType:  m.QuestionType,
		QuestionText:  m.QuestionText,
		Options:       []string(m.OptionsJSON),
		CorrectIndex:  m.CorrectIndex,
	}
	if m.SelectedIndex.Valid {
		selected := int(m.SelectedIndex.Int64)
		question.SelectedIndex = &selected
	}
	return question
}

func toModelQuestion(d *domain.QuizQuestion) *models.QuizQuestion {
	if d == nil {
		return nil
	}
	m := &models.QuizQuestion{
		ID:            d.ID,
		QuizID:        d.QuizID,
		QuestionIndex: d.QuestionIndex,
		QuestionType:  d.QuestionType,
		QuestionText:  d.QuestionText,
		OptionsJSON:   models.StringSlice(d.Options),
		CorrectIndex:  d.CorrectIndex,
	}
	if d.SelectedIndex != nil {
		m.SelectedIndex = sql.NullInt64{Int64: int64(*d.SelectedIndex), Valid: true}
	}
	return m
}
