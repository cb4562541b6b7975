package domain

import (
	"strings"
	"time"
)

// Question types a quiz may contain.
const (
	QuestionTypeMCQ  = "mcq"
	QuestionTypeFITB = "fitb"
)

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// QuestionsPerQuiz is the fixed number of questions a generated quiz holds.
const QuestionsPerQuiz = 10

// Course is the read-only source material a quiz is generated from.
// Courses are owned by the ingestion subsystem; this subsystem only reads them.
type Course struct {
	ID      string
	Name    string
	Content string
}

// HasContent reports whether the course has any usable content text.
func (c *Course) HasContent() bool {
	return strings.TrimSpace(c.Content) != ""
}

// Quiz is one generated quiz for a course. Every successful generation
// creates a new Quiz; generation never replaces an existing one.
type Quiz struct {
	ID           string
	CourseID     string
	Title        string
	CreatedAt    time.Time
	IsSubmitted  bool
	CorrectCount *int // nil until the quiz is submitted
}

// NewQuiz creates a new unsubmitted Quiz instance
func NewQuiz(courseID, title string) *Quiz {
	return &Quiz{
		CourseID:  courseID,
		Title:     title,
		CreatedAt: time.Now(),
	}
}

// Validate validates the quiz
func (q *Quiz) Validate() error {
	if q.CourseID == "" {
		return NewValidationError("course_id", "course ID is required")
	}
	if q.Title == "" {
		return NewValidationError("quiz_title", "title is required")
	}
	return nil
}

// QuizQuestion is one question slot of a quiz. question_index is 1-based
// and contiguous 1..QuestionsPerQuiz within a quiz.
type QuizQuestion struct {
	ID            string
	QuizID        string
	QuestionIndex int
	QuestionType  string
	QuestionText  string
	Options       []string // exactly OptionCount entries
	CorrectIndex  int
	SelectedIndex *int // nil until the student answers
}

// IsCorrect reports whether the student's current selection matches the
// stored correct index.
func (q *QuizQuestion) IsCorrect() bool {
	return q.SelectedIndex != nil && *q.SelectedIndex == q.CorrectIndex
}

// Validate validates the question
func (q *QuizQuestion) Validate() error {
	if q.QuizID == "" {
		return NewValidationError("quiz_id", "quiz ID is required")
	}
	if q.QuestionIndex < 1 || q.QuestionIndex > QuestionsPerQuiz {
		return NewValidationError("question_index", "question index out of range")
	}
	if q.QuestionType != QuestionTypeMCQ && q.QuestionType != QuestionTypeFITB {
		return NewValidationError("question_type", "invalid question type")
	}
	if strings.TrimSpace(q.QuestionText) == "" {
		return NewValidationError("question_text", "question text is required")
	}
	if len(q.Options) != OptionCount {
		return NewValidationError("options", "exactly 4 options are required")
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= OptionCount {
		return NewValidationError("correct_index", "correct index out of range")
	}
	return nil
}
