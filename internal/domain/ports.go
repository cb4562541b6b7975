package domain

import "context"

// CourseRepository reads course source material. Courses belong to the
// ingestion subsystem; nothing here writes them.
type CourseRepository interface {
	// GetCourseByID returns the course, or nil when it does not exist.
	GetCourseByID(ctx context.Context, id string) (*Course, error)
}

// QuizRepository defines the interface for quiz persistence
type QuizRepository interface {
	// SaveQuiz persists a new quiz and assigns its ID and creation time.
	SaveQuiz(ctx context.Context, quiz *Quiz) error

	// SaveQuestions persists the question rows of a freshly generated quiz.
	SaveQuestions(ctx context.Context, questions []*QuizQuestion) error

	// GetQuizByID retrieves a quiz by its ID, or nil when absent.
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)

	// GetQuestionsByQuizID returns a quiz's questions ordered by question_index.
	GetQuestionsByQuizID(ctx context.Context, quizID string) ([]*QuizQuestion, error)

	// GetQuestionByIndex returns the question at (quizID, questionIndex), or nil when absent.
	GetQuestionByIndex(ctx context.Context, quizID string, questionIndex int) (*QuizQuestion, error)

	// UpdateQuestionSelection overwrites a question's student_selected_index.
	UpdateQuestionSelection(ctx context.Context, questionID string, selectedIndex int) error

	// UpdateQuizSubmission marks the quiz submitted with the given correct count,
	// overwriting any prior submission.
	UpdateQuizSubmission(ctx context.Context, quizID string, correctCount int) error

	// ListSubmittedByCourse returns submitted quizzes for a course,
	// newest first.
	ListSubmittedByCourse(ctx context.Context, courseID string) ([]*Quiz, error)
}

// TransactionManager runs a function inside a database transaction. The
// transaction is carried through the context to repository calls.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// QuizGenerator is the outbound port to the generative model. It returns
// the raw text of a single model round-trip; parsing and validation of the
// payload belong to the caller.
type QuizGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
