package dto

// Response is the uniform envelope wrapping every data-returning operation.
// The transport-level code is always 200; logical failure is signaled only
// through Status. Data carries a JSON-encoded payload string, empty on failure.
type Response struct {
	Status     string `json:"status"` // SUCCESS | FAIL
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       string `json:"data"`
}

const (
	StatusSuccess = "SUCCESS"
	StatusFail    = "FAIL"
)

// NewSuccessResponse wraps a JSON-encoded payload string in a SUCCESS envelope
func NewSuccessResponse(data, message string) Response {
	return Response{
		Status:     StatusSuccess,
		StatusCode: 200,
		Message:    message,
		Data:       data,
	}
}

// NewFailResponse builds a FAIL envelope with an empty data field
func NewFailResponse(message string) Response {
	return Response{
		Status:     StatusFail,
		StatusCode: 200,
		Message:    message,
		Data:       "",
	}
}

// GenerateQuizRequest is the optional body of a generation request
// @Description Request body for quiz generation
type GenerateQuizRequest struct {
	QuizTitle string `json:"quiz_title"`
}

// GenerateQuizPayload is the data payload of a successful generation
type GenerateQuizPayload struct {
	QuizID         string `json:"quiz_id"`
	CourseID       string `json:"course_id"`
	QuizTitle      string `json:"quiz_title"`
	CreatedAt      string `json:"created_at"` // ISO-8601
	QuestionsSaved int    `json:"questions_saved"`
}

// QuizSummary is one entry of a course's quiz listing
type QuizSummary struct {
	QuizID       string `json:"quiz_id"`
	QuizTitle    string `json:"quiz_title"`
	CreatedAt    string `json:"created_at"`
	CorrectCount *int   `json:"correct_count"`
}

// QuizListPayload is the data payload of a listing request
type QuizListPayload struct {
	CourseID string        `json:"course_id"`
	Quizzes  []QuizSummary `json:"quizzes"`
}

// QuestionDetail is one question of a quiz detail payload. The correct
// index is always exposed; the detail view is not blind-graded.
type QuestionDetail struct {
	QuestionIndex        int      `json:"question_index"`
	Type                 string   `json:"type"`
	Question             string   `json:"question"`
	Options              []string `json:"options"`
	CorrectIndex         int      `json:"correct_index"`
	StudentSelectedIndex *int     `json:"student_selected_index"`
}

// QuizDetailPayload is the data payload of a detail request
type QuizDetailPayload struct {
	QuizID       string           `json:"quiz_id"`
	QuizTitle    string           `json:"quiz_title"`
	CreatedAt    string           `json:"created_at"`
	IsSubmitted  bool             `json:"is_submitted"`
	CorrectCount *int             `json:"correct_count"`
	Questions    []QuestionDetail `json:"questions"`
}

// SubmitAnswerItem is one element of a submission request body. Fields are
// pointers so shape validation can tell a missing field from a zero value.
type SubmitAnswerItem struct {
	QuizID               *string `json:"quiz_id"`
	QuestionIndex        *int    `json:"question_index"`
	StudentSelectedIndex *int    `json:"student_selected_index"`
}

// SubmitQuizPayload is the data payload of a successful submission
type SubmitQuizPayload struct {
	QuizID           string `json:"quiz_id"`
	Updated          int    `json:"updated"`
	MissingQuestions []int  `json:"missing_questions"`
	CorrectCount     int    `json:"correct_count"`
	IsSubmitted      bool   `json:"is_submitted"`
}
