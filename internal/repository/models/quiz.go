package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a string array as a JSON text column. Corrupted or
// empty column values scan to an empty slice rather than a read failure;
// readers treat missing options as a degraded row, not an error.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}

	if err := json.Unmarshal(bytesToParse, s); err != nil {
		// Corrupted stored options degrade to an empty list.
		*s = StringSlice{}
		return nil
	}
	return nil
}

// Course is the read-only source table for quiz generation.
type Course struct {
	ID      string `db:"id"`
	Name    string `db:"course_name"`
	Content string `db:"course_content"`
}

func (Course) TableName() string {
	return "courses"
}

// Quiz model. is_submitted is NUMBER(1); correct_count stays NULL until the
// first submission.
type Quiz struct {
	ID           string        `db:"id"`
	CourseID     string        `db:"course_id"`
	Title        string        `db:"quiz_title"`
	CreatedAt    time.Time     `db:"created_at"`
	IsSubmitted  int           `db:"is_submitted"`
	CorrectCount sql.NullInt64 `db:"correct_count"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion model. (quiz_id, question_index) is unique; options_json
// holds a JSON array of exactly 4 strings.
type QuizQuestion struct {
	ID            string        `db:"id"`
	QuizID        string        `db:"quiz_id"`
	QuestionIndex int           `db:"question_index"`
	QuestionType  string        `db:"question_type"`
	QuestionText  string        `db:"question_text"`
	OptionsJSON   StringSlice   `db:"options_json"`
	CorrectIndex  int           `db:"correct_index"`
	SelectedIndex sql.NullInt64 `db:"student_selected_index"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
