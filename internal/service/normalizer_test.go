package service

import (
	"fmt"
	"strings"
	"testing"

	"studyaid/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuestionItem(n int) map[string]interface{} {
	return map[string]interface{}{
		"type":     "mcq",
		"question": fmt.Sprintf("What does concept %d describe?", n),
		"options": []interface{}{
			fmt.Sprintf("Scheduling policy %d", n),
			fmt.Sprintf("Page replacement %d", n),
			fmt.Sprintf("File system %d", n),
			fmt.Sprintf("Synchronization %d", n),
		},
		"correct_index": float64(n % 4),
	}
}

func validPayload() map[string]interface{} {
	questions := make([]interface{}, 0, domain.QuestionsPerQuiz)
	for i := 0; i < domain.QuestionsPerQuiz; i++ {
		questions = append(questions, validQuestionItem(i))
	}
	return map[string]interface{}{"questions": questions}
}

func TestNormalizeQuizPayload_Valid(t *testing.T) {
	questions, err := normalizeQuizPayload(validPayload())

	require.NoError(t, err)
	require.Len(t, questions, domain.QuestionsPerQuiz)
	for i, q := range questions {
		assert.Equal(t, i+1, q.QuestionIndex)
		assert.Equal(t, domain.QuestionTypeMCQ, q.QuestionType)
		assert.Len(t, q.Options, domain.OptionCount)
	}
}

func TestNormalizeQuizPayload_WrongCount(t *testing.T) {
	payload := validPayload()
	payload["questions"] = payload["questions"].([]interface{})[:9]

	_, err := normalizeQuizPayload(payload)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected exactly 10 questions")
}

func TestNormalizeQuizPayload_MissingQuestionsKey(t *testing.T) {
	_, err := normalizeQuizPayload(map[string]interface{}{"items": []interface{}{}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected exactly 10 questions")
}

func TestNormalizeQuizPayload_InvalidType(t *testing.T) {
	payload := validPayload()
	payload["questions"].([]interface{})[2].(map[string]interface{})["type"] = "essay"

	_, err := normalizeQuizPayload(payload)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Q3 invalid type")
}

func TestNormalizeQuizPayload_TypeCaseInsensitive(t *testing.T) {
	payload := validPayload()
	payload["questions"].([]interface{})[0].(map[string]interface{})["type"] = " MCQ "

	questions, err := normalizeQuizPayload(payload)

	require.NoError(t, err)
	assert.Equal(t, domain.QuestionTypeMCQ, questions[0].QuestionType)
}

func TestNormalizeQuizPayload_EmptyQuestionText(t *testing.T) {
	payload := validPayload()
	payload["questions"].([]interface{})[5].(map[string]interface{})["question"] = "   "

	_, err := normalizeQuizPayload(payload)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Q6 empty question")
}

func TestNormalizeQuizPayload_CorrectIndexOutOfRange(t *testing.T) {
	payload := validPayload()
	payload["questions"].([]interface{})[0].(map[string]interface{})["correct_index"] = float64(4)

	_, err := normalizeQuizPayload(payload)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Q1 correct_index out of range")
}

func TestNormalizeQuizPayload_CorrectIndexAsNumericString(t *testing.T) {
	payload := validPayload()
	payload["questions"].([]interface{})[0].(map[string]interface{})["correct_index"] = "2"

	questions, err := normalizeQuizPayload(payload)

	require.NoError(t, err)
	assert.Equal(t, 2, questions[0].CorrectIndex)
}

func TestNormalizeQuizPayload_CorrectIndexFractional(t *testing.T) {
	payload := validPayload()
	payload["questions"].([]interface{})[0].(map[string]interface{})["correct_index"] = 1.5

	_, err := normalizeQuizPayload(payload)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Q1 correct_index invalid")
}

func TestNormalizeQuizPayload_ForbiddenOption(t *testing.T) {
	payload := validPayload()
	item := payload["questions"].([]interface{})[0].(map[string]interface{})
	item["options"] = []interface{}{"TLB", "Page table", "None of these", "Inode"}

	_, err := normalizeQuizPayload(payload)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Q1 options invalid")
}

func TestNormalizeQuizPayload_NumericOptionsCoerced(t *testing.T) {
	payload := validPayload()
	item := payload["questions"].([]interface{})[0].(map[string]interface{})
	item["options"] = []interface{}{float64(1969), "1970", float64(1971), float64(1972)}

	questions, err := normalizeQuizPayload(payload)

	require.NoError(t, err)
	assert.Equal(t, []string{"1969", "1970", "1971", "1972"}, questions[0].Options)
}

func TestNormalizeQuizPayload_NonScalarOptionFails(t *testing.T) {
	payload := validPayload()
	item := payload["questions"].([]interface{})[0].(map[string]interface{})
	item["options"] = []interface{}{"TLB", map[string]interface{}{"text": "Inode"}, "Clock", "FIFO"}

	_, err := normalizeQuizPayload(payload)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Q1 options invalid")
}

func TestBadOptions(t *testing.T) {
	tests := []struct {
		name    string
		options []string
		want    bool
	}{
		{"valid", []string{"Mutex", "Semaphore", "Monitor", "Spinlock"}, false},
		{"three options", []string{"A1", "B1", "C1"}, true},
		{"five options", []string{"A1", "B1", "C1", "D1", "E1"}, true},
		{"blank entry", []string{"Mutex", "  ", "Monitor", "Spinlock"}, true},
		{"meta phrase", []string{"Mutex", "All of the above", "Monitor", "Spinlock"}, true},
		{"meta phrase case", []string{"Mutex", "NONE OF THE ABOVE", "Monitor", "Spinlock"}, true},
		{"embedded correct", []string{"Mutex", "the correct answer", "Monitor", "Spinlock"}, true},
		{"overlong", []string{"Mutex", strings.Repeat("x", 121), "Monitor", "Spinlock"}, true},
		{"exactly max length", []string{"Mutex", strings.Repeat("x", 120), "Monitor", "Spinlock"}, false},
		{"multibyte under limit", []string{"Mutex", strings.Repeat("한", 60), "Monitor", "Spinlock"}, false},
		{"multibyte over limit", []string{"Mutex", strings.Repeat("한", 121), "Monitor", "Spinlock"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, badOptions(tt.options))
		})
	}
}
