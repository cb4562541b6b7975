package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"studyaid/internal/domain"
)

// maxOptionLength caps each answer choice, counted in characters; longer
// ones read like sentences, not options.
const maxOptionLength = 120

// forbiddenOptionPhrases rejects low-quality meta distractors.
var forbiddenOptionPhrases = []string{
	"correct",
	"none of these",
	"not applicable",
	"i'm not sure",
	"all of the above",
	"none of the above",
	"both a and b",
}

// badOptions reports whether a candidate option list is unusable: wrong
// count, blank entries, forbidden meta phrases (case-insensitive substring
// match), or over-long entries. Pure guard, used only by normalization.
func badOptions(options []string) bool {
	if len(options) != domain.OptionCount {
		return true
	}
	for _, option := range options {
		s := strings.ToLower(strings.TrimSpace(option))
		if s == "" {
			return true
		}
		for _, bad := range forbiddenOptionPhrases {
			if strings.Contains(s, bad) {
				return true
			}
		}
		if utf8.RuneCountInString(s) > maxOptionLength {
			return true
		}
	}
	return false
}

// normalizeQuizPayload validates and reshapes a parsed model payload into
// exactly ten persistable question records, all-or-nothing. Errors name the
// offending question (1-indexed) and the rule broken.
func normalizeQuizPayload(payload map[string]interface{}) ([]*domain.QuizQuestion, error) {
	rawQuestions, ok := payload["questions"].([]interface{})
	if !ok || len(rawQuestions) != domain.QuestionsPerQuiz {
		return nil, domain.NewMalformedPayloadError(
			fmt.Sprintf("Expected exactly %d questions", domain.QuestionsPerQuiz), nil)
	}

	out := make([]*domain.QuizQuestion, 0, domain.QuestionsPerQuiz)
	for i, raw := range rawQuestions {
		n := i + 1

		item, ok := raw.(map[string]interface{})
		if !ok {
			return nil, normalizationError(n, "not an object")
		}

		questionType := strings.ToLower(strings.TrimSpace(stringField(item, "type")))
		if questionType != domain.QuestionTypeMCQ && questionType != domain.QuestionTypeFITB {
			return nil, normalizationError(n, "invalid type")
		}

		questionText := strings.TrimSpace(stringField(item, "question"))
		if questionText == "" {
			return nil, normalizationError(n, "empty question")
		}

		options, ok := stringListField(item, "options")
		if !ok || badOptions(options) {
			return nil, normalizationError(n, "options invalid")
		}

		correctIndex, ok := intField(item, "correct_index")
		if !ok {
			return nil, normalizationError(n, "correct_index invalid")
		}
		if correctIndex < 0 || correctIndex >= domain.OptionCount {
			return nil, normalizationError(n, "correct_index out of range")
		}

		trimmed := make([]string, len(options))
		for j, option := range options {
			trimmed[j] = strings.TrimSpace(option)
		}

		out = append(out, &domain.QuizQuestion{
			QuestionIndex: n,
			QuestionType:  questionType,
			QuestionText:  questionText,
			Options:       trimmed,
			CorrectIndex:  correctIndex,
		})
	}
	return out, nil
}

func normalizationError(questionNumber int, rule string) error {
	return domain.NewMalformedPayloadError(fmt.Sprintf("Q%d %s", questionNumber, rule), nil)
}

func stringField(item map[string]interface{}, key string) string {
	v, ok := item[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// stringListField reads a list of options. Models occasionally emit bare
// numbers (years, counts) as options; those coerce to their decimal text
// before validation. Anything else non-string fails the list.
func stringListField(item map[string]interface{}, key string) ([]string, bool) {
	raw, ok := item[key].([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		switch s := v.(type) {
		case string:
			out = append(out, s)
		case float64:
			if s == math.Trunc(s) {
				out = append(out, strconv.FormatInt(int64(s), 10))
			} else {
				out = append(out, strconv.FormatFloat(s, 'f', -1, 64))
			}
		default:
			return nil, false
		}
	}
	return out, true
}

// intField coerces a JSON value to an integer: whole floats (the default
// decoding of JSON numbers) and numeric strings are accepted.
func intField(item map[string]interface{}, key string) (int, bool) {
	switch v := item[key].(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
