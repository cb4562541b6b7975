package service

import (
	"encoding/json"
	"regexp"
)

// jsonObjectPattern finds the first {...} span, greedy, dot matching newlines.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// parseModelPayload extracts a single JSON object from raw model output.
// Models sometimes wrap the object in backticks or commentary; the direct
// parse is attempted first, then the first {...} span. When no span exists
// the original parse error propagates.
func parseModelPayload(raw string) (map[string]interface{}, error) {
	var payload map[string]interface{}
	directErr := json.Unmarshal([]byte(raw), &payload)
	if directErr == nil {
		return payload, nil
	}

	span := jsonObjectPattern.FindString(raw)
	if span == "" {
		return nil, directErr
	}

	payload = nil
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
