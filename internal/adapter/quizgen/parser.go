package quizgen

import (
	"encoding/json"
	"strings"

	"quizcraft/internal/domain"
)

// ParseResponse extracts structured quiz data from a model response.
//
// The whole text is decoded first. When it is not valid JSON, the substring
// between the first '{' and the last '}' is tried, since models often wrap the
// payload in prose or code fences. It returns nil when nothing usable is found.
func ParseResponse(raw string) *domain.QuizData {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	if json.Valid([]byte(raw)) {
		// Valid JSON that is not an object (a list, a string) is not salvaged.
		return decode(raw)
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return nil
	}
	return decode(raw[start : end+1])
}

func decode(s string) *domain.QuizData {
	var data domain.QuizData
	if err := json.Unmarshal([]byte(s), &data); err != nil {
		return nil
	}
	return &data
}
