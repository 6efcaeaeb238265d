package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"
	"unicode/utf8"
)

const (
	// MaxTitleLength is the maximum number of characters kept in a quiz title.
	MaxTitleLength = 200
	// DefaultQuizTitle is used when neither the user nor the model supplied a title.
	DefaultQuizTitle = "Untitled Quiz"
)

// Quiz is a persisted quiz generation record. It is created once and never updated.
type Quiz struct {
	ID            string
	Title         string
	InputText     string
	OutputJSON    string // indented structured quiz data, empty when the model output could not be parsed
	OutputText    string // raw model response, always kept
	QuestionCount int
	CreatedAt     time.Time
}

// DisplayTitle returns the title or a fallback derived from the ID.
func (q *Quiz) DisplayTitle() string {
	if q.Title != "" {
		return q.Title
	}
	return "Quiz " + q.ID
}

// Data decodes OutputJSON. It returns nil when the record has no structured data.
func (q *Quiz) Data() *QuizData {
	if q.OutputJSON == "" {
		return nil
	}
	var data QuizData
	if err := json.Unmarshal([]byte(q.OutputJSON), &data); err != nil {
		return nil
	}
	return &data
}

// TruncateTitle cuts s to MaxTitleLength characters.
func TruncateTitle(s string) string {
	if utf8.RuneCountInString(s) <= MaxTitleLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxTitleLength])
}

// Question is a single multiple-choice question of a generated quiz.
type Question struct {
	Question    string   `json:"question"`
	Choices     []string `json:"choices"`
	AnswerIndex *int     `json:"answer_index,omitempty"` // nil when absent or not an integer
	Explanation string   `json:"explanation,omitempty"`
}

// AnswerLetter returns the display letter of the correct choice, or "" when unknown.
func (q Question) AnswerLetter() string {
	return AnswerLetter(q.AnswerIndex, len(q.Choices))
}

// AnswerLetter maps an answer index to a choice letter. Zero-based indexes are
// preferred; one-based indexes are accepted when the zero-based reading is out of range.
// Anything else yields "".
func AnswerLetter(answerIndex *int, choiceCount int) string {
	if answerIndex == nil {
		return ""
	}
	i := *answerIndex
	switch {
	case i >= 0 && i < choiceCount:
		return ChoiceLetter(i)
	case i >= 1 && i <= choiceCount:
		return ChoiceLetter(i - 1)
	default:
		return ""
	}
}

// ChoiceLetter returns the label of the choice at the given zero-based position.
func ChoiceLetter(position int) string {
	return string(rune('A' + position))
}

var errNotObject = errors.New("quiz data must be a JSON object")

// QuizData is the structured payload produced by the model.
//
// Decoding is lenient: fields of an unexpected JSON type decode to their zero
// value instead of failing. Only a non-object top level is rejected.
type QuizData struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`

	source json.RawMessage
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *QuizData) UnmarshalJSON(b []byte) error {
	fields, ok := decodeObject(b)
	if !ok {
		return errNotObject
	}

	*d = QuizData{Title: decodeString(fields["title"])}

	var items []json.RawMessage
	if raw, found := fields["questions"]; found && json.Unmarshal(raw, &items) == nil {
		d.Questions = make([]Question, 0, len(items))
		for _, item := range items {
			d.Questions = append(d.Questions, decodeQuestion(item))
		}
	}

	d.source = append(json.RawMessage(nil), b...)
	return nil
}

// IndentedJSON serializes the data for storage. The decoded source object is kept so
// that fields the model added beyond the known schema survive.
func (d *QuizData) IndentedJSON() (string, error) {
	if len(d.source) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, d.source, "", "  "); err == nil {
			return buf.String(), nil
		}
	}
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decodeObject(b []byte) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}

func decodeQuestion(b []byte) Question {
	var q Question
	fields, ok := decodeObject(b)
	if !ok {
		return q
	}

	q.Question = decodeString(fields["question"])
	q.Explanation = decodeString(fields["explanation"])
	q.AnswerIndex = decodeInt(fields["answer_index"])

	var choices []json.RawMessage
	if raw, found := fields["choices"]; found && json.Unmarshal(raw, &choices) == nil {
		q.Choices = make([]string, 0, len(choices))
		for _, c := range choices {
			q.Choices = append(q.Choices, choiceText(c))
		}
	}
	return q
}

func decodeString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// decodeInt accepts integer literals only; 1.0, "1" and true are not integers.
func decodeInt(raw json.RawMessage) *int {
	n, err := strconv.Atoi(string(bytes.TrimSpace(raw)))
	if err != nil {
		return nil
	}
	return &n
}

func choiceText(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	return string(trimmed)
}
