package export

import (
	"encoding/json"
	"strings"
	"testing"

	"quizcraft/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestRenderMarkdown_Nil(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(nil, "Anything"))
}

func TestRenderMarkdown_Document(t *testing.T) {
	data := &domain.QuizData{
		Title: "Cells",
		Questions: []domain.Question{
			{
				Question:    "What is the powerhouse of the cell?",
				Choices:     []string{"Nucleus", "Mitochondria", "Ribosome", "Golgi"},
				AnswerIndex: intPtr(1),
				Explanation: "It produces ATP.",
			},
			{
				Question: "Unanswered?",
				Choices:  []string{"Yes", "No"},
			},
		},
	}

	expected := "# Cells\n\n" +
		"## 1. What is the powerhouse of the cell?\n" +
		"- A. Nucleus\n- B. Mitochondria\n- C. Ribosome\n- D. Golgi\n" +
		"**Answer:** B\n" +
		"**Explanation:** It produces ATP.\n\n" +
		"## 2. Unanswered?\n" +
		"- A. Yes\n- B. No"

	out := RenderMarkdown(data, "Fallback")
	assert.Equal(t, expected, out)
	assert.Equal(t, out, RenderMarkdown(data, "Fallback"))
}

func TestRenderMarkdown_FallbackTitle(t *testing.T) {
	out := RenderMarkdown(&domain.QuizData{}, "Quiz 42")
	assert.Equal(t, "# Quiz 42", out)
}

func TestRenderMarkdown_OneBasedAnswer(t *testing.T) {
	data := &domain.QuizData{Questions: []domain.Question{
		{Question: "Q", Choices: []string{"a", "b", "c", "d"}, AnswerIndex: intPtr(4)},
	}}
	assert.Contains(t, RenderMarkdown(data, "T"), "**Answer:** D")
}

func TestRenderMarkdown_HeadingCountMatchesQuestions(t *testing.T) {
	raw := `{"title":"T","questions":[{"question":"a"},{"question":"b"},7,{"question":"d"}]}`
	var data domain.QuizData
	require.NoError(t, json.Unmarshal([]byte(raw), &data))

	out := RenderMarkdown(&data, "T")
	headings := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "## ") {
			headings++
		}
	}
	assert.Equal(t, len(data.Questions), headings)
}
