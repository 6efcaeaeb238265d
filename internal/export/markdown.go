// Package export renders stored quizzes into downloadable documents.
package export

import (
	"fmt"
	"strings"

	"quizcraft/internal/domain"
)

// RenderMarkdown renders quiz data as a Markdown document.
// It returns "" for nil data. The output is deterministic for equal input.
func RenderMarkdown(data *domain.QuizData, fallbackTitle string) string {
	if data == nil {
		return ""
	}

	title := data.Title
	if title == "" {
		title = fallbackTitle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	for i, q := range data.Questions {
		fmt.Fprintf(&b, "## %d. %s\n", i+1, q.Question)
		for pos, choice := range q.Choices {
			fmt.Fprintf(&b, "- %s. %s\n", domain.ChoiceLetter(pos), choice)
		}
		if letter := q.AnswerLetter(); letter != "" {
			fmt.Fprintf(&b, "**Answer:** %s\n", letter)
		}
		if q.Explanation != "" {
			fmt.Fprintf(&b, "**Explanation:** %s\n", q.Explanation)
		}
		b.WriteString("\n")
	}

	return strings.TrimSpace(b.String())
}
