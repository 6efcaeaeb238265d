package dto

import (
	"time"

	"quizcraft/internal/domain"
	"quizcraft/internal/service"
)

// GenerateForm holds the submitted generation form values, echoed back when
// the form is re-rendered.
type GenerateForm struct {
	Title        string
	Text         string
	NumQuestions string
	Difficulty   string
	Language     string
}

// DefaultGenerateForm is the blank form.
func DefaultGenerateForm() GenerateForm {
	return GenerateForm{
		NumQuestions: "10",
		Difficulty:   domain.DefaultDifficulty,
		Language:     domain.DefaultLanguage,
	}
}

// GenerateQuizRequest represents the request body for generating a quiz
// @Description Request body for generating a quiz
type GenerateQuizRequest struct {
	Title        string `json:"title" example:"Photosynthesis"`
	Text         string `json:"text" example:"Plants convert light energy into chemical energy..."`
	NumQuestions int    `json:"num_questions" example:"5"`
	Difficulty   string `json:"difficulty" example:"medium"`
	Language     string `json:"language" example:"EN"`
}

// QuizSummaryResponse represents a quiz in a history listing
// @Description Quiz summary
type QuizSummaryResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuizListResponse represents the quiz history
type QuizListResponse struct {
	Quizzes []QuizSummaryResponse `json:"quizzes"`
}

// QuestionResponse represents one generated question
type QuestionResponse struct {
	Question     string   `json:"question"`
	Choices      []string `json:"choices"`
	AnswerIndex  *int     `json:"answer_index"`
	AnswerLetter string   `json:"answer_letter,omitempty"`
	Explanation  string   `json:"explanation,omitempty"`
}

// QuizResponse represents a stored quiz with its parsed questions
// @Description Quiz with parsed questions and Markdown rendering
type QuizResponse struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	InputText     string             `json:"input_text"`
	OutputText    string             `json:"output_text"`
	QuestionCount int                `json:"question_count"`
	CreatedAt     time.Time          `json:"created_at"`
	Structured    bool               `json:"structured"`
	Questions     []QuestionResponse `json:"questions"`
	Markdown      string             `json:"markdown,omitempty"`
}

func ToQuizSummaryResponse(q *domain.Quiz) QuizSummaryResponse {
	return QuizSummaryResponse{
		ID:            q.ID,
		Title:         q.DisplayTitle(),
		QuestionCount: q.QuestionCount,
		CreatedAt:     q.CreatedAt,
	}
}

func ToQuizListResponse(quizzes []*domain.Quiz) QuizListResponse {
	resp := QuizListResponse{Quizzes: make([]QuizSummaryResponse, 0, len(quizzes))}
	for _, q := range quizzes {
		resp.Quizzes = append(resp.Quizzes, ToQuizSummaryResponse(q))
	}
	return resp
}

func ToQuizResponse(view *service.QuizView) QuizResponse {
	q := view.Quiz
	resp := QuizResponse{
		ID:            q.ID,
		Title:         q.DisplayTitle(),
		InputText:     q.InputText,
		OutputText:    q.OutputText,
		QuestionCount: q.QuestionCount,
		CreatedAt:     q.CreatedAt,
		Structured:    view.Data != nil,
		Questions:     []QuestionResponse{},
		Markdown:      view.Markdown,
	}
	if view.Data == nil {
		return resp
	}
	for _, question := range view.Data.Questions {
		choices := question.Choices
		if choices == nil {
			choices = []string{}
		}
		resp.Questions = append(resp.Questions, QuestionResponse{
			Question:     question.Question,
			Choices:      choices,
			AnswerIndex:  question.AnswerIndex,
			AnswerLetter: question.AnswerLetter(),
			Explanation:  question.Explanation,
		})
	}
	return resp
}
