package service

import (
	"context"

	"quizcraft/internal/domain"
	"quizcraft/internal/export"
	"quizcraft/internal/logger"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (*domain.Quiz, error)
	List(ctx context.Context) ([]*domain.Quiz, error)
	Get(ctx context.Context, id string) (*domain.Quiz, error)
	Detail(ctx context.Context, id string) (*QuizView, error)
	ExportJSON(ctx context.Context, id string) (*Download, error)
	ExportMarkdown(ctx context.Context, id string) (*Download, error)
	Delete(ctx context.Context, id string) error
}

// QuizView is a stored quiz prepared for display.
type QuizView struct {
	Quiz      *domain.Quiz
	Data      *domain.QuizData // nil when the record has no structured data
	Questions []QuestionView
	Markdown  string
}

type QuestionView struct {
	Number       int
	Question     string
	Choices      []ChoiceView
	AnswerLetter string
	Explanation  string
}

type ChoiceView struct {
	Letter string
	Text   string
}

// Download is an export ready to be sent as an attachment.
type Download struct {
	Filename    string
	ContentType string
	Content     string
}

// quizService implements QuizService
type quizService struct {
	repo      domain.QuizRepository
	generator domain.QuizGenerator
}

// NewQuizService creates a new instance of quizService
func NewQuizService(repo domain.QuizRepository, generator domain.QuizGenerator) QuizService {
	return &quizService{
		repo:      repo,
		generator: generator,
	}
}

// Generate calls the model once and stores the result. Nothing is stored when
// generation fails.
func (s *quizService) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.Quiz, error) {
	l := logger.Get()

	result, err := s.generator.Generate(ctx, req)
	if err != nil {
		l.Warn("Quiz generation failed", zap.Error(err), zap.String("code", string(domain.CodeOf(err))))
		return nil, err
	}

	quiz := &domain.Quiz{
		InputText:     req.Text,
		OutputText:    result.RawOutput,
		QuestionCount: result.QuestionCount,
	}

	title := req.Title
	if result.Data != nil {
		out, err := result.Data.IndentedJSON()
		if err != nil {
			l.Warn("Failed to serialize quiz data, keeping raw output only", zap.Error(err))
		} else {
			quiz.OutputJSON = out
		}
		if title == "" {
			title = result.Data.Title
		}
	}
	if title == "" {
		title = domain.DefaultQuizTitle
	}
	quiz.Title = domain.TruncateTitle(title)

	if err := s.repo.Create(ctx, quiz); err != nil {
		l.Error("Failed to save quiz", zap.Error(err))
		return nil, domain.NewInternalError("Failed to save quiz", err)
	}

	l.Info("Quiz generated",
		zap.String("quiz_id", quiz.ID),
		zap.Int("question_count", quiz.QuestionCount),
		zap.Bool("structured", quiz.OutputJSON != ""))
	return quiz, nil
}

func (s *quizService) List(ctx context.Context) ([]*domain.Quiz, error) {
	quizzes, err := s.repo.List(ctx)
	if err != nil {
		logger.Get().Error("Failed to list quizzes", zap.Error(err))
		return nil, domain.NewInternalError("Failed to list quizzes", err)
	}
	return quizzes, nil
}

func (s *quizService) Get(ctx context.Context, id string) (*domain.Quiz, error) {
	quiz, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		logger.Get().Error("Failed to get quiz", zap.Error(err), zap.String("quiz_id", id))
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	return quiz, nil
}

// Detail decodes the stored quiz data and renders its Markdown.
func (s *quizService) Detail(ctx context.Context, id string) (*QuizView, error) {
	quiz, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &QuizView{Quiz: quiz, Data: quiz.Data()}
	if view.Data == nil {
		return view, nil
	}

	view.Markdown = export.RenderMarkdown(view.Data, quiz.Title)
	view.Questions = make([]QuestionView, 0, len(view.Data.Questions))
	for i, q := range view.Data.Questions {
		qv := QuestionView{
			Number:       i + 1,
			Question:     q.Question,
			AnswerLetter: q.AnswerLetter(),
			Explanation:  q.Explanation,
		}
		for pos, choice := range q.Choices {
			qv.Choices = append(qv.Choices, ChoiceView{Letter: domain.ChoiceLetter(pos), Text: choice})
		}
		view.Questions = append(view.Questions, qv)
	}
	return view, nil
}

// ExportJSON returns the structured data, or the raw model output when there is none.
func (s *quizService) ExportJSON(ctx context.Context, id string) (*Download, error) {
	quiz, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	content := quiz.OutputJSON
	if content == "" {
		content = quiz.OutputText
	}
	return &Download{
		Filename:    export.Filename(quiz.Title, quiz.ID, "json"),
		ContentType: "application/json",
		Content:     content,
	}, nil
}

// ExportMarkdown returns the rendered quiz, or the raw model output when there is none.
func (s *quizService) ExportMarkdown(ctx context.Context, id string) (*Download, error) {
	quiz, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	content := export.RenderMarkdown(quiz.Data(), quiz.Title)
	if content == "" {
		content = quiz.OutputText
	}
	return &Download{
		Filename:    export.Filename(quiz.Title, quiz.ID, "md"),
		ContentType: "text/markdown",
		Content:     content,
	}, nil
}

func (s *quizService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		logger.Get().Error("Failed to delete quiz", zap.Error(err), zap.String("quiz_id", id))
		return domain.NewInternalError("Failed to delete quiz", err)
	}
	logger.Get().Info("Quiz deleted", zap.String("quiz_id", id))
	return nil
}
