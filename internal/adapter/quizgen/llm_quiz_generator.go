package quizgen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"
	"quizcraft/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

const systemPrompt = `You are a quiz generator. Return valid JSON only with this schema: ` +
	`{"title":"...", "questions":[{"question":"...", "choices":["A","B","C","D"], "answer_index":0, "explanation":"optional short"}]}. ` +
	`Use answer_index as a zero-based integer. Do not include Markdown or code fences.`

const (
	defaultMaxTokens = 1800
	// temperature is fixed for every provider.
	temperature = 0.7
)

// LLMQuizGenerator implements domain.QuizGenerator on top of a langchaingo model.
type LLMQuizGenerator struct {
	llm       llms.Model
	model     string
	maxTokens int
	// configErr is returned from Generate when no model could be built.
	configErr error
}

// NewLLMQuizGenerator wraps an already constructed model.
func NewLLMQuizGenerator(llm llms.Model, model string, maxTokens int) *LLMQuizGenerator {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &LLMQuizGenerator{
		llm:       llm,
		model:     model,
		maxTokens: maxTokens,
	}
}

// NewFromConfig builds the provider client named by cfg.Provider.
//
// A missing credential does not fail construction: the server still starts
// and every Generate call reports a configuration error instead.
func NewFromConfig(cfg config.LLMConfig) (*LLMQuizGenerator, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case "", "openai":
		if cfg.APIKey == "" {
			g := NewLLMQuizGenerator(nil, cfg.Model, cfg.MaxTokens)
			g.configErr = domain.NewConfigurationError("OPENAI_API_KEY is not set.")
			return g, nil
		}
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
			openai.WithHTTPClient(httpClient),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		return NewLLMQuizGenerator(llm, cfg.Model, cfg.MaxTokens), nil

	case "ollama":
		if cfg.ServerURL == "" {
			g := NewLLMQuizGenerator(nil, cfg.Model, cfg.MaxTokens)
			g.configErr = domain.NewConfigurationError("LLM_SERVER_URL is not set.")
			return g, nil
		}
		llm, err := ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return NewLLMQuizGenerator(llm, cfg.Model, cfg.MaxTokens), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

// Generate implements domain.QuizGenerator. The model is called exactly once.
func (g *LLMQuizGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	l := logger.Get()

	if g.llm == nil {
		if g.configErr != nil {
			return nil, g.configErr
		}
		return nil, domain.NewConfigurationError("LLM client is not configured.")
	}

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, buildUserPrompt(req)),
	}

	l.Info("Requesting quiz from LLM",
		zap.String("model", g.model),
		zap.Int("num_questions", req.NumQuestions),
		zap.String("difficulty", req.Difficulty),
		zap.String("language", req.Language),
		zap.Int("text_length", len(req.Text)))

	resp, err := g.llm.GenerateContent(ctx, messages,
		llms.WithMaxTokens(g.maxTokens),
		llms.WithTemperature(temperature))
	if err != nil {
		l.Error("LLM call failed", zap.Error(err), zap.String("model", g.model))
		return nil, domain.NewGenerationError(err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		l.Error("LLM returned no choices", zap.String("model", g.model))
		return nil, domain.NewGenerationError(errors.New("empty response from model"))
	}

	raw := strings.TrimSpace(resp.Choices[0].Content)
	l.Debug("Raw LLM response received", zap.String("raw_response", raw))

	result := &domain.GenerationResult{RawOutput: raw}
	result.Data = ParseResponse(stripThinking(raw))
	if result.Data == nil {
		l.Warn("LLM response could not be parsed, keeping raw output only",
			zap.Int("raw_length", len(raw)))
		return result, nil
	}
	result.QuestionCount = len(result.Data.Questions)
	return result, nil
}

func buildUserPrompt(req domain.GenerationRequest) string {
	title := req.Title
	if title == "" {
		title = "Generate a short title"
	}
	return fmt.Sprintf("Create %d multiple choice questions.\nDifficulty: %s.\nLanguage: %s.\nTitle (if provided): %s.\nSource text:\n%s",
		req.NumQuestions, req.Difficulty, req.Language, title, req.Text)
}

// stripThinking drops a <think>...</think> block some local models emit before the payload.
func stripThinking(s string) string {
	start := strings.Index(s, "<think>")
	if start == -1 {
		return s
	}
	end := strings.Index(s, "</think>")
	if end == -1 || end < start {
		return s
	}
	return strings.TrimSpace(s[:start] + s[end+len("</think>"):])
}
