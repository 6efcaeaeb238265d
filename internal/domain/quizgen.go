package domain

import (
	"context"
)

// Allowed generation options.
var (
	Difficulties   = []string{"easy", "medium", "hard"}
	Languages      = []string{"EN", "ES"}
	QuestionCounts = []int{5, 10, 15}
)

const (
	DefaultDifficulty    = "medium"
	DefaultLanguage      = "EN"
	DefaultQuestionCount = 10
)

// GenerationRequest holds the validated inputs of a quiz generation.
type GenerationRequest struct {
	Text         string
	NumQuestions int
	Difficulty   string
	Language     string
	Title        string
}

// GenerationResult is the outcome of a single model call.
type GenerationResult struct {
	RawOutput     string
	Data          *QuizData // nil when the output could not be parsed
	QuestionCount int
}

// QuizGenerator turns source text into a multiple-choice quiz using a remote model.
type QuizGenerator interface {
	// Generate calls the model once. Remote failures are reported as
	// CodeGeneration errors and a missing credential as CodeConfiguration.
	// Unparseable output is not an error: Data is nil and RawOutput is kept.
	Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error)
}

// QuizRepository persists quiz records.
type QuizRepository interface {
	// Create assigns the ID and creation time and stores the record.
	Create(ctx context.Context, quiz *Quiz) error
	// List returns every record, newest first.
	List(ctx context.Context) ([]*Quiz, error)
	// GetByID returns a CodeNotFound error for unknown IDs.
	GetByID(ctx context.Context, id string) (*Quiz, error)
	// Delete returns a CodeNotFound error for unknown IDs.
	Delete(ctx context.Context, id string) error
}
