package handler_test

import (
	"context"
	"errors"

	"quizcraft/internal/domain"
	"quizcraft/internal/service"
)

// --- Manual Mocks ---

// MockQuizService
type MockQuizService struct {
	GenerateFunc       func(ctx context.Context, req domain.GenerationRequest) (*domain.Quiz, error)
	ListFunc           func(ctx context.Context) ([]*domain.Quiz, error)
	GetFunc            func(ctx context.Context, id string) (*domain.Quiz, error)
	DetailFunc         func(ctx context.Context, id string) (*service.QuizView, error)
	ExportJSONFunc     func(ctx context.Context, id string) (*service.Download, error)
	ExportMarkdownFunc func(ctx context.Context, id string) (*service.Download, error)
	DeleteFunc         func(ctx context.Context, id string) error
}

func (m *MockQuizService) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.Quiz, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	panic("MockQuizService.GenerateFunc not implemented")
}
func (m *MockQuizService) List(ctx context.Context) ([]*domain.Quiz, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	panic("MockQuizService.ListFunc not implemented")
}
func (m *MockQuizService) Get(ctx context.Context, id string) (*domain.Quiz, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	panic("MockQuizService.GetFunc not implemented")
}
func (m *MockQuizService) Detail(ctx context.Context, id string) (*service.QuizView, error) {
	if m.DetailFunc != nil {
		return m.DetailFunc(ctx, id)
	}
	panic("MockQuizService.DetailFunc not implemented")
}
func (m *MockQuizService) ExportJSON(ctx context.Context, id string) (*service.Download, error) {
	if m.ExportJSONFunc != nil {
		return m.ExportJSONFunc(ctx, id)
	}
	panic("MockQuizService.ExportJSONFunc not implemented")
}
func (m *MockQuizService) ExportMarkdown(ctx context.Context, id string) (*service.Download, error) {
	if m.ExportMarkdownFunc != nil {
		return m.ExportMarkdownFunc(ctx, id)
	}
	panic("MockQuizService.ExportMarkdownFunc not implemented")
}
func (m *MockQuizService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	panic("MockQuizService.DeleteFunc not implemented")
}

// MockLimiter
type MockLimiter struct {
	Limited bool
	Clients []string
}

func (m *MockLimiter) IsLimited(_ context.Context, clientID string) bool {
	m.Clients = append(m.Clients, clientID)
	return m.Limited
}

// MockPinger
type MockPinger struct {
	Err error
}

func (m MockPinger) Ping(context.Context) error { return m.Err }

var errBoom = errors.New("boom")
