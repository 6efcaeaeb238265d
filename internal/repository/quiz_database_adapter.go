package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizcraft/internal/domain"
	"quizcraft/internal/repository/models"
	"quizcraft/internal/util"
)

// Column aliases are quoted so Oracle reports lowercase names to sqlx.
const quizColumns = `id "id",
		title "title",
		input_text "input_text",
		output_json "output_json",
		output_text "output_text",
		question_count "question_count",
		created_at "created_at"`

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.
type QuizDatabaseAdapter struct {
	db  DBTX
	now func() time.Time
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db DBTX) *QuizDatabaseAdapter {
	return &QuizDatabaseAdapter{db: db, now: time.Now}
}

// Create implements domain.QuizRepository. It sets quiz.ID and quiz.CreatedAt.
func (a *QuizDatabaseAdapter) Create(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot save nil quiz")
	}

	createdAt := a.now().UTC().Truncate(time.Microsecond)
	modelQuiz := toModelQuiz(quiz)
	modelQuiz.ID = util.NewULIDAt(createdAt)
	modelQuiz.CreatedAt = createdAt

	query := `INSERT INTO quizzes (
		id, title, input_text, output_json, output_text, question_count, created_at
	) VALUES (
		:id, :title, :input_text, :output_json, :output_text, :question_count, :created_at
	)`

	if _, err := a.db.NamedExecContext(ctx, query, modelQuiz); err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}

	quiz.ID = modelQuiz.ID
	quiz.CreatedAt = modelQuiz.CreatedAt
	return nil
}

// List implements domain.QuizRepository
func (a *QuizDatabaseAdapter) List(ctx context.Context) ([]*domain.Quiz, error) {
	var rows []models.Quiz
	query := `SELECT ` + quizColumns + `
	FROM quizzes
	ORDER BY created_at DESC, id DESC`

	if err := a.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	quizzes := make([]*domain.Quiz, 0, len(rows))
	for i := range rows {
		quizzes = append(quizzes, toDomainQuiz(&rows[i]))
	}
	return quizzes, nil
}

// GetByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var row models.Quiz
	query := a.db.Rebind(`SELECT ` + quizColumns + `
	FROM quizzes
	WHERE id = ?`)

	err := a.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewQuizNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}
	return toDomainQuiz(&row), nil
}

// Delete implements domain.QuizRepository
func (a *QuizDatabaseAdapter) Delete(ctx context.Context, id string) error {
	result, err := a.db.ExecContext(ctx, a.db.Rebind(`DELETE FROM quizzes WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete quiz %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for quiz %s: %w", id, err)
	}
	if affected == 0 {
		return domain.NewQuizNotFoundError(id)
	}
	return nil
}

func toModelQuiz(q *domain.Quiz) *models.Quiz {
	return &models.Quiz{
		ID:            q.ID,
		Title:         util.StringToNullString(q.Title),
		InputText:     q.InputText,
		OutputJSON:    util.StringToNullString(q.OutputJSON),
		OutputText:    util.StringToNullString(q.OutputText),
		QuestionCount: q.QuestionCount,
		CreatedAt:     q.CreatedAt,
	}
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	if m == nil {
		return nil
	}
	return &domain.Quiz{
		ID:            m.ID,
		Title:         util.NullStringToString(m.Title),
		InputText:     m.InputText,
		OutputJSON:    util.NullStringToString(m.OutputJSON),
		OutputText:    util.NullStringToString(m.OutputText),
		QuestionCount: m.QuestionCount,
		CreatedAt:     m.CreatedAt.UTC(),
	}
}
