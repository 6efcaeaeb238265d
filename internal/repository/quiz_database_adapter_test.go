package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"quizcraft/internal/database"
	"quizcraft/internal/domain"
	"quizcraft/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupQuizTestDB creates a new sqlx.DB instance and sqlmock for quiz repository testing.
func setupQuizTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

var quizRowColumns = []string{"id", "title", "input_text", "output_json", "output_text", "question_count", "created_at"}

func TestToDomainQuiz(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	model := &models.Quiz{
		ID:            "01HZXQ",
		Title:         sql.NullString{String: "Cells", Valid: true},
		InputText:     "source",
		OutputJSON:    sql.NullString{String: `{"title":"Cells"}`, Valid: true},
		OutputText:    sql.NullString{String: "raw", Valid: true},
		QuestionCount: 3,
		CreatedAt:     now,
	}

	q := toDomainQuiz(model)
	require.NotNil(t, q)
	assert.Equal(t, "Cells", q.Title)
	assert.Equal(t, `{"title":"Cells"}`, q.OutputJSON)
	assert.Equal(t, "raw", q.OutputText)
	assert.Equal(t, 3, q.QuestionCount)
	assert.True(t, now.Equal(q.CreatedAt))

	model.Title.Valid = false
	model.OutputJSON.Valid = false
	q = toDomainQuiz(model)
	assert.Empty(t, q.Title)
	assert.Empty(t, q.OutputJSON)

	assert.Nil(t, toDomainQuiz(nil))
}

func TestToModelQuiz_EmptyOptionalFieldsAreNull(t *testing.T) {
	m := toModelQuiz(&domain.Quiz{InputText: "source", OutputText: "raw"})
	assert.False(t, m.Title.Valid)
	assert.False(t, m.OutputJSON.Valid)
	assert.True(t, m.OutputText.Valid)
}

func TestQuizDatabaseAdapter_Create(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	adapter := NewQuizDatabaseAdapter(db)
	fixed := time.Date(2024, 3, 1, 9, 30, 0, 123456789, time.UTC)
	adapter.now = func() time.Time { return fixed }

	quiz := &domain.Quiz{Title: "Cells", InputText: "source", OutputJSON: "{}", OutputText: "{}", QuestionCount: 0}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO quizzes")).
		WithArgs(sqlmock.AnyArg(), "Cells", "source", "{}", "{}", 0, fixed.Truncate(time.Microsecond)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := adapter.Create(context.Background(), quiz)
	require.NoError(t, err)
	assert.Len(t, quiz.ID, 26)
	assert.Equal(t, fixed.Truncate(time.Microsecond), quiz.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizDatabaseAdapter_Create_Error(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	adapter := NewQuizDatabaseAdapter(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO quizzes")).WillReturnError(errors.New("disk full"))

	quiz := &domain.Quiz{InputText: "source"}
	err := adapter.Create(context.Background(), quiz)
	assert.Error(t, err)
	assert.Empty(t, quiz.ID)
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Error(t, adapter.Create(context.Background(), nil))
}

func TestQuizDatabaseAdapter_List(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	adapter := NewQuizDatabaseAdapter(db)

	newer := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)
	rows := sqlmock.NewRows(quizRowColumns).
		AddRow("B", "Second", "text", nil, "raw", 0, newer).
		AddRow("A", "First", "text", `{"questions":[]}`, "raw", 0, older)

	mock.ExpectQuery(`SELECT .* FROM quizzes\s+ORDER BY created_at DESC`).WillReturnRows(rows)

	quizzes, err := adapter.List(context.Background())
	require.NoError(t, err)
	require.Len(t, quizzes, 2)
	assert.Equal(t, "B", quizzes[0].ID)
	assert.Empty(t, quizzes[0].OutputJSON)
	assert.Equal(t, "A", quizzes[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizDatabaseAdapter_GetByID(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	adapter := NewQuizDatabaseAdapter(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows(quizRowColumns).
			AddRow("A", "First", "text", "{}", "raw", 2, time.Now())
		mock.ExpectQuery(`SELECT .* FROM quizzes\s+WHERE id = \?`).WithArgs("A").WillReturnRows(rows)

		quiz, err := adapter.GetByID(ctx, "A")
		require.NoError(t, err)
		assert.Equal(t, "First", quiz.Title)
		assert.Equal(t, 2, quiz.QuestionCount)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM quizzes\s+WHERE id = \?`).WithArgs("999").WillReturnError(sql.ErrNoRows)

		quiz, err := adapter.GetByID(ctx, "999")
		assert.Nil(t, quiz)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM quizzes\s+WHERE id = \?`).WithArgs("A").WillReturnError(errors.New("boom"))

		_, err := adapter.GetByID(ctx, "A")
		require.Error(t, err)
		assert.False(t, domain.IsNotFound(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizDatabaseAdapter_Delete(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	adapter := NewQuizDatabaseAdapter(db)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM quizzes WHERE id = ?")).WithArgs("A").WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, adapter.Delete(ctx, "A"))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM quizzes WHERE id = ?")).WithArgs("999").WillReturnResult(sqlmock.NewResult(0, 0))
	err := adapter.Delete(ctx, "999")
	assert.True(t, domain.IsNotFound(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizDatabaseAdapter_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, database.DriverSQLite, "file:"+filepath.Join(t.TempDir(), "quiz.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.RunMigrations(ctx, db, database.DriverSQLite))

	adapter := NewQuizDatabaseAdapter(db)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	adapter.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	first := &domain.Quiz{Title: "First", InputText: "one", OutputText: "not json"}
	second := &domain.Quiz{InputText: "two", OutputJSON: "{\n  \"title\": \"T\"\n}", OutputText: `{"title":"T"}`, QuestionCount: 0}
	require.NoError(t, adapter.Create(ctx, first))
	require.NoError(t, adapter.Create(ctx, second))

	list, err := adapter.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	got, err := adapter.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)
	assert.Empty(t, got.OutputJSON)
	assert.Equal(t, "not json", got.OutputText)
	assert.True(t, first.CreatedAt.Equal(got.CreatedAt))

	require.NoError(t, adapter.Delete(ctx, first.ID))
	_, err = adapter.GetByID(ctx, first.ID)
	assert.True(t, domain.IsNotFound(err))
	assert.True(t, domain.IsNotFound(adapter.Delete(ctx, first.ID)))
}
