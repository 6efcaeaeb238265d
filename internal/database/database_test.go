package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) string {
	t.Helper()
	return "file:" + filepath.Join(t.TempDir(), "test.db")
}

func TestDriverName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "sqlite", false},
		{"sqlite", "sqlite", false},
		{"postgres", "pgx", false},
		{"pgx", "pgx", false},
		{"oracle", "oracle", false},
		{"mysql", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := DriverName(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunMigrations_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, DriverSQLite, openTestDB(t))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db, DriverSQLite))
	// A second run has nothing to apply.
	require.NoError(t, RunMigrations(ctx, db, DriverSQLite))

	var count int
	require.NoError(t, db.GetContext(ctx, &count, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'quizzes'`))
	assert.Equal(t, 1, count)

	require.NoError(t, RollbackMigrations(ctx, db, DriverSQLite))
	require.NoError(t, db.GetContext(ctx, &count, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'quizzes'`))
	assert.Equal(t, 0, count)
}

func TestSplitStatements(t *testing.T) {
	script := "CREATE TABLE a (id INT);\n\n  CREATE INDEX i ON a (id);\n"
	assert.Equal(t, []string{"CREATE TABLE a (id INT)", "CREATE INDEX i ON a (id)"}, SplitStatements(script))
	assert.Empty(t, SplitStatements("  ;\n;"))
}

func TestOracleScriptsSplitCleanly(t *testing.T) {
	content, err := migrationsFS.ReadFile("migrations/oracle/000001_create_quizzes.up.sql")
	require.NoError(t, err)
	stmts := SplitStatements(string(content))
	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], "CREATE TABLE quizzes")
	assert.Contains(t, stmts[1], "CREATE INDEX idx_quizzes_created_at")
}
