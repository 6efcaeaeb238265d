package models

import (
	"database/sql"
	"time"
)

// Quiz is the row model of the quizzes table.
// Optional text columns are nullable; Oracle stores empty strings as NULL.
type Quiz struct {
	ID            string         `db:"id"`
	Title         sql.NullString `db:"title"`
	InputText     string         `db:"input_text"`
	OutputJSON    sql.NullString `db:"output_json"`
	OutputText    sql.NullString `db:"output_text"`
	QuestionCount int            `db:"question_count"`
	CreatedAt     time.Time      `db:"created_at"`
}
