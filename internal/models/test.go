package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type Test struct {
	ID              uint64          `db:"id" json:"id"`
	Title           string          `db:"title" json:"title"`
	DurationMinutes int32           `db:"duration_minutes" json:"duration_minutes"`
	TotalMarks      decimal.Decimal `db:"total_marks" json:"total_marks"`
	IsPublished     bool            `db:"is_published" json:"is_published"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// TestSummary is the catalog row shown to students, with the per-test
// question count computed at query time.
type TestSummary struct {
	ID              uint64          `json:"id"`
	Title           string          `json:"title"`
	DurationMinutes int32           `json:"duration_minutes"`
	TotalMarks      decimal.Decimal `json:"total_marks"`
	QuestionCount   int32           `json:"question_count"`
}

// Question is the full question row, including the scoring fields.
// It must never be serialized to an attempting client as-is.
type Question struct {
	ID            uint64          `db:"id"`
	TestID        uint64          `db:"test_id"`
	QuestionType  string          `db:"question_type"`
	ImageURL      sql.NullString  `db:"image_url"`
	Options       []string        `db:"options"` // JSON column
	CorrectAnswer string          `db:"correct_answer"`
	Marks         decimal.Decimal `db:"marks"`
	NegativeMarks decimal.Decimal `db:"negative_marks"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// AttemptQuestion is the answer-free projection of a question handed to an
// attempting client. correct_answer and marks are deliberately absent.
type AttemptQuestion struct {
	ID           uint64   `json:"id"`
	QuestionType string   `json:"question_type"`
	ImageURL     string   `json:"image_url,omitempty"`
	Options      []string `json:"options"`
}
