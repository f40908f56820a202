package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Submission struct {
	ID               uint64          `db:"id"`
	TestID           uint64          `db:"test_id"`
	StudentID        uint64          `db:"student_id"`
	Score            decimal.Decimal `db:"score"`
	TimeTakenSeconds int32           `db:"time_taken_seconds"`
	CreatedAt        time.Time       `db:"created_at"`
}

// ResponseInput is one per-question answer supplied by the caller at submit
// time. A blank SelectedOption means the question was left unattempted.
type ResponseInput struct {
	QuestionID       uint64 `json:"questionId"`
	SelectedOption   string `json:"selectedOption"`
	TimeSpentSeconds int32  `json:"timeSpent"`
}

// ResponseRecord is the persisted form of a scored response.
type ResponseRecord struct {
	ID               uint64 `db:"id"`
	SubmissionID     uint64 `db:"submission_id"`
	QuestionID       uint64 `db:"question_id"`
	SelectedOption   string `db:"selected_option"`
	IsCorrect        bool   `db:"is_correct"`
	TimeSpentSeconds int32  `db:"time_spent_seconds"`
}

// Result is the joined read returned for a finished submission.
type Result struct {
	SubmissionID     uint64          `json:"id"`
	TestID           uint64          `json:"test_id"`
	StudentID        uint64          `json:"student_id"`
	Score            decimal.Decimal `json:"score"`
	TimeTakenSeconds int32           `json:"time_taken_seconds"`
	SubmittedAt      time.Time       `json:"created_at"`
	TestTitle        string          `json:"title"`
	TotalMarks       decimal.Decimal `json:"total_marks"`
}

// StatsOverview is the creator dashboard aggregate.
type StatsOverview struct {
	TotalTests     int64           `json:"totalTests"`
	ActiveStudents int64           `json:"activeStudents"`
	AvgScore       decimal.Decimal `json:"avgScore"`
}
