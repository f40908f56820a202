package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/acadsharsh/mockera12/internal/models"
)

type SubmissionRepository interface {
	// CreateWithResponses persists the submission and all of its response
	// rows atomically and fills in submission.ID.
	CreateWithResponses(ctx context.Context, submission *models.Submission, responses []models.ResponseRecord) error
	FindResult(ctx context.Context, submissionID uint64) (*models.Result, error)
}

type submissionRepository struct {
	db *sql.DB
}

func NewSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) CreateWithResponses(ctx context.Context, submission *models.Submission, responses []models.ResponseRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO submissions (test_id, student_id, score, time_taken_seconds, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, submission.TestID, submission.StudentID, submission.Score.String(), submission.TimeTakenSeconds, now)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	submission.ID = uint64(id)
	submission.CreatedAt = now

	if len(responses) > 0 {
		placeholders := make([]string, 0, len(responses))
		args := make([]interface{}, 0, len(responses)*6)
		for _, resp := range responses {
			placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?)")
			args = append(args, submission.ID, resp.QuestionID, resp.SelectedOption,
				resp.IsCorrect, resp.TimeSpentSeconds, now)
		}

		query := `
			INSERT INTO responses (submission_id, question_id, selected_option, is_correct, time_spent_seconds, created_at)
			VALUES ` + strings.Join(placeholders, ", ")

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to create responses: %w", err)
		}
	}

	return tx.Commit()
}

func (r *submissionRepository) FindResult(ctx context.Context, submissionID uint64) (*models.Result, error) {
	query := `
		SELECT s.id, s.test_id, s.student_id, s.score, s.time_taken_seconds, s.created_at,
			t.title, t.total_marks
		FROM submissions s
		JOIN tests t ON s.test_id = t.id
		WHERE s.id = ?
	`
	res := &models.Result{}
	err := r.db.QueryRowContext(ctx, query, submissionID).Scan(
		&res.SubmissionID, &res.TestID, &res.StudentID, &res.Score,
		&res.TimeTakenSeconds, &res.SubmittedAt, &res.TestTitle, &res.TotalMarks,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find result: %w", err)
	}
	return res, nil
}
