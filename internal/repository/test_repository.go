package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/acadsharsh/mockera12/internal/models"
)

type TestRepository interface {
	ListPublished(ctx context.Context) ([]models.TestSummary, error)
	FindByID(ctx context.Context, id uint64) (*models.Test, error)
	QuestionsForAttempt(ctx context.Context, testID uint64) ([]models.AttemptQuestion, error)
	QuestionsWithAnswers(ctx context.Context, testID uint64) ([]models.Question, error)
}

type testRepository struct {
	db *sql.DB
}

func NewTestRepository(db *sql.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) ListPublished(ctx context.Context) ([]models.TestSummary, error) {
	query := `
		SELECT t.id, t.title, t.duration_minutes, t.total_marks,
			(SELECT COUNT(*) FROM questions q WHERE q.test_id = t.id) AS question_count
		FROM tests t
		WHERE t.is_published = TRUE
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list published tests: %w", err)
	}
	defer rows.Close()

	summaries := []models.TestSummary{}
	for rows.Next() {
		var s models.TestSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.DurationMinutes, &s.TotalMarks, &s.QuestionCount); err != nil {
			return nil, fmt.Errorf("failed to scan test summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate test summaries: %w", err)
	}
	return summaries, nil
}

func (r *testRepository) FindByID(ctx context.Context, id uint64) (*models.Test, error) {
	query := `
		SELECT id, title, duration_minutes, total_marks, is_published, created_at, updated_at
		FROM tests
		WHERE id = ?
	`
	test := &models.Test{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&test.ID, &test.Title, &test.DurationMinutes, &test.TotalMarks,
		&test.IsPublished, &test.CreatedAt, &test.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find test by id: %w", err)
	}
	return test, nil
}

// QuestionsForAttempt returns the questions of a test in ascending id order,
// without the correct answer and marks columns.
func (r *testRepository) QuestionsForAttempt(ctx context.Context, testID uint64) ([]models.AttemptQuestion, error) {
	query := `
		SELECT id, question_type, image_url, options
		FROM questions
		WHERE test_id = ?
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt questions: %w", err)
	}
	defer rows.Close()

	questions := []models.AttemptQuestion{}
	for rows.Next() {
		var q models.AttemptQuestion
		var imageURL sql.NullString
		var rawOptions []byte
		if err := rows.Scan(&q.ID, &q.QuestionType, &imageURL, &rawOptions); err != nil {
			return nil, fmt.Errorf("failed to scan attempt question: %w", err)
		}
		q.ImageURL = imageURL.String
		if err := json.Unmarshal(rawOptions, &q.Options); err != nil {
			return nil, fmt.Errorf("failed to decode options for question %d: %w", q.ID, err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attempt questions: %w", err)
	}
	return questions, nil
}

// QuestionsWithAnswers returns the authoritative scoring rows for a test.
func (r *testRepository) QuestionsWithAnswers(ctx context.Context, testID uint64) ([]models.Question, error) {
	query := `
		SELECT id, test_id, correct_answer, marks, negative_marks
		FROM questions
		WHERE test_id = ?
	`
	rows, err := r.db.QueryContext(ctx, query, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scoring questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.TestID, &q.CorrectAnswer, &q.Marks, &q.NegativeMarks); err != nil {
			return nil, fmt.Errorf("failed to scan scoring question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scoring questions: %w", err)
	}
	return questions, nil
}
