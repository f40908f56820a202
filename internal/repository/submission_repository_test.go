package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadsharsh/mockera12/internal/models"
)

func TestSubmissionRepository_CreateWithResponses(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSubmissionRepository(db)

	t.Run("commits submission and responses in one transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO submissions").
			WithArgs(uint64(1), uint64(7), "3", int32(540), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(42, 1))
		mock.ExpectExec("INSERT INTO responses").
			WithArgs(
				uint64(42), uint64(10), "B", true, int32(30), sqlmock.AnyArg(),
				uint64(42), uint64(11), "A", false, int32(20), sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		submission := &models.Submission{
			TestID:           1,
			StudentID:        7,
			Score:            decimal.NewFromInt(3),
			TimeTakenSeconds: 540,
		}
		responses := []models.ResponseRecord{
			{QuestionID: 10, SelectedOption: "B", IsCorrect: true, TimeSpentSeconds: 30},
			{QuestionID: 11, SelectedOption: "A", IsCorrect: false, TimeSpentSeconds: 20},
		}

		err := repo.CreateWithResponses(context.Background(), submission, responses)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), submission.ID)
	})

	t.Run("submission with no responses skips the batch insert", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO submissions").
			WithArgs(uint64(1), uint64(7), "0", int32(5), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(43, 1))
		mock.ExpectCommit()

		submission := &models.Submission{TestID: 1, StudentID: 7, Score: decimal.Zero, TimeTakenSeconds: 5}
		err := repo.CreateWithResponses(context.Background(), submission, nil)
		require.NoError(t, err)
	})

	t.Run("rolls back when the response insert fails", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO submissions").
			WithArgs(uint64(1), uint64(7), "3", int32(540), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(44, 1))
		mock.ExpectExec("INSERT INTO responses").
			WillReturnError(errors.New("deadlock"))
		mock.ExpectRollback()

		submission := &models.Submission{
			TestID:           1,
			StudentID:        7,
			Score:            decimal.NewFromInt(3),
			TimeTakenSeconds: 540,
		}
		responses := []models.ResponseRecord{
			{QuestionID: 10, SelectedOption: "B", IsCorrect: true, TimeSpentSeconds: 30},
		}

		err := repo.CreateWithResponses(context.Background(), submission, responses)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_FindResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSubmissionRepository(db)
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "test_id", "student_id", "score", "time_taken_seconds", "created_at", "title", "total_marks"}).
			AddRow(42, 1, 7, "3.00", 540, now, "Physics Mock 1", "100.00")
		mock.ExpectQuery("FROM submissions s").
			WithArgs(uint64(42)).
			WillReturnRows(rows)

		result, err := repo.FindResult(context.Background(), 42)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, uint64(42), result.SubmissionID)
		assert.Equal(t, uint64(7), result.StudentID)
		assert.Equal(t, "3", result.Score.String())
		assert.Equal(t, "Physics Mock 1", result.TestTitle)
	})

	t.Run("not found returns nil", func(t *testing.T) {
		mock.ExpectQuery("FROM submissions s").
			WithArgs(uint64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "test_id", "student_id", "score", "time_taken_seconds", "created_at", "title", "total_marks"}))

		result, err := repo.FindResult(context.Background(), 99)
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
