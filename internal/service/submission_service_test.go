package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadsharsh/mockera12/internal/errs"
	"github.com/acadsharsh/mockera12/internal/models"
	"github.com/acadsharsh/mockera12/internal/repository"
)

func newSubmissionService(t *testing.T) (SubmissionService, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	svc := NewSubmissionService(repository.NewTestRepository(db), repository.NewSubmissionRepository(db))
	return svc, mock, db
}

func expectTestRow(mock sqlmock.Sqlmock, testID uint64) {
	now := time.Now()
	mock.ExpectQuery("SELECT id, title, duration_minutes").
		WithArgs(testID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "duration_minutes", "total_marks", "is_published", "created_at", "updated_at"}).
			AddRow(testID, "Physics Mock 1", 60, "100.00", true, now, now))
}

func expectScoringQuestions(mock sqlmock.Sqlmock, testID uint64) {
	mock.ExpectQuery("SELECT id, test_id, correct_answer").
		WithArgs(testID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "test_id", "correct_answer", "marks", "negative_marks"}).
			AddRow(10, testID, "B", "4.00", "1.00").
			AddRow(11, testID, "D", "4.00", "1.00"))
}

func TestSubmissionService_Submit_Scoring(t *testing.T) {
	t.Run("correct answer awards marks", func(t *testing.T) {
		svc, mock, db := newSubmissionService(t)
		defer db.Close()

		expectTestRow(mock, 1)
		expectScoringQuestions(mock, 1)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO submissions").
			WithArgs(uint64(1), uint64(7), "4", int32(600), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(42, 1))
		mock.ExpectExec("INSERT INTO responses").
			WithArgs(uint64(42), uint64(10), "B", true, int32(30), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		id, err := svc.Submit(context.Background(), 1, 7,
			[]models.ResponseInput{{QuestionID: 10, SelectedOption: "B", TimeSpentSeconds: 30}}, 600)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong answer deducts negative marks", func(t *testing.T) {
		svc, mock, db := newSubmissionService(t)
		defer db.Close()

		expectTestRow(mock, 1)
		expectScoringQuestions(mock, 1)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO submissions").
			WithArgs(uint64(1), uint64(7), "-1", int32(600), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(43, 1))
		mock.ExpectExec("INSERT INTO responses").
			WithArgs(uint64(43), uint64(10), "C", false, int32(30), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		_, err := svc.Submit(context.Background(), 1, 7,
			[]models.ResponseInput{{QuestionID: 10, SelectedOption: "C", TimeSpentSeconds: 30}}, 600)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unattempted question neither awards nor deducts", func(t *testing.T) {
		svc, mock, db := newSubmissionService(t)
		defer db.Close()

		expectTestRow(mock, 1)
		expectScoringQuestions(mock, 1)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO submissions").
			WithArgs(uint64(1), uint64(7), "0", int32(600), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(44, 1))
		mock.ExpectExec("INSERT INTO responses").
			WithArgs(uint64(44), uint64(10), "", false, int32(12), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		_, err := svc.Submit(context.Background(), 1, 7,
			[]models.ResponseInput{{QuestionID: 10, SelectedOption: "", TimeSpentSeconds: 12}}, 600)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mixed responses accumulate the net score", func(t *testing.T) {
		svc, mock, db := newSubmissionService(t)
		defer db.Close()

		expectTestRow(mock, 1)
		expectScoringQuestions(mock, 1)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO submissions").
			WithArgs(uint64(1), uint64(7), "3", int32(600), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(45, 1))
		mock.ExpectExec("INSERT INTO responses").
			WithArgs(
				uint64(45), uint64(10), "B", true, int32(30), sqlmock.AnyArg(),
				uint64(45), uint64(11), "A", false, int32(25), sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		_, err := svc.Submit(context.Background(), 1, 7, []models.ResponseInput{
			{QuestionID: 10, SelectedOption: "B", TimeSpentSeconds: 30},
			{QuestionID: 11, SelectedOption: "A", TimeSpentSeconds: 25},
		}, 600)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("response for a foreign question id is dropped", func(t *testing.T) {
		svc, mock, db := newSubmissionService(t)
		defer db.Close()

		expectTestRow(mock, 1)
		expectScoringQuestions(mock, 1)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO submissions").
			WithArgs(uint64(1), uint64(7), "4", int32(600), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(46, 1))
		mock.ExpectExec("INSERT INTO responses").
			WithArgs(uint64(46), uint64(10), "B", true, int32(30), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		_, err := svc.Submit(context.Background(), 1, 7, []models.ResponseInput{
			{QuestionID: 10, SelectedOption: "B", TimeSpentSeconds: 30},
			{QuestionID: 999, SelectedOption: "A", TimeSpentSeconds: 10},
		}, 600)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown test", func(t *testing.T) {
		svc, mock, db := newSubmissionService(t)
		defer db.Close()

		mock.ExpectQuery("SELECT id, title, duration_minutes").
			WithArgs(uint64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "duration_minutes", "total_marks", "is_published", "created_at", "updated_at"}))

		_, err := svc.Submit(context.Background(), 99, 7, nil, 600)
		assert.ErrorIs(t, err, errs.ErrTestNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSubmissionService_GetResult(t *testing.T) {
	resultColumns := []string{"id", "test_id", "student_id", "score", "time_taken_seconds", "created_at", "title", "total_marks"}

	t.Run("owner can read their own result", func(t *testing.T) {
		svc, mock, db := newSubmissionService(t)
		defer db.Close()

		mock.ExpectQuery("FROM submissions s").
			WithArgs(uint64(42)).
			WillReturnRows(sqlmock.NewRows(resultColumns).
				AddRow(42, 1, 7, "3.00", 540, time.Now(), "Physics Mock 1", "100.00"))

		result, err := svc.GetResult(context.Background(), 42, 7, models.RoleStudent)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), result.SubmissionID)
	})

	t.Run("another student is rejected", func(t *testing.T) {
		svc, mock, db := newSubmissionService(t)
		defer db.Close()

		mock.ExpectQuery("FROM submissions s").
			WithArgs(uint64(42)).
			WillReturnRows(sqlmock.NewRows(resultColumns).
				AddRow(42, 1, 7, "3.00", 540, time.Now(), "Physics Mock 1", "100.00"))

		_, err := svc.GetResult(context.Background(), 42, 8, models.RoleStudent)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("creator can read any result", func(t *testing.T) {
		svc, mock, db := newSubmissionService(t)
		defer db.Close()

		mock.ExpectQuery("FROM submissions s").
			WithArgs(uint64(42)).
			WillReturnRows(sqlmock.NewRows(resultColumns).
				AddRow(42, 1, 7, "3.00", 540, time.Now(), "Physics Mock 1", "100.00"))

		result, err := svc.GetResult(context.Background(), 42, 99, models.RoleCreator)
		require.NoError(t, err)
		assert.Equal(t, uint64(7), result.StudentID)
	})

	t.Run("missing submission", func(t *testing.T) {
		svc, mock, db := newSubmissionService(t)
		defer db.Close()

		mock.ExpectQuery("FROM submissions s").
			WithArgs(uint64(99)).
			WillReturnRows(sqlmock.NewRows(resultColumns))

		_, err := svc.GetResult(context.Background(), 99, 7, models.RoleStudent)
		assert.ErrorIs(t, err, errs.ErrSubmissionNotFound)
	})
}
