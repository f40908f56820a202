package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/acadsharsh/mockera12/internal/errs"
	"github.com/acadsharsh/mockera12/internal/models"
	"github.com/acadsharsh/mockera12/internal/repository"
)

type SubmissionService interface {
	Submit(ctx context.Context, testID, studentID uint64, responses []models.ResponseInput, timeTaken int32) (uint64, error)
	GetResult(ctx context.Context, submissionID, callerID uint64, callerRole string) (*models.Result, error)
}

type submissionService struct {
	testRepo       repository.TestRepository
	submissionRepo repository.SubmissionRepository
}

func NewSubmissionService(testRepo repository.TestRepository, submissionRepo repository.SubmissionRepository) SubmissionService {
	return &submissionService{
		testRepo:       testRepo,
		submissionRepo: submissionRepo,
	}
}

// Submit scores the responses against the test's authoritative question set
// and persists the submission together with one response row per scored
// answer. Responses naming a question id outside the test are dropped:
// they contribute neither to the score nor to the persisted rows.
func (s *submissionService) Submit(ctx context.Context, testID, studentID uint64, responses []models.ResponseInput, timeTaken int32) (uint64, error) {
	test, err := s.testRepo.FindByID(ctx, testID)
	if err != nil {
		return 0, fmt.Errorf("failed to load test: %w", err)
	}
	if test == nil {
		return 0, errs.ErrTestNotFound
	}

	questions, err := s.testRepo.QuestionsWithAnswers(ctx, testID)
	if err != nil {
		return 0, fmt.Errorf("failed to load questions: %w", err)
	}

	questionByID := make(map[uint64]models.Question, len(questions))
	for _, q := range questions {
		questionByID[q.ID] = q
	}

	score := decimal.Zero
	records := make([]models.ResponseRecord, 0, len(responses))

	for _, resp := range responses {
		q, ok := questionByID[resp.QuestionID]
		if !ok {
			continue
		}

		isCorrect := false
		switch {
		case resp.SelectedOption == q.CorrectAnswer:
			score = score.Add(q.Marks)
			isCorrect = true
		case resp.SelectedOption != "":
			// Wrong and attempted: negative marking applies.
			score = score.Sub(q.NegativeMarks)
		}
		// Unattempted (blank option) changes nothing.

		records = append(records, models.ResponseRecord{
			QuestionID:       resp.QuestionID,
			SelectedOption:   resp.SelectedOption,
			IsCorrect:        isCorrect,
			TimeSpentSeconds: resp.TimeSpentSeconds,
		})
	}

	submission := &models.Submission{
		TestID:           testID,
		StudentID:        studentID,
		Score:            score,
		TimeTakenSeconds: timeTaken,
	}
	if err := s.submissionRepo.CreateWithResponses(ctx, submission, records); err != nil {
		return 0, fmt.Errorf("failed to persist submission: %w", err)
	}

	return submission.ID, nil
}

// GetResult returns the stored result of a submission. A student may only
// read their own submissions; creators may read any.
func (s *submissionService) GetResult(ctx context.Context, submissionID, callerID uint64, callerRole string) (*models.Result, error) {
	result, err := s.submissionRepo.FindResult(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load result: %w", err)
	}
	if result == nil {
		return nil, errs.ErrSubmissionNotFound
	}

	if result.StudentID != callerID && callerRole != models.RoleCreator {
		return nil, errs.ErrForbidden
	}

	return result, nil
}
