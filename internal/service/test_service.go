package service

import (
	"context"
	"fmt"
	"time"

	"github.com/acadsharsh/mockera12/internal/errs"
	"github.com/acadsharsh/mockera12/internal/models"
	"github.com/acadsharsh/mockera12/internal/repository"
)

type TestService interface {
	ListPublished(ctx context.Context) ([]models.TestSummary, error)
	GetForAttempt(ctx context.Context, testID uint64) (*AttemptDetails, error)
}

// AttemptDetails is a test plus its answer-free question set.
type AttemptDetails struct {
	Test      *models.Test             `json:"test"`
	Questions []models.AttemptQuestion `json:"questions"`
}

type testService struct {
	testRepo  repository.TestRepository
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
}

// NewTestService creates the catalog service. cacheRepo may be nil, in which
// case every read goes to the database.
func NewTestService(testRepo repository.TestRepository, cacheRepo repository.CacheRepository, cacheTTL time.Duration) TestService {
	return &testService{
		testRepo:  testRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
	}
}

func (s *testService) ListPublished(ctx context.Context) ([]models.TestSummary, error) {
	// Cache is best effort: a miss or a cache failure falls through to the DB.
	if s.cacheRepo != nil {
		if cached, err := s.cacheRepo.GetPublishedTests(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	tests, err := s.testRepo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tests: %w", err)
	}

	if s.cacheRepo != nil {
		_ = s.cacheRepo.SetPublishedTests(ctx, tests, s.cacheTTL)
	}
	return tests, nil
}

// GetForAttempt returns the test and its questions for an attempting client.
// The questions carry no correct answers and no marks.
func (s *testService) GetForAttempt(ctx context.Context, testID uint64) (*AttemptDetails, error) {
	test, err := s.testRepo.FindByID(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to load test: %w", err)
	}
	if test == nil {
		return nil, errs.ErrTestNotFound
	}

	questions, err := s.testRepo.QuestionsForAttempt(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	return &AttemptDetails{
		Test:      test,
		Questions: questions,
	}, nil
}
