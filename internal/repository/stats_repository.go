package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/acadsharsh/mockera12/internal/models"
)

type StatsRepository interface {
	Overview(ctx context.Context) (*models.StatsOverview, error)
}

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Overview(ctx context.Context) (*models.StatsOverview, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM tests) AS total_tests,
			(SELECT COUNT(DISTINCT student_id) FROM submissions) AS active_students,
			(SELECT COALESCE(AVG(score), 0) FROM submissions) AS avg_score
	`
	overview := &models.StatsOverview{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&overview.TotalTests, &overview.ActiveStudents, &overview.AvgScore,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats overview: %w", err)
	}
	return overview, nil
}
