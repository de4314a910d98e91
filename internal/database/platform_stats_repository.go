package database

import (
	"context"
	"fmt"

	"github.com/example/codetrack/pkg/models"
)

// PlatformStatsRepository handles database operations for per-platform
// coding statistics
type PlatformStatsRepository struct{}

// NewPlatformStatsRepository creates a new repository instance
func NewPlatformStatsRepository() *PlatformStatsRepository {
	return &PlatformStatsRepository{}
}

// ByUser returns all platform statistics rows for a user
func (r *PlatformStatsRepository) ByUser(ctx context.Context, userID int64) ([]models.PlatformStats, error) {
	var stats []models.PlatformStats
	err := DB.SelectContext(ctx, &stats,
		"SELECT * FROM platform_stats WHERE user_id = $1 ORDER BY platform ASC", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get platform stats for user %d: %w", userID, err)
	}
	return stats, nil
}

// TotalProblems returns the user's solved-problem count summed across all
// platforms. Feeds skill-level derivation in the matcher.
func (r *PlatformStatsRepository) TotalProblems(ctx context.Context, userID int64) (int, error) {
	var total int
	err := DB.GetContext(ctx, &total,
		"SELECT COALESCE(SUM(total_problems), 0) FROM platform_stats WHERE user_id = $1", userID)
	if err != nil {
		return 0, fmt.Errorf("failed to sum problems for user %d: %w", userID, err)
	}
	return total, nil
}

// Upsert creates or updates the stats row for one user/platform pair
func (r *PlatformStatsRepository) Upsert(ctx context.Context, stats *models.PlatformStats) error {
	query := fmt.Sprintf(`
		INSERT INTO platform_stats (
			user_id, platform, total_problems, easy_solved, medium_solved,
			hard_solved, contest_rating, streak, last_updated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, %s)
		ON CONFLICT (user_id, platform) DO UPDATE SET
			total_problems = EXCLUDED.total_problems,
			easy_solved = EXCLUDED.easy_solved,
			medium_solved = EXCLUDED.medium_solved,
			hard_solved = EXCLUDED.hard_solved,
			contest_rating = EXCLUDED.contest_rating,
			streak = EXCLUDED.streak,
			last_updated = %s
	`, nowExpr(), nowExpr())

	_, err := DB.ExecContext(ctx, query,
		stats.UserID, stats.Platform, stats.TotalProblems, stats.EasySolved,
		stats.MediumSolved, stats.HardSolved, stats.ContestRating, stats.Streak)
	if err != nil {
		return fmt.Errorf("failed to upsert platform stats: %w", err)
	}
	return nil
}
