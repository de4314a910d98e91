package database

import (
	"context"
	"fmt"

	"github.com/example/codetrack/pkg/models"
)

// UserRepository handles database operations for user accounts
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// UserByID returns a single user
func (r *UserRepository) UserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := DB.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &user, nil
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.Role == "" {
		user.Role = "student"
	}

	if Dialect() == "postgres" {
		query := `
			INSERT INTO users (
				username, email, role, first_name, last_name,
				learning_goals, preferred_schedule
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`
		return DB.QueryRowContext(ctx, query,
			user.Username, user.Email, user.Role, user.FirstName, user.LastName,
			user.LearningGoals, user.PreferredSchedule,
		).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	}

	result, err := DB.ExecContext(ctx, `
		INSERT INTO users (
			username, email, role, first_name, last_name,
			learning_goals, preferred_schedule
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		user.Username, user.Email, user.Role, user.FirstName, user.LastName,
		user.LearningGoals, user.PreferredSchedule,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	user.ID = id

	return DB.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM users WHERE id = $1", user.ID,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

// UpdateProfile updates the profile fields used for matching
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		UPDATE users SET
			first_name = $1,
			last_name = $2,
			learning_goals = $3,
			preferred_schedule = $4,
			updated_at = %s
		WHERE id = $5
	`, nowExpr())

	res, err := DB.ExecContext(ctx, query,
		user.FirstName, user.LastName, user.LearningGoals, user.PreferredSchedule, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user %d not found", user.ID)
	}
	return nil
}

// AvailableStudents returns students who are not members of any study
// group, excluding the given user. Feeds group-creation suggestions.
func (r *UserRepository) AvailableStudents(ctx context.Context, excludeUserID int64) ([]models.User, error) {
	var users []models.User
	err := DB.SelectContext(ctx, &users, `
		SELECT * FROM users
		WHERE role = 'student'
		AND id <> $1
		AND id NOT IN (SELECT DISTINCT user_id FROM study_group_members)
		ORDER BY id ASC
	`, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get available students: %w", err)
	}
	return users, nil
}
