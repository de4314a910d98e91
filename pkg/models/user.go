package models

import "time"

// User represents a platform user account
type User struct {
	ID                int64     `json:"id" db:"id"`
	Username          string    `json:"username" db:"username"`
	Email             string    `json:"email" db:"email"`
	Role              string    `json:"role" db:"role"` // student/admin
	FirstName         string    `json:"first_name" db:"first_name"`
	LastName          string    `json:"last_name" db:"last_name"`
	LearningGoals     string    `json:"learning_goals" db:"learning_goals"`
	PreferredSchedule string    `json:"preferred_schedule" db:"preferred_schedule"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}
