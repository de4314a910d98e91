package models

import "time"

// PlatformStats tracks a user's solved-problem counts on one coding platform
type PlatformStats struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"user_id" db:"user_id"`
	Platform      string    `json:"platform" db:"platform"` // leetcode, geeksforgeeks, hackerrank, github
	TotalProblems int       `json:"total_problems" db:"total_problems"`
	EasySolved    int       `json:"easy_solved" db:"easy_solved"`
	MediumSolved  int       `json:"medium_solved" db:"medium_solved"`
	HardSolved    int       `json:"hard_solved" db:"hard_solved"`
	ContestRating int       `json:"contest_rating" db:"contest_rating"`
	Streak        int       `json:"streak" db:"streak"`
	LastUpdated   time.Time `json:"last_updated" db:"last_updated"`
}
