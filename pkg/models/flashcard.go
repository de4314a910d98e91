package models

import "time"

// Flashcard represents a single study card together with its SM-2
// scheduling state. Scheduling fields are mutated only through the
// spaced repetition session manager.
type Flashcard struct {
	ID              int64      `json:"id" db:"id"`
	UserID          int64      `json:"user_id" db:"user_id"`
	Topic           string     `json:"topic" db:"topic"`
	Question        string     `json:"question" db:"question"`
	Answer          string     `json:"answer" db:"answer"`
	Category        string     `json:"category" db:"category"`
	Difficulty      string     `json:"difficulty" db:"difficulty"` // Easy, Medium, Hard
	EaseFactor      float64    `json:"ease_factor" db:"ease_factor"`
	Interval        int        `json:"interval" db:"interval"`                 // Current interval in days
	RepetitionCount int        `json:"repetition_count" db:"repetition_count"` // Consecutive successful reviews
	ReviewCount     int        `json:"review_count" db:"review_count"`         // Total reviews ever performed
	LastReviewed    *time.Time `json:"last_reviewed" db:"last_reviewed"`
	NextReview      *time.Time `json:"next_review" db:"next_review"`
	IsAIGenerated   bool       `json:"is_ai_generated" db:"is_ai_generated"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// IsDue reports whether the card should be reviewed at the given time.
// A card that has never been scheduled is always due.
func (f *Flashcard) IsDue(now time.Time) bool {
	if f.NextReview == nil {
		return true
	}
	return !f.NextReview.After(now)
}
