package models

import "time"

// StudyGroup represents a topic-focused study group
type StudyGroup struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Topic       string    `json:"topic" db:"topic"`
	SkillLevel  string    `json:"skill_level" db:"skill_level"` // beginner/intermediate/advanced
	MaxMembers  int       `json:"max_members" db:"max_members"`
	CreatedBy   int64     `json:"created_by" db:"created_by"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// MemberCount is populated by joins, not stored on the groups table
	MemberCount int `json:"member_count" db:"member_count"`
}

// StudyGroupMember links a user to a study group
type StudyGroupMember struct {
	ID       int64     `json:"id" db:"id"`
	GroupID  int64     `json:"group_id" db:"group_id"`
	UserID   int64     `json:"user_id" db:"user_id"`
	Role     string    `json:"role" db:"role"` // member/moderator
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`
}
