package matcher

import (
	"strings"
	"time"
)

// SkillLevel is the ordered beginner/intermediate/advanced scale
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

var skillOrder = map[SkillLevel]int{
	SkillBeginner:     0,
	SkillIntermediate: 1,
	SkillAdvanced:     2,
}

// index returns the position on the skill scale, or -1 for unknown values
func (s SkillLevel) index() int {
	if i, ok := skillOrder[SkillLevel(strings.ToLower(string(s)))]; ok {
		return i
	}
	return -1
}

// UserProfile is the matcher's view of a user, recomputed per request
type UserProfile struct {
	UserID             int64      `json:"user_id"`
	SkillLevel         SkillLevel `json:"skill_level"`
	Interests          []string   `json:"interests"`
	CodingHoursPerWeek float64    `json:"coding_hours_per_week"`
	PreferredSchedule  string     `json:"preferred_schedule"`
	LearningGoals      []string   `json:"learning_goals"`
}

// GroupProfile is the matcher's view of a candidate study group
type GroupProfile struct {
	GroupID            int64              `json:"group_id"`
	Name               string             `json:"name"`
	Topic              string             `json:"topic"`
	SkillLevel         SkillLevel         `json:"skill_level"`
	CurrentSize        int                `json:"current_size"`
	MaxSize            int                `json:"max_size"`
	ActivityLevel      float64            `json:"activity_level"` // 0-1 scale
	SkillDistribution  map[SkillLevel]int `json:"member_skill_distribution"`
	AverageCodingHours float64            `json:"average_coding_hours"`
	PreferredSchedule  string             `json:"preferred_schedule"`
}

// Skill-level thresholds on total solved problems
const (
	advancedProblemThreshold     = 200
	intermediateProblemThreshold = 50
)

// DeriveSkillLevel maps a total solved-problem count to a skill level
func DeriveSkillLevel(totalProblems int) SkillLevel {
	switch {
	case totalProblems >= advancedProblemThreshold:
		return SkillAdvanced
	case totalProblems >= intermediateProblemThreshold:
		return SkillIntermediate
	default:
		return SkillBeginner
	}
}

// EstimateCodingHours estimates weekly coding hours from solved problems,
// capped at 40.
func EstimateCodingHours(totalProblems int) float64 {
	hours := float64(totalProblems) * 0.5
	if hours > 40 {
		hours = 40
	}
	return hours
}

// ActivityLevel estimates a group's activity on a 0-1 scale from its age.
// Fresh groups score near 1.0, decaying towards the 0.1 floor over a year.
func ActivityLevel(createdAt, now time.Time) float64 {
	ageDays := now.Sub(createdAt).Hours() / 24
	level := 1.0 - ageDays/365.0
	if level > 1.0 {
		level = 1.0
	}
	if level < 0.1 {
		level = 0.1
	}
	return level
}

// interestKeywords maps learning-goal keywords to interest tags
var interestKeywords = []struct {
	keyword  string
	interest string
}{
	{"algorithm", "algorithms"},
	{"data structure", "data_structures"},
	{"system design", "system_design"},
	{"web development", "web_development"},
	{"mobile", "mobile_development"},
	{"machine learning", "machine_learning"},
	{"ai", "machine_learning"},
	{"competitive", "competitive_programming"},
	{"interview", "interview_preparation"},
}

// ExtractInterests derives interest tags from free-form learning-goal text
func ExtractInterests(learningGoals string) []string {
	if learningGoals == "" {
		return nil
	}

	lower := strings.ToLower(learningGoals)
	var interests []string
	seen := make(map[string]bool)
	for _, kw := range interestKeywords {
		if strings.Contains(lower, kw.keyword) && !seen[kw.interest] {
			interests = append(interests, kw.interest)
			seen[kw.interest] = true
		}
	}
	return interests
}

// ParseGoals splits learning-goal text into individual goals on the first
// delimiter that occurs in it.
func ParseGoals(learningGoals string) []string {
	if strings.TrimSpace(learningGoals) == "" {
		return nil
	}

	for _, delimiter := range []string{",", ";", "\n", "."} {
		if !strings.Contains(learningGoals, delimiter) {
			continue
		}
		var goals []string
		for _, part := range strings.Split(learningGoals, delimiter) {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				goals = append(goals, trimmed)
			}
		}
		if len(goals) > 0 {
			return goals
		}
	}

	return []string{strings.TrimSpace(learningGoals)}
}
