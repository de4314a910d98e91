package matcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSkillLevel(t *testing.T) {
	tests := []struct {
		problems int
		want     SkillLevel
	}{
		{0, SkillBeginner},
		{49, SkillBeginner},
		{50, SkillIntermediate},
		{199, SkillIntermediate},
		{200, SkillAdvanced},
		{1000, SkillAdvanced},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveSkillLevel(tt.problems), "problems=%d", tt.problems)
	}
}

func TestEstimateCodingHours(t *testing.T) {
	assert.Equal(t, 0.0, EstimateCodingHours(0))
	assert.Equal(t, 25.0, EstimateCodingHours(50))
	assert.Equal(t, 40.0, EstimateCodingHours(80))
	assert.Equal(t, 40.0, EstimateCodingHours(500), "capped at 40")
}

func TestActivityLevel(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.InDelta(t, 1.0, ActivityLevel(now, now), 1e-9)
	assert.InDelta(t, 0.9, ActivityLevel(now.AddDate(0, 0, -36), now), 0.01)
	assert.InDelta(t, 0.1, ActivityLevel(now.AddDate(-2, 0, 0), now), 1e-9, "floored at 0.1")
	assert.InDelta(t, 1.0, ActivityLevel(now.AddDate(0, 0, 1), now), 1e-9, "future dates capped")
}

func TestExtractInterests(t *testing.T) {
	tests := []struct {
		name  string
		goals string
		want  []string
	}{
		{
			"multiple keywords",
			"I want to master algorithms and data structures for interviews",
			[]string{"algorithms", "data_structures", "interview_preparation"},
		},
		{
			"deduplicates mapped interests",
			"learn AI and machine learning",
			[]string{"machine_learning"},
		},
		{"case insensitive", "SYSTEM DESIGN fundamentals", []string{"system_design"}},
		{"no known keywords", "get better at cooking", nil},
		{"empty goals", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractInterests(tt.goals))
		})
	}
}

func TestParseGoals(t *testing.T) {
	tests := []struct {
		name  string
		goals string
		want  []string
	}{
		{"comma separated", "learn go, pass interviews, build projects",
			[]string{"learn go", "pass interviews", "build projects"}},
		{"semicolon separated", "learn go; pass interviews",
			[]string{"learn go", "pass interviews"}},
		{"newline separated", "learn go\npass interviews",
			[]string{"learn go", "pass interviews"}},
		{"single goal", "learn go", []string{"learn go"}},
		{"comma wins over later delimiters", "learn go, then rest. maybe",
			[]string{"learn go", "then rest. maybe"}},
		{"blank", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGoals(tt.goals))
		})
	}
}
