package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseUser() UserProfile {
	return UserProfile{
		UserID:             1,
		SkillLevel:         SkillIntermediate,
		Interests:          []string{"algorithms"},
		CodingHoursPerWeek: 10,
		PreferredSchedule:  "flexible",
	}
}

func baseGroup() GroupProfile {
	return GroupProfile{
		GroupID:            1,
		Name:               "Algorithms Study Group",
		Topic:              "algorithms",
		SkillLevel:         SkillIntermediate,
		CurrentSize:        4,
		MaxSize:            10,
		ActivityLevel:      0.9,
		AverageCodingHours: 10,
		PreferredSchedule:  "flexible",
		SkillDistribution: map[SkillLevel]int{
			SkillIntermediate: 4,
		},
	}
}

func TestScoreIdealMatch(t *testing.T) {
	m := New()

	// skill 1.0*0.40 + interest 1.0*0.25 + schedule 0.8*0.15
	// + activity 1.0*0.10 + size 1.0*0.10 = 0.97
	score := m.Score(baseUser(), baseGroup())
	assert.InDelta(t, 0.97, score, 1e-9)
}

func TestScoreStaysInUnitInterval(t *testing.T) {
	m := New()

	users := []UserProfile{
		baseUser(),
		{SkillLevel: "unknown", Interests: nil, CodingHoursPerWeek: 0, PreferredSchedule: ""},
		{SkillLevel: SkillBeginner, Interests: []string{"x", "y"}, CodingHoursPerWeek: 80, PreferredSchedule: "morning"},
	}
	groups := []GroupProfile{
		baseGroup(),
		{Topic: "quantum", SkillLevel: "wizard", CurrentSize: 0, MaxSize: 0, AverageCodingHours: 0},
		{Topic: "algorithms", SkillLevel: SkillAdvanced, CurrentSize: 10, MaxSize: 10, AverageCodingHours: 1, PreferredSchedule: "evening"},
	}

	for _, u := range users {
		for _, g := range groups {
			score := m.Score(u, g)
			require.GreaterOrEqual(t, score, 0.0)
			require.LessOrEqual(t, score, 1.0)
		}
	}
}

func TestSkillFit(t *testing.T) {
	m := New()

	tests := []struct {
		name  string
		user  SkillLevel
		group SkillLevel
		dist  map[SkillLevel]int
		want  float64
	}{
		{"exact match", SkillIntermediate, SkillIntermediate, nil, 1.0},
		{"adjacent levels", SkillBeginner, SkillIntermediate, nil, 0.7},
		{"two levels apart", SkillBeginner, SkillAdvanced, nil, 0.3},
		{"case insensitive", "Advanced", SkillAdvanced, nil, 1.0},
		{"unknown both no members", "expert", "wizard", nil, 0.5},
		{
			"unknown user skill underrepresented",
			"expert", "wizard",
			map[SkillLevel]int{SkillBeginner: 4},
			1.0, // min(1.0, 0.8 + 0.2*(1-0))
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, m.skillFit(tt.user, tt.group, tt.dist), 1e-9)
		})
	}
}

func TestInterestFit(t *testing.T) {
	m := New()

	tests := []struct {
		name      string
		interests []string
		topic     string
		want      float64
	}{
		{"exact match", []string{"algorithms"}, "algorithms", 1.0},
		{"exact match case insensitive", []string{"Algorithms"}, "ALGORITHMS", 1.0},
		{"related topic", []string{"data_structures"}, "algorithms", 0.8},
		{"substring overlap", []string{"web"}, "web_development", 0.6},
		{"no overlap", []string{"mobile_development"}, "system_design", 0.3},
		{"no interests is neutral", nil, "algorithms", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, m.interestFit(tt.interests, tt.topic), 1e-9)
		})
	}
}

func TestScheduleFit(t *testing.T) {
	m := New()

	tests := []struct {
		name  string
		user  string
		group string
		want  float64
	}{
		{"flexible user", "flexible", "evening", 0.8},
		{"flexible group", "morning", "flexible", 0.8},
		{"both flexible still 0.8", "flexible", "flexible", 0.8},
		{"identical", "evening", "evening", 1.0},
		{"same bucket", "evening", "night", 0.7},
		{"different buckets", "morning", "evening", 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, m.scheduleFit(tt.user, tt.group), 1e-9)
		})
	}
}

func TestActivityFit(t *testing.T) {
	m := New()

	tests := []struct {
		name       string
		userHours  float64
		groupHours float64
		want       float64
	}{
		{"equal hours", 10, 10, 1.0},
		{"close ratio", 14, 10, 1.0},
		{"moderate ratio", 18, 10, 0.8},
		{"loose ratio", 25, 10, 0.6},
		{"far apart", 40, 10, 0.3},
		{"group has no data", 10, 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, m.activityFit(tt.userHours, tt.groupHours), 1e-9)
		})
	}
}

func TestSizeFit(t *testing.T) {
	m := New()

	tests := []struct {
		name    string
		current int
		max     int
		want    float64
	}{
		{"half full", 5, 10, 1.0},
		{"mostly full", 8, 10, 0.8},
		{"nearly full", 9, 10, 0.6},
		{"completely full", 10, 10, 0.3},
		{"empty", 0, 10, 0.3},
		{"invalid max", 3, 0, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, m.sizeFit(tt.current, tt.max), 1e-9)
		})
	}
}

func TestRankSortsAndLimits(t *testing.T) {
	m := New()
	user := baseUser()

	good := baseGroup()
	good.GroupID = 1

	decent := baseGroup()
	decent.GroupID = 2
	decent.SkillLevel = SkillBeginner // adjacent, lowers the score
	decent.SkillDistribution = map[SkillLevel]int{SkillBeginner: 4}

	poor := GroupProfile{
		GroupID:            3,
		Topic:              "quantum_computing",
		SkillLevel:         SkillBeginner,
		CurrentSize:        10,
		MaxSize:            10,
		AverageCodingHours: 1,
		PreferredSchedule:  "morning",
	}

	matches := m.Rank(user, []GroupProfile{decent, poor, good}, 0)
	require.Len(t, matches, 3)
	assert.Equal(t, int64(1), matches[0].GroupID)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}

	limited := m.Rank(user, []GroupProfile{decent, poor, good}, 1)
	require.Len(t, limited, 1)
	assert.Equal(t, int64(1), limited[0].GroupID)
}

func TestScoreWorstCasePairing(t *testing.T) {
	m := New()

	// Every sub-score at its floor: 0.3*0.40 + 0.3*0.25 + 0.4*0.15
	// + 0.3*0.10 + 0.3*0.10 = 0.315, just above the ranking threshold.
	user := UserProfile{
		SkillLevel:         SkillBeginner,
		Interests:          []string{"mobile_development"},
		CodingHoursPerWeek: 40,
		PreferredSchedule:  "morning",
	}
	group := GroupProfile{
		GroupID:            9,
		Topic:              "system_design",
		SkillLevel:         SkillAdvanced,
		CurrentSize:        10,
		MaxSize:            10,
		AverageCodingHours: 1,
		PreferredSchedule:  "evening",
	}
	assert.InDelta(t, 0.315, m.Score(user, group), 1e-9)
	assert.Greater(t, m.Score(user, group), MinCompatibilityScore)
}

func TestReasons(t *testing.T) {
	m := New()

	reasons := m.Reasons(baseUser(), baseGroup())
	assert.Contains(t, reasons, "Same skill level (intermediate)")
	assert.Contains(t, reasons, "Interested in algorithms")
	assert.Contains(t, reasons, "Similar activity level")
	assert.Contains(t, reasons, "Group has available spots")

	// A full group with a distant user yields no reasons
	user := UserProfile{SkillLevel: SkillBeginner, CodingHoursPerWeek: 40}
	group := GroupProfile{Topic: "system_design", SkillLevel: SkillAdvanced,
		CurrentSize: 10, MaxSize: 10, AverageCodingHours: 2}
	assert.Empty(t, m.Reasons(user, group))
}
