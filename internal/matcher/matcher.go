package matcher

import (
	"sort"
	"strings"
)

// Sub-score weights; they sum to 1.0
const (
	weightSkill    = 0.40
	weightInterest = 0.25
	weightSchedule = 0.15
	weightActivity = 0.10
	weightSize     = 0.10
)

// MinCompatibilityScore is the cutoff below which groups are not suggested
const MinCompatibilityScore = 0.3

// relatedTopics lists topics considered adjacent for interest scoring
var relatedTopics = map[string][]string{
	"algorithms":              {"data_structures", "problem_solving", "competitive_programming"},
	"data_structures":         {"algorithms", "problem_solving", "interview_prep"},
	"system_design":           {"architecture", "scalability", "distributed_systems"},
	"web_development":         {"frontend", "backend", "full_stack"},
	"mobile_development":      {"ios", "android", "react_native"},
	"machine_learning":        {"ai", "data_science", "deep_learning"},
	"competitive_programming": {"algorithms", "data_structures", "problem_solving"},
	"interview_preparation":   {"algorithms", "data_structures", "system_design"},
}

// scheduleBuckets groups schedule tags into coarse time-of-day buckets
var scheduleBuckets = map[string][]string{
	"morning":   {"morning", "early_morning"},
	"afternoon": {"afternoon", "lunch_time"},
	"evening":   {"evening", "night"},
	"weekend":   {"weekend", "saturday", "sunday"},
}

// Match is one ranked study-group candidate for a user
type Match struct {
	GroupID       int64      `json:"group_id"`
	GroupName     string     `json:"group_name"`
	Topic         string     `json:"topic"`
	SkillLevel    SkillLevel `json:"skill_level"`
	CurrentSize   int        `json:"current_size"`
	MaxSize       int        `json:"max_size"`
	Score         float64    `json:"compatibility_score"`
	Reasons       []string   `json:"match_reasons"`
	ActivityLevel float64    `json:"activity_level"`
}

// Matcher scores user/group compatibility. It is stateless; all methods
// are pure functions of their inputs.
type Matcher struct{}

// New creates a Matcher
func New() *Matcher {
	return &Matcher{}
}

// Score computes the weighted compatibility of a user and a group,
// clamped to [0, 1].
func (m *Matcher) Score(user UserProfile, group GroupProfile) float64 {
	score := weightSkill*m.skillFit(user.SkillLevel, group.SkillLevel, group.SkillDistribution) +
		weightInterest*m.interestFit(user.Interests, group.Topic) +
		weightSchedule*m.scheduleFit(user.PreferredSchedule, group.PreferredSchedule) +
		weightActivity*m.activityFit(user.CodingHoursPerWeek, group.AverageCodingHours) +
		weightSize*m.sizeFit(group.CurrentSize, group.MaxSize)

	if score > 1.0 {
		score = 1.0
	}
	if score < 0.0 {
		score = 0.0
	}
	return score
}

// Rank scores every candidate group, drops those at or below the minimum
// threshold and returns the rest sorted by descending score, truncated to
// limit (0 means no limit).
func (m *Matcher) Rank(user UserProfile, groups []GroupProfile, limit int) []Match {
	var matches []Match
	for _, group := range groups {
		score := m.Score(user, group)
		if score <= MinCompatibilityScore {
			continue
		}
		matches = append(matches, Match{
			GroupID:       group.GroupID,
			GroupName:     group.Name,
			Topic:         group.Topic,
			SkillLevel:    group.SkillLevel,
			CurrentSize:   group.CurrentSize,
			MaxSize:       group.MaxSize,
			Score:         score,
			Reasons:       m.Reasons(user, group),
			ActivityLevel: group.ActivityLevel,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// skillFit scores skill-level alignment: exact match 1.0, adjacent levels
// 0.7, two steps apart 0.3. For unrecognized levels an under-represented
// (<50%) user skill earns a diversity bonus, otherwise 0.5.
func (m *Matcher) skillFit(userSkill, groupSkill SkillLevel, distribution map[SkillLevel]int) float64 {
	ui, gi := userSkill.index(), groupSkill.index()
	if ui >= 0 && gi >= 0 {
		switch abs(ui - gi) {
		case 0:
			return 1.0
		case 1:
			return 0.7
		case 2:
			return 0.3
		}
	}

	total := 0
	for _, count := range distribution {
		total += count
	}
	if total > 0 {
		ratio := float64(distribution[userSkill]) / float64(total)
		if ratio < 0.5 {
			bonus := 0.8 + 0.2*(1-ratio)
			if bonus > 1.0 {
				bonus = 1.0
			}
			return bonus
		}
	}
	return 0.5
}

// interestFit scores topic alignment in priority order: exact match 1.0,
// related topic 0.8, substring overlap 0.6, otherwise 0.3. A user with no
// interests scores a neutral 0.5.
func (m *Matcher) interestFit(interests []string, topic string) float64 {
	if len(interests) == 0 {
		return 0.5
	}

	topicLower := strings.ToLower(topic)
	for _, interest := range interests {
		if strings.ToLower(interest) == topicLower {
			return 1.0
		}
	}

	for _, interest := range interests {
		interestLower := strings.ToLower(interest)
		for _, related := range relatedTopics[topicLower] {
			if strings.Contains(interestLower, related) {
				return 0.8
			}
		}
	}

	for _, interest := range interests {
		interestLower := strings.ToLower(interest)
		if strings.Contains(interestLower, topicLower) || strings.Contains(topicLower, interestLower) {
			return 0.6
		}
	}

	return 0.3
}

// scheduleFit scores schedule alignment. The flexible rule is checked
// first, so two flexible sides score 0.8, not 1.0.
func (m *Matcher) scheduleFit(userSchedule, groupSchedule string) float64 {
	us := strings.ToLower(userSchedule)
	gs := strings.ToLower(groupSchedule)

	if us == "flexible" || gs == "flexible" {
		return 0.8
	}
	if us == gs {
		return 1.0
	}

	for _, tags := range scheduleBuckets {
		if containsString(tags, us) && containsString(tags, gs) {
			return 0.7
		}
	}
	return 0.4
}

// activityFit scores how close the user's weekly hours are to the group
// average, by ratio bands.
func (m *Matcher) activityFit(userHours, groupAvgHours float64) float64 {
	if groupAvgHours == 0 {
		return 0.5
	}

	ratio := userHours / groupAvgHours
	switch {
	case ratio >= 0.7 && ratio <= 1.5:
		return 1.0
	case ratio >= 0.5 && ratio <= 2.0:
		return 0.8
	case ratio >= 0.3 && ratio <= 3.0:
		return 0.6
	default:
		return 0.3
	}
}

// sizeFit prefers groups that are neither nearly empty nor nearly full
func (m *Matcher) sizeFit(currentSize, maxSize int) float64 {
	if maxSize <= 0 {
		return 0.3
	}

	fill := float64(currentSize) / float64(maxSize)
	switch {
	case fill >= 0.3 && fill <= 0.7:
		return 1.0
	case fill >= 0.2 && fill <= 0.8:
		return 0.8
	case fill >= 0.1 && fill <= 0.9:
		return 0.6
	default:
		return 0.3
	}
}

// Reasons lists qualitative explanations for a match. Informational only;
// they do not feed back into the score.
func (m *Matcher) Reasons(user UserProfile, group GroupProfile) []string {
	var reasons []string

	if user.SkillLevel == group.SkillLevel {
		reasons = append(reasons, "Same skill level ("+string(user.SkillLevel)+")")
	}

	topicLower := strings.ToLower(group.Topic)
	for _, interest := range user.Interests {
		if strings.Contains(strings.ToLower(interest), topicLower) {
			reasons = append(reasons, "Interested in "+group.Topic)
			break
		}
	}

	diff := user.CodingHoursPerWeek - group.AverageCodingHours
	if diff <= 5 && diff >= -5 {
		reasons = append(reasons, "Similar activity level")
	}

	if float64(group.CurrentSize) < float64(group.MaxSize)*0.7 {
		reasons = append(reasons, "Group has available spots")
	}

	return reasons
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
