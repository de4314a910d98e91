package matcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/codetrack/internal/logger"
	"github.com/example/codetrack/pkg/models"
)

// UserSource provides the user records the matcher builds profiles from
type UserSource interface {
	UserByID(ctx context.Context, id int64) (*models.User, error)
	// AvailableStudents returns students who are not in any study group,
	// excluding the given user.
	AvailableStudents(ctx context.Context, excludeUserID int64) ([]models.User, error)
}

// StatsSource provides aggregated coding-platform statistics
type StatsSource interface {
	TotalProblems(ctx context.Context, userID int64) (int, error)
}

// GroupSource provides study groups and their membership
type GroupSource interface {
	// OpenGroups returns active groups that still have space, with
	// MemberCount populated.
	OpenGroups(ctx context.Context) ([]models.StudyGroup, error)
	GroupMembers(ctx context.Context, groupID int64) ([]models.StudyGroupMember, error)
}

// GroupProposal is a suggested new study group with candidate members
type GroupProposal struct {
	Name             string     `json:"name"`
	Topic            string     `json:"topic"`
	SkillLevel       SkillLevel `json:"skill_level"`
	MaxMembers       int        `json:"max_members"`
	Description      string     `json:"description"`
	CreatedBy        int64      `json:"created_by"`
	SuggestedMembers []int64    `json:"suggested_members"`
}

// Service builds matcher profiles from stored data and ranks candidate
// groups for a user.
type Service struct {
	// Clock is the time source; overridden in tests
	Clock func() time.Time

	users   UserSource
	stats   StatsSource
	groups  GroupSource
	matcher *Matcher
	log     *logger.Logger
}

// NewService creates a matching service over the given data sources
func NewService(users UserSource, stats StatsSource, groups GroupSource, log *logger.Logger) *Service {
	return &Service{
		Clock:   time.Now,
		users:   users,
		stats:   stats,
		groups:  groups,
		matcher: New(),
		log:     log,
	}
}

// UserProfile builds the matching profile for a user from stored account
// data and platform statistics.
func (s *Service) UserProfile(ctx context.Context, userID int64) (*UserProfile, error) {
	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	totalProblems, err := s.stats.TotalProblems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load platform stats for user %d: %w", userID, err)
	}

	schedule := user.PreferredSchedule
	if schedule == "" {
		schedule = "flexible"
	}

	return &UserProfile{
		UserID:             userID,
		SkillLevel:         DeriveSkillLevel(totalProblems),
		Interests:          ExtractInterests(user.LearningGoals),
		CodingHoursPerWeek: EstimateCodingHours(totalProblems),
		PreferredSchedule:  schedule,
		LearningGoals:      ParseGoals(user.LearningGoals),
	}, nil
}

// FindMatches ranks open study groups for a user and returns the best
// candidates above the compatibility threshold.
func (s *Service) FindMatches(ctx context.Context, userID int64, limit int) ([]Match, error) {
	profile, err := s.UserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	groups, err := s.groups.OpenGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load study groups: %w", err)
	}

	profiles := make([]GroupProfile, 0, len(groups))
	for _, group := range groups {
		gp, err := s.groupProfile(ctx, group)
		if err != nil {
			s.log.Warn("skipping group with unbuildable profile",
				"group_id", group.ID, "error", err)
			continue
		}
		profiles = append(profiles, *gp)
	}

	matches := s.matcher.Rank(*profile, profiles, limit)
	s.log.Info("ranked study groups",
		"user_id", userID, "candidates", len(profiles), "matches", len(matches))
	return matches, nil
}

// SuggestGroup proposes a new study group around the user, seeded with
// compatible students. Returns nil when fewer than two compatible members
// are found (a group needs at least three people).
func (s *Service) SuggestGroup(ctx context.Context, userID int64, topic string, skillLevel SkillLevel, maxMembers int) (*GroupProposal, error) {
	profile, err := s.UserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.compatibleUsers(ctx, profile, topic, skillLevel, maxMembers-1)
	if err != nil {
		return nil, err
	}
	if len(candidates) < 2 {
		s.log.Info("not enough compatible users for a new group",
			"user_id", userID, "topic", topic, "found", len(candidates))
		return nil, nil
	}

	return &GroupProposal{
		Name:             titleCase(topic) + " Study Group",
		Topic:            topic,
		SkillLevel:       skillLevel,
		MaxMembers:       maxMembers,
		Description:      fmt.Sprintf("A focused study group for %s at %s level", topic, skillLevel),
		CreatedBy:        userID,
		SuggestedMembers: candidates,
	}, nil
}

// groupProfile aggregates member profiles into a group profile
func (s *Service) groupProfile(ctx context.Context, group models.StudyGroup) (*GroupProfile, error) {
	members, err := s.groups.GroupMembers(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members of group %d: %w", group.ID, err)
	}

	distribution := map[SkillLevel]int{
		SkillBeginner:     0,
		SkillIntermediate: 0,
		SkillAdvanced:     0,
	}
	totalHours := 0.0
	for _, member := range members {
		mp, err := s.UserProfile(ctx, member.UserID)
		if err != nil {
			// A missing member profile degrades the aggregate, it does
			// not invalidate the group.
			s.log.Warn("failed to build member profile",
				"group_id", group.ID, "user_id", member.UserID, "error", err)
			continue
		}
		distribution[mp.SkillLevel]++
		totalHours += mp.CodingHoursPerWeek
	}

	memberCount := len(members)
	averageHours := 0.0
	if memberCount > 0 {
		averageHours = totalHours / float64(memberCount)
	}

	return &GroupProfile{
		GroupID:            group.ID,
		Name:               group.Name,
		Topic:              group.Topic,
		SkillLevel:         SkillLevel(strings.ToLower(group.SkillLevel)),
		CurrentSize:        memberCount,
		MaxSize:            group.MaxMembers,
		ActivityLevel:      ActivityLevel(group.CreatedAt, s.Clock()),
		SkillDistribution:  distribution,
		AverageCodingHours: averageHours,
		PreferredSchedule:  "flexible",
	}, nil
}

// titleCase upper-cases the first letter of each space-separated word
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// compatibleUsers finds students matching the given topic and skill level
// who are not already in a group.
func (s *Service) compatibleUsers(ctx context.Context, profile *UserProfile, topic string, skillLevel SkillLevel, maxUsers int) ([]int64, error) {
	available, err := s.users.AvailableStudents(ctx, profile.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load available students: %w", err)
	}

	topicLower := strings.ToLower(topic)
	var compatible []int64
	for _, user := range available {
		candidate, err := s.UserProfile(ctx, user.ID)
		if err != nil {
			continue
		}
		if candidate.SkillLevel != skillLevel {
			continue
		}
		for _, interest := range candidate.Interests {
			if strings.Contains(strings.ToLower(interest), topicLower) {
				compatible = append(compatible, user.ID)
				break
			}
		}
		if maxUsers > 0 && len(compatible) >= maxUsers {
			break
		}
	}
	return compatible, nil
}
