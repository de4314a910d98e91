package database

import (
	"context"
	"fmt"

	"github.com/example/codetrack/pkg/models"
)

// StudyGroupRepository handles database operations for study groups and
// their membership
type StudyGroupRepository struct{}

// NewStudyGroupRepository creates a new repository instance
func NewStudyGroupRepository() *StudyGroupRepository {
	return &StudyGroupRepository{}
}

// Create inserts a new study group and enrolls its creator as moderator
func (r *StudyGroupRepository) Create(ctx context.Context, group *models.StudyGroup) error {
	if group.MaxMembers <= 0 {
		group.MaxMembers = 10
	}
	group.IsActive = true

	if Dialect() == "postgres" {
		query := `
			INSERT INTO study_groups (
				name, description, topic, skill_level, max_members, created_by, is_active
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at
		`
		if err := DB.QueryRowContext(ctx, query,
			group.Name, group.Description, group.Topic, group.SkillLevel,
			group.MaxMembers, group.CreatedBy, group.IsActive,
		).Scan(&group.ID, &group.CreatedAt); err != nil {
			return fmt.Errorf("failed to create study group: %w", err)
		}
	} else {
		result, err := DB.ExecContext(ctx, `
			INSERT INTO study_groups (
				name, description, topic, skill_level, max_members, created_by, is_active
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			group.Name, group.Description, group.Topic, group.SkillLevel,
			group.MaxMembers, group.CreatedBy, group.IsActive,
		)
		if err != nil {
			return fmt.Errorf("failed to create study group: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert ID: %w", err)
		}
		group.ID = id
		if err := DB.QueryRowContext(ctx,
			"SELECT created_at FROM study_groups WHERE id = $1", group.ID,
		).Scan(&group.CreatedAt); err != nil {
			return fmt.Errorf("failed to read created group: %w", err)
		}
	}

	return r.AddMember(ctx, group.ID, group.CreatedBy, "moderator")
}

// AddMember enrolls a user in a group
func (r *StudyGroupRepository) AddMember(ctx context.Context, groupID, userID int64, role string) error {
	if role == "" {
		role = "member"
	}
	_, err := DB.ExecContext(ctx, `
		INSERT INTO study_group_members (group_id, user_id, role)
		VALUES ($1, $2, $3)
	`, groupID, userID, role)
	if err != nil {
		return fmt.Errorf("failed to add member %d to group %d: %w", userID, groupID, err)
	}
	return nil
}

// OpenGroups returns active groups that still have room for new members,
// with MemberCount populated.
func (r *StudyGroupRepository) OpenGroups(ctx context.Context) ([]models.StudyGroup, error) {
	var groups []models.StudyGroup
	err := DB.SelectContext(ctx, &groups, `
		SELECT g.*, COUNT(m.id) AS member_count
		FROM study_groups g
		LEFT JOIN study_group_members m ON m.group_id = g.id
		WHERE g.is_active = TRUE
		GROUP BY g.id
		HAVING COUNT(m.id) < g.max_members
		ORDER BY g.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get open study groups: %w", err)
	}
	return groups, nil
}

// GroupMembers returns the membership rows of one group
func (r *StudyGroupRepository) GroupMembers(ctx context.Context, groupID int64) ([]models.StudyGroupMember, error) {
	var members []models.StudyGroupMember
	err := DB.SelectContext(ctx, &members, `
		SELECT * FROM study_group_members
		WHERE group_id = $1
		ORDER BY joined_at ASC
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members of group %d: %w", groupID, err)
	}
	return members, nil
}
