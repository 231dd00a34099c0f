package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/classroom-intro-service/internal/models"
	"github.com/SAP-F-2025/classroom-intro-service/internal/repositories"
)

type ProfilePostgreSQL struct {
	db *gorm.DB
}

func NewProfilePostgreSQL(db *gorm.DB) repositories.ProfileRepository {
	return &ProfilePostgreSQL{db: db}
}

// Upsert writes the profile as a single conflict-aware insert keyed on the
// (user_id, course_id) unique index. All six fields are overwritten and
// updated_at refreshed when the row already exists, so the operation stays
// race-safe under the database's own constraint enforcement.
func (p *ProfilePostgreSQL) Upsert(ctx context.Context, profile *models.Profile) error {
	err := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"preferred_name", "pronouns", "major",
				"goals", "fun_fact", "learning_needs", "updated_at",
			}),
		}).
		Create(profile).Error
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func (p *ProfilePostgreSQL) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*models.Profile, error) {
	var profile models.Profile
	err := p.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// SearchByCourse matches query as a case-insensitive substring against the
// owner's display name and email and the profile's preferred name and
// major. The course_id filter is always applied; an empty query matches
// every profile in the course. Results are ordered by owner display name.
func (p *ProfilePostgreSQL) SearchByCourse(ctx context.Context, courseID uint, query string) ([]*repositories.ProfileWithOwner, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var rows []*repositories.ProfileWithOwner
	err := p.db.WithContext(ctx).
		Table("student_profiles AS sp").
		Select("sp.id, sp.user_id, sp.course_id, sp.preferred_name, sp.pronouns, sp.major, sp.goals, sp.fun_fact, sp.learning_needs, sp.updated_at, u.display_name AS owner_name, u.email AS owner_email").
		Joins("JOIN users u ON u.id = sp.user_id").
		Where("sp.course_id = ?", courseID).
		Where("LOWER(u.display_name) LIKE ? OR LOWER(u.email) LIKE ? OR LOWER(sp.preferred_name) LIKE ? OR LOWER(sp.major) LIKE ?",
			pattern, pattern, pattern, pattern).
		Order("u.display_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}
	return rows, nil
}
