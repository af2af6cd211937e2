package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rpupo63/volunteer-connect-backend/errs"
	"github.com/rpupo63/volunteer-connect-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// FindByID returns the profile of one user
func (r *ProfileRepo) FindByID(ctx context.Context, id string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("profile")
		}
		return nil, errs.NewDatabaseError("find", "profile", err)
	}
	return &profile, nil
}

// Upsert creates the profile or replaces every field of the existing one
func (r *ProfileRepo) Upsert(ctx context.Context, profile *models.UserProfile) error {
	profile.UpdatedAt = time.Now().UTC()
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(profile).Error
	if err != nil {
		return errs.NewDatabaseError("save", "profile", err)
	}
	return nil
}

// ListVolunteers returns volunteer profiles by name. A non-empty skill keeps only the
// volunteers listing it, compared case-insensitively.
func (r *ProfileRepo) ListVolunteers(ctx context.Context, skill string) ([]models.UserProfile, error) {
	profiles := []models.UserProfile{}
	err := r.db.WithContext(ctx).
		Where("role = ?", models.RoleVolunteer).
		Order("name ASC, id ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", "volunteers", err)
	}

	skill = strings.TrimSpace(skill)
	if skill == "" {
		return profiles, nil
	}
	return filterBySkill(profiles, skill), nil
}

func filterBySkill(profiles []models.UserProfile, skill string) []models.UserProfile {
	out := []models.UserProfile{}
	for _, p := range profiles {
		for _, s := range p.Skills {
			if strings.EqualFold(strings.TrimSpace(s), skill) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
