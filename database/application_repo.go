package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/volunteer-connect-backend/errs"
	"github.com/rpupo63/volunteer-connect-backend/models"
	"gorm.io/gorm"
)

type ApplicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) *ApplicationRepo {
	return &ApplicationRepo{db}
}

// FindAll returns every application, oldest first
func (r *ApplicationRepo) FindAll(ctx context.Context) ([]models.Application, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindByProject returns the applications filed against one project
func (r *ApplicationRepo) FindByProject(ctx context.Context, projectID uuid.UUID) ([]models.Application, error) {
	return r.find(r.db.WithContext(ctx).Where("project_id = ?", projectID))
}

// FindByVolunteer returns the applications one volunteer has filed
func (r *ApplicationRepo) FindByVolunteer(ctx context.Context, volunteerID string) ([]models.Application, error) {
	return r.find(r.db.WithContext(ctx).Where("volunteer_id = ?", volunteerID))
}

func (r *ApplicationRepo) find(query *gorm.DB) ([]models.Application, error) {
	applications := []models.Application{}
	if err := query.Order("applied_at ASC, id ASC").Find(&applications).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "applications", err)
	}
	return applications, nil
}

// Add inserts a new application. A second application by the same volunteer for the same
// project violates idx_application_unique and is reported as already applied.
func (r *ApplicationRepo) Add(ctx context.Context, application *models.Application) error {
	if application.ID == uuid.Nil {
		application.ID = uuid.New()
	}
	if application.Status == "" {
		application.Status = models.ApplicationApplied
	}
	if application.AppliedAt.IsZero() {
		application.AppliedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(application).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewAlreadyAppliedError()
		}
		return errs.NewDatabaseError("create", "application", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key")
}
