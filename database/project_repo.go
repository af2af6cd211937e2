package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/volunteer-connect-backend/errs"
	"github.com/rpupo63/volunteer-connect-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

func preloadSkills(db *gorm.DB) *gorm.DB {
	return db.Preload("Skills", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// FindAll returns all projects with their skills, oldest first
func (r *ProjectRepo) FindAll(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	err := preloadSkills(r.db.WithContext(ctx)).
		Order("created_at ASC, id ASC").
		Find(&projects).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}
	return projects, nil
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := preloadSkills(r.db.WithContext(ctx)).First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("project")
		}
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	return &project, nil
}

// Add inserts a new project and its skills
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.Status == "" {
		project.Status = models.StatusOpen
	}
	for i := range project.Skills {
		project.Skills[i].ProjectID = project.ID
		project.Skills[i].Position = i
	}
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return errs.NewDatabaseError("create", "project", err)
	}
	return nil
}

// UpdateStatus moves a project from one status to another in a single conditional update.
// It fails with a status-changed error when the project is no longer in from.
func (r *ProjectRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.Status) error {
	res := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return errs.NewDatabaseError("update", "project", res.Error)
	}
	if res.RowsAffected == 0 {
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewNotFound("project")
		}
		return errs.NewStatusChangedError("update", string(from))
	}
	return nil
}

// Delete removes a project by id together with its skills and applications
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return errs.NewDatabaseError("delete", "applications", err)
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectSkill{}).Error; err != nil {
			return errs.NewDatabaseError("delete", "project skills", err)
		}
		res := tx.Delete(&models.Project{}, "id = ?", id)
		if res.Error != nil {
			return errs.NewDatabaseError("delete", "project", res.Error)
		}
		if res.RowsAffected == 0 {
			return errs.NewNotFound("project")
		}
		return nil
	})
}

func (r *ProjectRepo) exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, errs.NewDatabaseError("find", "project", err)
	}
	return count > 0, nil
}
