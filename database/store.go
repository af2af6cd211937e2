package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/volunteer-connect-backend/changefeed"
	"github.com/rpupo63/volunteer-connect-backend/errs"
	"github.com/rpupo63/volunteer-connect-backend/models"
	"gorm.io/gorm"
)

// The methods below are what the rest of the service goes through. Every write announces
// what it committed on the change feed.

// GetProject returns a project by id.
func (d *Database) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return d.projectRepo.FindByID(ctx, id)
}

// ListApplicationsForProject returns the applications filed against a project.
func (d *Database) ListApplicationsForProject(ctx context.Context, projectID uuid.UUID) ([]models.Application, error) {
	return d.applicationRepo.FindByProject(ctx, projectID)
}

// CreateProject stores a new project and its skills.
func (d *Database) CreateProject(ctx context.Context, project *models.Project) error {
	if err := d.projectRepo.Add(ctx, project); err != nil {
		return err
	}
	d.publish(ctx, changefeed.Projects, changefeed.Change{Op: changefeed.OpCreate, ID: project.ID, ProjectID: project.ID})
	return nil
}

// SelectProject moves an Open project to In Progress and files the volunteer's application
// in one transaction. If the project left Open in the meantime nothing is written.
func (d *Database) SelectProject(ctx context.Context, projectID uuid.UUID, volunteerID string) (*models.Application, error) {
	application := models.Application{
		ProjectID:   projectID,
		VolunteerID: volunteerID,
		Status:      models.ApplicationApplied,
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewProjectRepo(tx).UpdateStatus(ctx, projectID, models.StatusOpen, models.StatusInProgress); err != nil {
			return err
		}
		return NewApplicationRepo(tx).Add(ctx, &application)
	})
	if err != nil {
		return nil, err
	}

	d.publish(ctx, changefeed.Projects, changefeed.Change{Op: changefeed.OpUpdate, ID: projectID, ProjectID: projectID})
	d.publish(ctx, changefeed.Applications, changefeed.Change{Op: changefeed.OpCreate, ID: application.ID, ProjectID: projectID})
	return &application, nil
}

// TransitionStatus moves a project from one status to another if it is still in from.
func (d *Database) TransitionStatus(ctx context.Context, projectID uuid.UUID, from, to models.Status) error {
	if err := d.projectRepo.UpdateStatus(ctx, projectID, from, to); err != nil {
		return err
	}
	d.publish(ctx, changefeed.Projects, changefeed.Change{Op: changefeed.OpUpdate, ID: projectID, ProjectID: projectID})
	return nil
}

// DeleteProject removes a project and everything hanging off it.
func (d *Database) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	if err := d.projectRepo.Delete(ctx, projectID); err != nil {
		return err
	}
	d.publish(ctx, changefeed.Projects, changefeed.Change{Op: changefeed.OpDelete, ID: projectID, ProjectID: projectID})
	d.publish(ctx, changefeed.Applications, changefeed.Change{Op: changefeed.OpDelete, ProjectID: projectID})
	return nil
}

// SaveProfile creates or replaces a user profile.
func (d *Database) SaveProfile(ctx context.Context, profile *models.UserProfile) error {
	if profile.ID == "" {
		return errs.NewMissingRequiredFieldError("id")
	}
	return d.profileRepo.Upsert(ctx, profile)
}

// FindProfile returns a user's stored profile.
func (d *Database) FindProfile(ctx context.Context, id string) (*models.UserProfile, error) {
	return d.profileRepo.FindByID(ctx, id)
}

// ListVolunteers returns the volunteer directory, optionally narrowed to one skill.
func (d *Database) ListVolunteers(ctx context.Context, skill string) ([]models.UserProfile, error) {
	return d.profileRepo.ListVolunteers(ctx, skill)
}
