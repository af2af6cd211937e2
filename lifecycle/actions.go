package lifecycle

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/volunteer-connect-backend/errs"
	"github.com/rpupo63/volunteer-connect-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Store is the persistence the actions write through.
//
// SelectProject and TransitionStatus are conditional: they only apply while the project is
// still in the expected status and otherwise return an errs.ErrInvalidState error.
// SelectProject creates the application and moves the project to In Progress atomically.
type Store interface {
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListApplicationsForProject(ctx context.Context, projectID uuid.UUID) ([]models.Application, error)
	SelectProject(ctx context.Context, projectID uuid.UUID, volunteerID string) (*models.Application, error)
	TransitionStatus(ctx context.Context, projectID uuid.UUID, from, to models.Status) error
	DeleteProject(ctx context.Context, projectID uuid.UUID) error
}

// Notifier hears about successful selections. Failures are logged, never returned.
type Notifier interface {
	ProjectSelected(ctx context.Context, project models.Project, application models.Application) error
}

type Actions struct {
	store    Store
	notifier Notifier
	logger   zerolog.Logger
}

// NewActions builds the action executor. notifier may be nil.
func NewActions(store Store, notifier Notifier) *Actions {
	return &Actions{
		store:    store,
		notifier: notifier,
		logger:   log.With().Str("component", "lifecycle").Logger(),
	}
}

// Selection is the outcome of a successful select.
type Selection struct {
	Project     models.Project     `json:"project"`
	Application models.Application `json:"application"`
}

// Select files an application for actorID and moves the project to In Progress.
func (a *Actions) Select(ctx context.Context, projectID uuid.UUID, actorID string) (*Selection, error) {
	if actorID == "" {
		return nil, errs.NewNoActorError(string(ActionSelect))
	}

	project, err := a.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	applications, err := a.store.ListApplicationsForProject(ctx, projectID)
	if err != nil {
		return nil, errs.NewDependencyFailure("load applications", err)
	}
	if err := CanSelect(*project, applications, actorID); err != nil {
		return nil, err
	}
	next, _ := Next(project.Status, ActionSelect)

	application, err := a.store.SelectProject(ctx, projectID, actorID)
	if err != nil {
		return nil, passOrWrap("select project", err)
	}
	project.Status = next

	a.logger.Info().
		Str("projectID", projectID.String()).
		Str("volunteerID", actorID).
		Msg("project selected")

	if a.notifier != nil {
		if err := a.notifier.ProjectSelected(ctx, *project, *application); err != nil {
			a.logger.Warn().Err(err).Str("projectID", projectID.String()).Msg("failed to notify project creator")
		}
	}

	return &Selection{Project: *project, Application: *application}, nil
}

// Complete marks an In Progress project Completed on behalf of its creator.
func (a *Actions) Complete(ctx context.Context, projectID uuid.UUID, actorID string) (*models.Project, error) {
	if actorID == "" {
		return nil, errs.NewNoActorError(string(ActionComplete))
	}

	project, err := a.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := CanComplete(*project, actorID); err != nil {
		return nil, err
	}
	next, _ := Next(project.Status, ActionComplete)

	if err := a.store.TransitionStatus(ctx, projectID, project.Status, next); err != nil {
		return nil, passOrWrap("complete project", err)
	}
	project.Status = next

	a.logger.Info().Str("projectID", projectID.String()).Msg("project completed")
	return project, nil
}

// Delete removes a project, whatever its status, on behalf of its creator.
func (a *Actions) Delete(ctx context.Context, projectID uuid.UUID, actorID string) error {
	if actorID == "" {
		return errs.NewNoActorError(string(ActionDelete))
	}

	project, err := a.load(ctx, projectID)
	if err != nil {
		return err
	}
	if err := CanDelete(*project, actorID); err != nil {
		return err
	}

	if err := a.store.DeleteProject(ctx, projectID); err != nil {
		return passOrWrap("delete project", err)
	}

	a.logger.Info().Str("projectID", projectID.String()).Str("status", string(project.Status)).Msg("project deleted")
	return nil
}

func (a *Actions) load(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	project, err := a.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, errs.NewDependencyFailure("load project", err)
	}
	if project == nil {
		return nil, errs.NewNotFound("project")
	}
	return project, nil
}

// passOrWrap keeps rule violations the store detected (a lost compare-and-set, a duplicate
// application) and reports everything else as a dependency failure.
func passOrWrap(operation string, err error) error {
	if errs.IsInvalidState(err) || errs.IsActionUnauthorized(err) {
		return err
	}
	return errs.NewDependencyFailure(operation, err)
}
