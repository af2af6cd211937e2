// Package lifecycle decides which project actions are legal and carries them out.
//
// A project moves Open -> In Progress (a volunteer selects it) -> Completed (its creator
// completes it). Completed is terminal. The creator may delete a project in any status.
package lifecycle

import (
	"github.com/google/uuid"
	"github.com/rpupo63/volunteer-connect-backend/errs"
	"github.com/rpupo63/volunteer-connect-backend/models"
)

type Action string

const (
	ActionSelect   Action = "select"
	ActionComplete Action = "complete"
	ActionDelete   Action = "delete"
)

// Next returns the status a project in status ends up in after action.
// Delete leaves the status as is; the project is removed instead.
func Next(status models.Status, action Action) (models.Status, error) {
	if !status.Valid() {
		return status, errs.NewInvalidStateError(string(action), string(status))
	}
	switch action {
	case ActionSelect:
		if status == models.StatusOpen {
			return models.StatusInProgress, nil
		}
	case ActionComplete:
		if status == models.StatusInProgress {
			return models.StatusCompleted, nil
		}
	case ActionDelete:
		return status, nil
	}
	return status, errs.NewInvalidStateError(string(action), string(status))
}

// CanSelect reports whether actorID may select p, given the applications already filed
// against it.
func CanSelect(p models.Project, applications []models.Application, actorID string) error {
	if actorID == "" {
		return errs.NewNoActorError(string(ActionSelect))
	}
	if p.CreatorID == actorID {
		return errs.NewOwnProjectError()
	}
	if _, err := Next(p.Status, ActionSelect); err != nil {
		return err
	}
	if hasApplied(applications, p.ID, actorID) {
		return errs.NewAlreadyAppliedError()
	}
	return nil
}

// CanComplete reports whether actorID may complete p.
func CanComplete(p models.Project, actorID string) error {
	if err := requireOwner(p, actorID, ActionComplete); err != nil {
		return err
	}
	_, err := Next(p.Status, ActionComplete)
	return err
}

// CanDelete reports whether actorID may delete p.
func CanDelete(p models.Project, actorID string) error {
	return requireOwner(p, actorID, ActionDelete)
}

func requireOwner(p models.Project, actorID string, action Action) error {
	if actorID == "" {
		return errs.NewNoActorError(string(action))
	}
	if p.CreatorID != actorID {
		return errs.NewNotOwnerError(string(action))
	}
	return nil
}

func hasApplied(applications []models.Application, projectID uuid.UUID, volunteerID string) bool {
	for _, a := range applications {
		if a.ProjectID == projectID && a.VolunteerID == volunteerID {
			return true
		}
	}
	return false
}
