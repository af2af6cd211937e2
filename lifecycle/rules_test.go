package lifecycle

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/volunteer-connect-backend/errs"
	"github.com/rpupo63/volunteer-connect-backend/models"
	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	tests := []struct {
		name    string
		status  models.Status
		action  Action
		want    models.Status
		wantErr bool
	}{
		{"select open", models.StatusOpen, ActionSelect, models.StatusInProgress, false},
		{"select in progress", models.StatusInProgress, ActionSelect, models.StatusInProgress, true},
		{"select completed", models.StatusCompleted, ActionSelect, models.StatusCompleted, true},
		{"complete in progress", models.StatusInProgress, ActionComplete, models.StatusCompleted, false},
		{"complete open", models.StatusOpen, ActionComplete, models.StatusOpen, true},
		{"complete completed", models.StatusCompleted, ActionComplete, models.StatusCompleted, true},
		{"delete open", models.StatusOpen, ActionDelete, models.StatusOpen, false},
		{"delete completed", models.StatusCompleted, ActionDelete, models.StatusCompleted, false},
		{"unknown status", models.Status("Archived"), ActionDelete, models.Status("Archived"), true},
		{"unknown action", models.StatusOpen, Action("reopen"), models.StatusOpen, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.status, tt.action)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.True(t, errs.IsInvalidState(err), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanSelect(t *testing.T) {
	open := models.Project{ID: uuid.New(), CreatorID: "u1", Status: models.StatusOpen}
	inProgress := models.Project{ID: uuid.New(), CreatorID: "u1", Status: models.StatusInProgress}
	applied := []models.Application{{ProjectID: open.ID, VolunteerID: "u2"}}
	elsewhere := []models.Application{{ProjectID: inProgress.ID, VolunteerID: "u2"}}

	tests := []struct {
		name         string
		project      models.Project
		applications []models.Application
		actor        string
		check        func(error) bool
	}{
		{"volunteer on open project", open, nil, "u2", nil},
		{"application on another project", open, elsewhere, "u2", nil},
		{"anonymous", open, nil, "", errs.IsActionUnauthorized},
		{"creator", open, nil, "u1", errs.IsActionUnauthorized},
		{"in progress", inProgress, nil, "u2", errs.IsInvalidState},
		{"already applied", open, applied, "u2", errs.IsInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanSelect(tt.project, tt.applications, tt.actor)
			if tt.check == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tt.check(err), "got %v", err)
		})
	}
}

func TestCanComplete(t *testing.T) {
	inProgress := models.Project{ID: uuid.New(), CreatorID: "u1", Status: models.StatusInProgress}
	open := models.Project{ID: uuid.New(), CreatorID: "u1", Status: models.StatusOpen}
	completed := models.Project{ID: uuid.New(), CreatorID: "u1", Status: models.StatusCompleted}

	assert.NoError(t, CanComplete(inProgress, "u1"))
	assert.ErrorIs(t, CanComplete(inProgress, "u2"), errs.ErrNotOwner)
	assert.ErrorIs(t, CanComplete(inProgress, ""), errs.ErrNoActor)
	assert.True(t, errs.IsInvalidState(CanComplete(open, "u1")))
	assert.True(t, errs.IsInvalidState(CanComplete(completed, "u1")))
	assert.True(t, errs.IsActionUnauthorized(CanComplete(open, "u2")))
}

func TestCanDelete(t *testing.T) {
	for _, status := range []models.Status{models.StatusOpen, models.StatusInProgress, models.StatusCompleted} {
		p := models.Project{ID: uuid.New(), CreatorID: "u1", Status: status}
		assert.NoError(t, CanDelete(p, "u1"), string(status))
		assert.ErrorIs(t, CanDelete(p, "u2"), errs.ErrNotOwner, string(status))
	}
	assert.ErrorIs(t, CanDelete(models.Project{CreatorID: "u1"}, ""), errs.ErrNoActor)
}
