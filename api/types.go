package api

import (
	"context"

	"github.com/rpupo63/volunteer-connect-backend/changefeed"
	"github.com/rpupo63/volunteer-connect-backend/database"
	"github.com/rpupo63/volunteer-connect-backend/lifecycle"
	"github.com/rpupo63/volunteer-connect-backend/models"
)

// Store is everything the handlers read and write. *database.Database implements it.
type Store interface {
	lifecycle.Store
	Ping(ctx context.Context) error
	LoadSnapshot(ctx context.Context) (database.Snapshot, error)
	CreateProject(ctx context.Context, project *models.Project) error
	SaveProfile(ctx context.Context, profile *models.UserProfile) error
	FindProfile(ctx context.Context, id string) (*models.UserProfile, error)
	ListVolunteers(ctx context.Context, skill string) ([]models.UserProfile, error)
}

// Subscriber delivers change notifications. *changefeed.Feed implements it.
type Subscriber interface {
	Subscribe(ctx context.Context, collection string, onChange func(changefeed.Change)) (func(), error)
}

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler  healthHandler
	projectHandler projectHandler
	streamHandler  streamHandler
	profileHandler profileHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// ProjectCollection represents a list of projects
type ProjectCollection struct {
	Projects []models.Project `json:"projects"`
	Total    int              `json:"total"`
}

// CreateProjectRequest is the body of POST /project
type CreateProjectRequest struct {
	Title          string   `json:"title" validate:"required,min=5"`
	Description    string   `json:"description" validate:"required,min=20"`
	TimeCommitment string   `json:"timeCommitment" validate:"required,min=3"`
	Skills         []string `json:"skills" validate:"required,min=1,dive,required"`
}

// ProfileRequest is the body of PUT /me/profile
type ProfileRequest struct {
	Name         string      `json:"name" validate:"required,max=120"`
	Role         models.Role `json:"role" validate:"required,oneof=volunteer non-profit"`
	Tagline      string      `json:"tagline" validate:"max=140"`
	Experience   string      `json:"experience" validate:"max=2000"`
	Availability string      `json:"availability" validate:"max=120"`
	Skills       []string    `json:"skills" validate:"dive,required"`
}

// DashboardResponse is the signed-in user's own projects
type DashboardResponse struct {
	Created     []models.Project `json:"created"`
	Volunteered []models.Project `json:"volunteered"`
}
