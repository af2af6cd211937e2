package classify

import "github.com/rpupo63/volunteer-connect-backend/models"

// Board is everything a signed-in user's screens show, computed from one snapshot.
type Board struct {
	Created      []models.Project `json:"created"`
	Volunteered  []models.Project `json:"volunteered"`
	Discoverable []models.Project `json:"discoverable"`
}

// BuildBoard classifies one snapshot for userID and applies the status filter to each list.
func BuildBoard(projects []models.Project, applications []models.Application, userID string, status models.Status) Board {
	return Board{
		Created:      FilterByStatus(CreatedByUser(projects, userID), status),
		Volunteered:  FilterByStatus(VolunteeredByUser(projects, applications, userID), status),
		Discoverable: FilterByStatus(DiscoverableByUser(projects, applications, userID), status),
	}
}
