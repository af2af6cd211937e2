// Package classify partitions projects into the lists a given user sees.
//
// Every function is pure: inputs are never mutated, nothing is cached between calls, and
// no function fails. Results never repeat a project id (the first occurrence wins) and are
// never nil, so they encode as [] rather than null.
package classify

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/volunteer-connect-backend/models"
)

// CreatedByUser returns the projects whose creator is userID, in input order.
func CreatedByUser(projects []models.Project, userID string) []models.Project {
	if userID == "" {
		return []models.Project{}
	}
	return keep(projects, func(p models.Project) bool {
		return p.CreatorID == userID
	})
}

// VolunteeredByUser returns the projects userID has an application for, in project order.
// Applications pointing at projects missing from projects are ignored.
func VolunteeredByUser(projects []models.Project, applications []models.Application, userID string) []models.Project {
	if userID == "" {
		return []models.Project{}
	}
	applied := appliedProjectIDs(applications, userID)
	return keep(projects, func(p models.Project) bool {
		return applied[p.ID]
	})
}

// DiscoverableByUser returns every project userID neither created nor applied to.
// An anonymous caller (empty userID) sees all projects.
func DiscoverableByUser(projects []models.Project, applications []models.Application, userID string) []models.Project {
	if userID == "" {
		return keep(projects, func(models.Project) bool { return true })
	}
	applied := appliedProjectIDs(applications, userID)
	return keep(projects, func(p models.Project) bool {
		return p.CreatorID != userID && !applied[p.ID]
	})
}

// FilterByStatus keeps projects whose status equals status exactly. An empty status or
// models.StatusAll disables filtering.
func FilterByStatus(projects []models.Project, status models.Status) []models.Project {
	if status == "" || status == models.StatusAll {
		return keep(projects, func(models.Project) bool { return true })
	}
	return keep(projects, func(p models.Project) bool {
		return p.Status == status
	})
}

// FilterBySkills keeps projects requiring at least one of skills, compared
// case-insensitively. No skills disables filtering.
func FilterBySkills(projects []models.Project, skills []string) []models.Project {
	wanted := make(map[string]bool, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			wanted[strings.ToLower(s)] = true
		}
	}
	if len(wanted) == 0 {
		return keep(projects, func(models.Project) bool { return true })
	}
	return keep(projects, func(p models.Project) bool {
		for _, s := range p.Skills {
			if wanted[strings.ToLower(s.Value)] {
				return true
			}
		}
		return false
	})
}

// Latest returns up to n projects, newest CreatedAt first. Equal timestamps keep their
// input order.
func Latest(projects []models.Project, n int) []models.Project {
	if n <= 0 {
		return []models.Project{}
	}
	out := keep(projects, func(models.Project) bool { return true })
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func appliedProjectIDs(applications []models.Application, userID string) map[uuid.UUID]bool {
	ids := make(map[uuid.UUID]bool)
	for _, a := range applications {
		if a.VolunteerID == userID {
			ids[a.ProjectID] = true
		}
	}
	return ids
}

// keep copies the projects matching pred into a fresh slice, skipping repeated ids.
func keep(projects []models.Project, pred func(models.Project) bool) []models.Project {
	out := make([]models.Project, 0, len(projects))
	seen := make(map[uuid.UUID]bool, len(projects))
	for _, p := range projects {
		if seen[p.ID] || !pred(p) {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}
