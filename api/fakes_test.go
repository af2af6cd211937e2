package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/volunteer-connect-backend/database"
	"github.com/rpupo63/volunteer-connect-backend/errs"
	"github.com/rpupo63/volunteer-connect-backend/identity"
	"github.com/rpupo63/volunteer-connect-backend/models"
)

// memStore is an in-memory Store with the same conditional writes as the database.
type memStore struct {
	mu           sync.Mutex
	projects     []models.Project
	applications []models.Application
	profiles     map[string]models.UserProfile
	failWith     error
}

func newMemStore() *memStore {
	return &memStore{profiles: map[string]models.UserProfile{}}
}

func (s *memStore) fail() error {
	if s.failWith != nil {
		return errs.NewDatabaseError("query", "projects", s.failWith)
	}
	return nil
}

func (s *memStore) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failWith
}

func (s *memStore) LoadSnapshot(context.Context) (database.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return database.Snapshot{}, err
	}
	return database.Snapshot{
		Projects:     append([]models.Project{}, s.projects...),
		Applications: append([]models.Application{}, s.applications...),
	}, nil
}

func (s *memStore) index(id uuid.UUID) int {
	for i, p := range s.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *memStore) GetProject(_ context.Context, id uuid.UUID) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	i := s.index(id)
	if i < 0 {
		return nil, errs.NewNotFound("project")
	}
	p := s.projects[i]
	return &p, nil
}

func (s *memStore) ListApplicationsForProject(_ context.Context, projectID uuid.UUID) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Application{}
	for _, a := range s.applications {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memStore) CreateProject(_ context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	for i := range project.Skills {
		project.Skills[i].ProjectID = project.ID
		project.Skills[i].Position = i
	}
	s.projects = append(s.projects, *project)
	return nil
}

func (s *memStore) SelectProject(_ context.Context, projectID uuid.UUID, volunteerID string) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(projectID)
	if i < 0 {
		return nil, errs.NewNotFound("project")
	}
	if s.projects[i].Status != models.StatusOpen {
		return nil, errs.NewStatusChangedError("update", string(models.StatusOpen))
	}
	s.projects[i].Status = models.StatusInProgress
	a := models.Application{ID: uuid.New(), ProjectID: projectID, VolunteerID: volunteerID, Status: models.ApplicationApplied, AppliedAt: time.Now().UTC()}
	s.applications = append(s.applications, a)
	return &a, nil
}

func (s *memStore) TransitionStatus(_ context.Context, projectID uuid.UUID, from, to models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(projectID)
	if i < 0 {
		return errs.NewNotFound("project")
	}
	if s.projects[i].Status != from {
		return errs.NewStatusChangedError("update", string(from))
	}
	s.projects[i].Status = to
	return nil
}

func (s *memStore) DeleteProject(_ context.Context, projectID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(projectID)
	if i < 0 {
		return errs.NewNotFound("project")
	}
	s.projects = append(s.projects[:i], s.projects[i+1:]...)
	kept := s.applications[:0]
	for _, a := range s.applications {
		if a.ProjectID != projectID {
			kept = append(kept, a)
		}
	}
	s.applications = kept
	return nil
}

func (s *memStore) SaveProfile(_ context.Context, profile *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.ID] = *profile
	return nil
}

func (s *memStore) FindProfile(_ context.Context, id string) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, errs.NewNotFound("profile")
	}
	return &p, nil
}

func (s *memStore) ListVolunteers(_ context.Context, skill string) ([]models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.UserProfile{}
	for _, p := range s.profiles {
		if p.Role != models.RoleVolunteer {
			continue
		}
		if skill == "" {
			out = append(out, p)
			continue
		}
		for _, name := range p.Skills {
			if strings.EqualFold(name, skill) {
				out = append(out, p)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// tokenVerifier accepts "token-<uid>" for the users it knows.
type tokenVerifier struct {
	users map[string]identity.User
}

func (v tokenVerifier) Verify(_ context.Context, token string) (*identity.User, error) {
	if token == "" {
		return nil, errs.NewMissingTokenError()
	}
	user, ok := v.users[strings.TrimPrefix(token, "token-")]
	if !ok || !strings.HasPrefix(token, "token-") {
		return nil, errs.NewInvalidTokenError(nil)
	}
	return &user, nil
}

var testUsers = tokenVerifier{users: map[string]identity.User{
	"u1": {ID: "u1", DisplayName: "Helping Hands", Email: "u1@example.org", AvatarURL: "https://example.org/u1.png"},
	"u2": {ID: "u2", DisplayName: "Sam", Email: "u2@example.org"},
	"u3": {ID: "u3"},
}}

func newTestRouter(store Store, feed Subscriber) http.Handler {
	return newRouter(store, testUsers,
		withConfig(map[string]string{
			"ACCEPTED_ORIGINS":         "http://localhost:3000",
			"STREAM_KEEPALIVE_SECONDS": "1",
		}),
		withFeed(feed),
	)
}

func request(t testing.TB, h http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("Authorization", "Bearer token-"+user)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
