package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rpupo63/volunteer-connect-backend/classify"
	"github.com/rpupo63/volunteer-connect-backend/errs"
	"github.com/rpupo63/volunteer-connect-backend/lifecycle"
	"github.com/rpupo63/volunteer-connect-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultLatestCount = 6

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     Store
	actions   *lifecycle.Actions
	validate  *validator.Validate
}

func newProjectHandler(store Store, actions *lifecycle.Actions, validate *validator.Validate) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		actions:   actions,
		validate:  validate,
	}
}

func parseProjectID(r *http.Request) (uuid.UUID, error) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing projectID")
	}
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestErrorWithField("invalid projectID", "projectID", err.Error())
	}
	return projectID, nil
}

// parseStatusFilter reads ?status=. Empty and "All" mean no filtering.
func parseStatusFilter(r *http.Request) (models.Status, error) {
	status := models.Status(strings.TrimSpace(r.URL.Query().Get("status")))
	if status == "" || status == models.StatusAll || status.Valid() {
		return status, nil
	}
	return "", errs.NewInvalidFieldError("status", "must be one of: All, Open, In Progress, Completed")
}

// parseSkills reads ?skill= which may repeat or hold a comma separated list.
func parseSkills(r *http.Request) []string {
	var skills []string
	for _, value := range r.URL.Query()["skill"] {
		for _, s := range strings.Split(value, ",") {
			if s = strings.TrimSpace(s); s != "" {
				skills = append(skills, s)
			}
		}
	}
	return skills
}

func parseCount(r *http.Request, key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, errs.NewInvalidFieldError(key, "must be a non-negative integer")
	}
	return n, nil
}

// getSkills returns the skill catalog
// @Summary List skills
// @Tags Projects
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /skills [get]
func (h projectHandler) getSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string][]string{"skills": models.Skills})
	}
}

// getProjects lists the projects the caller can still pick up
// @Summary Discover projects
// @Description Projects the caller neither created nor volunteered for; every project for anonymous callers
// @Tags Projects
// @Produce json
// @Param status query string false "Open, In Progress, Completed or All"
// @Param skill query string false "Required skill, repeatable"
// @Param limit query int false "Keep only the newest N"
// @Success 200 {object} ProjectCollection
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /projects [get]
func (h projectHandler) getProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := parseStatusFilter(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		limit, err := parseCount(r, "limit", 0)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		snapshot, err := h.store.LoadSnapshot(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewDependencyFailure("load projects", err))
			return
		}

		projects := classify.DiscoverableByUser(snapshot.Projects, snapshot.Applications, ctxGetUserID(r.Context()))
		projects = classify.FilterByStatus(projects, status)
		projects = classify.FilterBySkills(projects, parseSkills(r))
		if limit > 0 {
			projects = classify.Latest(projects, limit)
		}

		h.responder.WriteJSON(w, ProjectCollection{Projects: projects, Total: len(projects)})
	}
}

// getLatestProjects returns the newest projects regardless of who is asking
// @Summary Latest projects
// @Tags Projects
// @Produce json
// @Param n query int false "How many (default 6)"
// @Success 200 {object} ProjectCollection
// @Router /projects/latest [get]
func (h projectHandler) getLatestProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := parseCount(r, "n", defaultLatestCount)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		snapshot, err := h.store.LoadSnapshot(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewDependencyFailure("load projects", err))
			return
		}

		projects := classify.Latest(snapshot.Projects, n)
		h.responder.WriteJSON(w, ProjectCollection{Projects: projects, Total: len(projects)})
	}
}

// getProject retrieves a specific project by ID with its skills
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.store.GetProject(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDependencyFailure("find project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject posts a new Open project on behalf of the caller
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body CreateProjectRequest true "Project data"
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 401 {object} ErrorResponse
// @Router /project [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		var req CreateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}
		req.Title = strings.TrimSpace(req.Title)
		req.Description = strings.TrimSpace(req.Description)
		req.TimeCommitment = strings.TrimSpace(req.TimeCommitment)

		if err := h.validate.Struct(req); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		skills, err := canonicalSkills(req.Skills)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := models.Project{
			Title:            req.Title,
			Description:      req.Description,
			TimeCommitment:   req.TimeCommitment,
			CreatorID:        user.ID,
			CreatorName:      user.Name(),
			CreatorAvatarURL: user.AvatarURL,
			Status:           models.StatusOpen,
			CreatedAt:        time.Now().UTC(),
		}
		for _, s := range skills {
			project.Skills = append(project.Skills, models.ProjectSkill{Value: s})
		}

		if err := h.store.CreateProject(r.Context(), &project); err != nil {
			h.responder.WriteError(w, errs.NewDependencyFailure("create project", err))
			return
		}

		h.logger.Info().Str("projectID", project.ID.String()).Str("creatorID", user.ID).Msg("project created")
		h.responder.WriteJSONWithStatus(w, http.StatusCreated, project)
	}
}

// canonicalSkills maps every requested skill onto the catalog spelling and drops repeats.
func canonicalSkills(requested []string) ([]string, error) {
	seen := make(map[string]bool, len(requested))
	skills := make([]string, 0, len(requested))
	for _, name := range requested {
		skill, ok := models.CanonicalSkill(name)
		if !ok {
			return nil, errs.NewInvalidFieldError("skills", "unknown skill "+strconv.Quote(name))
		}
		if !seen[skill] {
			seen[skill] = true
			skills = append(skills, skill)
		}
	}
	return skills, nil
}

// selectProject signs the caller up for an Open project
// @Summary Select project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 201 {object} lifecycle.Selection
// @Failure 403 {object} ErrorResponse "Creator selecting own project"
// @Failure 409 {object} ErrorResponse "Project is not Open or already selected"
// @Router /project/{projectID}/select [post]
func (h projectHandler) selectProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		selection, err := h.actions.Select(r.Context(), projectID, ctxGetUserID(r.Context()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONWithStatus(w, http.StatusCreated, selection)
	}
}

// completeProject marks an In Progress project Completed
// @Summary Complete project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project
// @Failure 403 {object} ErrorResponse "Caller is not the creator"
// @Failure 409 {object} ErrorResponse "Project is not In Progress"
// @Router /project/{projectID}/complete [post]
func (h projectHandler) completeProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.actions.Complete(r.Context(), projectID, ctxGetUserID(r.Context()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 403 {object} ErrorResponse "Caller is not the creator"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.actions.Delete(r.Context(), projectID, ctxGetUserID(r.Context())); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// getDashboard returns the projects the caller created and volunteered for
// @Summary Dashboard
// @Tags Projects
// @Produce json
// @Param status query string false "Open, In Progress, Completed or All"
// @Success 200 {object} DashboardResponse
// @Router /dashboard [get]
func (h projectHandler) getDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := parseStatusFilter(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		snapshot, err := h.store.LoadSnapshot(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewDependencyFailure("load dashboard", err))
			return
		}

		board := classify.BuildBoard(snapshot.Projects, snapshot.Applications, ctxGetUserID(r.Context()), status)
		h.responder.WriteJSON(w, DashboardResponse{Created: board.Created, Volunteered: board.Volunteered})
	}
}
