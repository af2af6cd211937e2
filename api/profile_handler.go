package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/volunteer-connect-backend/errs"
	"github.com/rpupo63/volunteer-connect-backend/identity"
	"github.com/rpupo63/volunteer-connect-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type profileHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     Store
	validate  *validator.Validate
}

func newProfileHandler(store Store, validate *validator.Validate) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()
	return profileHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		validate:  validate,
	}
}

// MeResponse is the caller's identity and, once saved, their profile
type MeResponse struct {
	User    identity.User       `json:"user"`
	Profile *models.UserProfile `json:"profile"`
}

// getMe
// @Summary Current user
// @Tags Profiles
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} ErrorResponse
// @Router /me [get]
func (h profileHandler) getMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		profile, err := h.store.FindProfile(r.Context(), user.ID)
		if err != nil && !errs.IsNotFound(err) {
			h.responder.WriteError(w, errs.NewDependencyFailure("load profile", err))
			return
		}

		h.responder.WriteJSON(w, MeResponse{User: *user, Profile: profile})
	}
}

// putProfile creates or replaces the caller's profile
// @Summary Save profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Param profile body ProfileRequest true "Profile"
// @Success 200 {object} models.UserProfile
// @Failure 400 {object} ErrorResponse
// @Router /me/profile [put]
func (h profileHandler) putProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		var req ProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if err := h.validate.Struct(req); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		profile := models.UserProfile{
			ID:           user.ID,
			Name:         req.Name,
			Email:        user.Email,
			AvatarURL:    user.AvatarURL,
			Role:         req.Role,
			Tagline:      strings.TrimSpace(req.Tagline),
			Experience:   strings.TrimSpace(req.Experience),
			Availability: strings.TrimSpace(req.Availability),
			Skills:       tidySkills(req.Skills),
		}
		if err := h.store.SaveProfile(r.Context(), &profile); err != nil {
			h.responder.WriteError(w, errs.NewDependencyFailure("save profile", err))
			return
		}

		h.responder.WriteJSON(w, profile)
	}
}

// tidySkills trims, drops repeats, and uses the catalog spelling where one exists.
// Profiles may list skills outside the catalog.
func tidySkills(requested []string) []string {
	seen := map[string]bool{}
	skills := []string{}
	for _, s := range requested {
		s = strings.TrimSpace(s)
		if canonical, ok := models.CanonicalSkill(s); ok {
			s = canonical
		}
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, s)
	}
	return skills
}

// listVolunteers
// @Summary Volunteer directory
// @Tags Profiles
// @Produce json
// @Param skill query string false "Only volunteers with this skill"
// @Success 200 {object} map[string][]models.UserProfile
// @Router /volunteers [get]
func (h profileHandler) listVolunteers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		volunteers, err := h.store.ListVolunteers(r.Context(), r.URL.Query().Get("skill"))
		if err != nil {
			h.responder.WriteError(w, errs.NewDependencyFailure("list volunteers", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"volunteers": volunteers,
			"total":      len(volunteers),
		})
	}
}
