package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rpupo63/volunteer-connect-backend/errs"
	"github.com/rpupo63/volunteer-connect-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ProfileFinder looks up stored user profiles.
type ProfileFinder interface {
	FindByID(ctx context.Context, id string) (*models.UserProfile, error)
}

// Mailer sends one e-mail.
type Mailer interface {
	SendEmail(ctx context.Context, subject, body string, recipients []string) error
}

// EmailNotifier tells a project's creator by e-mail that a volunteer picked it up.
type EmailNotifier struct {
	mailer   Mailer
	profiles ProfileFinder
	baseURL  string
	logger   zerolog.Logger
}

// NewEmailNotifier builds the notifier. baseURL, when set, is the web app root used to
// link to the project.
func NewEmailNotifier(mailer Mailer, profiles ProfileFinder, baseURL string) *EmailNotifier {
	return &EmailNotifier{
		mailer:   mailer,
		profiles: profiles,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   log.With().Str("component", "notifier").Logger(),
	}
}

func (n *EmailNotifier) ProjectSelected(ctx context.Context, project models.Project, application models.Application) error {
	creator, err := n.profiles.FindByID(ctx, project.CreatorID)
	if err != nil {
		if errs.IsNotFound(err) {
			n.logger.Debug().Str("creatorID", project.CreatorID).Msg("creator has no profile, skipping e-mail")
			return nil
		}
		return err
	}
	if creator.Email == "" {
		n.logger.Debug().Str("creatorID", project.CreatorID).Msg("creator has no e-mail, skipping")
		return nil
	}

	volunteerName := "A volunteer"
	if volunteer, err := n.profiles.FindByID(ctx, application.VolunteerID); err == nil && volunteer.Name != "" {
		volunteerName = volunteer.Name
	}

	subject := fmt.Sprintf("%s selected %q", volunteerName, project.Title)
	return n.mailer.SendEmail(ctx, subject, n.selectedBody(project, volunteerName), []string{creator.Email})
}

func (n *EmailNotifier) selectedBody(project models.Project, volunteerName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>%s has selected your project <strong>%s</strong>. It is now In Progress.</p>",
		html.EscapeString(volunteerName), html.EscapeString(project.Title))
	if n.baseURL != "" {
		link := fmt.Sprintf("%s/projects/%s", n.baseURL, project.ID)
		fmt.Fprintf(&b, `<p><a href="%s">View the project</a></p>`, html.EscapeString(link))
	}
	b.WriteString("<p>Mark it completed from your dashboard once the work is done.</p>")
	return b.String()
}
