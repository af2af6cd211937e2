package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/volunteer-connect-backend/errs"
	"github.com/rpupo63/volunteer-connect-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendEmail(ctx context.Context, subject, body string, recipients []string) error {
	return m.Called(ctx, subject, body, recipients).Error(0)
}

type MockProfileFinder struct {
	mock.Mock
}

func (m *MockProfileFinder) FindByID(ctx context.Context, id string) (*models.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func TestSendEmail(t *testing.T) {
	var got ResendEmailRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer server.Close()

	sender := newEmailSender("re_test", "Volunteer Connect <noreply@example.org>", server.URL)
	err := sender.SendEmail(context.Background(), "Hello", "<p>hi</p>", []string{"a@example.org"})
	require.NoError(t, err)
	assert.Equal(t, "Volunteer Connect <noreply@example.org>", got.From)
	assert.Equal(t, []string{"a@example.org"}, got.To)
	assert.Equal(t, "<p>hi</p>", got.Html)
}

func TestSendEmailErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer server.Close()

	sender := newEmailSender("re_test", "bad", server.URL)
	err := sender.SendEmail(context.Background(), "Hello", "hi", []string{"a@example.org"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from address")

	err = sender.SendEmail(context.Background(), "Hello", "hi", nil)
	assert.Error(t, err)
}

func TestNewEmailSenderNeedsConfig(t *testing.T) {
	assert.Nil(t, NewEmailSender(map[string]string{"RESEND_API_KEY": "re_test"}))
	assert.NotNil(t, NewEmailSender(map[string]string{"RESEND_API_KEY": "re_test", "RESEND_FROM_EMAIL": "a@example.org"}))
}

func TestProjectSelected(t *testing.T) {
	ctx := context.Background()
	project := models.Project{ID: uuid.New(), Title: "Donor portal", CreatorID: "u1"}
	application := models.Application{ProjectID: project.ID, VolunteerID: "u2"}

	t.Run("e-mails the creator", func(t *testing.T) {
		mailer := &MockMailer{}
		profiles := &MockProfileFinder{}
		profiles.On("FindByID", ctx, "u1").Return(&models.UserProfile{ID: "u1", Email: "owner@example.org"}, nil)
		profiles.On("FindByID", ctx, "u2").Return(&models.UserProfile{ID: "u2", Name: "Sam"}, nil)
		mailer.On("SendEmail", ctx, `Sam selected "Donor portal"`, mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "/projects/"+project.ID.String())
		}), []string{"owner@example.org"}).Return(nil)

		err := NewEmailNotifier(mailer, profiles, "https://app.example.org/").ProjectSelected(ctx, project, application)
		require.NoError(t, err)
		mailer.AssertExpectations(t)
	})

	t.Run("skips creators without e-mail", func(t *testing.T) {
		mailer := &MockMailer{}
		profiles := &MockProfileFinder{}
		profiles.On("FindByID", ctx, "u1").Return(&models.UserProfile{ID: "u1"}, nil)

		require.NoError(t, NewEmailNotifier(mailer, profiles, "").ProjectSelected(ctx, project, application))
		mailer.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("skips creators without profile", func(t *testing.T) {
		mailer := &MockMailer{}
		profiles := &MockProfileFinder{}
		profiles.On("FindByID", ctx, "u1").Return(nil, errs.NewNotFound("profile"))

		require.NoError(t, NewEmailNotifier(mailer, profiles, "").ProjectSelected(ctx, project, application))
		mailer.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("falls back to a generic volunteer name", func(t *testing.T) {
		mailer := &MockMailer{}
		profiles := &MockProfileFinder{}
		profiles.On("FindByID", ctx, "u1").Return(&models.UserProfile{ID: "u1", Email: "owner@example.org"}, nil)
		profiles.On("FindByID", ctx, "u2").Return(nil, errs.NewNotFound("profile"))
		mailer.On("SendEmail", ctx, `A volunteer selected "Donor portal"`, mock.Anything, []string{"owner@example.org"}).
			Return(errors.New("resend down"))

		err := NewEmailNotifier(mailer, profiles, "").ProjectSelected(ctx, project, application)
		assert.EqualError(t, err, "resend down")
	})
}
