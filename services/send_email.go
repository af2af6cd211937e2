package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rpupo63/volunteer-connect-backend/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const resendBaseURL = "https://api.resend.com"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// EmailSender sends mail through the Resend HTTP API.
type EmailSender struct {
	apiKey  string
	from    string
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewEmailSender reads RESEND_API_KEY and RESEND_FROM_EMAIL from cfg.
// It returns nil when either is missing, which turns e-mail off.
func NewEmailSender(cfg map[string]string) *EmailSender {
	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	fromEmail := config.GetString(cfg, "RESEND_FROM_EMAIL", "")
	if apiKey == "" || fromEmail == "" {
		log.Warn().Msg("RESEND_API_KEY or RESEND_FROM_EMAIL not set, e-mail notifications disabled")
		return nil
	}
	return newEmailSender(apiKey, fromEmail, resendBaseURL)
}

func newEmailSender(apiKey, from, baseURL string) *EmailSender {
	return &EmailSender{
		apiKey:  apiKey,
		from:    from,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  log.With().Str("component", "email").Logger(),
	}
}

// SendEmail sends an HTML e-mail to every recipient.
func (s *EmailSender) SendEmail(ctx context.Context, subject, body string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	payload := ResendEmailRequest{
		From:    s.from,
		To:      recipients,
		Subject: subject,
		Html:    body,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		s.logger.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}
	return nil
}
