package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/gastos-app/gastos_backend/internal/core/ports/services"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendSender delivers transactional email through the Resend REST API.
type ResendSender struct {
	apiKey string
	from   string
	client *http.Client
}

// NewResendSender creates a Resend-backed sender.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ portssvc.EmailSender = (*ResendSender)(nil)

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers one HTML email.
func (s *ResendSender) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	body, err := json.Marshal(resendPayload{
		From:    s.from,
		To:      to,
		Subject: subject,
		HTML:    htmlBody,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("email delivery rejected with status %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}

// NoopSender drops email on the floor. Used when no delivery provider is
// configured so local development does not require an API key.
type NoopSender struct {
	logger *slog.Logger
}

// NewNoopSender creates a sender that only logs.
func NewNoopSender(logger *slog.Logger) *NoopSender {
	return &NoopSender{logger: logger}
}

var _ portssvc.EmailSender = (*NoopSender)(nil)

// Send logs the email instead of delivering it.
func (s *NoopSender) Send(_ context.Context, to []string, subject, _ string) error {
	s.logger.Info("Email delivery disabled; dropping message",
		slog.Any("to", to),
		slog.String("subject", subject),
	)
	return nil
}
