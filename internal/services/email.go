package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/movalearn/movalearn-backend/internal/platform/env"
	"github.com/movalearn/movalearn-backend/internal/platform/logger"
)

const sendgridEndpoint = "https://api.sendgrid.com/v3/mail/send"

// EmailService delivers transactional mail through the SendGrid HTTP
// API. Without an api key it degrades to logging the would-be send, so
// local setups work without mail credentials.
type EmailService interface {
	SendVerification(ctx context.Context, to, name, token string) error
}

type emailService struct {
	log       *logger.Logger
	client    *http.Client
	apiKey    string
	fromEmail string
	fromName  string
	baseURL   string
}

func NewEmailService(log *logger.Logger) EmailService {
	l := log.With("service", "EmailService")
	return &emailService{
		log:       l,
		client:    &http.Client{Timeout: 10 * time.Second},
		apiKey:    env.Get("SENDGRID_API_KEY", "", l),
		fromEmail: env.Get("EMAIL_FROM_ADDRESS", "no-reply@movalearn.app", l),
		fromName:  env.Get("EMAIL_FROM_NAME", "MovaLearn", l),
		baseURL:   env.Get("APP_BASE_URL", "http://localhost:3000", l),
	}
}

func (es *emailService) SendVerification(ctx context.Context, to, name, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", es.baseURL, token)
	subject := "Verify your MovaLearn account"
	body := fmt.Sprintf("Hi %s,\n\nConfirm your email address to start learning:\n%s\n\nThe link expires in 24 hours.", name, link)

	if es.apiKey == "" {
		es.log.Info("Email delivery disabled, logging instead", "to", to, "subject", subject, "link", link)
		return nil
	}
	return es.send(ctx, to, subject, body)
}

func (es *emailService) send(ctx context.Context, to, subject, body string) error {
	payload := map[string]any{
		"personalizations": []map[string]any{
			{"to": []map[string]string{{"email": to}}},
		},
		"from":    map[string]string{"email": es.fromEmail, "name": es.fromName},
		"subject": subject,
		"content": []map[string]string{
			{"type": "text/plain", "value": body},
		},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendgridEndpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+es.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := es.client.Do(req)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid responded with status %d", resp.StatusCode)
	}
	es.log.Info("Email sent", "to", to, "subject", subject)
	return nil
}
