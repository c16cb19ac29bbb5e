package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"conforma_app_echo/internal/models"
)

// WebhookService delivers JSON payloads to a configured integration
// endpoint, used by review reminders and the "send test event" action on
// the integrations settings page.
type WebhookService struct {
	endpoint string
	secret   string
	client   *http.Client
}

// NewWebhookService builds a delivery client for one integration.
func NewWebhookService(integration models.Integration) *WebhookService {
	return &WebhookService{
		endpoint: NormalizeEndpoint(integration.Endpoint),
		secret:   integration.Secret,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *WebhookService) post(payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.endpoint, bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if s.secret != "" {
		req.Header.Set("X-Api-Key", s.secret)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// WebhookEvent is the JSON envelope every delivery uses.
type WebhookEvent struct {
	Event   string                 `json:"event"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
	SentAt  time.Time              `json:"sent_at"`
}

// SendEvent delivers one event to the integration endpoint.
func (s *WebhookService) SendEvent(event, message string, data map[string]interface{}) error {
	if s.endpoint == "" {
		return fmt.Errorf("integration endpoint is empty")
	}
	return s.post(WebhookEvent{
		Event:   event,
		Message: message,
		Data:    data,
		SentAt:  time.Now().UTC(),
	})
}

// SendTest delivers a ping event so users can verify an integration from
// the settings page.
func (s *WebhookService) SendTest(integrationName string) error {
	return s.SendEvent("test", fmt.Sprintf("Test event for integration %q", integrationName), nil)
}

// NormalizeEndpoint standardizes user-entered webhook URLs: trims
// whitespace, defaults the scheme to https and drops a trailing slash.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return ""
	}

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return strings.TrimRight(endpoint, "/")
}
