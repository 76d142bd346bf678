package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"battlecards/internal/logger"
)

// DefaultMessage отправляется после приёма новых записей.
const DefaultMessage = "New competitor insights ingested. Open the battle card dashboard for details."

// SlackMessage: тело запроса к incoming webhook.
type SlackMessage struct {
	Text string `json:"text"`
}

// Slack отправляет сообщения в incoming webhook. Пустой WebhookURL
// отключает отправку без ошибки.
type Slack struct {
	WebhookURL string
	HTTPClient *http.Client
}

// NewSlack создаёт клиента с таймаутом.
func NewSlack(webhookURL string) *Slack {
	return &Slack{
		WebhookURL: webhookURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Send публикует text. Возвращает false, если webhook не настроен.
func (s *Slack) Send(ctx context.Context, text string) (bool, error) {
	log := logger.Component("notify")
	if s.WebhookURL == "" {
		log.Info("No Slack webhook configured; skipping notification")
		return false, nil
	}

	body, err := json.Marshal(SlackMessage{Text: text})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}
	log.WithField("status", resp.StatusCode).Info("Slack notified")
	return true, nil
}
