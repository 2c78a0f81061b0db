package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aims-ops/aims-console/internal/models"
)

const alerterUsername = "A.I.M.S"

type slackAttachment struct {
	Color     string `json:"color"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Footer    string `json:"footer"`
	Timestamp int64  `json:"ts"`
}

type slackWebhookRequest struct {
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Text        string            `json:"text"`
	Attachments []slackAttachment `json:"attachments"`
}

type discordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
	Timestamp   string `json:"timestamp"`
}

type discordWebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []discordEmbed `json:"embeds"`
}

// Alerter pushes new-incident notifications to the enabled alert
// providers. A provider opts in with an "enabled" bool field and a
// "webhookURL" string field; the provider name selects the payload
// format.
type Alerter struct {
	httpc *http.Client
	now   func() time.Time
}

// NewAlerter creates an alerter with a bounded webhook timeout.
func NewAlerter() *Alerter {
	return &Alerter{
		httpc: &http.Client{Timeout: 10 * time.Second},
		now:   time.Now,
	}
}

// NotifyIncidentCreated fans the notification out to every enabled alert
// provider. Failures are logged, never fatal: alerting is best effort.
func (a *Alerter) NotifyIncidentCreated(ctx context.Context, providers []models.Provider, incidentID, summary string) {
	for _, provider := range providers {
		if !provider.Enabled() {
			continue
		}
		webhook, ok := provider.Field("webhookURL")
		if !ok || webhook.Value == "" {
			log.Warn().Str("provider", provider.Name).Msg("Alert provider has no webhookURL field, skipping")
			continue
		}

		var payload any
		switch strings.ToLower(provider.Name) {
		case "slack":
			payload = slackWebhookRequest{
				Username:  alerterUsername,
				IconEmoji: ":rotating_light:",
				Text:      ":rotating_light: *NEW INCIDENT*",
				Attachments: []slackAttachment{{
					Color:     "danger",
					Title:     summary,
					Text:      fmt.Sprintf("Incident %s requires attention.", incidentID),
					Footer:    alerterUsername,
					Timestamp: a.now().Unix(),
				}},
			}
		case "discord":
			payload = discordWebhookRequest{
				Username: alerterUsername,
				Embeds: []discordEmbed{{
					Title:       "🚨 NEW INCIDENT",
					Description: fmt.Sprintf("%s\nIncident %s requires attention.", summary, incidentID),
					Color:       16711680, // #FF0000
					Timestamp:   a.now().Format(time.RFC3339),
				}},
			}
		default:
			log.Warn().Str("provider", provider.Name).Msg("No webhook format for alert provider, skipping")
			continue
		}

		if err := a.send(ctx, webhook.Value, payload); err != nil {
			log.Error().Err(err).Str("provider", provider.Name).Msg("Failed to send incident notification")
		}
	}
}

func (a *Alerter) send(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
