// Package slack posts intake notifications to a Slack-compatible
// incoming webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/scholaris/intake-api/internal/entity"
)

type Client struct {
	webhookURL string
	httpClient *http.Client
}

func NewClient(webhookURL string) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *Client) Name() string { return "slack_webhook" }

// Notify posts one message per accepted submission. The caller already
// bounds the context; the client timeout is a second guard.
func (c *Client) Notify(ctx context.Context, sub *entity.Submission) error {
	if c.webhookURL == "" {
		return fmt.Errorf("slack webhook not configured")
	}

	payload := messagePayload{
		Text: fmt.Sprintf("New %s submission", sub.Kind),
		Blocks: []block{
			{
				Type: "section",
				Text: &text{
					Type: "mrkdwn",
					Text: fmt.Sprintf("*New %s submission*\n*From:* %s <%s>\n*Source:* %s\n*ID:* %s",
						sub.Kind, sub.Name, sub.Email, orDirect(sub.Source), sub.ID),
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack webhook status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

func orDirect(source string) string {
	if source == "" {
		return "direct"
	}
	return source
}
