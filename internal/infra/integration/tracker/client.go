// Package tracker is a thin client for the project-tracking API used by
// the lead-sync worker and the one-off automation scripts.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ListIssues pages through issues matching the label filter. Pass the
// cursor from the previous page; an empty next cursor means done.
func (c *Client) ListIssues(ctx context.Context, label, cursor string) ([]Issue, string, error) {
	url := fmt.Sprintf("%s/issues?limit=50", c.baseURL)
	if label != "" {
		url += "&label=" + label
	}
	if cursor != "" {
		url += "&cursor=" + cursor
	}

	var out listIssuesResponse
	if err := c.do(ctx, http.MethodGet, url, nil, &out); err != nil {
		return nil, "", err
	}
	return out.Issues, out.NextCursor, nil
}

func (c *Client) CreateIssue(ctx context.Context, title, description string) (string, error) {
	body := createIssueRequest{Title: title, Description: description}

	var out issueResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/issues", body, &out); err != nil {
		return "", err
	}
	return out.Issue.ID, nil
}

func (c *Client) AssignIssue(ctx context.Context, issueID, assigneeID string) error {
	body := updateIssueRequest{AssigneeID: assigneeID}
	return c.do(ctx, http.MethodPatch, c.baseURL+"/issues/"+issueID, body, nil)
}

func (c *Client) AddLabel(ctx context.Context, issueID, label string) error {
	body := addLabelRequest{Label: label}
	return c.do(ctx, http.MethodPost, c.baseURL+"/issues/"+issueID+"/labels", body, nil)
}

func (c *Client) CommentIssue(ctx context.Context, issueID, comment string) error {
	body := commentRequest{Body: comment}
	return c.do(ctx, http.MethodPost, c.baseURL+"/issues/"+issueID+"/comments", body, nil)
}

func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tracker api %s %s: status %d: %s", method, url, resp.StatusCode, string(respBody))
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
