// Command trackerops runs one-off bulk mutations against the project
// tracker: assign, label or comment every issue matching a label
// filter. It pages through results, applies one mutation per issue,
// sleeps a fixed delay between calls and logs each outcome. Runs are
// manual; a failed item is rerun by hand.
//
// Usage:
//
//	trackerops -action=assign -filter=lead -assignee=usr_123
//	trackerops -action=label -filter=lead -label=triaged
//	trackerops -action=comment -filter=stale -comment="Closing soon"
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/scholaris/intake-api/internal/infra/integration/tracker"
)

func main() {
	action := flag.String("action", "", "assign | label | comment")
	filter := flag.String("filter", "", "only issues carrying this label")
	assignee := flag.String("assignee", "", "assignee id (action=assign)")
	label := flag.String("label", "", "label to add (action=label)")
	comment := flag.String("comment", "", "comment body (action=comment)")
	sleep := flag.Duration("sleep", 500*time.Millisecond, "delay between mutations")
	flag.Parse()

	godotenv.Load()

	apiKey := os.Getenv("TRACKER_API_KEY")
	if apiKey == "" {
		log.Fatal("TRACKER_API_KEY is required")
	}
	baseURL := os.Getenv("TRACKER_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.tracker.example.com/v1"
	}

	mutate, err := buildMutation(*action, *assignee, *label, *comment)
	if err != nil {
		log.Fatal(err)
	}

	client := tracker.NewClient(apiKey, baseURL)
	ctx := context.Background()

	var processed, failed int
	cursor := ""
	for {
		issues, next, err := client.ListIssues(ctx, *filter, cursor)
		if err != nil {
			log.Fatalf("list issues: %v", err)
		}

		for _, issue := range issues {
			if err := mutate(ctx, client, issue.ID); err != nil {
				failed++
				log.Printf("FAIL %s (%s): %v", issue.ID, issue.Title, err)
			} else {
				processed++
				log.Printf("OK   %s (%s)", issue.ID, issue.Title)
			}
			time.Sleep(*sleep)
		}

		if next == "" {
			break
		}
		cursor = next
	}

	log.Printf("done: %d ok, %d failed", processed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

type mutationFunc func(ctx context.Context, c *tracker.Client, issueID string) error

func buildMutation(action, assignee, label, comment string) (mutationFunc, error) {
	switch action {
	case "assign":
		if assignee == "" {
			return nil, fmt.Errorf("-assignee is required for action=assign")
		}
		return func(ctx context.Context, c *tracker.Client, id string) error {
			return c.AssignIssue(ctx, id, assignee)
		}, nil
	case "label":
		if label == "" {
			return nil, fmt.Errorf("-label is required for action=label")
		}
		return func(ctx context.Context, c *tracker.Client, id string) error {
			return c.AddLabel(ctx, id, label)
		}, nil
	case "comment":
		if comment == "" {
			return nil, fmt.Errorf("-comment is required for action=comment")
		}
		return func(ctx context.Context, c *tracker.Client, id string) error {
			return c.CommentIssue(ctx, id, comment)
		}, nil
	default:
		return nil, fmt.Errorf("unknown action %q (want assign, label or comment)", action)
	}
}
