package queue

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// IssueCreator is the slice of the tracker client the worker needs.
type IssueCreator interface {
	CreateIssue(ctx context.Context, title, description string) (string, error)
}

// Worker consumes lead events and files a tracker issue for the kinds
// that need human follow-up. It runs off the request path; the intake
// pipeline never waits on it.
type Worker struct {
	Channel *amqp.Channel
	Tracker IssueCreator
	Logger  *zap.Logger
}

func NewWorker(ch *amqp.Channel, tracker IssueCreator, logger *zap.Logger) *Worker {
	return &Worker{Channel: ch, Tracker: tracker, Logger: logger}
}

func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var payload LeadEventPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		w.Logger.Error("malformed lead event", zap.Error(err))
		// Poison message; reject without requeue so it dead-letters.
		d.Nack(false, false)
		return
	}

	// Only sales and demo leads become tracker issues. Everything else
	// is acknowledged and dropped.
	if payload.Kind != "sales" && payload.Kind != "demo" {
		d.Ack(false)
		return
	}

	title := payload.Kind + " lead: " + payload.Name
	description := "Email: " + payload.Email
	if payload.Institution != "" {
		description += "\nInstitution: " + payload.Institution
	}
	if payload.Message != "" {
		description += "\n\n" + payload.Message
	}
	description += "\n\nSubmission: " + payload.SubmissionID

	issueID, err := w.Tracker.CreateIssue(ctx, title, description)
	if err != nil {
		w.Logger.Error("tracker issue failed",
			zap.String("submission_id", payload.SubmissionID),
			zap.Error(err),
		)
		d.Nack(false, false)
		return
	}

	w.Logger.Info("tracker issue created",
		zap.String("submission_id", payload.SubmissionID),
		zap.String("issue_id", issueID),
	)
	d.Ack(false)
}
