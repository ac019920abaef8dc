package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/scholaris/intake-api/internal/entity"
)

// LeadEventPayload is the message published for every accepted
// submission, consumed by the tracker-sync worker and anything else
// that cares about new leads.
type LeadEventPayload struct {
	SubmissionID string    `json:"submission_id"`
	Kind         string    `json:"kind"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Institution  string    `json:"institution,omitempty"`
	Message      string    `json:"message,omitempty"`
	Source       string    `json:"source,omitempty"`
	AcceptedAt   time.Time `json:"accepted_at"`
}

type LeadEventProducer struct {
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *LeadEventProducer {
	return &LeadEventProducer{Ch: ch}
}

func (p *LeadEventProducer) Name() string { return "lead_event_queue" }

// Notify publishes the lead event; it is one leg of the notifier
// fan-out and therefore best-effort like the rest.
func (p *LeadEventProducer) Notify(ctx context.Context, sub *entity.Submission) error {
	payload := LeadEventPayload{
		SubmissionID: sub.ID,
		Kind:         string(sub.Kind),
		Name:         sub.Name,
		Email:        sub.Email,
		Institution:  sub.Institution,
		Message:      sub.Message,
		Source:       sub.Source,
		AcceptedAt:   sub.CreatedAt,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal lead event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish lead event: %w", err)
	}

	return nil
}
