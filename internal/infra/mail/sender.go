package mail

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/scholaris/intake-api/internal/entity"
)

func NewEmailSender(host string, port int, user, password, from, internalTo, resetBaseURL string) *EmailSender {
	return &EmailSender{
		Host:         host,
		Port:         port,
		User:         user,
		Password:     password,
		From:         from,
		InternalTo:   internalTo,
		ResetBaseURL: resetBaseURL,
	}
}

// resetSendTimeout bounds reset mails, which have no caller-provided
// context.
const resetSendTimeout = 10 * time.Second

func (s *EmailSender) send(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	// gomail has no dial or read deadline, so a hung SMTP server would
	// block past the caller's context. Run the send aside and abandon
	// it when the context expires.
	done := make(chan error, 1)
	go func() { done <- d.DialAndSend(m) }()

	select {
	case <-ctx.Done():
		return fmt.Errorf("send smtp mail: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send smtp mail: %w", err)
		}
		return nil
	}
}

func render(tmpl *template.Template, data any) (string, error) {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("render mail template: %w", err)
	}
	return body.String(), nil
}

// SendPasswordReset delivers the admin reset link.
func (s *EmailSender) SendPasswordReset(to, token string) error {
	body, err := render(resetTmpl, map[string]string{
		"Link": fmt.Sprintf("%s/reset?token=%s", s.ResetBaseURL, token),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), resetSendTimeout)
	defer cancel()
	return s.send(ctx, to, "Reset your Scholaris password", body)
}

// ConfirmationNotifier emails the submitter an acknowledgement. It is
// one leg of the best-effort fan-out.
type ConfirmationNotifier struct {
	Sender *EmailSender
}

func (n *ConfirmationNotifier) Name() string { return "email_confirmation" }

func (n *ConfirmationNotifier) Notify(ctx context.Context, sub *entity.Submission) error {
	body, err := render(confirmationTmpl, sub)
	if err != nil {
		return err
	}
	return n.Sender.send(ctx, sub.Email, "We received your message", body)
}

// InternalNotifier emails the team inbox about a new submission.
type InternalNotifier struct {
	Sender *EmailSender
}

func (n *InternalNotifier) Name() string { return "email_internal" }

func (n *InternalNotifier) Notify(ctx context.Context, sub *entity.Submission) error {
	if n.Sender.InternalTo == "" {
		return nil
	}
	body, err := render(internalTmpl, sub)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("[%s] New submission from %s", sub.Kind, sub.Name)
	return n.Sender.send(ctx, n.Sender.InternalTo, subject, body)
}
