package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/resend/resend-go/v2"
)

// Notifier sends transactional notification emails through the Resend API.
// When disabled it logs what it would have sent and reports success, so the
// rest of the pipeline behaves identically in development.
type Notifier struct {
	client  *resend.Client
	from    string
	enabled bool
}

// NewNotifier creates a Notifier. An empty API key or enabled=false yields a
// logging-only notifier.
func NewNotifier(apiKey, from string, enabled bool) *Notifier {
	n := &Notifier{from: from, enabled: enabled && apiKey != ""}
	if n.enabled {
		n.client = resend.NewClient(apiKey)
	}
	return n
}

// NewNotifierWithClient creates a Notifier around an existing Resend client.
// Used by tests to point the client at a mock server.
func NewNotifierWithClient(client *resend.Client, from string) *Notifier {
	return &Notifier{client: client, from: from, enabled: true}
}

// SendApplicationNotification tells an event owner that a new application
// was submitted to their event.
func (n *Notifier) SendApplicationNotification(ctx context.Context, to, eventTitle, appTitle string) error {
	if err := validateAddress(to); err != nil {
		return fmt.Errorf("invalid recipient email: %w", err)
	}

	if !n.enabled {
		slog.Info("email disabled, skipping notification", "to", to, "application", appTitle)
		return nil
	}

	subject := "New application submitted to your event"
	if eventTitle != "" {
		subject = fmt.Sprintf("New application submitted to %s", eventTitle)
	}

	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{to},
		Subject: subject,
		Html: fmt.Sprintf("<p>A new application %q was submitted to your event.</p>"+
			"<p>It is not published yet; log in to review it.</p>", appTitle),
	}

	sent, err := n.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend API error: %w", err)
	}

	slog.Info("notification email sent", "email_id", sent.Id, "to", to)
	return nil
}

// validateAddress rejects malformed addresses and header injection attempts.
func validateAddress(address string) error {
	addr, err := mail.ParseAddress(address)
	if err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}
	if strings.ContainsAny(addr.Address, "\r\n") {
		return fmt.Errorf("email address contains newline characters")
	}
	return nil
}
