package services

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// Notifier dispatches outbound email for ticket replies and verification
// decisions. Failures are reported to the caller and never retried here.
type Notifier interface {
	SendTicketReply(ctx context.Context, to, name, subject, original, response, repliedBy string) error
	SendVerificationDecision(ctx context.Context, to, name, status, comments string) error
}

// ResendNotifier sends email through the Resend API.
type ResendNotifier struct {
	client *resend.Client
	from   string
}

// NewResendNotifier creates a notifier with the given API key and sender
// address.
func NewResendNotifier(apiKey, from string) *ResendNotifier {
	return &ResendNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (n *ResendNotifier) SendTicketReply(ctx context.Context, to, name, subject, original, response, repliedBy string) error {
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Our support team has replied to your request:</p><blockquote>%s</blockquote>"+
			"<p>Your original message:</p><blockquote>%s</blockquote><p>%s, HandyHub Support</p>",
		name, response, original, repliedBy)

	return n.send(ctx, to, "Re: "+subject, html)
}

func (n *ResendNotifier) SendVerificationDecision(ctx context.Context, to, name, status, comments string) error {
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your verification status is now <strong>%s</strong>.</p>", name, status)
	if comments != "" {
		html += fmt.Sprintf("<p>Reviewer notes: %s</p>", comments)
	}
	return n.send(ctx, to, "Your HandyHub verification update", html)
}

func (n *ResendNotifier) send(ctx context.Context, to, subject, html string) error {
	sent, err := n.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	log.Printf("Sent email %s to %s (%s)", sent.Id, to, subject)
	return nil
}

// LogNotifier stands in when no Resend API key is configured; it logs what
// would have been sent so dev environments stay email-free.
type LogNotifier struct{}

func (LogNotifier) SendTicketReply(_ context.Context, to, _, subject, _, _, _ string) error {
	log.Printf("Email sending disabled; would reply to %s (%s)", to, subject)
	return nil
}

func (LogNotifier) SendVerificationDecision(_ context.Context, to, _, status, _ string) error {
	log.Printf("Email sending disabled; would notify %s of status %s", to, status)
	return nil
}
