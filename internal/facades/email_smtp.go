package facades

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/sbilibin2017/gw-auth-service/internal/logger"
)

// SendFunc hands a built message to the relay.
type SendFunc func(ctx context.Context, msg *mail.Msg) error

// EmailSMTPFacade delivers emails through an SMTP relay.
type EmailSMTPFacade struct {
	from string
	send SendFunc
}

// NewEmailSMTPFacade creates a facade for the relay at host:port.
// Empty username disables authentication. STARTTLS is used when the relay offers it.
func NewEmailSMTPFacade(host string, port int, username, password, from string) (*EmailSMTPFacade, error) {
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &EmailSMTPFacade{
		from: from,
		send: func(ctx context.Context, msg *mail.Msg) error {
			return client.DialAndSendWithContext(ctx, msg)
		},
	}, nil
}

// Send delivers a plain-text email.
func (f *EmailSMTPFacade) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := buildMessage(f.from, to, subject, body)
	if err != nil {
		logger.Log.Errorw("failed to build email", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("smtp message: %w", err)
	}

	if err := f.send(ctx, msg); err != nil {
		logger.Log.Errorw("failed to send email via SMTP", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("smtp send: %w", err)
	}

	logger.Log.Infow("email sent via SMTP", "to", to, "subject", subject)
	return nil
}

// buildMessage sets Date and Message-ID and encodes a non-ASCII subject per RFC 2047.
func buildMessage(from, to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, err
	}
	if err := msg.To(to); err != nil {
		return nil, err
	}
	msg.Subject(subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}
