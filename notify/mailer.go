// Package notify delivers alert mail over SMTP.
package notify

import (
	"context"
	"fmt"

	"blinkwatch/config"
	gomail "gopkg.in/gomail.v2"
)

// Mailer sends plain-text alerts from the configured sender account to the
// configured receiver. Delivery is best-effort; callers log failures and
// move on.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewMailer builds a mailer from the SMTP settings in cfg.
func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SenderMailID, cfg.SenderAppCode),
		from:   cfg.SenderMailID,
		to:     cfg.ReceiverMailID,
	}
}

// Send delivers one message. Each call dials a fresh SMTP session; at most
// one message goes out per watch cycle, so connection reuse buys nothing.
// ctx is honored only before dialing: DialAndSend cannot be interrupted, so
// a shutdown mid-send waits for the dialer's own ten-second dial timeout
// and the SMTP exchange to finish.
func (m *Mailer) Send(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", m.to, err)
	}
	return nil
}
