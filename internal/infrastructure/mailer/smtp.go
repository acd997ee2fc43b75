// Package mailer provides outbound email delivery for client notifications.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	submissionapp "github.com/agencyops/backend/internal/application/submission"
	"github.com/agencyops/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Ensure SMTPMailer implements the application port
var _ submissionapp.Mailer = (*SMTPMailer)(nil)

// SMTPMailer sends email over plain SMTP with PLAIN auth.
type SMTPMailer struct {
	addr     string
	host     string
	username string
	password string
	from     string
	logger   *zap.Logger
}

// NewSMTPMailer creates a mailer from the application mail configuration.
func NewSMTPMailer(cfg config.MailConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		host:     cfg.Host,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		logger:   logger,
	}
}

// Send delivers one message to the given recipients.
func (m *SMTPMailer) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}

	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + strings.Join(to, ", ") + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
		"\r\n" +
		body + "\r\n")

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(m.addr, auth, m.from, to, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	m.logger.Debug("Email sent",
		zap.Strings("to", to),
		zap.String("subject", subject),
	)
	return nil
}

// NoopMailer discards all messages. Used when outbound mail is disabled.
type NoopMailer struct{}

// Ensure NoopMailer implements the application port
var _ submissionapp.Mailer = (*NoopMailer)(nil)

// NewNoopMailer creates a mailer that silently drops everything
func NewNoopMailer() *NoopMailer {
	return &NoopMailer{}
}

// Send discards the message
func (m *NoopMailer) Send(ctx context.Context, to []string, subject, body string) error {
	return nil
}
