// Package mailer delivers signup confirmation codes. Delivery is
// fire-and-forget: callers log failures and move on.
package mailer

import (
	"fmt"
	"net/smtp"

	"review-hub/pkg/utils"

	"go.uber.org/zap"
)

type Mailer interface {
	SendConfirmationCode(to, username, code string) error
}

// NewMailer returns an SMTP mailer, or a log-only mailer when no SMTP
// host is configured (development setups).
func NewMailer(config utils.EmailConfig, log *zap.Logger) Mailer {
	if config.Host == "" {
		return &logMailer{log: log.With(zap.String("mailer", "log"))}
	}
	return &smtpMailer{config: config, log: log.With(zap.String("mailer", "smtp"))}
}

type smtpMailer struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func (m *smtpMailer) SendConfirmationCode(to, username, code string) error {
	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Email confirmation\r\n\r\n"+
			"Hello %s,\r\n\r\nYour confirmation code: %s\r\n",
		m.config.From, to, username, code,
	))

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, msg); err != nil {
		m.log.Error("Failed to send confirmation email",
			zap.Error(err), zap.String("to", to))
		return fmt.Errorf("send confirmation email to %s: %w", to, err)
	}

	m.log.Info("Confirmation email sent", zap.String("to", to))
	return nil
}

// logMailer writes the code to the log instead of sending mail.
type logMailer struct {
	log *zap.Logger
}

func (m *logMailer) SendConfirmationCode(to, username, code string) error {
	m.log.Info("Confirmation code issued",
		zap.String("to", to),
		zap.String("username", username),
		zap.String("code", code),
	)
	return nil
}
