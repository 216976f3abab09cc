package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/BruksfildServices01/booking-assistant/internal/validators"
)

var (
	ErrNotConfigured    = errors.New("Email configuration not set. Please configure SMTP settings.")
	ErrInvalidRecipient = errors.New("Invalid recipient email format")
)

const appPasswordHint = "SMTP Authentication failed. For Gmail, you need to use an App Password instead of your regular password. " +
	"Enable 2-Factor Authentication on your Google account, generate an App Password at " +
	"https://myaccount.google.com/apppasswords and use it as SMTP_PASSWORD."

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	cfg    Config
	dialer dialer
	log    *zap.Logger
}

func NewSMTPMailer(cfg Config, log *zap.Logger) *SMTPMailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}

	if cfg.From == "" {
		cfg.From = cfg.Username
	}

	return &SMTPMailer{cfg: cfg, dialer: d, log: log}
}

func (m *SMTPMailer) configured() bool {
	return m.cfg.Username != "" && m.cfg.Password != ""
}

// Send delivers a plain-text message. gomail negotiates STARTTLS on
// submission ports.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if !m.configured() {
		return ErrNotConfigured
	}
	if !validators.IsEmailFormatValid(to) {
		return ErrInvalidRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Warn("smtp send failed", zap.String("to", to), zap.Error(err))
		return classify(err)
	}

	m.log.Info("email sent", zap.String("to", to))
	return nil
}

func classify(err error) error {
	s := err.Error()
	switch {
	case strings.Contains(s, "535"),
		strings.Contains(s, "BadCredentials"),
		strings.Contains(s, "Username and Password not accepted"):
		return errors.New(appPasswordHint)
	case strings.Contains(strings.ToLower(s), "auth"):
		return fmt.Errorf("SMTP Authentication error: %w", err)
	default:
		return fmt.Errorf("SMTP error: %w", err)
	}
}
