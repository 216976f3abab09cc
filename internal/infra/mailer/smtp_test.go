package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func newTestMailer(cfg Config, d *fakeDialer) *SMTPMailer {
	m := NewSMTPMailer(cfg, zap.NewNop())
	m.dialer = d
	return m
}

var validCfg = Config{Host: "smtp.example.com", Port: 587, Username: "bot@example.com", Password: "secret"}

func TestSend_OK(t *testing.T) {
	d := &fakeDialer{}
	m := newTestMailer(validCfg, d)

	require.NoError(t, m.Send(context.Background(), "frodo@shire.me", "Hi", "body"))
	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"bot@example.com"}, d.sent[0].GetHeader("From"))
	assert.Equal(t, []string{"frodo@shire.me"}, d.sent[0].GetHeader("To"))
}

func TestSend_NotConfigured(t *testing.T) {
	d := &fakeDialer{}
	m := newTestMailer(Config{Host: "smtp.example.com", Port: 587}, d)

	err := m.Send(context.Background(), "frodo@shire.me", "Hi", "body")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Empty(t, d.sent)
}

func TestSend_InvalidRecipient(t *testing.T) {
	d := &fakeDialer{}
	m := newTestMailer(validCfg, d)

	err := m.Send(context.Background(), "not-an-email", "Hi", "body")
	assert.ErrorIs(t, err, ErrInvalidRecipient)
	assert.Empty(t, d.sent)
}

func TestSend_ErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantSub string
	}{
		{"gmail_bad_credentials", errors.New("535 5.7.8 Username and Password not accepted"), "App Password"},
		{"other_auth", errors.New("smtp: server doesn't support AUTH"), "SMTP Authentication error"},
		{"generic", errors.New("dial tcp: connection refused"), "SMTP error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMailer(validCfg, &fakeDialer{err: tt.err})
			err := m.Send(context.Background(), "frodo@shire.me", "Hi", "body")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantSub)
		})
	}
}
