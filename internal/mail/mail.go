// Package mail delivers plain-text reminder emails through SES, SMTP, or the log.
package mail

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"application-tracker-api/internal/config"
)

type Message struct {
	From    string
	To      string
	Subject string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New picks a transport from cfg.Driver: "ses", "smtp" or "log".
func New(ctx context.Context, cfg config.MailConfig, log *zap.Logger) (Sender, error) {
	switch strings.ToLower(cfg.Driver) {
	case "ses":
		return NewSESMailer(ctx, cfg.SES.Region)
	case "smtp":
		if cfg.SMTP.Host == "" {
			return nil, fmt.Errorf("mail.smtp.host is required for the smtp driver")
		}
		return NewSMTPMailer(cfg.SMTP)
	case "", "log":
		return NewLogMailer(log), nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
	}
}

// LogMailer writes messages to the log instead of sending them. Local dev only.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogMailer{log: log.Named("mail")}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.Info("mail (not sent)",
		zap.String("from", msg.From),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.Text),
	)
	return nil
}
