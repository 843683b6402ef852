package reminder

import (
	"context"

	"go.uber.org/zap"

	"application-tracker-api/internal/mail"
)

// Mailer is the transport the notifier hands messages to.
type Mailer interface {
	Send(ctx context.Context, msg mail.Message) error
}

// Notifier makes exactly one delivery attempt per call. Failures are logged
// and returned for accounting; nothing here retries.
type Notifier struct {
	mailer Mailer
	from   string
	log    *zap.Logger
}

func NewNotifier(m Mailer, from string, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{mailer: m, from: from, log: log}
}

func (n *Notifier) Notify(ctx context.Context, to, subject, body string) error {
	err := n.mailer.Send(ctx, mail.Message{
		From:    n.from,
		To:      to,
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		failedTotal.Inc()
		n.log.Warn("reminder delivery failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return err
	}
	sentTotal.Inc()
	n.log.Info("reminder sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
