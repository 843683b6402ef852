package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"application-tracker-api/internal/model"
	"application-tracker-api/internal/store"
)

// Store is what the scheduler reads. Misses are reported as store.ErrNotFound.
type Store interface {
	ApplicationsWithFutureDeadline(ctx context.Context, now time.Time) ([]model.Application, error)
	GetApplication(ctx context.Context, id string) (*model.Application, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
}

type Options struct {
	Clock       Clock
	Ledger      Ledger
	SendTimeout time.Duration
	Logger      *zap.Logger
}

// Scheduler owns the timer registry for one process and keeps it in line with
// the store: handlers call Schedule/Cancel, startup and cron call Recover.
type Scheduler struct {
	store    Store
	notifier *Notifier
	ledger   Ledger
	clock    Clock
	timeout  time.Duration
	log      *zap.Logger
	registry *Registry
}

func New(st Store, n *Notifier, opt Options) *Scheduler {
	s := &Scheduler{
		store:    st,
		notifier: n,
		ledger:   opt.Ledger,
		clock:    opt.Clock,
		timeout:  opt.SendTimeout,
		log:      opt.Logger,
	}
	if s.clock == nil {
		s.clock = SystemClock{}
	}
	if s.timeout <= 0 {
		s.timeout = 30 * time.Second
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.log = s.log.Named("reminder")
	s.registry = NewRegistry(s.clock, s.fire, s.log)
	return s
}

func (s *Scheduler) Registry() *Registry { return s.registry }

// Schedule re-plans app for recipient and replaces whatever was scheduled for it
// before, unless that was planned from a newer app.UpdatedAt. A nil or past
// deadline leaves nothing scheduled. Returns live timers.
func (s *Scheduler) Schedule(app *model.Application, recipient string) int {
	n := s.registry.Replace(app.ID, app.UpdatedAt, s.timersFor(app, recipient, s.clock.Now()))
	s.log.Debug("reminders planned",
		zap.String("application_id", app.ID),
		zap.Int("pending", n),
	)
	return n
}

// Cancel drops every pending reminder of an application.
func (s *Scheduler) Cancel(appID string) int {
	n := s.registry.Cancel(appID)
	if n > 0 {
		s.log.Debug("reminders cancelled", zap.String("application_id", appID), zap.Int("count", n))
	}
	return n
}

// Recover plans every application whose deadline is still ahead. Safe to run
// repeatedly: identical timers are kept, not duplicated. Applications whose owner
// can't be found are skipped, and a row read before a concurrent update doesn't
// displace the timers Schedule planned from the update.
func (s *Scheduler) Recover(ctx context.Context) (int, error) {
	now := s.clock.Now()
	apps, err := s.store.ApplicationsWithFutureDeadline(ctx, now)
	if err != nil {
		s.log.Error("reminder recovery scan failed", zap.Error(err))
		return 0, fmt.Errorf("recover reminders: %w", err)
	}

	emails := map[string]string{}
	n := 0
	for i := range apps {
		app := &apps[i]
		if app.Deadline == nil {
			continue
		}
		email, seen := emails[app.UserID]
		if !seen {
			u, err := s.store.GetUser(ctx, app.UserID)
			switch {
			case err == nil:
				email = u.Email
			case errors.Is(err, store.ErrNotFound):
			default:
				s.log.Warn("recovery owner lookup failed",
					zap.String("user_id", app.UserID),
					zap.Error(err),
				)
			}
			emails[app.UserID] = email
		}
		if email == "" {
			continue
		}
		s.registry.Replace(app.ID, app.UpdatedAt, s.timersFor(app, email, now))
		n++
	}

	recoveredTotal.Add(float64(n))
	s.log.Info("reminders recovered",
		zap.Int("applications", n),
		zap.Int("pending", s.registry.Len()),
	)
	return n, nil
}

// StartRescan runs Recover on a cron spec (e.g. "@every 1h") so a failed startup
// scan is repaired without a restart. The returned func stops it.
func (s *Scheduler) StartRescan(spec string) (func(), error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_, _ = s.Recover(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("rescan spec %q: %w", spec, err)
	}
	c.Start()
	return func() { <-c.Stop().Done() }, nil
}

// Stop cancels all timers.
func (s *Scheduler) Stop() {
	s.registry.Stop()
}

func (s *Scheduler) timersFor(app *model.Application, recipient string, now time.Time) []PendingTimer {
	slots := Plan(app.Deadline, now)
	if len(slots) == 0 {
		return nil
	}
	body := RenderBody(app)
	out := make([]PendingTimer, len(slots))
	for i, sl := range slots {
		out[i] = PendingTimer{
			ApplicationID: app.ID,
			Offset:        sl.Index,
			FireAt:        sl.FireAt,
			Deadline:      *app.Deadline,
			Recipient:     recipient,
			Subject:       sl.Subject,
			Body:          body,
		}
	}
	return out
}

// fire re-checks the store before sending: a deleted application, a moved
// deadline or a changed owner email all mean this snapshot is stale.
// If the store can't be reached the snapshot is trusted.
func (s *Scheduler) fire(pt PendingTimer) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	log := s.log.With(
		zap.String("application_id", pt.ApplicationID),
		zap.Int("offset", pt.Offset),
	)

	if reason := s.check(ctx, pt, log); reason != "" {
		skippedTotal.WithLabelValues(reason).Inc()
		log.Debug("reminder skipped", zap.String("reason", reason))
		return
	}

	if s.ledger != nil {
		ok, err := s.ledger.Claim(ctx, LedgerKey(pt))
		switch {
		case err != nil:
			log.Warn("sent ledger unavailable, sending anyway", zap.Error(err))
		case !ok:
			skippedTotal.WithLabelValues(skipDuplicate).Inc()
			log.Debug("reminder already sent")
			return
		}
	}

	_ = s.notifier.Notify(ctx, pt.Recipient, pt.Subject, pt.Body)
}

func (s *Scheduler) check(ctx context.Context, pt PendingTimer, log *zap.Logger) string {
	app, err := s.store.GetApplication(ctx, pt.ApplicationID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return skipDeleted
	case err != nil:
		log.Warn("reminder re-check failed", zap.Error(err))
		return ""
	}
	if app.Deadline == nil || !sameInstant(*app.Deadline, pt.Deadline) {
		return skipStale
	}

	u, err := s.store.GetUser(ctx, app.UserID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return skipDeleted
	case err != nil:
		log.Warn("reminder owner re-check failed", zap.Error(err))
		return ""
	}
	if u.Email != pt.Recipient {
		return skipStale
	}
	return ""
}

// sameInstant compares at the store's microsecond precision.
func sameInstant(a, b time.Time) bool {
	return a.Truncate(time.Microsecond).Equal(b.Truncate(time.Microsecond))
}
