package reminder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scheduledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminders_scheduled_total",
		Help: "Reminder timers armed",
	})

	sentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminders_sent_total",
		Help: "Reminder emails handed to the mail transport successfully",
	})

	failedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminders_failed_total",
		Help: "Reminder emails the mail transport rejected",
	})

	skippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminders_skipped_total",
			Help: "Reminder fires that did not send, by reason",
		},
		[]string{"reason"},
	)

	recoveredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminders_recovered_total",
		Help: "Applications re-planned by recovery scans",
	})

	// moved by deltas so several registries in one process add up
	pendingGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "reminders_pending",
		Help: "Live reminder timers in this process",
	})

	staleSnapshots = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminders_stale_snapshots_total",
		Help: "Re-plans ignored because a newer revision was already live",
	})
)

const (
	skipDeleted   = "deleted"
	skipStale     = "stale"
	skipDuplicate = "duplicate"
)
