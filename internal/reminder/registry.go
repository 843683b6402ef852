package reminder

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// PendingTimer is the immutable snapshot a timer fires with.
type PendingTimer struct {
	ApplicationID string
	Offset        int
	FireAt        time.Time
	Deadline      time.Time
	Recipient     string
	Subject       string
	Body          string
}

func (p PendingTimer) same(o PendingTimer) bool {
	return p.ApplicationID == o.ApplicationID &&
		p.Offset == o.Offset &&
		p.FireAt.Equal(o.FireAt) &&
		p.Deadline.Equal(o.Deadline) &&
		p.Recipient == o.Recipient &&
		p.Subject == o.Subject &&
		p.Body == o.Body
}

type entry struct {
	pt    PendingTimer
	timer Timer
	ver   uint64
}

// Registry holds at most one live timer per (application, offset).
// Callbacks of replaced or cancelled timers are ignored via a version stamp.
type Registry struct {
	clock Clock
	fire  func(PendingTimer)
	log   *zap.Logger

	mu      sync.Mutex
	entries map[string]map[int]*entry
	revs    map[string]time.Time // revision of the snapshot behind an app's live timers
	ver     uint64
	size    int
}

func NewRegistry(clock Clock, fire func(PendingTimer), log *zap.Logger) *Registry {
	if clock == nil {
		clock = SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		clock:   clock,
		fire:    fire,
		log:     log,
		entries: map[string]map[int]*entry{},
		revs:    map[string]time.Time{},
	}
}

// Schedule registers pt, replacing any timer for the same (application, offset).
// It returns false when pt is not in the future or an identical timer is already live.
func (r *Registry) Schedule(pt PendingTimer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scheduleLocked(pt, r.clock.Now())
}

// Replace makes pts the complete timer set for appID: missing offsets are
// cancelled, changed ones rescheduled, identical ones left running.
// rev is the revision (the application's update time) pts were planned from;
// a snapshot older than the one behind the live timers is ignored.
// It returns how many timers are live for appID afterwards.
func (r *Registry) Replace(appID string, rev time.Time, pts []PendingTimer) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.revs[appID]; ok && rev.Before(cur) {
		staleSnapshots.Inc()
		r.log.Debug("older reminder snapshot ignored",
			zap.String("application_id", appID),
			zap.Time("revision", rev),
			zap.Time("live_revision", cur),
		)
		return len(r.entries[appID])
	}

	now := r.clock.Now()
	keep := make(map[int]bool, len(pts))
	for _, pt := range pts {
		pt.ApplicationID = appID
		if !pt.FireAt.After(now) {
			continue
		}
		r.scheduleLocked(pt, now)
		keep[pt.Offset] = true
	}
	for idx := range r.entries[appID] {
		if !keep[idx] {
			r.removeLocked(appID, idx)
		}
	}
	if _, live := r.entries[appID]; live {
		r.revs[appID] = rev
	}
	return len(r.entries[appID])
}

// Cancel stops every timer for appID and returns how many were live.
func (r *Registry) Cancel(appID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for idx := range r.entries[appID] {
		r.removeLocked(appID, idx)
		n++
	}
	return n
}

// Pending lists live timers for appID in offset order.
func (r *Registry) Pending(appID string) []PendingTimer {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]PendingTimer, 0, len(r.entries[appID]))
	for _, e := range r.entries[appID] {
		out = append(out, e.pt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Stop cancels everything. Used on shutdown; the store still has the deadlines.
func (r *Registry) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for appID, slots := range r.entries {
		for _, e := range slots {
			e.timer.Stop()
		}
		delete(r.entries, appID)
		delete(r.revs, appID)
	}
	pendingGauge.Sub(float64(r.size))
	r.size = 0
}

func (r *Registry) scheduleLocked(pt PendingTimer, now time.Time) bool {
	if !pt.FireAt.After(now) {
		return false
	}
	slots := r.entries[pt.ApplicationID]
	if e, ok := slots[pt.Offset]; ok {
		if e.pt.same(pt) {
			return false
		}
		r.removeLocked(pt.ApplicationID, pt.Offset)
		slots = r.entries[pt.ApplicationID]
	}
	if slots == nil {
		slots = map[int]*entry{}
		r.entries[pt.ApplicationID] = slots
	}

	r.ver++
	e := &entry{pt: pt, ver: r.ver}
	appID, idx, ver := pt.ApplicationID, pt.Offset, e.ver
	e.timer = r.clock.AfterFunc(pt.FireAt.Sub(now), func() {
		r.expire(appID, idx, ver)
	})
	slots[idx] = e
	r.size++
	pendingGauge.Inc()
	scheduledTotal.Inc()
	return true
}

func (r *Registry) removeLocked(appID string, idx int) {
	slots := r.entries[appID]
	e, ok := slots[idx]
	if !ok {
		return
	}
	e.timer.Stop()
	delete(slots, idx)
	if len(slots) == 0 {
		delete(r.entries, appID)
		delete(r.revs, appID)
	}
	r.size--
	pendingGauge.Dec()
}

func (r *Registry) expire(appID string, idx int, ver uint64) {
	r.mu.Lock()
	e, ok := r.entries[appID][idx]
	if !ok || e.ver != ver {
		// replaced or cancelled after the timer was armed
		r.mu.Unlock()
		return
	}
	// drop before firing; its fire-time is past so nothing can re-arm it
	r.removeLocked(appID, idx)
	pt := e.pt
	r.mu.Unlock()

	r.run(pt)
}

func (r *Registry) run(pt PendingTimer) {
	defer func() {
		if v := recover(); v != nil {
			r.log.Error("reminder fire panicked",
				zap.String("application_id", pt.ApplicationID),
				zap.Int("offset", pt.Offset),
				zap.Any("panic", v),
			)
		}
	}()
	if r.fire != nil {
		r.fire(pt)
	}
}
