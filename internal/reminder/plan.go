// Package reminder turns application deadlines into one-shot email reminders.
//
// The store is the source of truth. Everything here is derived state that
// Scheduler.Recover can rebuild at any time.
package reminder

import (
	"fmt"
	"time"

	"application-tracker-api/internal/model"
)

// Offset is how long before a deadline a reminder goes out.
type Offset struct {
	Before  time.Duration
	Subject string
}

var offsets = [...]Offset{
	{Before: 24 * time.Hour, Subject: "Your application is due tomorrow!"},
	{Before: 2 * time.Hour, Subject: "2 hours left to submit!"},
	{Before: 0, Subject: "Did you finish your application?"},
}

// Offsets returns the reminder policy, farthest from the deadline first.
func Offsets() []Offset {
	out := make([]Offset, len(offsets))
	copy(out, offsets[:])
	return out
}

// Slot is one planned reminder. Index points into Offsets().
type Slot struct {
	Index   int
	FireAt  time.Time
	Subject string
}

// Plan returns the reminders for deadline that are still strictly in the future
// at now, in offset order. A nil deadline plans nothing.
func Plan(deadline *time.Time, now time.Time) []Slot {
	if deadline == nil || deadline.IsZero() {
		return nil
	}
	var out []Slot
	for i, o := range offsets {
		at := deadline.Add(-o.Before)
		if at.After(now) {
			out = append(out, Slot{Index: i, FireAt: at, Subject: o.Subject})
		}
	}
	return out
}

// RenderBody is the text every reminder for app carries.
func RenderBody(app *model.Application) string {
	deadline := "none"
	if app.Deadline != nil {
		deadline = app.Deadline.UTC().Format(time.RFC1123)
	}
	return fmt.Sprintf("Reminder for: %s\nDeadline: %s", app.Title, deadline)
}
