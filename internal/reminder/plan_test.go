package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"application-tracker-api/internal/model"
)

var t0 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestOffsets(t *testing.T) {
	got := Offsets()
	require.Len(t, got, 3)
	assert.Equal(t, 24*time.Hour, got[0].Before)
	assert.Equal(t, "Your application is due tomorrow!", got[0].Subject)
	assert.Equal(t, 2*time.Hour, got[1].Before)
	assert.Equal(t, "2 hours left to submit!", got[1].Subject)
	assert.Equal(t, time.Duration(0), got[2].Before)
	assert.Equal(t, "Did you finish your application?", got[2].Subject)

	// callers get a copy
	got[0].Before = time.Minute
	assert.Equal(t, 24*time.Hour, Offsets()[0].Before)
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name     string
		deadline *time.Time
		want     []int
	}{
		{"nil deadline", nil, nil},
		{"zero deadline", ptr(time.Time{}), nil},
		{"25h ahead", ptr(t0.Add(25 * time.Hour)), []int{0, 1, 2}},
		{"3h ahead", ptr(t0.Add(3 * time.Hour)), []int{1, 2}},
		{"90m ahead", ptr(t0.Add(90 * time.Minute)), []int{2}},
		{"exactly 24h ahead drops the 24h reminder", ptr(t0.Add(24 * time.Hour)), []int{1, 2}},
		{"deadline is now", ptr(t0), nil},
		{"past", ptr(t0.Add(-time.Hour)), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := Plan(tt.deadline, t0)
			var idx []int
			for _, s := range slots {
				idx = append(idx, s.Index)
				assert.True(t, s.FireAt.After(t0), "fire time must be in the future")
				assert.Equal(t, tt.deadline.Add(-offsets[s.Index].Before), s.FireAt)
				assert.Equal(t, offsets[s.Index].Subject, s.Subject)
			}
			assert.Equal(t, tt.want, idx)
		})
	}
}

func TestPlanFireTimes(t *testing.T) {
	d := t0.Add(25 * time.Hour)
	slots := Plan(&d, t0)
	require.Len(t, slots, 3)
	assert.Equal(t, t0.Add(time.Hour), slots[0].FireAt)
	assert.Equal(t, t0.Add(23*time.Hour), slots[1].FireAt)
	assert.Equal(t, t0.Add(25*time.Hour), slots[2].FireAt)
}

func TestRenderBody(t *testing.T) {
	d := time.Date(2026, 4, 1, 17, 30, 0, 0, time.FixedZone("EST", -5*3600))
	body := RenderBody(&model.Application{Title: "Backend Engineer @ Acme", Deadline: &d})
	assert.Equal(t, "Reminder for: Backend Engineer @ Acme\nDeadline: Wed, 01 Apr 2026 22:30:00 UTC", body)
}
