package model

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// statuses the dashboard knows about; any string is accepted
const (
	StatusNotStarted         = "Not Started"
	StatusInProgress         = "In Progress"
	StatusCompleted          = "Completed"
	StatusRejected           = "Rejected"
	StatusInterviewScheduled = "Interview Scheduled"
)

type Application struct {
	ID        string
	UserID    string
	Title     string
	Type      string
	Status    string
	Deadline  *time.Time // nil = no reminders
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasFutureDeadline reports whether the application still has a deadline ahead of now.
func (a *Application) HasFutureDeadline(now time.Time) bool {
	return a.Deadline != nil && a.Deadline.After(now)
}

type StatusCount struct {
	Status string
	Count  int64
}

type Stats struct {
	Total    int64
	Upcoming int64
	ByStatus []StatusCount
}
