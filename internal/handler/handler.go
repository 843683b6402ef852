package handler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"application-tracker-api/internal/auth"
	"application-tracker-api/internal/middleware"
	"application-tracker-api/internal/model"
	"application-tracker-api/internal/store"
	pb "application-tracker-api/internal/trackerpb"
)

// Reminders is the part of the reminder scheduler the API drives.
type Reminders interface {
	Schedule(app *model.Application, recipient string) int
	Cancel(appID string) int
}

type Options struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Reminders  Reminders
	Logger     *zap.Logger
}

type Handler struct {
	pb.UnimplementedTrackerServiceServer
	store      *store.Store
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	reminders  Reminders
	log        *zap.Logger
}

func New(st *store.Store, secret string, opt Options) *Handler {
	h := &Handler{
		store:      st,
		secret:     secret,
		accessTTL:  opt.AccessTTL,
		refreshTTL: opt.RefreshTTL,
		reminders:  opt.Reminders,
		log:        opt.Logger,
	}
	if h.accessTTL <= 0 {
		h.accessTTL = auth.DefaultAccessTTL
	}
	if h.refreshTTL <= 0 {
		h.refreshTTL = 7 * 24 * time.Hour
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	h.log = h.log.Named("api")
	return h
}

// uid is set by middleware.Auth; empty means the call was not authenticated.
func uid(ctx context.Context) string {
	s, _ := ctx.Value(middleware.UserIDKey).(string)
	return s
}
