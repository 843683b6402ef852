package handler

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"application-tracker-api/internal/model"
	"application-tracker-api/internal/store"
	pb "application-tracker-api/internal/trackerpb"
)

func (h *Handler) CreateApplication(ctx context.Context, req *pb.CreateApplicationRequest) (*pb.ApplicationResponse, error) {
	userID := uid(ctx)
	if userID == "" {
		return nil, status.Error(codes.Unauthenticated, "no user")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, status.Error(codes.InvalidArgument, "title required")
	}
	deadline, err := deadlineFrom(req.Deadline)
	if err != nil {
		return nil, err
	}

	app := &model.Application{
		ID:       uuid.New().String(),
		UserID:   userID,
		Title:    title,
		Type:     strings.TrimSpace(req.Type),
		Status:   strings.TrimSpace(req.Status),
		Deadline: deadline,
		Notes:    req.Notes,
	}
	if app.Status == "" {
		app.Status = model.StatusNotStarted
	}

	if err := h.store.CreateApplication(ctx, app); err != nil {
		h.log.Error("create application", zap.Error(err))
		return nil, errInternal
	}

	if app.Deadline != nil {
		h.schedule(ctx, app)
	}
	return &pb.ApplicationResponse{Application: toProto(app)}, nil
}

func (h *Handler) ListApplications(ctx context.Context, req *pb.ListApplicationsRequest) (*pb.ListApplicationsResponse, error) {
	userID := uid(ctx)
	if userID == "" {
		return nil, status.Error(codes.Unauthenticated, "no user")
	}

	apps, err := h.store.ListApplications(ctx, userID, strings.TrimSpace(req.Status))
	if err != nil {
		h.log.Error("list applications", zap.Error(err))
		return nil, errInternal
	}

	out := make([]*pb.Application, len(apps))
	for i := range apps {
		out[i] = toProto(&apps[i])
	}
	return &pb.ListApplicationsResponse{Applications: out}, nil
}

func (h *Handler) GetApplication(ctx context.Context, req *pb.IDRequest) (*pb.ApplicationResponse, error) {
	app, err := h.owned(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return &pb.ApplicationResponse{Application: toProto(app)}, nil
}

// UpdateApplication applies only the fields present in the request. A deadline
// change re-plans reminders; clearing it cancels them.
func (h *Handler) UpdateApplication(ctx context.Context, req *pb.UpdateApplicationRequest) (*pb.ApplicationResponse, error) {
	if req.ClearDeadline && req.Deadline != nil {
		return nil, status.Error(codes.InvalidArgument, "deadline and clear_deadline are exclusive")
	}
	deadline, err := deadlineFrom(req.Deadline)
	if err != nil {
		return nil, err
	}

	app, err := h.owned(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		if t == "" {
			return nil, status.Error(codes.InvalidArgument, "title cannot be empty")
		}
		app.Title = t
	}
	if req.Type != nil {
		app.Type = strings.TrimSpace(*req.Type)
	}
	if req.Status != nil {
		app.Status = strings.TrimSpace(*req.Status)
		if app.Status == "" {
			app.Status = model.StatusNotStarted
		}
	}
	if req.Notes != nil {
		app.Notes = *req.Notes
	}
	switch {
	case req.ClearDeadline:
		app.Deadline = nil
	case deadline != nil:
		app.Deadline = deadline
	}

	if err := h.store.UpdateApplication(ctx, app); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, status.Error(codes.NotFound, "not found")
		}
		h.log.Error("update application", zap.Error(err))
		return nil, errInternal
	}

	if app.Deadline == nil {
		h.cancel(app.ID)
	} else {
		h.schedule(ctx, app)
	}
	return &pb.ApplicationResponse{Application: toProto(app)}, nil
}

func (h *Handler) DeleteApplication(ctx context.Context, req *pb.IDRequest) (*pb.Empty, error) {
	userID := uid(ctx)
	if userID == "" {
		return nil, status.Error(codes.Unauthenticated, "no user")
	}
	if req.Id == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	if _, err := uuid.Parse(req.Id); err != nil {
		return nil, status.Error(codes.NotFound, "not found")
	}

	if err := h.store.DeleteApplication(ctx, req.Id, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, status.Error(codes.NotFound, "not found")
		}
		h.log.Error("delete application", zap.Error(err))
		return nil, errInternal
	}
	h.cancel(req.Id)
	return &pb.Empty{}, nil
}

func (h *Handler) ApplicationStats(ctx context.Context, _ *pb.Empty) (*pb.ApplicationStatsResponse, error) {
	userID := uid(ctx)
	if userID == "" {
		return nil, status.Error(codes.Unauthenticated, "no user")
	}

	st, err := h.store.ApplicationStats(ctx, userID, time.Now())
	if err != nil {
		h.log.Error("application stats", zap.Error(err))
		return nil, errInternal
	}

	resp := &pb.ApplicationStatsResponse{Total: st.Total, Upcoming: st.Upcoming}
	for _, c := range st.ByStatus {
		resp.ByStatus = append(resp.ByStatus, &pb.StatusCount{Status: c.Status, Count: c.Count})
	}
	return resp, nil
}

// owned loads an application of the caller. Foreign ids get NotFound, not
// PermissionDenied, to hide existence.
func (h *Handler) owned(ctx context.Context, id string) (*model.Application, error) {
	userID := uid(ctx)
	if userID == "" {
		return nil, status.Error(codes.Unauthenticated, "no user")
	}
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, status.Error(codes.NotFound, "not found")
	}

	app, err := h.store.GetApplication(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, status.Error(codes.NotFound, "not found")
	case err != nil:
		h.log.Error("get application", zap.Error(err))
		return nil, errInternal
	}
	if app.UserID != userID {
		return nil, status.Error(codes.NotFound, "not found")
	}
	return app, nil
}

// schedule never fails the request: reminders are best-effort and the
// periodic rescan repairs anything missed here.
func (h *Handler) schedule(ctx context.Context, app *model.Application) {
	if h.reminders == nil {
		return
	}
	u, err := h.store.GetUser(ctx, app.UserID)
	if err != nil {
		h.log.Warn("reminder owner lookup failed",
			zap.String("application_id", app.ID),
			zap.Error(err),
		)
		return
	}
	h.reminders.Schedule(app, u.Email)
}

func (h *Handler) cancel(appID string) {
	if h.reminders != nil {
		h.reminders.Cancel(appID)
	}
}

func deadlineFrom(ts *timestamppb.Timestamp) (*time.Time, error) {
	if ts == nil {
		return nil, nil
	}
	if err := ts.CheckValid(); err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid deadline")
	}
	// timestamptz keeps microseconds
	t := ts.AsTime().Truncate(time.Microsecond)
	return &t, nil
}

func toProto(a *model.Application) *pb.Application {
	p := &pb.Application{
		Id:     a.ID,
		Title:  a.Title,
		Type:   a.Type,
		Status: a.Status,
		Notes:  a.Notes,
		UserId: a.UserID,
	}
	if a.Deadline != nil {
		p.Deadline = timestamppb.New(*a.Deadline)
	}
	if !a.CreatedAt.IsZero() {
		p.CreatedAt = timestamppb.New(a.CreatedAt)
	}
	if !a.UpdatedAt.IsZero() {
		p.UpdatedAt = timestamppb.New(a.UpdatedAt)
	}
	return p
}
