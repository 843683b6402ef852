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

	"application-tracker-api/internal/auth"
	"application-tracker-api/internal/model"
	"application-tracker-api/internal/store"
	pb "application-tracker-api/internal/trackerpb"
)

const minPasswordLen = 8

var errInternal = status.Error(codes.Internal, "internal error")

func (h *Handler) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.RegisterResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "email and password required")
	}
	if len(req.Password) < minPasswordLen {
		return nil, status.Error(codes.InvalidArgument, "password too short")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, errInternal
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
	}

	if err := h.store.CreateUser(ctx, u); err != nil {
		// unique violation = dup email, but don't reveal that
		h.log.Debug("create user failed", zap.Error(err))
		return nil, status.Error(codes.AlreadyExists, "registration failed")
	}

	tok, refresh, err := h.issueTokens(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	h.log.Info("user registered", zap.String("user_id", u.ID))
	return &pb.RegisterResponse{UserId: u.ID, Token: tok, RefreshToken: refresh}, nil
}

func (h *Handler) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "email and password required")
	}

	u, err := h.store.UserByEmail(ctx, email)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}

	tok, refresh, err := h.issueTokens(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return &pb.LoginResponse{
		Token:        tok,
		UserId:       u.ID,
		Name:         u.Name,
		Email:        u.Email,
		RefreshToken: refresh,
	}, nil
}

// Refresh rotates a refresh token. Presenting a token that was already rotated
// or revoked means it leaked, so every session of that user is revoked.
func (h *Handler) Refresh(ctx context.Context, req *pb.RefreshRequest) (*pb.RefreshResponse, error) {
	if req.RefreshToken == "" {
		return nil, status.Error(codes.InvalidArgument, "refresh token required")
	}

	rt, err := h.store.GetRefreshTokenByHash(ctx, auth.HashRefreshToken(req.RefreshToken))
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, status.Error(codes.Unauthenticated, "invalid refresh token")
	case err != nil:
		return nil, errInternal
	}

	if rt.Revoked {
		h.log.Warn("revoked refresh token reused, revoking all sessions", zap.String("user_id", rt.UserID))
		if err := h.store.RevokeAllRefreshTokens(ctx, rt.UserID); err != nil {
			h.log.Error("revoke sessions failed", zap.String("user_id", rt.UserID), zap.Error(err))
		}
		return nil, status.Error(codes.Unauthenticated, "invalid refresh token")
	}
	if time.Now().After(rt.ExpiresAt) {
		return nil, status.Error(codes.Unauthenticated, "refresh token expired")
	}

	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, errInternal
	}
	if _, err := h.store.RotateRefreshToken(ctx, rt.ID, rt.UserID, hash, time.Now().Add(h.refreshTTL)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// lost a race with another rotation of the same token
			return nil, status.Error(codes.Unauthenticated, "invalid refresh token")
		}
		return nil, errInternal
	}

	tok, err := auth.MakeToken(rt.UserID, h.secret, h.accessTTL)
	if err != nil {
		return nil, errInternal
	}
	return &pb.RefreshResponse{Token: tok, RefreshToken: raw}, nil
}

func (h *Handler) Logout(ctx context.Context, _ *pb.Empty) (*pb.Empty, error) {
	userID := uid(ctx)
	if userID == "" {
		return nil, status.Error(codes.Unauthenticated, "no user")
	}
	if err := h.store.RevokeAllRefreshTokens(ctx, userID); err != nil {
		return nil, errInternal
	}
	return &pb.Empty{}, nil
}

func (h *Handler) GetProfile(ctx context.Context, _ *pb.Empty) (*pb.GetProfileResponse, error) {
	userID := uid(ctx)
	if userID == "" {
		return nil, status.Error(codes.Unauthenticated, "no user")
	}
	u, err := h.store.GetUser(ctx, userID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, status.Error(codes.NotFound, "not found")
	case err != nil:
		return nil, errInternal
	}
	return &pb.GetProfileResponse{User: &pb.User{
		Id:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: timestamppb.New(u.CreatedAt),
	}}, nil
}

func (h *Handler) issueTokens(ctx context.Context, userID string) (access, refresh string, err error) {
	access, err = auth.MakeToken(userID, h.secret, h.accessTTL)
	if err != nil {
		return "", "", errInternal
	}
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		return "", "", errInternal
	}
	if _, err := h.store.CreateRefreshToken(ctx, userID, hash, time.Now().Add(h.refreshTTL)); err != nil {
		h.log.Error("store refresh token", zap.Error(err))
		return "", "", errInternal
	}
	return access, raw, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
