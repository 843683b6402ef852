package middleware

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"application-tracker-api/internal/auth"
	pb "application-tracker-api/internal/trackerpb"
)

type ctxKey string

// UserIDKey holds the caller's account id on authenticated calls.
const UserIDKey ctxKey = "uid"

// account creation and token exchange happen before a caller has a token
var open = map[string]bool{
	pb.FullMethod("Register"): true,
	pb.FullMethod("Login"):    true,
	pb.FullMethod("Refresh"):  true,
}

// Auth requires a valid access token on every tracker call except the open
// ones and puts the account id into the context for the handlers.
func Auth(secret string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if open[info.FullMethod] {
			return next(ctx, req)
		}

		raw, err := bearer(ctx)
		if err != nil {
			return nil, err
		}
		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "bad token")
		}
		return next(context.WithValue(ctx, UserIDKey, claims.UserID), req)
	}
}

// bearer extracts the token from "authorization: Bearer <jwt>".
func bearer(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing metadata")
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return "", status.Error(codes.Unauthenticated, "no token")
	}
	scheme, tok, found := strings.Cut(strings.TrimSpace(vals[0]), " ")
	tok = strings.TrimSpace(tok)
	if !found || !strings.EqualFold(scheme, "Bearer") || tok == "" {
		return "", status.Error(codes.Unauthenticated, "no token")
	}
	return tok, nil
}
