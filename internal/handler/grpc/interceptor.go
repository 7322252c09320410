package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
)

const (
	authorizationMetadataKey = "authorization"
	traceIDMetadataKey       = "x-trace-id"
)

var traceIDs = utils.NewUUIDGenerator()

// Interceptors returns the unary interceptor chain the sync service must be
// served with: tracing, access logging, then bearer authentication.
func (h *Handler) Interceptors() []grpc.UnaryServerInterceptor {
	return []grpc.UnaryServerInterceptor{h.withTraceID, h.withLogging, h.auth}
}

func (h *Handler) withTraceID(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	traceID := traceIDs.TraceIDOrNew(firstMetadataValue(ctx, traceIDMetadataKey))

	_ = grpc.SetHeader(ctx, metadata.Pairs(traceIDMetadataKey, traceID))
	return handler(h.logger.ContextWithTraceID(ctx, traceID), req)
}

func (h *Handler) withLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	logger.FromContext(ctx).Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}

// auth validates the bearer token carried in the "authorization" metadata and
// stores its subject in the context.
func (h *Handler) auth(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	log := logger.FromContext(ctx)

	tokenString, err := utils.ParseBearerToken(firstMetadataValue(ctx, authorizationMetadataKey))
	if err != nil {
		log.Err(err).Msg("missing bearer token")
		return nil, status.Error(codes.Unauthenticated, "missing bearer token")
	}

	token, err := h.services.AuthService.ParseToken(ctx, tokenString)
	if err != nil {
		log.Err(err).Msg("error occurred during parsing token")
		if errors.Is(err, service.ErrTokenIsExpired) {
			return nil, status.Error(codes.Unauthenticated, service.ErrTokenIsExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	return handler(utils.WithUserID(ctx, token.UserID), req)
}

func firstMetadataValue(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(key)
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}
