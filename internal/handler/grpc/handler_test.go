// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/mock"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/models"
)

var grpcEpoch = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

// startBufconnServer serves services over an in-memory listener and returns
// a connected client.
func startBufconnServer(t *testing.T, services *service.Services) SyncServiceClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	h := NewHandler(services, logger.Nop())
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(h.Interceptors()...))
	RegisterSyncServiceServer(srv, h)

	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewSyncServiceClient(conn)
}

func newRealServices(t *testing.T, configured bool) (*service.Services, *utils.ManualClock) {
	t.Helper()

	appCfg := config.App{TokenSignKey: "secret", TokenIssuer: "go-sync-keeper", TokenDuration: time.Hour, Version: "test"}
	clock := utils.NewManualClock(grpcEpoch)

	var records store.SyncRecordRepository
	if configured {
		records = store.NewSyncRecordRepository(store.NewMemoryBlobStore(), logger.Nop())
	}

	return &service.Services{
		AuthService: service.NewAuthService(appCfg, logger.Nop()),
		SyncService: service.NewSyncService(records, clock, logger.Nop()),
	}, clock
}

func withToken(t *testing.T, services *service.Services, userID string) context.Context {
	t.Helper()
	token, err := services.AuthService.CreateToken(context.Background(), userID)
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(context.Background(), authorizationMetadataKey, "Bearer "+token.SignedString)
}

func TestGRPC_Unauthenticated(t *testing.T) {
	services, _ := newRealServices(t, true)
	client := startBufconnServer(t, services)

	_, err := client.Pull(context.Background(), &Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	ctx := metadata.AppendToOutgoingContext(context.Background(), authorizationMetadataKey, "Bearer garbage")
	_, err = client.Status(ctx, &Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestGRPC_PushPullConflictForce(t *testing.T) {
	services, clock := newRealServices(t, true)
	client := startBufconnServer(t, services)
	ctx := withToken(t, services, "alice")

	pulled, err := client.Pull(ctx, &Empty{})
	require.NoError(t, err)
	assert.Equal(t, "No cloud data found", pulled.Message)
	assert.Nil(t, pulled.LastSync)

	local := grpcEpoch.Add(-time.Minute)
	pushed, err := client.Push(ctx, &models.PushRequest{AppData: json.RawMessage(`{"from":"A"}`), LocalTimestamp: &local})
	require.NoError(t, err)
	assert.True(t, pushed.LastSync.Equal(grpcEpoch))

	clock.Advance(time.Second)

	stale := grpcEpoch.Add(-time.Hour)
	_, err = client.Push(ctx, &models.PushRequest{AppData: json.RawMessage(`{"from":"B"}`), LocalTimestamp: &stale})
	require.Equal(t, codes.Aborted, status.Code(err))

	conflict, ok := ConflictFromStatus(err)
	require.True(t, ok)
	assert.JSONEq(t, `{"from":"A"}`, string(conflict.CloudData))
	assert.True(t, conflict.CloudTimestamp.Equal(grpcEpoch))

	forced, err := client.ForcePush(ctx, &models.ForcePushRequest{AppData: json.RawMessage(`{"from":"B"}`)})
	require.NoError(t, err)
	assert.Equal(t, "Data force synced to cloud", forced.Message)

	pulled, err = client.Pull(ctx, &Empty{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"B"}`, string(pulled.Data))

	st, err := client.Status(ctx, &Empty{})
	require.NoError(t, err)
	assert.True(t, st.Configured)
	assert.Equal(t, "alice", st.User)
	require.NotNil(t, st.LastSync)
	assert.True(t, st.LastSync.Equal(forced.LastSync))
}

func TestGRPC_ErrorCodes(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		services, _ := newRealServices(t, true)
		client := startBufconnServer(t, services)

		_, err := client.Push(withToken(t, services, "alice"), &models.PushRequest{})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("not configured", func(t *testing.T) {
		services, _ := newRealServices(t, false)
		client := startBufconnServer(t, services)

		_, err := client.Pull(withToken(t, services, "alice"), &Empty{})
		assert.Equal(t, codes.Unavailable, status.Code(err))
	})

	t.Run("internal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		syncSvc := mock.NewMockSyncService(ctrl)
		authSvc := mock.NewMockAuthService(ctrl)
		authSvc.EXPECT().ParseToken(gomock.Any(), "tok").Return(models.Token{UserID: "alice"}, nil)
		syncSvc.EXPECT().Status(gomock.Any(), "alice").Return(models.StatusResponse{}, assert.AnError)

		client := startBufconnServer(t, &service.Services{AuthService: authSvc, SyncService: syncSvc})
		ctx := metadata.AppendToOutgoingContext(context.Background(), authorizationMetadataKey, "Bearer tok")

		_, err := client.Status(ctx, &Empty{})
		assert.Equal(t, codes.Internal, status.Code(err))
		assert.Equal(t, "Failed to get sync status", status.Convert(err).Message())
	})
}

func TestGRPC_TraceIDHeader(t *testing.T) {
	services, _ := newRealServices(t, true)
	client := startBufconnServer(t, services)

	ctx := metadata.AppendToOutgoingContext(withToken(t, services, "alice"), traceIDMetadataKey, "trace-1")

	var header metadata.MD
	_, err := client.Status(ctx, &Empty{}, grpc.Header(&header))
	require.NoError(t, err)
	assert.Equal(t, []string{"trace-1"}, header.Get(traceIDMetadataKey))
}

func TestConflictFromStatus_NotAConflict(t *testing.T) {
	_, ok := ConflictFromStatus(status.Error(codes.Aborted, "plain"))
	assert.False(t, ok)

	_, ok = ConflictFromStatus(status.Error(codes.Internal, `{"conflict":true}`))
	assert.False(t, ok)
}

func TestJSONCodec(t *testing.T) {
	c := jsonCodec{}
	assert.Equal(t, "json", c.Name())

	data, err := c.Marshal(&models.ForcePushRequest{AppData: json.RawMessage(`{"a":1}`)})
	require.NoError(t, err)

	var out models.ForcePushRequest
	require.NoError(t, c.Unmarshal(data, &out))
	assert.JSONEq(t, `{"a":1}`, string(out.AppData))
}
