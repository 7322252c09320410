package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/handler"
	myGRPC "github.com/MKhiriev/go-sync-keeper/internal/handler/grpc"
	myHTTP "github.com/MKhiriev/go-sync-keeper/internal/handler/http"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
)

func freeAddress(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())
	return addr
}

func testHandlers() *handler.Handlers {
	services := &service.Services{}
	return &handler.Handlers{
		HTTP: myHTTP.NewHandler(services, logger.Nop()),
		GRPC: myGRPC.NewHandler(services, logger.Nop()),
	}
}

func runInBackground(t *testing.T, srv Server) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	return cancel, done
}

func TestNewServer_NoAddresses(t *testing.T) {
	srv, err := NewServer(testHandlers(), config.Server{}, logger.Nop())
	assert.Nil(t, srv)
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestNewServer_NilHandlers(t *testing.T) {
	srv, err := NewServer(nil, config.Server{HTTPAddress: "127.0.0.1:0"}, logger.Nop())
	assert.Nil(t, srv)
	assert.ErrorIs(t, err, errNilHandlers)
}

func TestNewServer_SkipsMissingHandler(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0"}
	srv, err := NewServer(&handler.Handlers{}, cfg, logger.Nop())
	assert.Nil(t, srv)
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestRun_HTTPServesUntilCancelled(t *testing.T) {
	addr := freeAddress(t)
	srv, err := NewServer(testHandlers(), config.Server{HTTPAddress: addr, RequestTimeout: time.Second}, logger.Nop())
	require.NoError(t, err)

	cancel, done := runInBackground(t, srv)

	assert.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop after context cancel")
	}

	_, err = http.Get("http://" + addr + "/health")
	assert.Error(t, err)
}

func TestRun_GRPCServesUntilCancelled(t *testing.T) {
	addr := freeAddress(t)
	srv, err := NewServer(testHandlers(), config.Server{GRPCAddress: addr}, logger.Nop())
	require.NoError(t, err)

	cancel, done := runInBackground(t, srv)

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()
	client := myGRPC.NewSyncServiceClient(conn)

	// Without a token the auth interceptor answers, which proves the
	// service is registered and the interceptor chain is installed.
	assert.Eventually(t, func() bool {
		ctx, stop := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer stop()
		_, err := client.Status(ctx, &myGRPC.Empty{})
		return status.Code(err) == codes.Unauthenticated
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadGRPCAddress(t *testing.T) {
	srv, err := NewServer(testHandlers(), config.Server{GRPCAddress: "127.0.0.1:99999"}, logger.Nop())
	require.NoError(t, err)

	err = srv.Run(context.Background())
	assert.Error(t, err)
}
