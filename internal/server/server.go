package server

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/handler"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
)

var (
	errNoServersAreCreated = errors.New("no servers are created")
	errNilHandlers         = errors.New("server needs handlers")
)

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	if handlers == nil {
		return nil, errNilHandlers
	}
	logger.Info().Msg("creating new server...")
	servers := new(server)

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	servers.logger = logger

	return servers, nil
}

// RunServer blocks until SIGTERM, SIGINT or SIGQUIT arrives.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.Run(ctx); err != nil {
		s.logger.Err(err).Msg("error running server")
	}
}

func (s *server) Shutdown() {
	// finish HTTP server
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}

	// finish gRPC server
	if s.gRPCServer != nil {
		s.gRPCServer.Shutdown()
	}
}

func (s *server) Run(ctx context.Context) error {
	if s.httpServer == nil && s.gRPCServer == nil {
		return errNoServersAreCreated
	}

	if s.gRPCServer != nil {
		if err := s.gRPCServer.listen(); err != nil {
			return fmt.Errorf("grpc listen on %q: %w", s.gRPCServer.address, err)
		}
	}

	// launch all created servers
	if s.httpServer != nil {
		s.logger.Info().Str("address", s.httpServer.server.Addr).Msg("Launching HTTP server")
		go s.httpServer.RunServer()
	}
	if s.gRPCServer != nil {
		s.logger.Info().Str("address", s.gRPCServer.address).Msg("Launching GRPC server")
		go s.gRPCServer.RunServer()
	}

	<-ctx.Done()

	s.Shutdown()
	s.logger.Info().Msg("server Shutdown gracefully")

	return nil
}
