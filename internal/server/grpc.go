package server

import (
	"net"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	myGRPC "github.com/MKhiriev/go-sync-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
)

type grpcServer struct {
	address string

	server          *grpc.Server
	gRPCNetListener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(handler.Interceptors()...))
	myGRPC.RegisterSyncServiceServer(srv, handler)

	return &grpcServer{
		address: cfg.GRPCAddress,
		server:  srv,
		logger:  logger,
	}
}

// listen binds the gRPC address. It is separate from RunServer so that a bad
// address fails startup instead of a background goroutine.
func (g *grpcServer) listen() error {
	lis, err := net.Listen("tcp", g.address)
	if err != nil {
		return err
	}
	g.gRPCNetListener = lis
	return nil
}

func (g *grpcServer) RunServer() {
	if err := g.server.Serve(g.gRPCNetListener); err != nil {
		g.logger.Err(err).Msg("gRPC server Serve")
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.server.GracefulStop()
}
