// Package grpc serves the standard gRPC health service so orchestrators
// can probe the process alongside the HTTP API.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/hotelbook/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is reported next to the overall ("") health status.
const ServiceName = "hotelbook"

type GRPCServer struct {
	address string
	logger  logging.Logger
	health  *health.Server
}

func NewGRPCServer(a string, l logging.Logger) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		health:  health.NewServer(),
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		// flips every status to NOT_SERVING before connections drain
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
