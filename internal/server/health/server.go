// Package health runs the standard gRPC health service of the kvserver on
// its own listener.
package health

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/postkeeper/internal/logging"
)

// ServiceName is reported alongside the overall ("") status.
const ServiceName = "keyval"

type Server struct {
	address string
	logger  logging.Logger
	health  *grpchealth.Server
}

func NewServer(address string, l logging.Logger) *Server {
	if l == nil {
		l = logging.Nop()
	}
	return &Server{
		address: address,
		logger:  l.With("module", "health_server"),
		health:  grpchealth.NewServer(),
	}
}

// SetServing flips both the overall and the keyval status.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve serves on an existing listener until ctx is done.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	healthpb.RegisterHealthServer(srv, s.health)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping health server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting health server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

func (s *Server) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	if err != nil {
		s.logger.Warn(ctx, "grpc call failed", "method", info.FullMethod, "duration", time.Since(start).String(), "error", err.Error())
	} else {
		s.logger.Debug(ctx, "grpc call", "method", info.FullMethod, "duration", time.Since(start).String())
	}

	return resp, err
}
