// Package grpc exposes the account service over gRPC with a JSON codec.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/userbase/internal/logging"
	"github.com/dmitrijs2005/userbase/internal/server/models"
	"github.com/google/uuid"
	"google.golang.org/grpc"
)

type userService interface {
	AddUser(ctx context.Context, c models.Credentials) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, c models.Credentials) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
	GetUsers(ctx context.Context) ([]*models.User, error)
}

type authService interface {
	Authenticate(ctx context.Context, c models.Credentials) (*models.Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error)
	RemoveSession(ctx context.Context, id uuid.UUID) (bool, error)
}

type GRPCServer struct {
	address         string
	shutdownTimeout time.Duration
	users           userService
	auth            authService
	logger          logging.Logger
}

func NewGRPCServer(address string, shutdownTimeout time.Duration, l logging.Logger, us userService, as authService) *GRPCServer {
	return &GRPCServer{
		address:         address,
		shutdownTimeout: shutdownTimeout,
		logger:          l.With("module", "grpc_server"),
		users:           us,
		auth:            as,
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then drains
// in-flight calls for at most the shutdown timeout.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.sessionInterceptor))
	RegisterAccountServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopped:
		case <-time.After(s.shutdownTimeout):
			s.logger.Warn(ctx, "graceful stop timed out, closing connections")
			srv.Stop()
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}
