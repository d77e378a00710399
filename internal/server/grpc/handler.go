package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/userbase/internal/common"
	"github.com/dmitrijs2005/userbase/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, req *PingRequest) (*PingResponse, error) {
	return &PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	session, err := s.auth.Authenticate(ctx, models.Credentials{UserName: req.Username, Password: &req.Password})
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Info(ctx, "Login failed", "username", req.Username)
		}
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Logged in", "user_id", session.User.ID)
	return &LoginResponse{SessionToken: session.ID.String(), User: session.User}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *LogoutRequest) (*LogoutResponse, error) {
	session, ok := sessionFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "no session")
	}

	removed, err := s.auth.RemoveSession(ctx, session.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &LogoutResponse{Removed: removed}, nil
}

func (s *GRPCServer) CurrentUser(ctx context.Context, req *CurrentUserRequest) (*UserResponse, error) {
	session, ok := sessionFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "no session")
	}
	return &UserResponse{User: session.User}, nil
}

func (s *GRPCServer) AddUser(ctx context.Context, req *AddUserRequest) (*UserResponse, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "password is required")
	}

	u, err := s.users.AddUser(ctx, models.Credentials{UserName: req.Username, Role: role, Password: &req.Password})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "User created", "user_id", u.ID, "role", u.Role)
	return &UserResponse{User: *u}, nil
}

func (s *GRPCServer) UpdateUser(ctx context.Context, req *UpdateUserRequest) (*UserResponse, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if req.Password != nil && *req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "password must not be empty")
	}

	u, err := s.users.UpdateUser(ctx, req.ID, models.Credentials{UserName: req.Username, Role: role, Password: req.Password})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "User updated", "user_id", u.ID, "password_changed", req.Password != nil)
	return &UserResponse{User: *u}, nil
}

func (s *GRPCServer) GetUser(ctx context.Context, req *GetUserRequest) (*UserResponse, error) {
	u, err := s.users.GetUser(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &UserResponse{User: *u}, nil
}

func (s *GRPCServer) DeleteUser(ctx context.Context, req *DeleteUserRequest) (*DeleteUserResponse, error) {
	deleted, err := s.users.DeleteUser(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	if deleted {
		s.logger.Info(ctx, "User deleted", "user_id", req.ID)
	}
	return &DeleteUserResponse{Deleted: deleted}, nil
}

func (s *GRPCServer) ListUsers(ctx context.Context, req *ListUsersRequest) (*ListUsersResponse, error) {
	list, err := s.users.GetUsers(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	users := make([]models.User, 0, len(list))
	for _, u := range list {
		users = append(users, *u)
	}
	return &ListUsersResponse{Users: users}, nil
}

// toStatus maps service errors to gRPC status codes. Unexpected errors are
// logged and reported without detail.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorConflict):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrorInvalid):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, err.Error())
	}

	s.logger.Error(ctx, err.Error())
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}
