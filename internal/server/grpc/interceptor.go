package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/userbase/internal/common"
	"github.com/dmitrijs2005/userbase/internal/server/models"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const sessionKey ctxKey = "session"

var publicMethods = map[string]bool{
	fullMethod("Ping"):  true,
	fullMethod("Login"): true,
}

// adminMethods manage other accounts and need ADMIN clearance.
var adminMethods = map[string]bool{
	fullMethod("AddUser"):    true,
	fullMethod("UpdateUser"): true,
	fullMethod("GetUser"):    true,
	fullMethod("DeleteUser"): true,
	fullMethod("ListUsers"):  true,
}

// sessionInterceptor resolves the session_token metadata for every
// non-public method and puts the session in the context. Resolving a
// session also refreshes its last-seen time.
func (s *GRPCServer) sessionInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var token string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.SessionTokenHeaderName)
		if len(values) > 0 {
			token = values[0]
		}
	}
	if len(token) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing session token")
	}

	id, err := uuid.Parse(token)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid session token")
	}

	session, err := s.auth.GetSession(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, status.Error(codes.Unauthenticated, "unknown session")
	}
	if err != nil {
		s.logger.Error(ctx, "session lookup failed", "error", err)
		return nil, status.Error(codes.Internal, common.ErrorInternal.Error())
	}

	if adminMethods[info.FullMethod] && !session.User.Role.Clearance(models.RoleAdmin) {
		s.logger.Warn(ctx, "permission denied", "user_id", session.User.ID, "method", info.FullMethod)
		return nil, status.Error(codes.PermissionDenied, "admin role required")
	}

	ctx = context.WithValue(ctx, sessionKey, session)
	return handler(ctx, req)
}

func sessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*models.Session)
	return session, ok
}
