package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "userbase.AccountService"

// AccountServer is the server side of the account service.
type AccountServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	CurrentUser(context.Context, *CurrentUserRequest) (*UserResponse, error)
	AddUser(context.Context, *AddUserRequest) (*UserResponse, error)
	UpdateUser(context.Context, *UpdateUserRequest) (*UserResponse, error)
	GetUser(context.Context, *GetUserRequest) (*UserResponse, error)
	DeleteUser(context.Context, *DeleteUserRequest) (*DeleteUserResponse, error)
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// unaryMethod adapts a typed AccountServer method to grpc.MethodDesc.
func unaryMethod[Req, Resp any](name string, call func(AccountServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AccountServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AccountServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var accountServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Ping", AccountServer.Ping),
		unaryMethod("Login", AccountServer.Login),
		unaryMethod("Logout", AccountServer.Logout),
		unaryMethod("CurrentUser", AccountServer.CurrentUser),
		unaryMethod("AddUser", AccountServer.AddUser),
		unaryMethod("UpdateUser", AccountServer.UpdateUser),
		unaryMethod("GetUser", AccountServer.GetUser),
		unaryMethod("DeleteUser", AccountServer.DeleteUser),
		unaryMethod("ListUsers", AccountServer.ListUsers),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "userbase/account",
}

// RegisterAccountServer attaches srv to s.
func RegisterAccountServer(s grpc.ServiceRegistrar, srv AccountServer) {
	s.RegisterService(&accountServiceDesc, srv)
}

// AccountClient calls the account service over the JSON codec. The session
// token, where needed, travels in the session_token metadata key.
type AccountClient struct {
	cc grpc.ClientConnInterface
}

func NewAccountClient(cc grpc.ClientConnInterface) *AccountClient {
	return &AccountClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *AccountClient, name string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, fullMethod(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AccountClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c, "Ping", in, opts...)
}

func (c *AccountClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c, "Login", in, opts...)
}

func (c *AccountClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c, "Logout", in, opts...)
}

func (c *AccountClient) CurrentUser(ctx context.Context, in *CurrentUserRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c, "CurrentUser", in, opts...)
}

func (c *AccountClient) AddUser(ctx context.Context, in *AddUserRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c, "AddUser", in, opts...)
}

func (c *AccountClient) UpdateUser(ctx context.Context, in *UpdateUserRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c, "UpdateUser", in, opts...)
}

func (c *AccountClient) GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c, "GetUser", in, opts...)
}

func (c *AccountClient) DeleteUser(ctx context.Context, in *DeleteUserRequest, opts ...grpc.CallOption) (*DeleteUserResponse, error) {
	return invoke[DeleteUserResponse](ctx, c, "DeleteUser", in, opts...)
}

func (c *AccountClient) ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersResponse](ctx, c, "ListUsers", in, opts...)
}
