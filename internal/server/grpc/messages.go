package grpc

import "github.com/dmitrijs2005/userbase/internal/server/models"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	SessionToken string      `json:"session_token"`
	User         models.User `json:"user"`
}

type LogoutRequest struct{}

type LogoutResponse struct {
	Removed bool `json:"removed"`
}

type CurrentUserRequest struct{}

// UserResponse is returned by every call that yields a single user.
type UserResponse struct {
	User models.User `json:"user"`
}

// AddUserRequest carries the role as text so that an unknown role is
// reported as InvalidArgument rather than a decoding failure.
type AddUserRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// UpdateUserRequest leaves the password unchanged when Password is nil.
type UpdateUserRequest struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Role     string  `json:"role"`
	Password *string `json:"password,omitempty"`
}

type GetUserRequest struct {
	ID int64 `json:"id"`
}

type DeleteUserRequest struct {
	ID int64 `json:"id"`
}

type DeleteUserResponse struct {
	Deleted bool `json:"deleted"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []models.User `json:"users"`
}
