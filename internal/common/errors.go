// Package common defines shared constants and sentinel errors used across
// the server, the admin console and the gRPC layer of userbase. Callers
// should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")
	ErrorInvalid  = errors.New("data quality violation")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// ErrorUnauthorized is returned for both unknown usernames and wrong
	// passwords so that callers cannot enumerate accounts.
	ErrorUnauthorized = errors.New("username or password incorrect")
)
