package models

import (
	"time"

	"github.com/google/uuid"
)

// Session binds an opaque token to the user that logged in with it.
type Session struct {
	ID       uuid.UUID `json:"session_token"`
	User     User      `json:"user"`
	LastSeen time.Time `json:"last_seen"`
}
