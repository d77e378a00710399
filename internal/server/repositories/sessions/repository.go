// Package sessions declares the session store contract and its PostgreSQL
// implementation.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/userbase/internal/server/models"
	"github.com/google/uuid"
)

// Repository issues, resolves and revokes session tokens.
type Repository interface {
	// Create stores a session for userID and returns its initial last-seen time.
	Create(ctx context.Context, id uuid.UUID, userID int64) (time.Time, error)

	// Find returns the session joined with its user, or common.ErrorNotFound.
	Find(ctx context.Context, id uuid.UUID) (*models.Session, error)

	// Touch moves last-seen forward to now and returns the stored value.
	// It returns common.ErrorNotFound if the session no longer exists.
	Touch(ctx context.Context, id uuid.UUID) (time.Time, error)

	// Delete reports whether a session was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
