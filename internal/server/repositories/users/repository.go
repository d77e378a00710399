// Package users declares the user store contract and its PostgreSQL
// implementation. Password hashes and salts are written here but never read
// back out; callers only ever receive models.User.
package users

import (
	"context"

	"github.com/dmitrijs2005/userbase/internal/server/models"
)

// Repository is the user store.
type Repository interface {
	// Create inserts a user with its secret and returns it with the generated ID.
	Create(ctx context.Context, user *models.User, secret models.StoredSecret) (*models.User, error)

	// Update changes username and role only. Returns common.ErrorNotFound for an unknown ID.
	Update(ctx context.Context, user *models.User) error

	// UpdateWithPassword changes username, role and the stored secret together.
	UpdateWithPassword(ctx context.Context, user *models.User, secret models.StoredSecret) error

	Get(ctx context.Context, id int64) (*models.User, error)

	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)

	List(ctx context.Context) ([]*models.User, error)

	// GetSalt returns the salt stored for userName or common.ErrorNotFound.
	GetSalt(ctx context.Context, userName string) (int64, error)

	// FindByCredentials returns the user whose username and password hash
	// both match, or common.ErrorNotFound.
	FindByCredentials(ctx context.Context, userName string, passwordHash string) (*models.User, error)
}
