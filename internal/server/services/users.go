// Package services contains server-side business logic: account management
// (UserService) and the login/session protocol (AuthService). Services own
// no state besides their collaborators and are safe for concurrent use.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/userbase/internal/common"
	"github.com/dmitrijs2005/userbase/internal/cryptox"
	"github.com/dmitrijs2005/userbase/internal/dbx"
	"github.com/dmitrijs2005/userbase/internal/server/models"
	"github.com/dmitrijs2005/userbase/internal/server/repositories/repomanager"
)

// generateSalt is a seam for tests.
var generateSalt = cryptox.GenerateSalt

// UserService manages user accounts.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *cryptox.Hasher
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *cryptox.Hasher) *UserService {
	return &UserService{db: db, repomanager: m, hasher: hasher}
}

// AddUser registers a new account. A fresh salt is drawn for every user.
// Duplicate usernames yield common.ErrorConflict; values rejected by the
// schema (short username, unknown role) yield common.ErrorInvalid.
func (s *UserService) AddUser(ctx context.Context, c models.Credentials) (*models.User, error) {
	if !c.HasPassword() {
		return nil, fmt.Errorf("error creating user: %w: password is required", common.ErrorInvalid)
	}

	secret, err := s.newSecret(c.PasswordOrEmpty())
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	user := &models.User{UserName: c.UserName, Role: c.Role}
	u, err := s.repomanager.Users(s.db).Create(ctx, user, secret)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// UpdateUser changes username and role. When c carries a password, a new
// salt and hash replace the stored ones as well; otherwise the password is
// left as is. The updated user is read back in the same transaction.
func (s *UserService) UpdateUser(ctx context.Context, id int64, c models.Credentials) (*models.User, error) {
	user := &models.User{ID: id, UserName: c.UserName, Role: c.Role}

	var secret *models.StoredSecret
	if c.HasPassword() {
		sec, err := s.newSecret(c.PasswordOrEmpty())
		if err != nil {
			return nil, fmt.Errorf("error updating user: %w", err)
		}
		sec.UserID = id
		secret = &sec
	}

	var updated *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		var err error
		if secret != nil {
			err = repo.UpdateWithPassword(ctx, user, *secret)
		} else {
			err = repo.Update(ctx, user)
		}
		if err != nil {
			return err
		}

		updated, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return updated, nil
}

// GetUser returns common.ErrorNotFound for an unknown id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.repomanager.Users(s.db).Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return u, nil
}

// DeleteUser reports whether the user existed. Deleting twice is not an
// error. The user's sessions go with it.
func (s *UserService) DeleteUser(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repomanager.Users(s.db).Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("error deleting user: %w", err)
	}
	return deleted, nil
}

func (s *UserService) GetUsers(ctx context.Context) ([]*models.User, error) {
	list, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return list, nil
}

// newSecret rejects an empty password with common.ErrorInvalid; only a nil
// password means "no password given".
func (s *UserService) newSecret(password string) (models.StoredSecret, error) {
	if password == "" {
		return models.StoredSecret{}, fmt.Errorf("%w: password must not be empty", common.ErrorInvalid)
	}
	salt, err := generateSalt()
	if err != nil {
		return models.StoredSecret{}, err
	}
	return models.StoredSecret{PasswordHash: s.hasher.Hash(password, salt), Salt: salt}, nil
}
