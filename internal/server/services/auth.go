package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userbase/internal/common"
	"github.com/dmitrijs2005/userbase/internal/cryptox"
	"github.com/dmitrijs2005/userbase/internal/dbx"
	"github.com/dmitrijs2005/userbase/internal/server/models"
	"github.com/dmitrijs2005/userbase/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// newSessionID is a seam for tests. uuid.NewRandom reads crypto/rand.
var newSessionID = uuid.NewRandom

// AuthService checks credentials and manages session tokens.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *cryptox.Hasher
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, hasher *cryptox.Hasher) *AuthService {
	return &AuthService{db: db, repomanager: m, hasher: hasher}
}

// Authenticate verifies username and password and opens a new session.
//
// Unknown usernames and wrong passwords both return common.ErrorUnauthorized
// unwrapped, and both pay for one hash computation, so neither the error nor
// the latency tells them apart. Salt lookup, credential match and session
// insert share one transaction.
func (s *AuthService) Authenticate(ctx context.Context, c models.Credentials) (*models.Session, error) {
	var session *models.Session

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		salt, err := repo.GetSalt(ctx, c.UserName)
		if errors.Is(err, common.ErrorNotFound) {
			s.burnHash(c.PasswordOrEmpty())
			return common.ErrorUnauthorized
		}
		if err != nil {
			return err
		}

		hash := s.hasher.Hash(c.PasswordOrEmpty(), salt)
		user, err := repo.FindByCredentials(ctx, c.UserName, hash)
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		if err != nil {
			return err
		}

		session, err = s.createSession(ctx, tx, *user)
		return err
	})

	if errors.Is(err, common.ErrorUnauthorized) {
		return nil, common.ErrorUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("error authenticating: %w", err)
	}
	return session, nil
}

// CreateSession issues a token for user without checking credentials.
func (s *AuthService) CreateSession(ctx context.Context, user models.User) (*models.Session, error) {
	session, err := s.createSession(ctx, s.db, user)
	if err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}
	return session, nil
}

// GetSession resolves a token to its session and records the access by
// moving last-seen forward. Unknown tokens yield common.ErrorNotFound. If the
// session disappears between lookup and touch the touch is skipped and the
// looked-up session is still returned.
func (s *AuthService) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	var session *models.Session

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Sessions(tx)

		var err error
		session, err = repo.Find(ctx, id)
		if err != nil {
			return err
		}

		lastSeen, err := repo.Touch(ctx, id)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return nil
		case err != nil:
			return err
		}
		if lastSeen.After(session.LastSeen) {
			session.LastSeen = lastSeen
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error getting session: %w", err)
	}
	return session, nil
}

// RemoveSession logs a session out. It reports whether the token existed and
// may be repeated safely.
func (s *AuthService) RemoveSession(ctx context.Context, id uuid.UUID) (bool, error) {
	removed, err := s.repomanager.Sessions(s.db).Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("error removing session: %w", err)
	}
	return removed, nil
}

func (s *AuthService) createSession(ctx context.Context, db dbx.DBTX, user models.User) (*models.Session, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, err
	}

	lastSeen, err := s.repomanager.Sessions(db).Create(ctx, id, user.ID)
	if err != nil {
		return nil, err
	}
	return &models.Session{ID: id, User: user, LastSeen: lastSeen}, nil
}

// burnHash spends the same time as a real check for unknown usernames.
// The salt does not affect the cost, so a fixed one is used.
func (s *AuthService) burnHash(password string) {
	_ = s.hasher.Hash(password, 0)
}
