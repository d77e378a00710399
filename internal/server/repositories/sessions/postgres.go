package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/userbase/internal/dbx"
	"github.com/dmitrijs2005/userbase/internal/server/models"
	"github.com/dmitrijs2005/userbase/internal/server/repositories/pgerr"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, id uuid.UUID, userID int64) (time.Time, error) {
	query := `
		INSERT INTO sessions (session_id, user_id)
		VALUES ($1, $2)
		RETURNING last_seen
	`
	var lastSeen time.Time
	if err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&lastSeen); err != nil {
		return time.Time{}, pgerr.Wrap(err)
	}
	return lastSeen, nil
}

func (r *PostgresRepository) Find(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	query := `
		SELECT s.session_id, s.last_seen, u.user_id, r.role, u.username
		FROM sessions s
		JOIN users u ON u.user_id = s.user_id
		JOIN user_roles r ON r.role_id = u.role_id
		WHERE s.session_id = $1
	`
	s := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&s.ID, &s.LastSeen, &s.User.ID, &s.User.Role, &s.User.UserName)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return s, nil
}

func (r *PostgresRepository) Touch(ctx context.Context, id uuid.UUID) (time.Time, error) {
	// GREATEST keeps last_seen monotonic even if clocks disagree between
	// transactions.
	query := `
		UPDATE sessions
		SET last_seen = GREATEST(last_seen, now())
		WHERE session_id = $1
		RETURNING last_seen
	`
	var lastSeen time.Time
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&lastSeen); err != nil {
		return time.Time{}, pgerr.Wrap(err)
	}
	return lastSeen, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_id = $1`, id)
	if err != nil {
		return false, pgerr.Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, pgerr.Wrap(err)
	}
	return n > 0, nil
}
