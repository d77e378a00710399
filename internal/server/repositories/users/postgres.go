package users

import (
	"context"

	"github.com/dmitrijs2005/userbase/internal/common"
	"github.com/dmitrijs2005/userbase/internal/dbx"
	"github.com/dmitrijs2005/userbase/internal/server/models"
	"github.com/dmitrijs2005/userbase/internal/server/repositories/pgerr"
)

// PostgresRepository implements Repository over dbx.DBTX, so it can run on
// a pool or inside a transaction.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User, secret models.StoredSecret) (*models.User, error) {
	query := `
		INSERT INTO users (role_id, username, password_hash, salt)
		VALUES ((SELECT role_id FROM user_roles WHERE role = $1), $2, $3, $4)
		RETURNING user_id
	`
	err := r.db.QueryRowContext(ctx, query,
		string(user.Role), user.UserName, secret.PasswordHash, secret.Salt).Scan(&user.ID)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return user, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET username = $1,
		    role_id = (SELECT role_id FROM user_roles WHERE role = $2)
		WHERE user_id = $3
	`
	return r.exec(ctx, query, user.UserName, string(user.Role), user.ID)
}

func (r *PostgresRepository) UpdateWithPassword(ctx context.Context, user *models.User, secret models.StoredSecret) error {
	query := `
		UPDATE users
		SET username = $1,
		    password_hash = $2,
		    salt = $3,
		    role_id = (SELECT role_id FROM user_roles WHERE role = $4)
		WHERE user_id = $5
	`
	return r.exec(ctx, query, user.UserName, secret.PasswordHash, secret.Salt, string(user.Role), user.ID)
}

// exec runs an UPDATE that must hit exactly one row.
func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return pgerr.Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return pgerr.Wrap(err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT u.user_id, r.role, u.username
		FROM users u
		JOIN user_roles r ON r.role_id = u.role_id
		WHERE u.user_id = $1
	`
	user := &models.User{}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Role, &user.UserName); err != nil {
		return nil, pgerr.Wrap(err)
	}
	return user, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return false, pgerr.Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, pgerr.Wrap(err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT u.user_id, r.role, u.username
		FROM users u
		JOIN user_roles r ON r.role_id = u.role_id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	defer rows.Close()

	result := []*models.User{}
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Role, &user.UserName); err != nil {
			return nil, pgerr.Wrap(err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err)
	}
	return result, nil
}

func (r *PostgresRepository) GetSalt(ctx context.Context, userName string) (int64, error) {
	var salt int64
	err := r.db.QueryRowContext(ctx, `SELECT salt FROM users WHERE username = $1`, userName).Scan(&salt)
	if err != nil {
		return 0, pgerr.Wrap(err)
	}
	return salt, nil
}

func (r *PostgresRepository) FindByCredentials(ctx context.Context, userName string, passwordHash string) (*models.User, error) {
	query := `
		SELECT u.user_id, r.role, u.username
		FROM users u
		JOIN user_roles r ON r.role_id = u.role_id
		WHERE u.username = $1 AND u.password_hash = $2
	`
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, userName, passwordHash).Scan(&user.ID, &user.Role, &user.UserName)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return user, nil
}
