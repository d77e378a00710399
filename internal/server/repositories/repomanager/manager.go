package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/userbase/internal/dbx"
	"github.com/dmitrijs2005/userbase/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/userbase/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a handle, which may be the
// pool or an open transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
