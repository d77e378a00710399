package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/userbase/internal/common"
	"github.com/dmitrijs2005/userbase/internal/cryptox"
	"github.com/dmitrijs2005/userbase/internal/dbx"
	"github.com/dmitrijs2005/userbase/internal/server/models"
	sessionsrepo "github.com/dmitrijs2005/userbase/internal/server/repositories/sessions"
	usersrepo "github.com/dmitrijs2005/userbase/internal/server/repositories/users"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// memStore behaves like the PostgreSQL schema: unique usernames, a minimum
// username length, known roles only, and sessions cascading with users.
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]*memUser
	sessions map[uuid.UUID]*memSession
	now      func() time.Time

	// injected failures
	usersErr    error
	sessionsErr error
	touchGone   bool
}

type memUser struct {
	user   models.User
	secret models.StoredSecret
}

type memSession struct {
	userID   int64
	lastSeen time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]*memUser{},
		sessions: map[uuid.UUID]*memSession{},
		now:      time.Now,
	}
}

func (m *memStore) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memStore) Users(dbx.DBTX) usersrepo.Repository { return (*memUsers)(m) }
func (m *memStore) Sessions(dbx.DBTX) sessionsrepo.Repository { return (*memSessions)(m) }
func (m *memStore) secretOf(id int64) models.StoredSecret { return m.users[id].secret }
func (m *memStore) sessionCount() int { return len(m.sessions) }

type memUsers memStore

func (r *memUsers) checkRow(u *models.User, skipID int64) error {
	if !u.Role.Valid() || len(u.UserName) < 4 {
		return common.ErrorInvalid
	}
	for id, existing := range r.users {
		if id != skipID && existing.user.UserName == u.UserName {
			return common.ErrorConflict
		}
	}
	return nil
}

func (r *memUsers) Create(_ context.Context, u *models.User, secret models.StoredSecret) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.usersErr != nil {
		return nil, r.usersErr
	}
	if err := r.checkRow(u, 0); err != nil {
		return nil, err
	}
	r.nextID++
	u.ID = r.nextID
	secret.UserID = u.ID
	r.users[u.ID] = &memUser{user: *u, secret: secret}
	return u, nil
}

func (r *memUsers) Update(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.users[u.ID]
	if !ok {
		return common.ErrorNotFound
	}
	if err := r.checkRow(u, u.ID); err != nil {
		return err
	}
	row.user = *u
	return nil
}

func (r *memUsers) UpdateWithPassword(_ context.Context, u *models.User, secret models.StoredSecret) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.users[u.ID]
	if !ok {
		return common.ErrorNotFound
	}
	if err := r.checkRow(u, u.ID); err != nil {
		return err
	}
	row.user = *u
	row.secret = secret
	return nil
}

func (r *memUsers) Get(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.usersErr != nil {
		return nil, r.usersErr
	}
	row, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := row.user
	return &u, nil
}

func (r *memUsers) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	for sid, s := range r.sessions {
		if s.userID == id {
			delete(r.sessions, sid)
		}
	}
	return true, nil
}

func (r *memUsers) List(context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.usersErr != nil {
		return nil, r.usersErr
	}
	out := []*models.User{}
	for _, row := range r.users {
		u := row.user
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memUsers) GetSalt(_ context.Context, userName string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.usersErr != nil {
		return 0, r.usersErr
	}
	for _, row := range r.users {
		if row.user.UserName == userName {
			return row.secret.Salt, nil
		}
	}
	return 0, common.ErrorNotFound
}

func (r *memUsers) FindByCredentials(_ context.Context, userName, hash string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.users {
		if row.user.UserName == userName && row.secret.PasswordHash == hash {
			u := row.user
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type memSessions memStore

func (r *memSessions) Create(_ context.Context, id uuid.UUID, userID int64) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessionsErr != nil {
		return time.Time{}, r.sessionsErr
	}
	if _, ok := r.users[userID]; !ok {
		return time.Time{}, common.ErrorInvalid
	}
	now := r.now()
	r.sessions[id] = &memSession{userID: userID, lastSeen: now}
	return now, nil
}

func (r *memSessions) Find(_ context.Context, id uuid.UUID) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessionsErr != nil {
		return nil, r.sessionsErr
	}
	s, ok := r.sessions[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	row, ok := r.users[s.userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &models.Session{ID: id, User: row.user, LastSeen: s.lastSeen}, nil
}

func (r *memSessions) Touch(_ context.Context, id uuid.UUID) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || r.touchGone {
		return time.Time{}, common.ErrorNotFound
	}
	if now := r.now(); now.After(s.lastSeen) {
		s.lastSeen = now
	}
	return s.lastSeen, nil
}

func (r *memSessions) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessionsErr != nil {
		return false, r.sessionsErr
	}
	if _, ok := r.sessions[id]; !ok {
		return false, nil
	}
	delete(r.sessions, id)
	return true, nil
}

// newTxDB returns an in-memory SQLite handle. The fakes ignore it; it only
// gives dbx.WithTx something real to begin and commit.
func newTxDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestHasher(t *testing.T) *cryptox.Hasher {
	t.Helper()
	h, err := cryptox.NewHasher(cryptox.Params{Time: 1, Memory: 64, Threads: 1})
	require.NoError(t, err)
	return h
}

type fixture struct {
	store *memStore
	users *UserService
	auth  *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTxDB(t)
	store := newMemStore()
	h := newTestHasher(t)
	return &fixture{
		store: store,
		users: NewUserService(db, store, h),
		auth:  NewAuthService(db, store, h),
	}
}

func ptr(s string) *string { return &s }

type errBoom struct{}

func (errBoom) Error() string { return "boom" }
