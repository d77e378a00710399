package grpc

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/userbase/internal/common"
	"github.com/dmitrijs2005/userbase/internal/logging"
	"github.com/dmitrijs2005/userbase/internal/server/models"
	"github.com/google/uuid"
)

type fakeUsers struct {
	user    *models.User
	list    []*models.User
	deleted bool
	err     error

	gotID    int64
	gotCreds models.Credentials
}

func (f *fakeUsers) AddUser(_ context.Context, c models.Credentials) (*models.User, error) {
	f.gotCreds = c
	return f.user, f.err
}

func (f *fakeUsers) UpdateUser(_ context.Context, id int64, c models.Credentials) (*models.User, error) {
	f.gotID, f.gotCreds = id, c
	return f.user, f.err
}

func (f *fakeUsers) GetUser(_ context.Context, id int64) (*models.User, error) {
	f.gotID = id
	return f.user, f.err
}

func (f *fakeUsers) DeleteUser(_ context.Context, id int64) (bool, error) {
	f.gotID = id
	return f.deleted, f.err
}

func (f *fakeUsers) GetUsers(context.Context) ([]*models.User, error) {
	return f.list, f.err
}

// fakeAuth knows a fixed set of accounts by name and password and keeps
// issued sessions in memory.
type fakeAuth struct {
	mu       sync.Mutex
	accounts map[string]fakeAccount
	sessions map[uuid.UUID]*models.Session
	err      error
}

type fakeAccount struct {
	password string
	user     models.User
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{
		accounts: map[string]fakeAccount{
			"alice": {password: "p1", user: models.User{ID: 1, UserName: "alice", Role: models.RoleAdmin}},
			"bobby": {password: "p2", user: models.User{ID: 2, UserName: "bobby", Role: models.RoleUser}},
		},
		sessions: map[uuid.UUID]*models.Session{},
	}
}

func (f *fakeAuth) Authenticate(_ context.Context, c models.Credentials) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	acc, ok := f.accounts[c.UserName]
	if !ok || acc.password != c.PasswordOrEmpty() {
		return nil, common.ErrorUnauthorized
	}
	s := &models.Session{ID: uuid.New(), User: acc.user}
	f.sessions[s.ID] = s
	return s, nil
}

func (f *fakeAuth) GetSession(_ context.Context, id uuid.UUID) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.sessions[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *s
	return &out, nil
}

func (f *fakeAuth) RemoveSession(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.sessions[id]
	delete(f.sessions, id)
	return ok, nil
}

// login issues a session directly, bypassing the password check.
func (f *fakeAuth) login(t *testing.T, name string) *models.Session {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &models.Session{ID: uuid.New(), User: f.accounts[name].user}
	f.sessions[s.ID] = s
	return s
}

func newTestServer(us userService, as authService) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", time.Second, logging.Nop{}, us, as)
}
