package cli

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/dmitrijs2005/userbase/internal/common"
	"github.com/dmitrijs2005/userbase/internal/logging"
	"github.com/dmitrijs2005/userbase/internal/server/models"
	"github.com/google/uuid"
)

type memUser struct {
	user     models.User
	password string
}

type fakeServices struct {
	nextID   int64
	users    map[int64]*memUser
	sessions map[uuid.UUID]int64
	err      error
}

func newFakeServices() *fakeServices {
	return &fakeServices{users: map[int64]*memUser{}, sessions: map[uuid.UUID]int64{}}
}

func (f *fakeServices) AddUser(_ context.Context, c models.Credentials) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.user.UserName == c.UserName {
			return nil, common.ErrorConflict
		}
	}
	f.nextID++
	u := models.User{ID: f.nextID, UserName: c.UserName, Role: c.Role}
	f.users[u.ID] = &memUser{user: u, password: c.PasswordOrEmpty()}
	return &u, nil
}

func (f *fakeServices) UpdateUser(_ context.Context, id int64, c models.Credentials) (*models.User, error) {
	row, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	row.user.UserName, row.user.Role = c.UserName, c.Role
	if c.HasPassword() {
		row.password = c.PasswordOrEmpty()
	}
	u := row.user
	return &u, nil
}

func (f *fakeServices) GetUser(_ context.Context, id int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	row, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := row.user
	return &u, nil
}

func (f *fakeServices) DeleteUser(_ context.Context, id int64) (bool, error) {
	_, ok := f.users[id]
	delete(f.users, id)
	return ok, nil
}

func (f *fakeServices) GetUsers(context.Context) ([]*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []*models.User{}
	for _, row := range f.users {
		u := row.user
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeServices) Authenticate(_ context.Context, c models.Credentials) (*models.Session, error) {
	for _, row := range f.users {
		if row.user.UserName == c.UserName && row.password == c.PasswordOrEmpty() {
			s := &models.Session{ID: uuid.New(), User: row.user}
			f.sessions[s.ID] = row.user.ID
			return s, nil
		}
	}
	return nil, common.ErrorUnauthorized
}

func (f *fakeServices) RemoveSession(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.sessions[id]
	delete(f.sessions, id)
	return ok, nil
}

// stubPasswords makes readPassword return the given answers in order.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	orig := readPassword
	readPassword = func(int) ([]byte, error) {
		if len(answers) == 0 {
			t.Fatal("unexpected password prompt")
		}
		pw := []byte(answers[0])
		answers = answers[1:]
		return pw, nil
	}
	t.Cleanup(func() { readPassword = orig })
}

func newTestConsole(svc *fakeServices, input ...string) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(input, "\n") + "\n")
	return NewConsole(svc, svc, logging.Nop{}, in, &out), &out
}
