package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/userbase/internal/common"
	"github.com/dmitrijs2005/userbase/internal/logging"
	"github.com/dmitrijs2005/userbase/internal/server/models"
	"github.com/google/uuid"
)

// generatedPasswordBytes is the entropy of a generated password; the
// password itself is its hex encoding.
const generatedPasswordBytes = 12

type userService interface {
	AddUser(ctx context.Context, c models.Credentials) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, c models.Credentials) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
	GetUsers(ctx context.Context) ([]*models.User, error)
}

type authService interface {
	Authenticate(ctx context.Context, c models.Credentials) (*models.Session, error)
	RemoveSession(ctx context.Context, id uuid.UUID) (bool, error)
}

type Console struct {
	users  userService
	auth   authService
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

func NewConsole(us userService, as authService, l logging.Logger, in io.Reader, out io.Writer) *Console {
	return &Console{
		users:  us,
		auth:   as,
		logger: l.With("module", "admin_console"),
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// fail reports err to the operator and returns it.
func (c *Console) fail(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		c.printf("%s: no such user or session\n", op)
	case errors.Is(err, common.ErrorConflict):
		c.printf("%s: username already taken\n", op)
	case errors.Is(err, common.ErrorInvalid):
		c.printf("%s: rejected: %v\n", op, err)
	case errors.Is(err, common.ErrorUnauthorized):
		c.printf("%s: %v\n", op, err)
	default:
		c.logger.Error(ctx, op+" failed", "error", err)
		c.printf("%s: %v\n", op, common.ErrorInternal)
	}
	return err
}

func (c *Console) readRole(prompt string, fallback models.Role) (models.Role, error) {
	for {
		s, err := GetSimpleText(c.reader, fmt.Sprintf("%s [%s]", prompt, fallback), c.out)
		if err != nil {
			return "", err
		}
		if s == "" {
			return fallback, nil
		}
		r, err := models.ParseRole(s)
		if err == nil {
			return r, nil
		}
		c.printf("%v; choose one of %v\n", err, models.Roles)
	}
}

// readPasswordOrEmpty returns nil when the operator just presses Enter.
func (c *Console) readPasswordOrEmpty(prompt string) (*string, error) {
	pw, err := GetPassword(prompt, c.out)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(pw)
	if len(pw) == 0 {
		return nil, nil
	}
	s := string(pw)
	return &s, nil
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected a single numeric id")
	}
	return strconv.ParseInt(args[0], 10, 64)
}

func (c *Console) Add(ctx context.Context) error {
	name, err := GetSimpleText(c.reader, "Username", c.out)
	if err != nil {
		return err
	}
	role, err := c.readRole("Role", models.RoleUser)
	if err != nil {
		return err
	}
	password, err := c.readPasswordOrEmpty("Password (empty to generate)")
	if err != nil {
		return err
	}

	generated := password == nil
	if generated {
		s, err := common.MakeRandHexString(generatedPasswordBytes)
		if err != nil {
			return c.fail(ctx, "add", err)
		}
		password = &s
	}

	u, err := c.users.AddUser(ctx, models.Credentials{UserName: name, Role: role, Password: password})
	if err != nil {
		return c.fail(ctx, "add", err)
	}

	c.logger.Info(ctx, "User created", "user_id", u.ID, "role", u.Role)
	c.printf("created user %d (%s, %s)\n", u.ID, u.UserName, u.Role)
	if generated {
		c.printf("generated password: %s\n", *password)
	}
	return nil
}

func (c *Console) Update(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		c.printf("Usage: update <id>\n")
		return err
	}

	current, err := c.users.GetUser(ctx, id)
	if err != nil {
		return c.fail(ctx, "update", err)
	}

	name, err := GetSimpleText(c.reader, fmt.Sprintf("Username [%s]", current.UserName), c.out)
	if err != nil {
		return err
	}
	if name == "" {
		name = current.UserName
	}
	role, err := c.readRole("Role", current.Role)
	if err != nil {
		return err
	}
	password, err := c.readPasswordOrEmpty("New password (empty to keep)")
	if err != nil {
		return err
	}

	u, err := c.users.UpdateUser(ctx, id, models.Credentials{UserName: name, Role: role, Password: password})
	if err != nil {
		return c.fail(ctx, "update", err)
	}

	c.logger.Info(ctx, "User updated", "user_id", u.ID, "password_changed", password != nil)
	c.printf("updated user %d (%s, %s)\n", u.ID, u.UserName, u.Role)
	return nil
}

func (c *Console) Show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		c.printf("Usage: show <id>\n")
		return err
	}

	u, err := c.users.GetUser(ctx, id)
	if err != nil {
		return c.fail(ctx, "show", err)
	}
	c.printUsers([]*models.User{u})
	return nil
}

func (c *Console) List(ctx context.Context) error {
	list, err := c.users.GetUsers(ctx)
	if err != nil {
		return c.fail(ctx, "list", err)
	}
	if len(list) == 0 {
		c.printf("no users\n")
		return nil
	}
	c.printUsers(list)
	return nil
}

func (c *Console) printUsers(list []*models.User) {
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tROLE")
	for _, u := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", u.ID, u.UserName, u.Role)
	}
	_ = tw.Flush()
}

func (c *Console) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		c.printf("Usage: delete <id>\n")
		return err
	}

	deleted, err := c.users.DeleteUser(ctx, id)
	if err != nil {
		return c.fail(ctx, "delete", err)
	}
	if !deleted {
		c.printf("user %d does not exist\n", id)
		return nil
	}

	c.logger.Info(ctx, "User deleted", "user_id", id)
	c.printf("deleted user %d\n", id)
	return nil
}

func (c *Console) Login(ctx context.Context) error {
	name, err := GetSimpleText(c.reader, "Username", c.out)
	if err != nil {
		return err
	}
	pw, err := GetPassword("Password", c.out)
	if err != nil {
		return err
	}
	password := string(pw)
	common.WipeByteArray(pw)

	session, err := c.auth.Authenticate(ctx, models.Credentials{UserName: name, Password: &password})
	if err != nil {
		return c.fail(ctx, "login", err)
	}

	c.printf("logged in as %s (%s)\nsession token: %s\n", session.User.UserName, session.User.Role, session.ID)
	return nil
}

func (c *Console) Logout(ctx context.Context, args []string) error {
	if len(args) != 1 {
		c.printf("Usage: logout <token>\n")
		return errors.New("expected a session token")
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		c.printf("logout: malformed token\n")
		return err
	}

	removed, err := c.auth.RemoveSession(ctx, id)
	if err != nil {
		return c.fail(ctx, "logout", err)
	}
	if removed {
		c.printf("session revoked\n")
	} else {
		c.printf("no such session\n")
	}
	return nil
}
