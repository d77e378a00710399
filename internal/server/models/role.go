package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is a user's access level. Its string form is what the user_roles
// table stores.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
	RoleNone  Role = "NONE"
)

// Roles lists every known role, highest clearance first.
var Roles = []Role{RoleAdmin, RoleUser, RoleNone}

func (r Role) level() int {
	switch r {
	case RoleAdmin:
		return 10
	case RoleUser:
		return 1
	default:
		return 0
	}
}

// Clearance reports whether r is at least as privileged as required.
func (r Role) Clearance(required Role) bool {
	return r.level() >= required.level()
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleNone:
		return true
	}
	return false
}

// ParseRole accepts any letter case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
