package models

// User is the public view of an account. Password material never leaves
// the users repository.
type User struct {
	ID       int64  `json:"id"`
	Role     Role   `json:"role"`
	UserName string `json:"username"`
}

// Credentials carry what a caller submits on registration, update or login.
// Password is nil when an update should leave the stored password alone.
type Credentials struct {
	UserName string  `json:"username"`
	Role     Role    `json:"role"`
	Password *string `json:"password,omitempty"`
}

func (c Credentials) HasPassword() bool {
	return c.Password != nil
}

// PasswordOrEmpty returns the plaintext password, or "" if none was given.
func (c Credentials) PasswordOrEmpty() string {
	if c.Password == nil {
		return ""
	}
	return *c.Password
}

// StoredSecret is the password row kept alongside each user.
type StoredSecret struct {
	UserID       int64
	PasswordHash string
	Salt         int64
}
