// Package cryptox implements the credential hasher: per-user random salts
// and a deterministic Argon2id password hash keyed by that salt.
package cryptox

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const keyLength = 32

// Params are the Argon2id cost parameters. Changing them invalidates every
// stored hash, so they must stay fixed for the lifetime of a database.
type Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultParams match the cost used for master keys elsewhere in the project.
var DefaultParams = Params{Time: 1, Memory: 64 * 1024, Threads: 4}

// Hasher derives password hashes. It holds no mutable state and is safe for
// concurrent use.
type Hasher struct {
	params Params
}

func NewHasher(p Params) (*Hasher, error) {
	if p.Time == 0 || p.Threads == 0 {
		return nil, fmt.Errorf("argon2: time and threads must be positive")
	}
	if p.Memory < 8*uint32(p.Threads) {
		return nil, fmt.Errorf("argon2: memory must be at least 8*threads KiB")
	}
	return &Hasher{params: p}, nil
}

// Hash returns the hex encoded Argon2id key of password under salt.
// Equal inputs always give equal output.
func (h *Hasher) Hash(password string, salt int64) string {
	var s [8]byte
	binary.BigEndian.PutUint64(s[:], uint64(salt))

	key := argon2.IDKey([]byte(password), s[:], h.params.Time, h.params.Memory, h.params.Threads, keyLength)
	return hex.EncodeToString(key)
}

// GenerateSalt returns a fresh salt from the system CSPRNG.
func GenerateSalt() (int64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("generate salt: %w", err)
	}
	return int64(binary.BigEndian.Uint64(b[:])), nil
}
