package cryptox

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap parameters keep the suite fast
var testParams = Params{Time: 1, Memory: 64, Threads: 1}

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := NewHasher(testParams)
	require.NoError(t, err)
	return h
}

func TestNewHasher_Validation(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{name: "defaults", params: DefaultParams},
		{name: "minimal", params: Params{Time: 1, Memory: 8, Threads: 1}},
		{name: "zero time", params: Params{Time: 0, Memory: 64, Threads: 1}, wantErr: true},
		{name: "zero threads", params: Params{Time: 1, Memory: 64, Threads: 0}, wantErr: true},
		{name: "too little memory", params: Params{Time: 1, Memory: 16, Threads: 4}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHasher(tt.params)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHash_Deterministic(t *testing.T) {
	h := newTestHasher(t)

	a := h.Hash("p1", 42)
	b := h.Hash("p1", 42)

	assert.Equal(t, a, b)
	raw, err := hex.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, keyLength)
}

func TestHash_SaltAndPasswordSensitive(t *testing.T) {
	h := newTestHasher(t)

	base := h.Hash("p1", 42)
	assert.NotEqual(t, base, h.Hash("p1", 43))
	assert.NotEqual(t, base, h.Hash("p1", -42))
	assert.NotEqual(t, base, h.Hash("p2", 42))
	assert.NotEqual(t, base, h.Hash("", 42))
}

func TestHash_DependsOnParams(t *testing.T) {
	h1 := newTestHasher(t)
	h2, err := NewHasher(Params{Time: 2, Memory: 64, Threads: 1})
	require.NoError(t, err)

	assert.NotEqual(t, h1.Hash("p1", 7), h2.Hash("p1", 7))
}

func TestGenerateSalt_Distinct(t *testing.T) {
	seen := make(map[int64]struct{}, 256)
	for i := 0; i < 256; i++ {
		s, err := GenerateSalt()
		require.NoError(t, err)
		_, dup := seen[s]
		require.False(t, dup, "salt repeated after %d draws", i)
		seen[s] = struct{}{}
	}
}
