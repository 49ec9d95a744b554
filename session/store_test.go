package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campus", "token")
	s := NewFileStore(path)

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoToken)
	require.NoError(t, s.Clear(), "clearing a missing file is fine")

	require.NoError(t, s.Save("abc.def.ghi"))
	tok, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, s.Clear())
	_, err = s.Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestFileStore_BlankFileIsNoToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))

	_, err := NewFileStore(path).Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestDecodeToken(t *testing.T) {
	claims, err := DecodeToken(mintToken(t, 3, "ADMIN", testNow))
	require.NoError(t, err)
	assert.Equal(t, 3, claims.ID)
	assert.Equal(t, "ADMIN", string(claims.Role))

	_, err = DecodeToken("abc.def.ghi")
	assert.Error(t, err)
}

func TestDecodeToken_OnlyExpiryIsRequired(t *testing.T) {
	exp := testNow.Add(time.Hour)
	sign := func(c jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("k"))
		require.NoError(t, err)
		return s
	}

	claims, err := DecodeToken(sign(jwt.MapClaims{"id": "u-7", "sub": 42, "exp": exp.Unix()}))
	require.NoError(t, err)
	assert.Zero(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, exp.Equal(claims.ExpiresAt.Time))
	assert.False(t, claims.Expired(testNow))

	claims, err = DecodeToken(sign(jwt.MapClaims{"id": 7}))
	require.NoError(t, err)
	assert.True(t, claims.Expired(testNow), "no exp")

	_, err = DecodeToken(sign(jwt.MapClaims{"exp": "tomorrow"}))
	assert.Error(t, err)
}
