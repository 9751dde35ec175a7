package session

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercadito/storefront/internal/domain/user"
)

func testBase(t *testing.T) *url.URL {
	t.Helper()
	base, err := url.Parse("http://backend.test/api")
	require.NoError(t, err)
	return base
}

func TestSessionSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	base := testBase(t)

	s, err := New(path, base)
	require.NoError(t, err)
	assert.False(t, s.IsAuthenticated())

	s.Jar().SetCookies(base, []*http.Cookie{{Name: "jwt", Value: "token-1", Path: "/"}})
	require.NoError(t, s.Login(user.User{ID: "u1", Name: "Ana", Email: "ana@example.com"}))
	require.True(t, s.IsAuthenticated())

	// A new store over the same file restores both the profile and the
	// backend session cookie.
	restored, err := New(path, base)
	require.NoError(t, err)
	require.True(t, restored.IsAuthenticated())
	assert.Equal(t, "Ana", restored.Current().Name)

	cookies := restored.Jar().Cookies(base)
	require.Len(t, cookies, 1)
	assert.Equal(t, "jwt", cookies[0].Name)
	assert.Equal(t, "token-1", cookies[0].Value)
}

func TestClearTearsDownEverything(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	base := testBase(t)

	s, err := New(path, base)
	require.NoError(t, err)
	s.Jar().SetCookies(base, []*http.Cookie{{Name: "jwt", Value: "token-1", Path: "/"}})
	require.NoError(t, s.Login(user.User{ID: "u1"}))

	invalidated := 0
	s.OnInvalidate(func() { invalidated++ })

	require.NoError(t, s.Clear())

	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.Current())
	assert.Empty(t, s.Jar().Cookies(base), "cookies must not outlive the session")
	assert.Equal(t, 1, invalidated)
	assert.NoFileExists(t, path)
}

func TestCorruptSessionFileStartsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := New(path, testBase(t))
	require.NoError(t, err)
	assert.False(t, s.IsAuthenticated())
	assert.NoFileExists(t, path, "a corrupt session file is discarded")
}

func TestSetUserWhileLoggedOutIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := New(path, testBase(t))
	require.NoError(t, err)

	require.NoError(t, s.SetUser(user.User{ID: "u1"}))
	assert.False(t, s.IsAuthenticated())
	assert.NoFileExists(t, path)
}
