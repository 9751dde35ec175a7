// Package session holds the authenticated user session: the account profile
// and the backend session cookies, persisted to a single file so a restarted
// process stays logged in.
package session

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-faster/errors"

	"github.com/mercadito/storefront/internal/domain/user"
)

// persisted is the on-disk session layout.
type persisted struct {
	User    *user.User     `json:"user,omitempty"`
	Cookies []*http.Cookie `json:"cookies,omitempty"`
}

// Store is process-wide session state with an explicit lifecycle: loaded
// once at startup, mutated only by Login/SetUser/Clear, and exposed to the
// rest of the client through IsAuthenticated and the invalidation callbacks.
type Store struct {
	path string
	base *url.URL

	mu   sync.Mutex
	jar  *cookiejar.Jar
	user *user.User
	subs []func()
}

// New creates a Store persisting to path, scoped to the backend base URL.
// An existing session file is loaded; a corrupt one is discarded and the
// store starts logged out.
func New(path string, base *url.URL) (*Store, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "create cookie jar")
	}

	s := &Store{path: path, base: base, jar: jar}
	if err := s.load(); err != nil {
		// A session file we cannot read is treated like no session at all.
		_ = os.Remove(path)
	}
	return s, nil
}

// Jar returns the cookie jar carrying the backend session cookie. It is
// meant to be installed on the API http.Client. The returned jar delegates
// through the store so that Clear empties cookies even for a client that
// captured the jar before the session was torn down.
func (s *Store) Jar() http.CookieJar {
	return (*storeJar)(s)
}

// storeJar adapts Store to http.CookieJar, always delegating to the
// store's current jar.
type storeJar Store

func (j *storeJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	s := (*Store)(j)
	s.mu.Lock()
	jar := s.jar
	s.mu.Unlock()
	jar.SetCookies(u, cookies)
}

func (j *storeJar) Cookies(u *url.URL) []*http.Cookie {
	s := (*Store)(j)
	s.mu.Lock()
	jar := s.jar
	s.mu.Unlock()
	return jar.Cookies(u)
}

// Current returns the logged-in user profile, or nil when logged out.
func (s *Store) Current() *user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a session is active.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// Login records the user returned by the login endpoint and persists the
// session, including whatever cookies the backend set during login.
func (s *Store) Login(u user.User) error {
	s.mu.Lock()
	s.user = &u
	err := s.save()
	s.mu.Unlock()
	return err
}

// SetUser replaces the stored profile after a profile update and persists it.
// It is a no-op while logged out.
func (s *Store) SetUser(u user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	s.user = &u
	return s.save()
}

// Clear tears the session down: profile and cookies are dropped, the session
// file is removed, and every subscriber registered with OnInvalidate is
// notified. Used by logout and by the transport's 401 hook.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.user = nil
	if jar, err := cookiejar.New(nil); err == nil {
		s.jar = jar
	}
	err := os.Remove(s.path)
	subs := append([]func(){}, s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}

	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove session file")
	}
	return nil
}

// OnInvalidate registers callbacks to run whenever the session is cleared.
// Callers use this to drop per-session caches.
func (s *Store) OnInvalidate(fns ...func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fns...)
	s.mu.Unlock()
}

// save writes the profile and the base-URL cookies. Callers hold s.mu.
func (s *Store) save() error {
	p := persisted{
		User:    s.user,
		Cookies: s.jar.Cookies(s.base),
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal session")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "create session dir")
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.Wrap(err, "write session file")
	}
	return nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "read session file")
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return errors.Wrap(err, "parse session file")
	}
	if p.User == nil || p.User.ID == "" {
		return nil
	}

	s.user = p.User
	if len(p.Cookies) > 0 {
		s.jar.SetCookies(s.base, p.Cookies)
	}
	return nil
}
