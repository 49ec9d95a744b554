// Package session owns the bearer token, its validity and the resolved
// identity of the current user. It is the only code that arms the shared
// HTTP client.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"campus/client"
	"campus/models"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionExpired   = errors.New("session expired")
)

const (
	DefaultLoginFailure    = "Login failed. Please check your username and password."
	DefaultRegisterFailure = "Registration failed. Please try again."
)

// State is a point-in-time copy of the session.
type State struct {
	Token           string
	Claims          *models.Claims
	CurrentUser     *models.User
	IsAuthenticated bool
	Loading         bool
}

// LoginResult reports the outcome of Login without requiring the caller to
// inspect the error.
type LoginResult struct {
	Success bool
	Role    models.Role
	Message string
}

type RegisterResult struct {
	Success bool
	User    *models.User
	Message string
}

// RoleError is an advisory client-side permission rejection.
type RoleError struct {
	Have models.Role
	Need []models.Role
}

func (e *RoleError) Error() string {
	return fmt.Sprintf("role %s is not allowed; requires one of %v", e.Have, e.Need)
}

func (e *RoleError) Unwrap() error { return client.ErrForbidden }

type Manager struct {
	client *client.Client
	store  Store
	log    logrus.FieldLogger
	now    func() time.Time

	mu    sync.RWMutex
	state State
	// gen increments on every login and logout; a slower identity fetch
	// started under an older generation must not overwrite newer state.
	gen uint64

	ready     chan struct{}
	readyOnce sync.Once
}

type Option func(*Manager)

func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Manager) { m.log = l }
}

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager builds the session for one running client. It registers itself
// with c so that a 401 on any authorized request logs the user out.
func NewManager(c *client.Client, store Store, opts ...Option) *Manager {
	m := &Manager{
		client: c,
		store:  store,
		log:    logrus.StandardLogger(),
		now:    time.Now,
		state:  State{Loading: true},
		ready:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	c.OnUnauthorized(m.forceLogout)
	return m
}

// Initialize restores the session from the store. It returns nil when the
// outcome is definite (authenticated, or no token), ErrSessionExpired when
// the stored token was unusable or rejected (the session is cleared), and
// any other error when the identity fetch failed without a verdict; the
// token is kept in that case so the caller can try again.
func (m *Manager) Initialize(ctx context.Context) error {
	defer m.markReady()

	token, err := m.store.Load()
	if errors.Is(err, ErrNoToken) {
		m.log.Debug("no stored session")
		return nil
	}
	if err != nil {
		m.log.WithError(err).Warn("cannot read stored session")
		return err
	}

	claims, err := DecodeToken(token)
	if err != nil {
		m.log.WithError(err).Info("stored token is malformed, logging out")
		m.Logout()
		return fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}
	if claims.Expired(m.now()) {
		m.log.Info("stored token has expired, logging out")
		m.Logout()
		return ErrSessionExpired
	}

	m.mu.Lock()
	gen := m.gen
	m.state.Token = token
	m.state.Claims = claims
	m.client.SetToken(token)
	m.mu.Unlock()

	user, err := m.fetchIdentity(ctx)
	switch {
	case err == nil:
		if m.commitUser(gen, user) {
			m.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("session restored")
		}
		return nil
	case client.IsAuthError(err):
		m.log.WithError(err).Info("stored token rejected by backend, logging out")
		m.Logout()
		return fmt.Errorf("%w: %w", ErrSessionExpired, err)
	default:
		m.log.WithError(err).Warn("cannot fetch current user, keeping stored token")
		return fmt.Errorf("fetching current user: %w", err)
	}
}

// Login authenticates against the backend and, on success, persists the
// token, arms the client and resolves the identity on a best-effort basis.
// Failures are reported in the result and as the returned error.
func (m *Manager) Login(ctx context.Context, username, password string) (LoginResult, error) {
	defer m.markReady()

	creds := models.Credentials{Username: username, Password: password}
	if err := models.Validate(creds); err != nil {
		return LoginResult{Message: err.Error()}, err
	}

	var resp models.LoginResponse
	err := m.client.Post(client.SkipUnauthorizedHook(ctx), client.PathLogin, creds, &resp)
	if err != nil {
		m.log.WithError(err).WithField("username", username).Info("login rejected")
		return LoginResult{Message: loginFailureMessage(err)}, err
	}
	if resp.Token == "" {
		err := errors.New("login response carried no token")
		return LoginResult{Message: DefaultLoginFailure}, err
	}

	// The token is opaque to the client; claims are kept when it decodes.
	claims, _ := DecodeToken(resp.Token)

	m.mu.Lock()
	if err := m.store.Save(resp.Token); err != nil {
		m.log.WithError(err).Warn("cannot persist token, session will not survive a restart")
	}
	m.gen++
	gen := m.gen
	m.state = State{Token: resp.Token, Claims: claims}
	m.client.SetToken(resp.Token)
	m.mu.Unlock()

	result := LoginResult{Success: true, Message: resp.Message}
	if result.Message == "" {
		result.Message = "Login successful"
	}

	user, err := m.fetchIdentity(ctx)
	if err != nil {
		m.log.WithError(err).Warn("logged in but cannot fetch current user")
		return result, nil
	}
	if m.commitUser(gen, user) {
		result.Role = user.Role
		m.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("logged in")
	}
	return result, nil
}

func loginFailureMessage(err error) string {
	if client.IsNetworkError(err) {
		return client.UserMessage(err)
	}
	if msg := client.Message(err); msg != "" {
		return msg
	}
	return DefaultLoginFailure
}

// Register creates an account. It never changes the session.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) (RegisterResult, error) {
	if err := models.Validate(req); err != nil {
		return RegisterResult{Message: err.Error()}, err
	}

	var resp models.RegisterResponse
	if err := m.client.Post(client.SkipUnauthorizedHook(ctx), client.PathRegister, req, &resp); err != nil {
		msg := client.Message(err)
		if client.IsNetworkError(err) {
			msg = client.UserMessage(err)
		}
		if msg == "" {
			msg = DefaultRegisterFailure
		}
		return RegisterResult{Message: msg}, err
	}

	msg := resp.Message
	if msg == "" {
		msg = "Registration successful"
	}
	return RegisterResult{Success: true, User: &resp.User, Message: msg}, nil
}

// Logout clears the stored token, the identity and the client credential.
// It is safe to call at any time, any number of times.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.clearLocked()
	m.mu.Unlock()
	m.markReady()
}

func (m *Manager) clearLocked() {
	if err := m.store.Clear(); err != nil {
		m.log.WithError(err).Warn("cannot clear stored token")
	}
	m.client.ClearToken()
	m.gen++
	m.state = State{}
}

// forceLogout runs when the backend answers 401 to a request sent with
// token. A rejection of a token the session no longer holds is ignored.
func (m *Manager) forceLogout(token string) {
	m.mu.Lock()
	if m.state.Token == "" || m.state.Token != token {
		m.mu.Unlock()
		m.log.Debug("ignoring 401 for a token the session no longer holds")
		return
	}
	m.clearLocked()
	m.mu.Unlock()
	m.log.Info("backend rejected the session, logging out")
	m.markReady()
}

func (m *Manager) fetchIdentity(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := m.client.Get(client.SkipUnauthorizedHook(ctx), client.PathCurrent, nil, &user); err != nil {
		return nil, err
	}
	user.Role = models.ParseRole(string(user.Role))
	return &user, nil
}

// commitUser stores user if no login or logout happened since gen.
func (m *Manager) commitUser(gen uint64, user *models.User) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return false
	}
	m.state.CurrentUser = user
	m.state.IsAuthenticated = true
	return true
}

func (m *Manager) markReady() {
	m.mu.Lock()
	m.state.Loading = false
	m.mu.Unlock()
	m.readyOnce.Do(func() { close(m.ready) })
}

// Ready is closed once the session has resolved for the first time.
func (m *Manager) Ready() <-chan struct{} { return m.ready }

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.state
	if s.CurrentUser != nil {
		u := *s.CurrentUser
		s.CurrentUser = &u
	}
	if s.Claims != nil {
		c := *s.Claims
		s.Claims = &c
	}
	return s
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.IsAuthenticated
}

// CurrentUser waits for the session to resolve and returns the user.
func (m *Manager) CurrentUser(ctx context.Context) (*models.User, error) {
	select {
	case <-m.ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.state.IsAuthenticated || m.state.CurrentUser == nil {
		return nil, ErrNotAuthenticated
	}
	u := *m.state.CurrentUser
	return &u, nil
}

// RequireRole returns the current user when their role is one of roles.
// The check is a convenience; the backend enforces authorization itself.
func (m *Manager) RequireRole(ctx context.Context, roles ...models.Role) (*models.User, error) {
	user, err := m.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if user.Role == r {
			return user, nil
		}
	}
	return nil, &RoleError{Have: user.Role, Need: roles}
}

func (m *Manager) hasRole(r models.Role) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.CurrentUser != nil && m.state.CurrentUser.Role == r
}

func (m *Manager) IsAdmin() bool   { return m.hasRole(models.RoleAdmin) }
func (m *Manager) IsFaculty() bool { return m.hasRole(models.RoleFaculty) }
func (m *Manager) IsStudent() bool { return m.hasRole(models.RoleStudent) }
func (m *Manager) IsStaff() bool   { return m.hasRole(models.RoleStaff) }
