package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"coachboard/internal/api"
	"coachboard/internal/metrics"
)

// User-facing error messages
const (
	MsgCheckFailed  = "Failed to check authentication status"
	MsgInvalidLogin = "Invalid email or password"
	MsgLoginFailed  = "Login failed. Please try again."
	MsgNetworkError = "Network error. Please check your connection."
)

// Status is the authentication state of the process
type Status int

const (
	StatusUnknown Status = iota
	StatusUnauthenticated
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// State is a snapshot of the session. Snapshots are copies and safe to keep.
type State struct {
	Status  Status
	User    *api.User
	Loading bool
	Error   string
}

// IsAuthenticated reports whether a user is present
func (s State) IsAuthenticated() bool {
	return s.User != nil
}

// Authenticator is the subset of the API client the session needs
type Authenticator interface {
	Me(ctx context.Context, opts ...api.RequestOption) (*api.User, error)
	Login(ctx context.Context, email, password string, opts ...api.RequestOption) (*api.Token, error)
	Logout(ctx context.Context, opts ...api.RequestOption) error
}

// Manager owns the login lifecycle and broadcasts every state change to
// subscribers. It is meant to have a single writer; reads are safe from any
// goroutine.
type Manager struct {
	auth   Authenticator
	logger *slog.Logger

	mu     sync.Mutex
	state  State
	subs   map[int]func(State)
	nextID int

	ready     chan struct{}
	readyOnce sync.Once
}

// NewManager creates a manager in the unknown, loading state
func NewManager(auth Authenticator, logger *slog.Logger) *Manager {
	m := &Manager{
		auth:   auth,
		logger: logger,
		state:  State{Status: StatusUnknown, Loading: true},
		subs:   make(map[int]func(State)),
		ready:  make(chan struct{}),
	}
	metrics.SessionState.Set(float64(StatusUnknown))
	return m
}

// State returns a snapshot of the current state
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return snapshot(m.state)
}

// IsAuthenticated reports whether a user is present
func (m *Manager) IsAuthenticated() bool {
	return m.State().IsAuthenticated()
}

// User returns a copy of the current user, or nil
func (m *Manager) User() *api.User {
	return m.State().User
}

// Subscribe registers fn to receive every state change. The returned
// function removes the subscription.
func (m *Manager) Subscribe(fn func(State)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// WaitReady blocks until the first Init has completed
func (m *Manager) WaitReady(ctx context.Context) error {
	select {
	case <-m.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Init resolves the current user from the backend. A 401 simply means
// nobody is logged in; only other classified failures surface an error.
func (m *Manager) Init(ctx context.Context) {
	defer m.readyOnce.Do(func() { close(m.ready) })

	m.update(func(s *State) {
		s.Loading = true
	})

	user, err := m.auth.Me(ctx)
	if err == nil {
		m.update(func(s *State) {
			s.Status = StatusAuthenticated
			s.User = user
			s.Error = ""
			s.Loading = false
		})
		m.logger.Info("session initialized", "status", StatusAuthenticated, "user_id", user.ID)
		metrics.SessionTransitionsTotal.WithLabelValues(metrics.EventInit, metrics.ResultSuccess).Inc()
		return
	}

	var apiErr *api.APIError
	message := ""
	if errors.As(err, &apiErr) && apiErr.Status != http.StatusUnauthorized {
		message = MsgCheckFailed
		m.logger.Error("failed to check authentication status", "error", err)
		metrics.SessionTransitionsTotal.WithLabelValues(metrics.EventInit, metrics.ResultFailure).Inc()
	} else {
		m.logger.Debug("no active session", "error", err)
		metrics.SessionTransitionsTotal.WithLabelValues(metrics.EventInit, metrics.ResultSuccess).Inc()
	}

	m.update(func(s *State) {
		s.Status = StatusUnauthenticated
		s.User = nil
		s.Error = message
		s.Loading = false
	})
}

// Login exchanges credentials then fetches the user. On failure the user is
// left untouched, Error holds a display message and the cause is returned.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.update(func(s *State) {
		s.Loading = true
		s.Error = ""
	})

	user, err := m.login(ctx, email, password)
	if err != nil {
		message := loginMessage(err)
		m.update(func(s *State) {
			s.Error = message
			s.Loading = false
		})
		m.logger.Warn("login failed", "status", api.StatusCode(err), "error", err)
		metrics.SessionTransitionsTotal.WithLabelValues(metrics.EventLogin, metrics.ResultFailure).Inc()
		return err
	}

	m.update(func(s *State) {
		s.Status = StatusAuthenticated
		s.User = user
		s.Loading = false
	})
	m.logger.Info("logged in", "user_id", user.ID, "role", user.Role)
	metrics.SessionTransitionsTotal.WithLabelValues(metrics.EventLogin, metrics.ResultSuccess).Inc()
	return nil
}

func (m *Manager) login(ctx context.Context, email, password string) (*api.User, error) {
	if _, err := m.auth.Login(ctx, email, password); err != nil {
		return nil, err
	}
	return m.auth.Me(ctx)
}

func loginMessage(err error) string {
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		return MsgNetworkError
	}
	if apiErr.Status == http.StatusUnauthorized {
		return MsgInvalidLogin
	}
	return MsgLoginFailed
}

// Logout ends the session. The backend call is best effort; local state is
// always cleared.
func (m *Manager) Logout(ctx context.Context) {
	m.update(func(s *State) {
		s.Loading = true
	})

	result := metrics.ResultSuccess
	if err := m.auth.Logout(ctx); err != nil {
		result = metrics.ResultFailure
		m.logger.Error("logout error", "error", err)
	}

	m.update(func(s *State) {
		s.Status = StatusUnauthenticated
		s.User = nil
		s.Error = ""
		s.Loading = false
	})
	m.logger.Info("logged out")
	metrics.SessionTransitionsTotal.WithLabelValues(metrics.EventLogout, result).Inc()
}

// update applies fn under the lock, then notifies subscribers outside it
func (m *Manager) update(fn func(*State)) {
	m.mu.Lock()
	fn(&m.state)
	snap := snapshot(m.state)
	subs := make([]func(State), 0, len(m.subs))
	for _, sub := range m.subs {
		subs = append(subs, sub)
	}
	m.mu.Unlock()

	metrics.SessionState.Set(float64(snap.Status))
	for _, sub := range subs {
		sub(snap)
	}
}

func snapshot(s State) State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
