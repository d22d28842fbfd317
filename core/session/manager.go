package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/core/student"
)

const (
	loginFailedText  = "Failed to login"
	signupFailedText = "Failed to register"
)

// FlagStore persists the "last known session was logged in" hint.
// Only the Manager writes it.
type FlagStore interface {
	LoggedIn() (bool, error)
	SetLoggedIn(loggedIn bool) error
}

// Snapshot is a consistent read of the session, as consumed by protected views.
type Snapshot struct {
	State           State
	User            *student.Profile
	Loading         bool
	IsAuthenticated bool
	Err             error
}

// Manager owns the session of the student using the portal.
type Manager struct {
	auth     student.AuthBackend
	profiles student.ProfileSource
	flags    FlagStore
	log      core.Logger

	mu      sync.RWMutex
	state   State
	user    *student.Profile
	err     error
	pending int // login/signup calls in flight
}

func New(auth student.AuthBackend, profiles student.ProfileSource, flags FlagStore, logger core.Logger) *Manager {
	return &Manager{
		auth:     auth,
		profiles: profiles,
		flags:    flags,
		log:      logger,
	}
}

// Start resolves the session left by a previous run. The backend is only
// asked for the profile when the persisted flag says we were logged in.
func (m *Manager) Start(ctx context.Context) Snapshot {
	loggedIn, err := m.flags.LoggedIn()
	if err != nil {
		m.log.Warn("reading session flag", err)
	}
	if !loggedIn {
		m.setAnonymous(nil)
		return m.Snapshot()
	}

	m.setState(Checking)
	usr, err := m.profiles.GetProfile(ctx)
	if err != nil {
		m.log.Info("stored session is no longer valid", err)
		m.clearFlag()
		m.setAnonymous(nil)
		return m.Snapshot()
	}
	m.setAuthenticated(usr)
	return m.Snapshot()
}

// Login authenticates the student. A profile read failure after the backend
// accepted the credentials keeps the student logged in with a placeholder profile.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	creds := student.Credentials{Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		return &core.AuthError{Message: student.CredentialsRequiredText, Err: err}
	}

	m.begin()
	defer m.end()

	if err := m.auth.Login(ctx, creds); err != nil {
		authErr := &core.AuthError{Message: core.MessageOf(err, loginFailedText), Err: err}
		m.clearFlag()
		m.setAnonymous(authErr)
		return authErr
	}

	if err := m.flags.SetLoggedIn(true); err != nil {
		m.log.Warn("persisting session flag", err)
	}

	usr, err := m.profiles.GetProfile(ctx)
	if err != nil {
		usr = student.Placeholder(email)
		m.log.Warn("fetching profile after login", err, usr)
	}
	m.setAuthenticated(usr)
	return nil
}

// Signup registers a new student. It never changes the session: a separate
// login is required.
func (m *Manager) Signup(ctx context.Context, ns student.NewStudent) (student.Profile, error) {
	if err := ns.Validate(); err != nil {
		return student.Profile{}, err
	}

	m.begin()
	defer m.end()

	usr, err := m.auth.Signup(ctx, ns)
	if err != nil {
		return student.Profile{}, &core.AuthError{Message: core.MessageOf(err, signupFailedText), Err: err}
	}
	return usr, nil
}

// Logout always succeeds locally; a backend failure is only logged.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.RLock()
	usr := m.user
	m.mu.RUnlock()

	if err := m.auth.Logout(ctx); err != nil {
		if usr != nil {
			m.log.Error("logging out", err, *usr)
		} else {
			m.log.Error("logging out", err)
		}
	}
	m.clearFlag()
	m.setAnonymous(nil)
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		State:           m.state,
		Loading:         !m.state.resolved() || m.pending > 0,
		IsAuthenticated: m.state == Authenticated,
		Err:             m.err,
	}
	if m.user != nil {
		usr := *m.user
		snap.User = &usr
	}
	return snap
}

func (m *Manager) begin() {
	m.mu.Lock()
	m.pending++
	m.mu.Unlock()
}

func (m *Manager) end() {
	m.mu.Lock()
	m.pending--
	m.mu.Unlock()
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *Manager) setAuthenticated(usr student.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Authenticated
	m.user = &usr
	m.err = nil
}

func (m *Manager) setAnonymous(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Anonymous
	m.user = nil
	m.err = err
}

func (m *Manager) clearFlag() {
	if err := m.flags.SetLoggedIn(false); err != nil {
		m.log.Error("clearing session flag", errors.WithStack(err))
	}
}
