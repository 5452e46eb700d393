package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"artisanmart/internal/models"
	"artisanmart/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// Routing keys for session events.
const (
	EventLogin       = "session.login"
	EventLogout      = "session.logout"
	EventInvalidated = "session.invalidated"
)

var (
	// ErrEmptyToken is returned by Login when no token is given.
	ErrEmptyToken = errors.New("token must not be empty")
	// ErrNotAuthenticated is returned by operations that need a live session.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Publisher sends events to other processes sharing the credential store.
type Publisher interface {
	Publish(routingKey string, body []byte) error
}

// Manager is the single authority over the session: it owns the persisted
// credential pair and the in-memory State, and every transition of either
// goes through it. Logout and the request layer's 401 path both end here.
type Manager struct {
	store     repositories.CredentialRepository
	publisher Publisher
	validate  *validator.Validate

	// opMu serializes transitions that touch both storage and state.
	opMu sync.Mutex

	mu        sync.RWMutex
	state     State
	listeners []func(State)
	pending   []State
	onLanding func()

	initOnce sync.Once
}

// NewManager creates a Manager in the Uninitialized state. publisher may be nil.
func NewManager(store repositories.CredentialRepository, publisher Publisher) *Manager {
	return &Manager{
		store:     store,
		publisher: publisher,
		validate:  validator.New(),
		state:     InitialState(),
	}
}

// OnLanding registers the navigation performed after a forced logout, such as
// sending the user back to the unauthenticated landing view.
func (m *Manager) OnLanding(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onLanding = fn
}

// Subscribe registers fn to receive every state produced by a transition.
// fn runs after the transition has released its lock, so it may call back
// into the Manager.
func (m *Manager) Subscribe(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// State returns a snapshot of the current state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.state
	s.User = cloneUser(s.User)
	return s
}

// HasRole reports whether the current user holds role. It is false when
// nobody is logged in.
func (m *Manager) HasRole(role string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.User != nil && m.state.User.Role == role
}

// Initialize hydrates the session from persisted storage. Only the first call
// does any work; hydration always ends with IsInitializing false. Unreadable
// or half-present credentials are cleared and treated as no session.
func (m *Manager) Initialize() State {
	m.initOnce.Do(func() {
		m.opMu.Lock()
		defer m.unlock()
		m.hydrate()
	})
	return m.State()
}

func (m *Manager) hydrate() {
	token, hasToken, raw, hasUser, err := m.store.Load()
	if err != nil {
		log.Printf("Error reading persisted session: %v", err)
		m.clearStore()
		m.dispatch(Action{Type: ActionInitializationComplete})
		return
	}

	if !hasToken && !hasUser {
		m.dispatch(Action{Type: ActionInitializationComplete})
		return
	}

	if !hasToken || !hasUser || token == "" || raw == "" {
		log.Printf("Persisted session is incomplete, resetting it")
		m.clearStore()
		m.dispatch(Action{Type: ActionInitializationComplete})
		return
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		log.Printf("Error parsing persisted user: %v", err)
		m.clearStore()
		m.dispatch(Action{Type: ActionInitializationComplete})
		return
	}
	if err := m.validate.Struct(user); err != nil {
		log.Printf("Persisted user is invalid, resetting session: %v", err)
		m.clearStore()
		m.dispatch(Action{Type: ActionInitializationComplete})
		return
	}

	m.dispatch(Action{Type: ActionSetInitialState, User: &user})
}

// Login persists token and user and moves the session to Authenticated.
// Invalid input or a storage failure leaves no credentials behind and
// records the error as LoginError.
func (m *Manager) Login(token string, user models.User) error {
	m.opMu.Lock()
	defer m.unlock()

	m.dispatch(Action{Type: ActionLoginStart})
	return m.complete(token, user)
}

// Authenticate runs exchange (typically the API login call) while the session
// is Authenticating, then logs in with its result. The exchange runs outside
// the transition lock so a 401 it triggers can still invalidate the session.
func (m *Manager) Authenticate(exchange func() (string, models.User, error)) error {
	m.opMu.Lock()
	m.dispatch(Action{Type: ActionLoginStart})
	m.unlock()

	token, user, err := exchange()

	m.opMu.Lock()
	defer m.unlock()
	if err != nil {
		m.fail(err)
		return err
	}
	return m.complete(token, user)
}

func (m *Manager) complete(token string, user models.User) error {
	if token == "" {
		m.fail(ErrEmptyToken)
		return ErrEmptyToken
	}
	if err := m.validate.Struct(user); err != nil {
		err = fmt.Errorf("invalid user record: %w", err)
		m.fail(err)
		return err
	}

	raw, err := json.Marshal(user)
	if err != nil {
		err = fmt.Errorf("failed to encode user: %w", err)
		m.fail(err)
		return err
	}
	if err := m.store.Save(token, string(raw)); err != nil {
		m.fail(err)
		return err
	}

	m.dispatch(Action{Type: ActionLoginSuccess, User: &user})
	m.publish(EventLogin, user.ID)
	return nil
}

func (m *Manager) fail(err error) {
	m.clearStore()
	m.dispatch(Action{Type: ActionLoginError, Message: err.Error()})
}

// Logout clears the persisted credentials and the in-memory session. It is
// idempotent and cannot fail; storage errors are logged.
func (m *Manager) Logout() {
	m.opMu.Lock()
	defer m.unlock()

	userID := m.currentUserID()
	m.clearStore()
	m.dispatch(Action{Type: ActionLogout})
	m.publish(EventLogout, userID)
}

// Invalidate is the request layer's response to an authorization failure: it
// clears credentials like Logout and then performs the landing navigation
// when there was a session to leave.
func (m *Manager) Invalidate() {
	m.opMu.Lock()
	userID := m.currentUserID()
	_, hadSession := m.Token()
	hadSession = hadSession || userID != 0
	m.clearStore()
	m.dispatch(Action{Type: ActionLogout})
	m.publish(EventInvalidated, userID)
	m.mu.RLock()
	landing := m.onLanding
	m.mu.RUnlock()
	m.unlock()

	if landing != nil && hadSession {
		landing()
	}
}

// Token returns the persisted bearer token. It reports false unless both
// halves of the credential pair are present.
func (m *Manager) Token() (string, bool) {
	token, hasToken, raw, hasUser, err := m.store.Load()
	if err != nil {
		log.Printf("Error reading persisted token: %v", err)
		return "", false
	}
	if !hasToken || !hasUser || token == "" || raw == "" {
		return "", false
	}
	return token, true
}

// UpdateUser applies mutate to a copy of the current user, persists it next
// to the existing token and publishes it to the session. It is used for local
// changes the API has already accepted, such as becoming an artisan.
func (m *Manager) UpdateUser(mutate func(*models.User)) error {
	m.opMu.Lock()
	defer m.unlock()

	current := m.State().User
	if current == nil {
		return ErrNotAuthenticated
	}
	token, ok := m.Token()
	if !ok {
		return ErrNotAuthenticated
	}

	updated := *current
	mutate(&updated)
	raw, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := m.store.Save(token, string(raw)); err != nil {
		return err
	}

	m.dispatch(Action{Type: ActionUserUpdated, User: &updated})
	return nil
}

func (m *Manager) dispatch(action Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Reduce(m.state, action)
	m.pending = append(m.pending, m.state)
}

// unlock releases opMu and then hands the states queued by dispatch to the
// listeners in order.
func (m *Manager) unlock() {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	listeners := make([]func(State), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()
	m.opMu.Unlock()

	for _, snapshot := range pending {
		for _, fn := range listeners {
			s := snapshot
			s.User = cloneUser(snapshot.User)
			fn(s)
		}
	}
}

func (m *Manager) clearStore() {
	if err := m.store.Clear(); err != nil {
		log.Printf("Error clearing persisted session: %v", err)
	}
}

func (m *Manager) currentUserID() uint {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state.User == nil {
		return 0
	}
	return m.state.User.ID
}

func (m *Manager) publish(event string, userID uint) {
	if m.publisher == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"event":   event,
		"user_id": userID,
		"at":      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	if err := m.publisher.Publish(event, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", event, err)
	}
}
