// Package session holds the process-wide authentication state: a reducer over
// explicit actions and a Manager that owns the persisted credential pair.
package session

import "artisanmart/internal/models"

// Status names the state machine node a State is in.
type Status int

const (
	Uninitialized Status = iota
	Anonymous
	Authenticating
	Authenticated
	AuthError
)

func (s Status) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case AuthError:
		return "auth_error"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of the session. Authentication flags are
// derived from User so they can never disagree with it.
type State struct {
	User           *models.User
	IsLoading      bool
	LoginError     string
	IsInitializing bool
}

// InitialState is the state before hydration.
func InitialState() State {
	return State{IsInitializing: true}
}

// IsAuthenticated reports whether a user is present.
func (s State) IsAuthenticated() bool { return s.User != nil }

// IsLoggedIn is an alias of IsAuthenticated kept for menu and page gating.
func (s State) IsLoggedIn() bool { return s.User != nil }

// UserRole returns the role of the current user, or "" when anonymous.
func (s State) UserRole() string {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// Status derives the state machine node.
func (s State) Status() Status {
	switch {
	case s.IsInitializing:
		return Uninitialized
	case s.IsLoading:
		return Authenticating
	case s.User != nil:
		return Authenticated
	case s.LoginError != "":
		return AuthError
	default:
		return Anonymous
	}
}

// ActionType enumerates the transitions the reducer accepts.
type ActionType int

const (
	ActionSetInitialState ActionType = iota + 1
	ActionInitializationComplete
	ActionLoginStart
	ActionLoginSuccess
	ActionLoginError
	ActionLogout
	ActionUserUpdated
)

// Action is a reducer input. User is used by SetInitialState, LoginSuccess
// and UserUpdated; Message by LoginError.
type Action struct {
	Type    ActionType
	User    *models.User
	Message string
}

// Reduce applies action to state and returns the next state. Unknown actions
// return state unchanged.
func Reduce(state State, action Action) State {
	switch action.Type {
	case ActionSetInitialState:
		state.User = cloneUser(action.User)
		state.IsInitializing = false
		return state

	case ActionInitializationComplete:
		state.IsInitializing = false
		return state

	case ActionLoginStart:
		state.IsLoading = true
		state.LoginError = ""
		return state

	case ActionLoginSuccess:
		state.User = cloneUser(action.User)
		state.IsLoading = false
		state.LoginError = ""
		return state

	case ActionLoginError:
		state.User = nil
		state.IsLoading = false
		state.LoginError = action.Message
		if state.LoginError == "" {
			state.LoginError = "Login failed"
		}
		return state

	case ActionLogout:
		return State{}

	case ActionUserUpdated:
		if state.User == nil || action.User == nil {
			return state
		}
		state.User = cloneUser(action.User)
		return state

	default:
		return state
	}
}

func cloneUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
