package session

import (
	"testing"

	"artisanmart/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestReduce(t *testing.T) {
	user := &models.User{ID: 1, Email: "ana@example.com", Role: models.RoleCustomer}

	t.Run("hydration with user", func(t *testing.T) {
		s := Reduce(InitialState(), Action{Type: ActionSetInitialState, User: user})
		assert.False(t, s.IsInitializing)
		assert.True(t, s.IsAuthenticated())
		assert.Equal(t, Authenticated, s.Status())
	})

	t.Run("hydration without session", func(t *testing.T) {
		s := Reduce(InitialState(), Action{Type: ActionInitializationComplete})
		assert.False(t, s.IsInitializing)
		assert.False(t, s.IsAuthenticated())
		assert.Equal(t, Anonymous, s.Status())
	})

	t.Run("login start clears previous error", func(t *testing.T) {
		s := State{LoginError: "Invalid email or password"}
		s = Reduce(s, Action{Type: ActionLoginStart})
		assert.True(t, s.IsLoading)
		assert.Empty(t, s.LoginError)
		assert.Equal(t, Authenticating, s.Status())
	})

	t.Run("login success", func(t *testing.T) {
		s := Reduce(State{IsLoading: true}, Action{Type: ActionLoginSuccess, User: user})
		assert.False(t, s.IsLoading)
		assert.Equal(t, "customer", s.UserRole())
		assert.True(t, s.IsLoggedIn())
	})

	t.Run("login error drops user", func(t *testing.T) {
		s := Reduce(State{User: user, IsLoading: true}, Action{Type: ActionLoginError, Message: "boom"})
		assert.Nil(t, s.User)
		assert.False(t, s.IsLoading)
		assert.Equal(t, "boom", s.LoginError)
		assert.Equal(t, AuthError, s.Status())
	})

	t.Run("login error without message", func(t *testing.T) {
		s := Reduce(State{}, Action{Type: ActionLoginError})
		assert.Equal(t, "Login failed", s.LoginError)
	})

	t.Run("logout resets everything", func(t *testing.T) {
		s := Reduce(State{User: user, LoginError: "x", IsLoading: true}, Action{Type: ActionLogout})
		assert.Equal(t, State{}, s)
		assert.Equal(t, "", s.UserRole())
	})

	t.Run("user update ignored when anonymous", func(t *testing.T) {
		s := Reduce(State{}, Action{Type: ActionUserUpdated, User: user})
		assert.Nil(t, s.User)
	})

	t.Run("unknown action", func(t *testing.T) {
		s := State{User: user}
		assert.Equal(t, s, Reduce(s, Action{Type: ActionType(99)}))
	})

	t.Run("state does not alias action user", func(t *testing.T) {
		u := *user
		s := Reduce(State{}, Action{Type: ActionLoginSuccess, User: &u})
		u.Role = models.RoleArtisan
		assert.Equal(t, models.RoleCustomer, s.UserRole())
	})
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "uninitialized", Uninitialized.String())
	assert.Equal(t, "auth_error", AuthError.String())
	assert.Equal(t, "unknown", Status(42).String())
}

func TestVisibleMenu(t *testing.T) {
	labels := func(items []MenuItem) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Label
		}
		return out
	}

	assert.Equal(t, []string{"Home", "Products", "Sign in"}, labels(VisibleMenu("")))

	customer := labels(VisibleMenu(models.RoleCustomer))
	assert.Contains(t, customer, "Become an artisan")
	assert.NotContains(t, customer, "Brand")

	artisan := labels(VisibleMenu(models.RoleArtisan))
	assert.Contains(t, artisan, "Brand")
	assert.Contains(t, artisan, "Customers")
	assert.NotContains(t, artisan, "Become an artisan")

	assert.Empty(t, VisibleMenu("admin"))
}
