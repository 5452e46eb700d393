package repositories_test

import (
	"testing"

	"artisanmart/internal/database"
	"artisanmart/internal/models"
	"artisanmart/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCredentialRepo(t *testing.T) *repositories.GORMCredentialRepository {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, "file:"+uuid.New().String()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.MigrateCredentials(db))
	return repositories.NewGORMCredentialRepository(db)
}

func TestGORMCredentialRepository(t *testing.T) {
	repo := newCredentialRepo(t)

	_, hasToken, _, hasUser, err := repo.Load()
	require.NoError(t, err)
	assert.False(t, hasToken)
	assert.False(t, hasUser)

	require.NoError(t, repo.Save("tok-1", `{"user_id":1}`))
	token, hasToken, user, hasUser, err := repo.Load()
	require.NoError(t, err)
	assert.True(t, hasToken)
	assert.True(t, hasUser)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, `{"user_id":1}`, user)

	// Saving again overwrites both entries.
	require.NoError(t, repo.Save("tok-2", `{"user_id":2}`))
	token, _, user, _, err = repo.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
	assert.Equal(t, `{"user_id":2}`, user)

	require.NoError(t, repo.Clear())
	require.NoError(t, repo.Clear())
	_, hasToken, _, hasUser, err = repo.Load()
	require.NoError(t, err)
	assert.False(t, hasToken)
	assert.False(t, hasUser)
}

func TestMockCredentialRepository_HalfPair(t *testing.T) {
	repo := repositories.NewMockCredentialRepository()
	repo.Put(models.CredentialKeyUser, `{"user_id":1}`)

	_, hasToken, _, hasUser, err := repo.Load()
	require.NoError(t, err)
	assert.False(t, hasToken)
	assert.True(t, hasUser)
}
