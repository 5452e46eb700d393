package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverFromDSN(t *testing.T) {
	assert.Equal(t, DriverPostgres, DriverFromDSN("postgres://u:p@localhost:5432/db"))
	assert.Equal(t, DriverPostgres, DriverFromDSN("postgresql://localhost/db"))
	assert.Equal(t, DriverSQLite, DriverFromDSN("/home/ana/.artisanmart/session.db"))
	assert.Equal(t, DriverSQLite, DriverFromDSN("file::memory:"))
}

func TestOpen(t *testing.T) {
	_, err := Open("mysql", "whatever")
	assert.Error(t, err)

	db, err := Open("", "file::memory:")
	require.NoError(t, err)
	require.NoError(t, MigrateSandbox(db))
	require.NoError(t, MigrateCredentials(db))
	assert.True(t, db.Migrator().HasTable("credentials"))
	assert.True(t, db.Migrator().HasTable("products"))
}
