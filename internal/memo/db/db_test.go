package db_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomemo/internal/memo/config"
	"gomemo/internal/memo/db"
)

func TestMigrationsURL(t *testing.T) {
	url, err := db.MigrationsURL("/opt/memo/migrations")
	require.NoError(t, err)
	assert.Equal(t, "file:///opt/memo/migrations", url)

	url, err = db.MigrationsURL("migrations/memo")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "file:///"))

	abs, err := filepath.Abs("migrations/memo")
	require.NoError(t, err)
	assert.Equal(t, "file://"+abs, url)
}

func TestNew_UnreachableDatabaseIsNotFatal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := &config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     1,
		User:     "user",
		Password: "pass",
		Database: "memo",
		MinConn:  0,
		MaxConn:  2,
	}

	database, err := db.New(ctx, cfg, t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, database)
	defer database.Close(ctx)

	assert.NotNil(t, database.Pool())
	assert.Error(t, database.Ping(ctx))
}
