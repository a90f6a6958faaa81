package db

import (
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsAreReversible(t *testing.T) {
	src, err := migrationSource()
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	v, err := src.First()
	require.NoError(t, err)

	var versions []uint
	for {
		versions = append(versions, v)

		up, _, err := src.ReadUp(v)
		require.NoError(t, err, "up migration for version %d", v)
		body, err := io.ReadAll(up)
		_ = up.Close()
		require.NoError(t, err)
		assert.NotEmpty(t, strings.TrimSpace(string(body)))

		down, _, err := src.ReadDown(v)
		require.NoError(t, err, "down migration for version %d", v)
		_ = down.Close()

		v, err = src.Next(v)
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		require.NoError(t, err)
	}
	assert.Equal(t, []uint{1}, versions)
}

func TestInitMigrationCreatesTables(t *testing.T) {
	body, err := migrationsFS.ReadFile("migrations/0001_init.up.sql")
	require.NoError(t, err)
	for _, table := range []string{"tracking_watch", "consumed_event_checkpoint"} {
		assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS "+table)
	}
}
