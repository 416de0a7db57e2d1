package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7733", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "rentledger.db", cfg.Database.SQLitePath)
	assert.Equal(t, 20, cfg.Server.UndoDepth)
	assert.Equal(t, 60, cfg.Sweep.IntervalMinutes)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rentledger.toml")
	content := `
[server]
addr = "127.0.0.1:9900"
undo_depth = 5

[database]
driver = "sqlite"
sqlite_path = "/tmp/ledger.db"

[sweep]
interval_minutes = 30
run_on_startup = true

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9900", cfg.Server.Addr)
	assert.Equal(t, 5, cfg.Server.UndoDepth)
	assert.Equal(t, "/tmp/ledger.db", cfg.Database.SQLitePath)
	assert.Equal(t, 30, cfg.Sweep.IntervalMinutes)
	assert.True(t, cfg.Sweep.RunOnStartup)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rentledger.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\naddr = \"127.0.0.1:9900\"\n"), 0o600))

	t.Setenv("RENTLEDGER_ADDR", "127.0.0.1:7001")
	t.Setenv("RENTLEDGER_DB_DRIVER", "postgres")
	t.Setenv("RENTLEDGER_POSTGRES_DSN", "postgres://localhost/rentledger")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7001", cfg.Server.Addr)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}

func TestPostgresRequiresDSN(t *testing.T) {
	t.Setenv("RENTLEDGER_DB_DRIVER", "postgres")
	t.Setenv("RENTLEDGER_POSTGRES_DSN", "")

	_, err := Load("")
	assert.Error(t, err)
}

func TestUnknownDriverRejected(t *testing.T) {
	t.Setenv("RENTLEDGER_DB_DRIVER", "oracle")

	_, err := Load("")
	assert.Error(t, err)
}

func TestMissingFileIsFine(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}
