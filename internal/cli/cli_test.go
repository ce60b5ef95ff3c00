package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoot_Commands(t *testing.T) {
	root := NewRoot()

	for _, name := range []string{"serve", "migrate", "slots"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	flag := root.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, DefaultConfigPath, flag.DefValue)
}

func TestSlots_RejectsBadDateBeforeConnecting(t *testing.T) {
	root := NewRoot()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"slots", "--config", "/nonexistent.toml", "--date", "14/03/2025", "--menu", "1"})

	err := root.Execute()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "read config")
}

func TestLoadConfig_SetsLocalTimezone(t *testing.T) {
	prev := time.Local
	t.Cleanup(func() { time.Local = prev })

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[app]
timezone = "Asia/Tokyo"

[database]
host = "localhost"
dbname = "salon"

[auth]
jwt_secret = "secret"
`), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", cfg.App.Timezone)
	assert.Equal(t, "Asia/Tokyo", time.Local.String())
}
