package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimal = `
[database]
host = "localhost"
dbname = "salon"

[auth]
jwt_secret = "secret"
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(minimal)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "Asia/Tokyo", cfg.App.Timezone)
	assert.Equal(t, "log", cfg.Notifier.Driver)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "host=localhost port=5432 user= password= dbname=salon sslmode=disable", cfg.Database.DSN())

	settings, err := cfg.Schedule.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, "09:00", settings.OpenTime.String())
	assert.Equal(t, 60, settings.NewCustomerBufferMinutes)
	assert.Equal(t, 0, settings.AdvanceBookingDays)
}

func TestParse_TrustedProxies(t *testing.T) {
	cfg, err := Parse(minimal + "[rate_limit]\nenabled = true\ntrusted_proxies = [\"127.0.0.1\", \"10.0.0.0/8\"]\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1", "10.0.0.0/8"}, cfg.RateLimit.TrustedProxies)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing secret", "[database]\nhost = \"h\"\ndbname = \"d\"\n"},
		{"closed before open", minimal + "[schedule]\nopen_time = \"18:00\"\nclose_time = \"09:00\"\n"},
		{"unknown timezone", minimal + "[app]\ntimezone = \"Mars/Olympus\"\n"},
		{"amqp without url", minimal + "[notifier]\ndriver = \"amqp\"\n"},
		{"unknown driver", minimal + "[notifier]\ndriver = \"fax\"\n"},
		{"bad trusted proxy", minimal + "[rate_limit]\ntrusted_proxies = [\"proxy.local\"]\n"},
		{"broken toml", "[database"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("SALON_DB_PASSWORD", "s3cret")
	t.Setenv("SALON_JWT_SECRET", "from-env")

	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[database]
host = "db"
dbname = "salon"
password = "${SALON_DB_PASSWORD}"

[auth]
jwt_secret = "${SALON_JWT_SECRET}"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
}
