package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "key", cfg.TMDB.APIKey)
	assert.Equal(t, "en-US", cfg.TMDB.Language)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 300*time.Millisecond, cfg.Browse.BackdropDelay)
	assert.Equal(t, 5*time.Minute, cfg.Cache.ListTTL)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TMDB_READ_ACCESS_TOKEN", "token")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("BACKDROP_DELAY", "150ms")
	t.Setenv("TMDB_RPS", "2.5")
	t.Setenv("SERVER_PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 150*time.Millisecond, cfg.Browse.BackdropDelay)
	assert.Equal(t, 2.5, cfg.TMDB.RequestsPerSec)
	assert.Equal(t, "9000", cfg.Port)
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "key")
	t.Setenv("DB_PORT", "fifty")
	t.Setenv("SCREEN_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PORT")
}

func TestLoadRequiresCredentials(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("TMDB_READ_ACCESS_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	d := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "bestv", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=bestv sslmode=disable", d.DSN())

	d.SSLRootCert = "/ca.pem"
	assert.Contains(t, d.DSN(), "sslrootcert=/ca.pem")
}
