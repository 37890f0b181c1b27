package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/khanghh/vbs/params"
	"github.com/stretchr/testify/require"
)

func TestSanitizeDefaults(t *testing.T) {
	c := Config{MySQL: MySQLConfig{Dsn: "root@tcp(localhost)/vbs"}}
	require.NoError(t, c.Sanitize())
	require.Equal(t, DefaultListenAddr, c.ListenAddr)
	require.Equal(t, params.DefaultSiteName, c.SiteName)
	require.Equal(t, LockoutBackendMemory, c.Lockout.Backend)
	require.Equal(t, 5, c.Lockout.MaxAttempts)
	require.Equal(t, 15*time.Minute, c.Lockout.Window)
	require.Equal(t, 15*time.Minute, c.Lockout.Duration)
	require.Equal(t, DefaultCookieName, c.Session.CookieName)
}

func TestSanitizeRejects(t *testing.T) {
	require.Error(t, (&Config{}).Sanitize())

	c := Config{MySQL: MySQLConfig{Dsn: "dsn"}, Lockout: LockoutConfig{Backend: "redis"}}
	require.Error(t, c.Sanitize())

	c = Config{MySQL: MySQLConfig{Dsn: "dsn"}, Lockout: LockoutConfig{Backend: "etcd"}}
	require.Error(t, c.Sanitize())

	c = Config{
		MySQL:   MySQLConfig{Dsn: "dsn"},
		Redis:   RedisConfig{URL: "redis://localhost:6379/0"},
		Lockout: LockoutConfig{Backend: " Redis "},
	}
	require.NoError(t, c.Sanitize())
	require.Equal(t, LockoutBackendRedis, c.Lockout.Backend)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(`
siteName: St. Mark VBS
mysql:
  dsn: root@tcp(localhost:3306)/vbs?parseTime=true
  replicas:
    - ro@tcp(replica:3306)/vbs?parseTime=true
lockout:
  maxAttempts: 3
  duration: 30m
`), 0o644)
	require.NoError(t, err)

	c, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "St. Mark VBS", c.SiteName)
	require.Len(t, c.MySQL.Replicas, 1)
	require.Equal(t, 3, c.Lockout.MaxAttempts)
	require.Equal(t, 30*time.Minute, c.Lockout.Duration)
	require.Equal(t, 15*time.Minute, c.Lockout.Window)
}
