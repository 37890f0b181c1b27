package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/khanghh/vbs/params"
	"github.com/spf13/viper"
)

const (
	DefaultListenAddr   = ":3000"
	DefaultCookieMaxAge = 24 * time.Hour
	DefaultCookieName   = "vbs_sid"

	LockoutBackendMemory = "memory"
	LockoutBackendRedis  = "redis"
)

type MySQLConfig struct {
	Dsn             string   `mapstructure:"dsn"`
	Replicas        []string `mapstructure:"replicas"`
	TablePrefix     string   `mapstructure:"tablePrefix"`
	MaxIdleConns    int      `mapstructure:"maxIdleConns"`
	MaxOpenConns    int      `mapstructure:"maxOpenConns"`
	ConnMaxIdleTime int      `mapstructure:"connMaxIdleTime"`
	ConnMaxLifetime int      `mapstructure:"connMaxLifetime"`
}

type SessionConfig struct {
	SessionMaxAge  time.Duration `mapstructure:"sessionMaxAge"`
	CookieName     string        `mapstructure:"cookieName"`
	CookieHttpOnly bool          `mapstructure:"cookieHttpOnly"`
	CookieSecure   bool          `mapstructure:"cookieSecure"`
}

type RedisConfig struct {
	URL         string `mapstructure:"url"`
	PoolSize    int    `mapstructure:"poolSize"`
	ClusterMode bool   `mapstructure:"clusterMode"`
}

// LockoutConfig tunes the sign-in lockout. Backend "memory" keeps counters
// per process; "redis" shares them between instances.
type LockoutConfig struct {
	Backend     string        `mapstructure:"backend"`
	MaxAttempts int           `mapstructure:"maxAttempts"`
	Window      time.Duration `mapstructure:"window"`
	Duration    time.Duration `mapstructure:"duration"`
}

type Config struct {
	Debug        bool          `mapstructure:"debug"`
	SiteName     string        `mapstructure:"siteName"`
	BaseURL      string        `mapstructure:"baseURL"`
	JWTSecret    string        `mapstructure:"jwtSecret"`
	ListenAddr   string        `mapstructure:"listenAddr"`
	TemplateDir  string        `mapstructure:"templateDir"`
	AllowOrigins []string      `mapstructure:"allowOrigins"`
	Redis        RedisConfig   `mapstructure:"redis"`
	Session      SessionConfig `mapstructure:"session"`
	MySQL        MySQLConfig   `mapstructure:"mysql"`
	Lockout      LockoutConfig `mapstructure:"lockout"`
}

func (c *Config) Sanitize() error {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.SiteName == "" {
		c.SiteName = params.DefaultSiteName
	}
	if c.Session.SessionMaxAge == 0 {
		c.Session.SessionMaxAge = DefaultCookieMaxAge
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = DefaultCookieName
	}
	if c.MySQL.Dsn == "" {
		return fmt.Errorf("mysql.dsn is required")
	}

	c.Lockout.Backend = strings.ToLower(strings.TrimSpace(c.Lockout.Backend))
	switch c.Lockout.Backend {
	case "":
		c.Lockout.Backend = LockoutBackendMemory
	case LockoutBackendMemory:
	case LockoutBackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("lockout.backend is redis but redis.url is not set")
		}
	default:
		return fmt.Errorf("unknown lockout backend %q", c.Lockout.Backend)
	}
	if c.Lockout.MaxAttempts <= 0 {
		c.Lockout.MaxAttempts = params.LockoutMaxAttempts
	}
	if c.Lockout.Window <= 0 {
		c.Lockout.Window = params.LockoutWindow
	}
	if c.Lockout.Duration <= 0 {
		c.Lockout.Duration = params.LockoutDuration
	}
	return nil
}

func LoadConfig(filename string) (*Config, error) {
	viper.SetConfigFile(filename)
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Sanitize(); err != nil {
		return nil, err
	}
	return &config, nil
}
