package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type Server struct {
	Host            string
	Port            int
	Env             string
	StaticDir       string
	// TrustedProxies lists addresses or CIDRs allowed to set X-Forwarded-For.
	TrustedProxies  []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Addr returns host:port for net/http.
func (s Server) Addr() string { return fmt.Sprintf("%s:%d", s.Host, s.Port) }

type DB struct {
	Driver string
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
	Path   string
	Debug  bool
}

type Redis struct {
	Addr     string
	Password string
	DB       int
	StatsTTL time.Duration
}

type Auth struct {
	CookieName  string
	SessionTTL  time.Duration
	BcryptCost  int
	TokenSecret string
	TokenIssuer string
}

// Admin is the bootstrap administrator created at startup when missing.
type Admin struct {
	Name     string
	Email    string
	Password string
}

type Config struct {
	Server   Server
	DB       DB
	Redis    Redis
	Auth     Auth
	Admin    Admin
	LogLevel string
}

// Development reports whether the process runs in local development mode.
func (c Config) Development() bool { return strings.EqualFold(c.Server.Env, "development") }

// SecureCookies is true everywhere except local development.
func (c Config) SecureCookies() bool { return !c.Development() }

func newViper(path string) *viper.Viper {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("CULINARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.env", "development")
	v.SetDefault("server.static_dir", "backend/public")
	v.SetDefault("server.trusted_proxies", []string{})
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.name", "culinary_calc")
	v.SetDefault("db.path", "data/culinary.db")
	v.SetDefault("db.debug", false)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.stats_ttl", time.Minute)
	v.SetDefault("auth.cookie_name", "auth-token")
	v.SetDefault("auth.session_ttl", 7*24*time.Hour)
	v.SetDefault("auth.bcrypt_cost", 12)
	v.SetDefault("auth.token_secret", "")
	v.SetDefault("auth.token_issuer", "culinary-calc")
	v.SetDefault("admin.name", "Administrator")
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("log_level", "info")
	return v
}

// Load reads the yaml file at path (skipped when path is empty) and applies
// CULINARY_* environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	v := newViper(path)
	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	cfg := decode(v)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects settings that are only tolerated in local development.
func (c *Config) validate() error {
	if c.Auth.TokenSecret == "" {
		return fmt.Errorf("auth.token_secret is required when server.env is %q", c.Server.Env)
	}
	return nil
}

// Watch re-reads the file at path whenever it changes and hands the fresh
// config to onChange. It returns once the watcher is installed.
func Watch(path string, onChange func(*Config)) error {
	if path == "" {
		return nil
	}
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		onChange(decode(v))
	})
	v.WatchConfig()
	return nil
}

func decode(v *viper.Viper) *Config {
	cfg := &Config{
		Server: Server{
			Host:            v.GetString("server.host"),
			Port:            v.GetInt("server.port"),
			Env:             v.GetString("server.env"),
			StaticDir:       v.GetString("server.static_dir"),
			TrustedProxies:  v.GetStringSlice("server.trusted_proxies"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		DB: DB{
			Driver: strings.ToLower(v.GetString("db.driver")),
			Host:   v.GetString("db.host"),
			Port:   v.GetInt("db.port"),
			User:   v.GetString("db.user"),
			Pass:   v.GetString("db.pass"),
			Name:   v.GetString("db.name"),
			Path:   v.GetString("db.path"),
			Debug:  v.GetBool("db.debug"),
		},
		Redis: Redis{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			StatsTTL: v.GetDuration("redis.stats_ttl"),
		},
		Auth: Auth{
			CookieName:  v.GetString("auth.cookie_name"),
			SessionTTL:  v.GetDuration("auth.session_ttl"),
			BcryptCost:  v.GetInt("auth.bcrypt_cost"),
			TokenSecret: v.GetString("auth.token_secret"),
			TokenIssuer: v.GetString("auth.token_issuer"),
		},
		Admin: Admin{
			Name:     v.GetString("admin.name"),
			Email:    v.GetString("admin.email"),
			Password: v.GetString("admin.password"),
		},
		LogLevel: v.GetString("log_level"),
	}
	if cfg.Auth.TokenSecret == "" && cfg.Development() {
		cfg.Auth.TokenSecret = "dev-secret"
	}
	if cfg.Auth.CookieName == "" {
		cfg.Auth.CookieName = "auth-token"
	}
	if cfg.Auth.SessionTTL <= 0 {
		cfg.Auth.SessionTTL = 7 * 24 * time.Hour
	}
	return cfg
}
