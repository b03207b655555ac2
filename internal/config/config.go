package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Log      LogConfig
}

type AppConfig struct {
	Environment string
	Port        string
}

type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	SSLMode     string
	MaxConns    int32
	MaxConnIdle time.Duration
}

type AuthConfig struct {
	SessionSecret string
	// JWTSecret enables bearer access tokens when set.
	JWTSecret     string
	SessionMaxAge time.Duration
	SecureCookies bool
}

type LogConfig struct {
	Level  string
	Format string
}

var ErrMissingEnv = errors.New("missing required environment variables")

const developmentSessionSecret = "development-session-secret-change-me"

// Load reads the process environment. Call godotenv.Load first when a .env
// file should be honoured.
func Load() (Config, error) {
	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, fallback string) string {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{}
	cfg.App = AppConfig{
		Environment: strings.ToLower(opt("APP_ENV", "development")),
		Port:        opt("PORT", "8080"),
	}

	maxConns, err := strconv.Atoi(opt("DB_MAX_CONNS", "10"))
	if err != nil || maxConns <= 0 {
		return Config{}, fmt.Errorf("invalid DB_MAX_CONNS %q", os.Getenv("DB_MAX_CONNS"))
	}

	cfg.Database = DatabaseConfig{
		Host:        opt("DB_HOST", "localhost"),
		Port:        opt("DB_PORT", "5432"),
		Name:        req("DB_NAME"),
		User:        req("DB_USER"),
		Password:    opt("DB_PASSWORD", ""),
		SSLMode:     opt("DB_SSL_MODE", "disable"),
		MaxConns:    int32(maxConns),
		MaxConnIdle: 5 * time.Minute,
	}

	cfg.Auth = AuthConfig{
		JWTSecret:     opt("JWT_SECRET", ""),
		SessionMaxAge: 8 * time.Hour,
		SecureCookies: !cfg.App.IsDevelopment(),
	}
	if cfg.App.IsDevelopment() {
		cfg.Auth.SessionSecret = opt("SESSION_SECRET", developmentSessionSecret)
	} else {
		cfg.Auth.SessionSecret = req("SESSION_SECRET")
	}

	cfg.Log = LogConfig{
		Level:  opt("LOG_LEVEL", "info"),
		Format: strings.ToLower(opt("LOG_FORMAT", "text")),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func (a AppConfig) IsDevelopment() bool {
	return a.Environment == "" || a.Environment == "development" || a.Environment == "dev"
}

func (d DatabaseConfig) ConnString() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   d.Host + ":" + d.Port,
		Path:   "/" + d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	q.Set("search_path", "public")
	u.RawQuery = q.Encode()
	return u.String()
}
