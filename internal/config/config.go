package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultDatabaseURL = "sqlite:///./local_data.db"
	DefaultSecretKey   = "your_secret_key"
	DefaultAdminUser   = "admin"
	DefaultAdminPass   = "secret"
)

// ErrMissingRemoteCredentials is returned by RequireRemote when any of the
// Odoo connection settings is absent. It is fatal, never retried.
var ErrMissingRemoteCredentials = errors.New("missing Odoo credentials")

type Config struct {
	ServerPort  string
	DatabaseURL string
	RedisURL    string

	JWTSecret    string
	JWTAlgorithm string
	JWTExpiry    time.Duration

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string

	SyncLockTTL time.Duration

	LogFile  string
	LogLevel string

	Remote RemoteConfig
}

// RemoteConfig holds the Odoo XML-RPC connection settings.
type RemoteConfig struct {
	URL      string
	DB       string
	Username string
	Password string
	Timeout  time.Duration
}

func LoadConfig() (*Config, error) {
	expiryMinutes, err := strconv.Atoi(getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "30"))
	if err != nil || expiryMinutes <= 0 {
		return nil, errors.New("invalid ACCESS_TOKEN_EXPIRE_MINUTES: must be a positive integer")
	}

	remoteTimeout, err := time.ParseDuration(getEnv("ODOO_TIMEOUT", "30s"))
	if err != nil {
		return nil, errors.New("invalid ODOO_TIMEOUT format")
	}

	lockTTL, err := time.ParseDuration(getEnv("SYNC_LOCK_TTL", "10m"))
	if err != nil {
		return nil, errors.New("invalid SYNC_LOCK_TTL format")
	}

	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		DatabaseURL:       getEnv("DATABASE_URL", DefaultDatabaseURL),
		RedisURL:          os.Getenv("REDIS_URL"),
		JWTSecret:         getEnv("SECRET_KEY", DefaultSecretKey),
		JWTAlgorithm:      strings.ToUpper(getEnv("JWT_ALGORITHM", "HS256")),
		JWTExpiry:         time.Duration(expiryMinutes) * time.Minute,
		AdminUsername:     getEnv("ADMIN_USERNAME", DefaultAdminUser),
		AdminPassword:     getEnv("ADMIN_PASSWORD", DefaultAdminPass),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		SyncLockTTL:       lockTTL,
		LogFile:           os.Getenv("LOG_FILE"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		Remote: RemoteConfig{
			URL:      strings.TrimRight(os.Getenv("ODOO_URL"), "/"),
			DB:       os.Getenv("ODOO_DB"),
			Username: os.Getenv("ODOO_USERNAME"),
			Password: os.Getenv("ODOO_PASSWORD"),
			Timeout:  remoteTimeout,
		},
	}

	switch cfg.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return nil, fmt.Errorf("unsupported JWT_ALGORITHM %q", cfg.JWTAlgorithm)
	}

	return cfg, nil
}

// RequireRemote checks that every Odoo setting is present. Only the sync job
// needs them; the API service starts without.
func (c *Config) RequireRemote() error {
	var missing []string
	if c.Remote.URL == "" {
		missing = append(missing, "ODOO_URL")
	}
	if c.Remote.DB == "" {
		missing = append(missing, "ODOO_DB")
	}
	if c.Remote.Username == "" {
		missing = append(missing, "ODOO_USERNAME")
	}
	if c.Remote.Password == "" {
		missing = append(missing, "ODOO_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s not set", ErrMissingRemoteCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// InsecureDefaults lists the settings still on their placeholder values.
func (c *Config) InsecureDefaults() []string {
	var out []string
	if c.JWTSecret == DefaultSecretKey {
		out = append(out, "SECRET_KEY")
	}
	if c.AdminUsername == DefaultAdminUser && c.AdminPassword == DefaultAdminPass && c.AdminPasswordHash == "" {
		out = append(out, "ADMIN_USERNAME/ADMIN_PASSWORD")
	}
	return out
}

// Helper: get env with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
