package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver          string `env:"DB_DRIVER" env-default:"postgres"`
	DBDSN             string `env:"DB_DSN"`
	DBConnectAttempts int    `env:"DB_CONNECT_ATTEMPTS" env-default:"10"`

	ServerPort    string `env:"SERVER_PORT" env-default:"8080"`
	SessionSecret string `env:"SESSION_SECRET"`

	AdminUsername string `env:"ADMIN_USERNAME" env-default:"admin@compliance.local"`
	AdminPassword string `env:"ADMIN_PASSWORD" env-default:"Admin123!"`

	LogLevel       string `env:"LOG_LEVEL" env-default:"info"`
	MetricsEnabled bool   `env:"METRICS_ENABLED" env-default:"true"`

	LoginRatePerMinute int `env:"LOGIN_RATE_PER_MINUTE" env-default:"10"`
	LoginBurst         int `env:"LOGIN_BURST" env-default:"5"`

	// Proxies allowed to set X-Forwarded-For / X-Real-IP. Empty means the peer address is the client.
	TrustedProxies []string `env:"TRUSTED_PROXIES" env-separator:","`
}

const minSessionSecretLen = 16

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	normalize(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func normalize(cfg *Config) {
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	cfg.DBDSN = strings.TrimSpace(cfg.DBDSN)
	cfg.ServerPort = strings.TrimSpace(cfg.ServerPort)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.AdminUsername = strings.TrimSpace(cfg.AdminUsername)

	proxies := cfg.TrustedProxies[:0]
	for _, p := range cfg.TrustedProxies {
		if p = strings.TrimSpace(p); p != "" {
			proxies = append(proxies, p)
		}
	}
	cfg.TrustedProxies = proxies
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.DBConnectAttempts <= 0 {
		cfg.DBConnectAttempts = 1
	}
	if cfg.LoginRatePerMinute <= 0 {
		cfg.LoginRatePerMinute = 10
	}
	if cfg.LoginBurst <= 0 {
		cfg.LoginBurst = 1
	}
}

func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", cfg.DBDriver)
	}
	if cfg.DBDSN == "" {
		return errors.New("DB_DSN is not set")
	}
	if cfg.SessionSecret == "" {
		return errors.New("SESSION_SECRET is not set")
	}
	if len(cfg.SessionSecret) < minSessionSecretLen {
		return fmt.Errorf("SESSION_SECRET must be at least %d bytes", minSessionSecretLen)
	}
	for _, p := range cfg.TrustedProxies {
		if net.ParseIP(p) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(p); err != nil {
			return fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP or CIDR", p)
		}
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not supported", cfg.LogLevel)
	}
	return nil
}
