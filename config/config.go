package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port           string
	Environment    string
	LogLevel       string
	APIBaseURL     string
	FrontendURL    string
	RequestTimeout time.Duration
	Location       *time.Location

	Session   SessionConfig
	Plaid     PlaidConfig
	Dashboard DashboardConfig

	LoginTOTPSecret string
	LoginRateLimit  int
}

type SessionConfig struct {
	// Store is one of "file", "memory" or "postgres".
	Store       string
	File        string
	Secret      string
	DatabaseURL string
}

type PlaidConfig struct {
	ClientID           string
	Secret             string
	Env                string
	SandboxInstitution string
}

func (p PlaidConfig) Enabled() bool {
	return p.ClientID != "" && p.Secret != ""
}

type DashboardConfig struct {
	TopCategories      int
	RecentTransactions int
	PriorityDays       int
}

func Load() (*Config, error) {
	timeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	loc := time.Local
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
		}
	}

	topCategories, err := getIntEnv("DASHBOARD_TOP_CATEGORIES", 5)
	if err != nil {
		return nil, err
	}
	recent, err := getIntEnv("DASHBOARD_RECENT", 5)
	if err != nil {
		return nil, err
	}
	priorityDays, err := getIntEnv("PAYMENT_PRIORITY_DAYS", 3)
	if err != nil {
		return nil, err
	}
	rateLimit, err := getIntEnv("LOGIN_RATE_LIMIT", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		APIBaseURL:     strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8000"), "/"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		RequestTimeout: timeout,
		Location:       loc,
		Session: SessionConfig{
			Store:       strings.ToLower(getEnv("SESSION_STORE", "file")),
			File:        getEnv("SESSION_FILE", ".dashboard-session.json"),
			Secret:      os.Getenv("SESSION_SECRET"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
		Plaid: PlaidConfig{
			// SECURITY: trim spaces to prevent auth errors from copy-pasted secrets
			ClientID:           strings.TrimSpace(os.Getenv("PLAID_CLIENT_ID")),
			Secret:             strings.TrimSpace(os.Getenv("PLAID_SECRET")),
			Env:                getEnv("PLAID_ENV", "sandbox"),
			SandboxInstitution: getEnv("PLAID_SANDBOX_INSTITUTION", "ins_109508"),
		},
		Dashboard: DashboardConfig{
			TopCategories:      topCategories,
			RecentTransactions: recent,
			PriorityDays:       priorityDays,
		},
		LoginTOTPSecret: os.Getenv("LOGIN_TOTP_SECRET"),
		LoginRateLimit:  rateLimit,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Session.Store {
	case "file", "memory":
	case "postgres":
		if c.Session.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required when SESSION_STORE=postgres")
		}
	default:
		return fmt.Errorf("invalid SESSION_STORE %q: must be file, memory or postgres", c.Session.Store)
	}
	if c.Dashboard.TopCategories <= 0 || c.Dashboard.RecentTransactions <= 0 {
		return fmt.Errorf("dashboard list sizes must be positive")
	}
	if c.Dashboard.PriorityDays < 0 {
		return fmt.Errorf("PAYMENT_PRIORITY_DAYS must not be negative")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
