package console

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Session storage backends selectable through SESSION_BACKEND.
const (
	SessionBackendMemory   = "memory"
	SessionBackendPostgres = "postgres"
	SessionBackendRedis    = "redis"
)

// Config carries environment-driven settings for the console process.
type Config struct {
	Port              string
	BackendBaseURL    string
	BackendTimeout    time.Duration
	StoreToggleMethod string
	StatusPoll        time.Duration
	SessionBackend    string
	SessionTTL        time.Duration
	SessionSweep      time.Duration
	SessionCookie     string
	CookieSecure      bool
	PostgresDSN       string
	RedisAddr         string
	RedisPassword     string
	KafkaBrokers      []string
	AuditTopic        string
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "3000"),
		BackendBaseURL:    envDefault("BACKEND_BASE_URL", "http://localhost:8080"),
		StoreToggleMethod: strings.ToUpper(envDefault("STORE_TOGGLE_METHOD", "PUT")),
		SessionBackend:    strings.ToLower(envDefault("SESSION_BACKEND", SessionBackendMemory)),
		SessionCookie:     envDefault("SESSION_COOKIE_NAME", "console_session"),
		CookieSecure:      isTruthy(os.Getenv("SESSION_COOKIE_SECURE")),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		RedisAddr:         envDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		AuditTopic:        envDefault("AUDIT_TOPIC", "console.audit"),
	}

	parsed, err := url.Parse(cfg.BackendBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("BACKEND_BASE_URL must be an absolute URL")
	}
	if cfg.StoreToggleMethod != "PUT" && cfg.StoreToggleMethod != "POST" {
		return Config{}, fmt.Errorf("STORE_TOGGLE_METHOD must be PUT or POST")
	}
	switch cfg.SessionBackend {
	case SessionBackendMemory, SessionBackendPostgres, SessionBackendRedis:
	default:
		return Config{}, fmt.Errorf("SESSION_BACKEND must be one of memory, postgres, redis")
	}

	if cfg.BackendTimeout, err = positiveDuration("BACKEND_TIMEOUT_SECONDS", 10, time.Second); err != nil {
		return Config{}, err
	}
	if cfg.StatusPoll, err = positiveDuration("STORE_STATUS_POLL_SECONDS", 30, time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = positiveDuration("SESSION_TTL_HOURS", 24, time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.SessionSweep, err = positiveDuration("SESSION_SWEEP_MINUTES", 10, time.Minute); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func positiveDuration(key string, fallback int, unit time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return time.Duration(fallback) * unit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return time.Duration(n) * unit, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
