package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPPort   string
	APIBaseURL string
	RedisAddr  string

	SessionTTL    time.Duration
	SessionSecure bool
	PageCacheTTL  time.Duration

	RequestTimeout   time.Duration
	RetryAttempts    int
	RetryDelay       time.Duration
	BreakerThreshold int
	BreakerTimeout   time.Duration

	ContactRateLimit  int
	ContactRateWindow time.Duration
	MaxImageBytes     int64

	DevBackendPort   string
	DevAdminEmail    string
	DevAdminPassword string
	JWTSecret        string

	parseErrs []error
}

func NewConfig() *Config {
	env := &envReader{}
	cfg := &Config{
		HTTPPort:   getEnv("HTTP_PORT", "8080"),
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:4000/api"),
		RedisAddr:  getEnv("REDIS_ADDR", ""),

		SessionTTL:    env.durationEnv("SESSION_TTL", 24*time.Hour),
		SessionSecure: env.boolEnv("SESSION_SECURE", false),
		PageCacheTTL:  env.durationEnv("PAGE_CACHE_TTL", 30*time.Second),

		RequestTimeout:   env.durationEnv("REQUEST_TIMEOUT", 5*time.Second),
		RetryAttempts:    env.intEnv("RETRY_ATTEMPTS", 3),
		RetryDelay:       env.durationEnv("RETRY_DELAY", 500*time.Millisecond),
		BreakerThreshold: env.intEnv("BREAKER_THRESHOLD", 5),
		BreakerTimeout:   env.durationEnv("BREAKER_TIMEOUT", 10*time.Second),

		ContactRateLimit:  env.intEnv("CONTACT_RATE_LIMIT", 5),
		ContactRateWindow: env.durationEnv("CONTACT_RATE_WINDOW", time.Minute),
		MaxImageBytes:     int64(env.intEnv("MAX_IMAGE_BYTES", 5*1024*1024)),

		DevBackendPort:   getEnv("DEV_BACKEND_PORT", "4000"),
		DevAdminEmail:    getEnv("DEV_ADMIN_EMAIL", "admin@example.com"),
		DevAdminPassword: getEnv("DEV_ADMIN_PASSWORD", "admin123"),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret"),
	}
	cfg.parseErrs = env.errs
	return cfg
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	errs := append([]error(nil), c.parseErrs...)

	if c.HTTPPort == "" {
		errs = append(errs, errors.New("HTTP_PORT is required"))
	}
	if u, err := url.Parse(c.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.APIBaseURL))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.PageCacheTTL < 0 {
		errs = append(errs, errors.New("PAGE_CACHE_TTL must not be negative"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if c.RetryAttempts < 1 {
		errs = append(errs, errors.New("RETRY_ATTEMPTS must be at least 1"))
	}
	if c.BreakerThreshold < 1 {
		errs = append(errs, errors.New("BREAKER_THRESHOLD must be at least 1"))
	}
	if c.ContactRateLimit < 1 {
		errs = append(errs, errors.New("CONTACT_RATE_LIMIT must be at least 1"))
	}
	if c.MaxImageBytes <= 0 {
		errs = append(errs, errors.New("MAX_IMAGE_BYTES must be positive"))
	}

	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// envReader parses typed variables, keeping the fallback and recording an
// error when a set value does not parse. Empty values count as unset.
type envReader struct {
	errs []error
}

func (e *envReader) lookup(key string) (string, bool) {
	value, exists := os.LookupEnv(key)
	return value, exists && value != ""
}

func (e *envReader) invalid(key, value string, err error) {
	e.errs = append(e.errs, fmt.Errorf("%s: invalid value %q: %w", key, value, err))
}

func (e *envReader) intEnv(key string, fallback int) int {
	value, ok := e.lookup(key)
	if !ok {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		e.invalid(key, value, err)
		return fallback
	}
	return i
}

func (e *envReader) durationEnv(key string, fallback time.Duration) time.Duration {
	value, ok := e.lookup(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		e.invalid(key, value, err)
		return fallback
	}
	return d
}

func (e *envReader) boolEnv(key string, fallback bool) bool {
	value, ok := e.lookup(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		e.invalid(key, value, err)
		return fallback
	}
	return b
}
