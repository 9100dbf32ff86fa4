package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

// RequestTimeout bounds every HTTP request served by the router.
// DB_QUERY_TIMEOUT must stay below it so the page is written before the router gives up.
const RequestTimeout = 60 * time.Second

// Config holds all configuration values for the application
type Config struct {
	Port           string
	LogLevel       string
	Environment    string
	Database       DatabaseConfig
	RedisURL       string
	StrictResolver bool // Only accept candidates that parse as IP literals
	ExposeDBErrors bool // Include the driver message in the page error fragment
}

// DatabaseConfig holds the connection parameters for the visit store
type DatabaseConfig struct {
	URL            string // Full DSN, takes precedence over Host/Port/Name
	Host           string
	Port           int
	Name           string
	User           string
	Password       string
	SSLMode        string
	ConnectTimeout time.Duration
	QueryTimeout   time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	port, err := getIntEnv("POSTGRES_PORT", 5432)
	if err != nil {
		return nil, err
	}
	connectTimeout, err := getDurationEnv("DB_CONNECT_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	queryTimeout, err := getDurationEnv("DB_QUERY_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Environment: getEnv("ENVIRONMENT", "production"),
		Database: DatabaseConfig{
			URL:            getEnv("POSTGRES_URL", ""),
			Host:           getEnv("POSTGRES_HOST", "localhost"),
			Port:           port,
			Name:           getEnv("POSTGRES_DATABASE", "postgres"),
			User:           getEnv("POSTGRES_USER", ""),
			Password:       getEnv("POSTGRES_PASSWORD", ""),
			SSLMode:        getEnv("POSTGRES_SSLMODE", ""),
			ConnectTimeout: connectTimeout,
			QueryTimeout:   queryTimeout,
		},
		RedisURL:       getEnv("REDIS_URL", ""),
		StrictResolver: getBoolEnv("RESOLVER_STRICT", true),
		ExposeDBErrors: getBoolEnv("EXPOSE_DB_ERRORS", false),
	}

	if err := cfg.Database.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the database parameters that can be checked without dialing
func (c DatabaseConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid POSTGRES_PORT: %d", c.Port)
	}
	switch c.SSLMode {
	case "", "disable", "allow", "prefer", "require", "verify-ca", "verify-full":
	default:
		return fmt.Errorf("invalid POSTGRES_SSLMODE: %q", c.SSLMode)
	}
	if c.QueryTimeout <= 0 || c.QueryTimeout >= RequestTimeout {
		return fmt.Errorf("invalid DB_QUERY_TIMEOUT: %s (must be above 0 and below %s)", c.QueryTimeout, RequestTimeout)
	}
	if _, err := c.ConnConfig(); err != nil {
		return err
	}
	return nil
}

// ConnString returns the DSN used to reach the database.
// An explicit URL wins; otherwise one is assembled from the separate fields.
// A non-empty SSLMode always replaces the sslmode carried by the DSN.
func (c DatabaseConfig) ConnString() string {
	if c.URL != "" {
		return withSSLMode(c.URL, c.SSLMode)
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{c.SSLMode}}.Encode()
	}
	return u.String()
}

// withSSLMode sets sslmode on a URL or keyword/value DSN
func withSSLMode(dsn, mode string) string {
	if mode == "" {
		return dsn
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			// pgx.ParseConfig rejects the same input and reports it
			return dsn
		}
		query := u.Query()
		query.Set("sslmode", mode)
		u.RawQuery = query.Encode()
		return u.String()
	}

	// Later keywords win in the keyword/value form
	return strings.TrimSpace(dsn) + " sslmode=" + mode
}

// requiresTLS reports whether mode forbids a plaintext session
func requiresTLS(mode string) bool {
	switch mode {
	case "require", "verify-ca", "verify-full":
		return true
	}
	return false
}

// ConnConfig parses the DSN and applies the separately supplied credentials
func (c DatabaseConfig) ConnConfig() (*pgx.ConnConfig, error) {
	connConfig, err := pgx.ParseConfig(c.ConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database DSN: %w", err)
	}

	if c.User != "" {
		connConfig.User = c.User
	}
	if c.Password != "" {
		connConfig.Password = c.Password
	}
	if requiresTLS(c.SSLMode) {
		if connConfig.TLSConfig == nil {
			return nil, fmt.Errorf("POSTGRES_SSLMODE=%s but DSN disables TLS", c.SSLMode)
		}
		// Drop plaintext fallbacks so the session is always encrypted
		fallbacks := connConfig.Fallbacks[:0]
		for _, fb := range connConfig.Fallbacks {
			if fb.TLSConfig != nil {
				fallbacks = append(fallbacks, fb)
			}
		}
		connConfig.Fallbacks = fallbacks
	}
	if c.ConnectTimeout > 0 {
		connConfig.ConnectTimeout = c.ConnectTimeout
	}

	return connConfig, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
