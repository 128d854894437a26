// Package config provides configuration management for the college order service.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// DefaultEmailJSEndpoint is the EmailJS REST send endpoint.
const DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Email    EmailConfig
	Upstream UpstreamConfig
	Catalog  CatalogConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
}

// CacheConfig holds in-memory cache configuration.
type CacheConfig struct {
	// DraftsCapacity and DraftsTTL size the live draft cache.
	DraftsCapacity int
	DraftsTTL      time.Duration
	// PolicyTTL is how long the active pack size policy is reused.
	PolicyTTL time.Duration
}

// AuthConfig holds admin and API key authentication configuration.
type AuthConfig struct {
	// Enabled turns on API key checks for the upstream proxy routes.
	Enabled           bool
	APIKeys           map[string]bool
	JWTSecretKey      string
	AccessTokenTTL    time.Duration
	AdminUsername     string
	AdminPasswordHash string
}

// AdminEnabled reports whether admin login is configured.
func (a AuthConfig) AdminEnabled() bool {
	return a.AdminUsername != "" && a.AdminPasswordHash != ""
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	DraftsTTL    time.Duration
	Enabled      bool
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// EmailConfig holds EmailJS configuration.
type EmailConfig struct {
	Enabled        bool
	Endpoint       string
	ServiceID      string
	PublicKey      string
	PrivateKey     string
	TemplateIDDev  string
	TemplateIDProd string
	// DevHosts are extra hostnames that select the dev template.
	DevHosts      []string
	ProviderEmail string
	Timeout       time.Duration
}

// UpstreamConfig holds the college API client configuration.
type UpstreamConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Enabled reports whether an upstream API is configured.
func (u UpstreamConfig) Enabled() bool {
	return u.BaseURL != ""
}

// CatalogConfig selects the tenant catalog.
type CatalogConfig struct {
	// File overrides the embedded catalog when set.
	File string
}

// LogConfig holds console logging configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load creates a Config from environment variables. .env.<APP_ENV> and
// then .env are loaded first when present; variables already set win.
func Load() Config {
	loadDotEnv()

	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
			CORSOrigins:    parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:    getEnv("SWAGGER_USER", ""),
			SwaggerPass:    getEnv("SWAGGER_PASS", ""),
		},
		Cache: CacheConfig{
			DraftsCapacity: getEnvInt("DRAFTS_CACHE_SIZE", 10000),
			DraftsTTL:      getEnvDuration("DRAFTS_CACHE_TTL", 24*time.Hour),
			PolicyTTL:      getEnvDuration("PACK_POLICY_TTL", time.Minute),
		},
		Auth: AuthConfig{
			Enabled:           getEnvBool("AUTH_ENABLED", false),
			APIKeys:           parseList(os.Getenv("API_KEYS")),
			JWTSecretKey:      getEnv("JWT_SECRET_KEY", ""),
			AccessTokenTTL:    getEnvDuration("JWT_ACCESS_TOKEN_TTL", 8*time.Hour),
			AdminUsername:     getEnv("ADMIN_USERNAME", ""),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "college_orders"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			DraftsTTL:                      getEnvDuration("MONGODB_DRAFTS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Email: EmailConfig{
			Enabled:        getEnvBool("EMAIL_ENABLED", false),
			Endpoint:       getEnv("EMAILJS_ENDPOINT", DefaultEmailJSEndpoint),
			ServiceID:      getEnv("EMAILJS_SERVICE_ID", ""),
			PublicKey:      getEnv("EMAILJS_PUBLIC_KEY", ""),
			PrivateKey:     getEnv("EMAILJS_PRIVATE_KEY", ""),
			TemplateIDDev:  getEnv("EMAILJS_TEMPLATE_ID_DEV", ""),
			TemplateIDProd: getEnv("EMAILJS_TEMPLATE_ID_PROD", ""),
			DevHosts:       parseSlice(os.Getenv("EMAIL_DEV_HOSTS")),
			ProviderEmail:  getEnv("PROVIDER_EMAIL", ""),
			Timeout:        getEnvDuration("EMAIL_TIMEOUT", 15*time.Second),
		},
		Upstream: UpstreamConfig{
			BaseURL:  strings.TrimRight(getEnv("COLLEGE_API_URL", ""), "/"),
			Timeout:  getEnvDuration("COLLEGE_API_TIMEOUT", 10*time.Second),
			CacheTTL: getEnvDuration("COLLEGE_API_CACHE_TTL", 5*time.Minute),
		},
		Catalog: CatalogConfig{
			File: getEnv("CATALOG_FILE", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
	}
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.Auth.AdminEnabled() && len(c.Auth.JWTSecretKey) < 16 {
		errs = append(errs, errors.New("JWT_SECRET_KEY must be at least 16 characters when admin login is enabled"))
	}
	if c.Auth.Enabled && len(c.Auth.APIKeys) == 0 {
		errs = append(errs, errors.New("API_KEYS must be set when AUTH_ENABLED is true"))
	}
	if c.Email.Enabled {
		if c.Email.ServiceID == "" {
			errs = append(errs, errors.New("EMAILJS_SERVICE_ID is required when EMAIL_ENABLED is true"))
		}
		if c.Email.PublicKey == "" {
			errs = append(errs, errors.New("EMAILJS_PUBLIC_KEY is required when EMAIL_ENABLED is true"))
		}
		if c.Email.TemplateIDProd == "" {
			errs = append(errs, errors.New("EMAILJS_TEMPLATE_ID_PROD is required when EMAIL_ENABLED is true"))
		}
	}
	if c.Database.CircuitBreakerFailureThreshold <= 0 {
		errs = append(errs, fmt.Errorf("CIRCUIT_BREAKER_FAILURE_THRESHOLD must be positive, got %d", c.Database.CircuitBreakerFailureThreshold))
	}
	return errors.Join(errs...)
}

func loadDotEnv() {
	env := getEnv("APP_ENV", "development")
	for _, file := range []string{".env." + env, ".env"} {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			log.Warn().Err(err).Str("file", file).Msg("Failed to load env file")
			continue
		}
		log.Debug().Str("file", file).Msg("Loaded env file")
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseSlice(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

func parseList(s string) map[string]bool {
	items := parseSlice(s)
	if len(items) == 0 {
		return nil
	}
	result := make(map[string]bool, len(items))
	for _, item := range items {
		result[item] = true
	}
	return result
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
		"http://localhost:5173",
	}
	return append(defaults, parseSlice(s)...)
}
