package app

import (
	"time"

	"github.com/guttosm/college-order-service/config"
)

// testConfig returns a configuration that passes Validate and runs
// without MongoDB, email or the college API.
func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			RateLimit:      100,
			RateWindow:     time.Minute,
			RequestTimeout: 30 * time.Second,
		},
		Cache: config.CacheConfig{
			DraftsCapacity: 100,
			DraftsTTL:      time.Hour,
			PolicyTTL:      time.Minute,
		},
		Database: config.DatabaseConfig{
			LogsTTL:                        30 * 24 * time.Hour,
			DraftsTTL:                      7 * 24 * time.Hour,
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          30 * time.Second,
		},
		Email: config.EmailConfig{
			ProviderEmail: "orders@example.com",
			Timeout:       5 * time.Second,
		},
		Log: config.LogConfig{Level: "error"},
	}
}
