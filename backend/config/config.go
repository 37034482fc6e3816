// ABOUTME: Configuration loader for the fabric sizing service
// ABOUTME: Loads settings from environment variables (and an optional .env file) with defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/markalston/fabric-capacity-analyzer/backend/models"
)

type Config struct {
	// Server
	Port               string
	CacheTTL           int      // seconds, memoized comparisons
	CORSAllowedOrigins []string // allowed CORS origins (empty = allow any origin)

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting (default: true)
	RateLimitDefault int  // Requests per minute per client (default: 100)

	// Sweep
	SweepWorkers int // concurrent comparisons per sweep (default: 4)

	// Defaults served by /api/v1/fabric/defaults and used to fill CLI flags
	Defaults models.NetworkConfig
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; existing variables take precedence.
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	base := models.DefaultNetworkConfig()
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CacheTTL:           getEnvInt("CACHE_TTL", 300),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitDefault: getEnvInt("RATE_LIMIT_DEFAULT", 100),

		SweepWorkers: getEnvInt("SWEEP_WORKERS", 4),

		Defaults: models.NetworkConfig{
			NumUsers:          getEnvInt("DEFAULT_NUM_USERS", base.NumUsers),
			Radix:             getEnvInt("DEFAULT_RADIX", base.Radix),
			PowerPerSwitch:    getEnvFloat("DEFAULT_POWER_PER_SWITCH", base.PowerPerSwitch),
			CablePowerClos:    getEnvFloat("DEFAULT_CABLE_POWER_CLOS", base.CablePowerClos),
			CablePowerMesh:    getEnvFloat("DEFAULT_CABLE_POWER_MESH", base.CablePowerMesh),
			MeshFabricRatio:   getEnvFloat("DEFAULT_MESH_FABRIC_RATIO", base.MeshFabricRatio),
			MeshOneHopTraffic: getEnvFloat("DEFAULT_MESH_ONE_HOP_TRAFFIC", base.MeshOneHopTraffic),
		},
	}

	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("CACHE_TTL must not be negative, got %d", cfg.CacheTTL)
	}
	if cfg.RateLimitDefault < 1 || cfg.RateLimitDefault > 10000 {
		return nil, fmt.Errorf("RATE_LIMIT_DEFAULT must be between 1 and 10000, got %d", cfg.RateLimitDefault)
	}
	if cfg.SweepWorkers < 1 || cfg.SweepWorkers > 64 {
		return nil, fmt.Errorf("SWEEP_WORKERS must be between 1 and 64, got %d", cfg.SweepWorkers)
	}
	if err := cfg.Defaults.Validate(); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_* network configuration: %w", err)
	}

	return cfg, nil
}

// loadDotEnv applies variables from path without overriding the environment.
// A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		slog.Debug("Loaded environment file", "path", path)
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
