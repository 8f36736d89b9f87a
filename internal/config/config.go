package config

import (
	"net"
	"os"
	"strconv"
)

// Config holds all configuration for the service
type Config struct {
	// Server
	Host        string
	Port        int
	Environment string
	ServiceName string

	// Optional integrations, disabled when empty
	NATSURL      string
	OTLPEndpoint string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Host:         getEnv("HOST", "0.0.0.0"),
		Port:         getEnvInt("PORT", 8000),
		Environment:  getEnv("GO_ENV", "development"),
		ServiceName:  getEnv("SERVICE_NAME", "codelancer"),
		NATSURL:      getEnv("NATS_URL", ""),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

// Addr returns the host:port the HTTP server listens on
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
