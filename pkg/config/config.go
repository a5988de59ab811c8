// Package config builds the typed runtime configuration from environment
// variables, with defaults suitable for local development.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
)

type ServerConfig struct {
	Host          string
	Port          string
	PprofPort     string
	EnablePprof   bool
	EnableMetrics bool
}

func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type OCRConfig struct {
	APIKey   string
	Endpoint string
}

type EngineConfig struct {
	DefaultCurrency string
	MinAmount       int64
}

type ScanConfig struct {
	LowConfidence int
	AutoAccept    int
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	OCR       OCRConfig
	Engine    EngineConfig
	Scan      ScanConfig
	RateLimit RateLimitConfig
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:          getEnv("SERVER_HOST", "0.0.0.0"),
			Port:          getEnv("SERVER_PORT", "8080"),
			PprofPort:     getEnv("PPROF_PORT", "6060"),
			EnablePprof:   getEnvBool("ENABLE_PPROF", false),
			EnableMetrics: getEnvBool("ENABLE_METRICS", true),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "billscan"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		OCR: OCRConfig{
			APIKey:   getEnv("OCR_API_KEY", ""),
			Endpoint: getEnv("OCR_ENDPOINT", ""),
		},
	}

	var err error
	if cfg.Engine.DefaultCurrency = getEnv("ENGINE_DEFAULT_CURRENCY", "VND"); cfg.Engine.DefaultCurrency == "" {
		return nil, fmt.Errorf("ENGINE_DEFAULT_CURRENCY must not be blank")
	}
	if cfg.Engine.MinAmount, err = getEnvInt64("ENGINE_MIN_AMOUNT", 10_000); err != nil {
		return nil, err
	}
	if cfg.Scan.LowConfidence, err = getEnvInt("SCAN_LOW_CONFIDENCE", 60); err != nil {
		return nil, err
	}
	if cfg.Scan.AutoAccept, err = getEnvInt("SCAN_AUTO_ACCEPT", 85); err != nil {
		return nil, err
	}
	if cfg.Scan.AutoAccept < cfg.Scan.LowConfidence {
		return nil, fmt.Errorf("SCAN_AUTO_ACCEPT (%d) below SCAN_LOW_CONFIDENCE (%d)",
			cfg.Scan.AutoAccept, cfg.Scan.LowConfidence)
	}
	if cfg.RateLimit.RequestsPerSecond, err = getEnvFloat("RATE_LIMIT_RPS", 20); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Burst, err = getEnvInt("RATE_LIMIT_BURST", 40); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
