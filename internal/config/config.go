package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName string
	Env     string
	Host    string
	Port    int

	APIBaseURL            string
	RequestTimeoutSeconds int

	TokenFile  string
	SessionKey string

	CORSOrigins []string
	Debug       bool
}

func Load() (*Config, error) {
	// Best effort; a missing .env just means plain environment variables.
	_ = godotenv.Load()

	cfg := &Config{
		AppName: getEnv("APP_NAME", "Campus Lost & Found Client"),
		Env:     getEnv("APP_ENV", "development"),
		Host:    getEnv("HTTP_HOST", "127.0.0.1"),
		Port:    getEnvAsInt("HTTP_PORT", 8080),

		APIBaseURL:            getEnv("API_BASE_URL", "http://localhost:3000/api/v1"),
		RequestTimeoutSeconds: getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 30),

		TokenFile:  os.Getenv("TOKEN_FILE"),
		SessionKey: os.Getenv("SESSION_KEY"),

		Debug: getEnvAsBool("DEBUG", true),
	}

	cors := getEnv("CORS_ORIGINS", "")
	if cors != "" {
		parts := strings.Split(cors, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		cfg.CORSOrigins = parts
	} else {
		cfg.CORSOrigins = []string{"http://localhost:8080", "http://127.0.0.1:8080"}
	}

	if cfg.SessionKey == "" {
		return nil, fmt.Errorf("SESSION_KEY is required")
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if cfg.TokenFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home dir: %w", err)
		}
		cfg.TokenFile = filepath.Join(home, ".campus-lostfound", "token")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.TokenFile), 0o700); err != nil {
		return nil, fmt.Errorf("creating token dir: %w", err)
	}

	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvAsBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
