package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Runtime profiles. Production tightens cookie and secret handling, testing
// swaps the database for an in-memory one.
const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvProduction  = "production"
)

const defaultSessionSecret = "default_secret_key_for_development"

type Config struct {
	Env      string
	Debug    bool
	APIPort  string
	LogLevel string

	DatabaseURL string

	SessionSecret   []byte
	SessionLifetime time.Duration
	CookieSecure    bool
}

var AppConfig *Config

func Load() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	env := strings.ToLower(getEnv("APP_ENV", EnvDevelopment))
	switch env {
	case EnvDevelopment, EnvTesting, EnvProduction:
	default:
		env = EnvDevelopment
	}

	secret := getEnv("SESSION_SECRET", "")
	if secret == "" {
		if env == EnvProduction {
			return fmt.Errorf("SESSION_SECRET must be set when APP_ENV=%s", EnvProduction)
		}
		secret = defaultSessionSecret
	}

	databaseURL := getEnv("DATABASE_URL", "netsecurepro.db")
	if env == EnvTesting {
		databaseURL = ":memory:"
	}

	AppConfig = &Config{
		Env:             env,
		Debug:           getEnvAsBool("APP_DEBUG", env != EnvProduction),
		APIPort:         getEnv("API_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "debug"),
		DatabaseURL:     databaseURL,
		SessionSecret:   []byte(secret),
		SessionLifetime: time.Duration(getEnvAsInt("SESSION_LIFETIME_DAYS", 7)) * 24 * time.Hour,
		CookieSecure:    env == EnvProduction,
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}
