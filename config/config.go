package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadENV loads the environment variables from .env when GO_ENV is unset or "development"
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	GO_ENV string
	PORT   int
	// Database
	DB_DRIVER    string // postgres | sqlite
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	DB_PATH      string
	// JWT Configuration
	JWT_SECRET string
	JWT_ISSUER string
	// Redis Configuration
	REDIS_URL string
	// Gemini completion endpoint
	GEMINI_API_KEY             string
	GEMINI_MODEL               string
	GEMINI_BASE_URL            string
	GEMINI_API_VERSION         string
	GEMINI_REQUESTS_PER_MINUTE int
	// Logging
	LOG_LEVEL  string
	LOG_FORMAT string
	// Chat
	CHAT_SESSION_LOCK string // none | local | redis
	// HTTP
	ALLOWED_ORIGINS     string
	RATE_LIMIT_REQUESTS int
}

func Get() (*EnvironmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	rateLimit, err := strconv.Atoi(os.Getenv("RATE_LIMIT_REQUESTS"))
	if err != nil {
		rateLimit = 100
	}

	geminiRPM, err := strconv.Atoi(os.Getenv("GEMINI_REQUESTS_PER_MINUTE"))
	if err != nil || geminiRPM < 0 {
		geminiRPM = 0
	}

	envVariables := &EnvironmentVariable{
		GO_ENV: os.Getenv("GO_ENV"),
		PORT:   port,
		// Database
		DB_DRIVER:    strings.ToLower(getOrDefault("DB_DRIVER", "postgres")),
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      getOrDefault("DB_HOST", "localhost"),
		DB_PORT:      getOrDefault("DB_PORT", "5432"),
		DB_SSL_MODE:  getOrDefault("DB_SSL_MODE", "disable"),
		DB_PATH:      getOrDefault("DB_PATH", "admission.db"),
		// JWT
		JWT_SECRET: os.Getenv("JWT_SECRET"),
		JWT_ISSUER: getOrDefault("JWT_ISSUER", "admission-advisor-api"),
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// Gemini
		GEMINI_API_KEY:             os.Getenv("GEMINI_API_KEY"),
		GEMINI_MODEL:               getOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		GEMINI_BASE_URL:            os.Getenv("GEMINI_BASE_URL"),
		GEMINI_API_VERSION:         getOrDefault("GEMINI_API_VERSION", "v1"),
		GEMINI_REQUESTS_PER_MINUTE: geminiRPM,
		// Logging
		LOG_LEVEL:  getOrDefault("LOG_LEVEL", "info"),
		LOG_FORMAT: getOrDefault("LOG_FORMAT", "json"),
		// Chat
		CHAT_SESSION_LOCK: strings.ToLower(getOrDefault("CHAT_SESSION_LOCK", "none")),
		// HTTP
		ALLOWED_ORIGINS:     getOrDefault("ALLOWED_ORIGINS", "http://localhost:3000"),
		RATE_LIMIT_REQUESTS: rateLimit,
	}

	return envVariables, nil
}

// IsProduction reports whether the service runs with GO_ENV=production
func (e *EnvironmentVariable) IsProduction() bool {
	return e.GO_ENV == "production"
}

func getOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
