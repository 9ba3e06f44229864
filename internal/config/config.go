// Package config provides configuration management for the application.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application.
type Config struct {
	// HTTP
	ListenAddr string

	// AWS
	AWSRegion string
	S3Bucket  string

	// Advisory (Gemini)
	GeminiAPIKey    string
	GeminiModel     string
	AdvisoryTimeout time.Duration

	// Avatar cache
	AvatarStore string // memory | s3 | redis

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// SES
	SESSenderEmail string
	SESOpsEmail    string

	// Simulated processing delays
	StepDelay   time.Duration
	SubmitDelay time.Duration
	SwitchDelay time.Duration

	// Application
	Stage    string
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	_ = godotenv.Load()

	cfg := &Config{
		// HTTP
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),

		// AWS
		AWSRegion: getEnv("AWS_REGION", "ap-south-1"),
		S3Bucket:  getEnv("S3_BUCKET", "finscoreai-assets-dev"),

		// Advisory
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		AdvisoryTimeout: getEnvDuration("ADVISORY_TIMEOUT", 10*time.Second),

		// Avatar cache
		AvatarStore: getEnv("AVATAR_STORE", "memory"),

		// Redis
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		// SES
		SESSenderEmail: getEnv("SES_SENDER_EMAIL", ""),
		SESOpsEmail:    getEnv("SES_OPS_EMAIL", ""),

		// Delays mimic the upstream verification round-trips
		StepDelay:   getEnvDuration("STEP_DELAY", 1500*time.Millisecond),
		SubmitDelay: getEnvDuration("SUBMIT_DELAY", 2*time.Second),
		SwitchDelay: getEnvDuration("SWITCH_DELAY", time.Second),

		// Application
		Stage:    getEnv("STAGE", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as int or returns a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration retrieves an environment variable as a duration or returns a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
