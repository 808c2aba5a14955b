package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads the .env file when present. A missing file is not an error:
// production deployments provide real environment variables.
func LoadEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	return godotenv.Load(".env")
}

// GetEnv returns the value of an environment variable.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvOrDefault returns the value of an environment variable, or fallback
// when it is unset or empty.
func GetEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
