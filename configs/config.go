package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config reads a key from the environment, loading .env first when present.
func Config(key string) string {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}

// ConfigOr returns the value for key or a fallback when it is unset.
func ConfigOr(key, fallback string) string {
	value := Config(key)
	if value == "" {
		return fallback
	}
	return value
}
