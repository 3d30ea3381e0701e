package env

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads a .env file if one is present. This is typically used in a
// development environment; in production the variables are set directly.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set directly.")
	}
}

// MustGet returns the value of a required environment variable, exiting the
// process when it is not set.
func MustGet(key string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		log.Fatalf("Environment variable %s not set", key)
	}
	return val
}

// Get returns the value of an environment variable, or fallback when unset.
func Get(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// GetInt returns an integer environment variable, or fallback when unset or
// not parseable.
func GetInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("Environment variable %s is not an integer (%q), using %d", key, val, fallback)
		return fallback
	}
	return n
}
