// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything cmd/server needs to wire the process.
type Config struct {
	Port string
	Env  string

	// UseMemoryStore switches the record store to the in-memory
	// implementation for local development.
	UseMemoryStore bool
	// SkipAuth disables token verification (local dev and seeding only).
	SkipAuth bool

	// GoogleCloudProject is the Firestore/Firebase project.
	GoogleCloudProject string
	// LoginContinueURL is where passwordless sign-in links land.
	LoginContinueURL string
	// ArchiveBucket, when set, receives a copy of every imported workbook.
	ArchiveBucket string

	// AllowedOrigins for CORS.
	AllowedOrigins []string
}

// Load reads configuration from the environment. In local mode a .env file
// at envPath is loaded first, matching how the rest of the tooling runs.
func Load(envPath string) *Config {
	env := GetEnv("APP_ENV", "local")
	if env == "local" && envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			log.Println("error loading config from file", err)
		}
		env = GetEnv("APP_ENV", "local")
	}

	return &Config{
		Port:               GetEnv("PORT", "8111"),
		Env:                env,
		UseMemoryStore:     GetEnvAsBool("USE_MEMORY_STORE", env == "local"),
		SkipAuth:           GetEnvAsBool("SKIP_AUTH", false),
		GoogleCloudProject: GetEnv("GOOGLE_CLOUD_PROJECT", ""),
		LoginContinueURL:   GetEnv("LOGIN_CONTINUE_URL", "http://localhost:1234"),
		ArchiveBucket:      GetEnv("ARCHIVE_BUCKET", ""),
		AllowedOrigins: []string{
			GetEnv("FRONTEND_ORIGIN", "http://localhost:1234"),
			"http://127.0.0.1:1234",
		},
	}
}

// GetEnv returns the environment variable value or a default.
func GetEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// GetEnvAsBool returns the environment variable parsed as a bool or a default.
func GetEnvAsBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

// GetEnvAsInt returns the environment variable parsed as an int or a default.
func GetEnvAsInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}
