// Package config loads application configuration from environment
// variables.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds every runtime setting. Each field maps to one environment
// variable; required variables are enforced by must() at startup.
type Config struct {
	Env          string // application environment (dev, test, prod)
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password, empty allowed
	DBHost       string // database host
	DBPort       string // database port
	DBName       string // database name
	JWTSecret    string // secret used to sign access tokens
	AdminEmail   string // registrations with this email receive the Administrator role
	AccessTTLMin int    // access token lifetime in minutes
	BcryptCost   int    // bcrypt cost for password hashing
}

// Load reads the environment and returns a Config. Missing required
// variables abort startup with a fatal log message.
func Load() Config {
	return Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		JWTSecret:    must("JWT_SECRET"),
		AdminEmail:   os.Getenv("ADMIN_EMAIL"),
		AccessTTLMin: intOr("ACCESS_TOKEN_TTL_MIN", 40),
		BcryptCost:   intOr("BCRYPT_COST", 12),
	}
}

func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func intOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("env var %s must be an integer, got %q", key, v)
	}
	return n
}
