// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config maps the process environment into a typed [Config].

Values come from OS environment variables, optionally seeded from .env files
during local development. The result is loaded once in main and handed to
every collaborator through its constructor.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFiles are the dotenv files [Load] reads when present.
// Earlier files win because godotenv never overrides a variable already set.
var DefaultEnvFiles = []string{".env.local", ".env"}

// # Configuration Schema

// Config holds all runtime configuration for the Blenda API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL   string `env:"DATABASE_URL,required"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL      string        `env:"REDIS_URL,required"`
	BrandCacheTTL time.Duration `env:"BRAND_CACHE_TTL" envDefault:"5m"`

	// Access token signing keys
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Object Storage (S3-compatible) used to presign template thumbnails
	S3Bucket          string        `env:"S3_BUCKET"`
	S3Region          string        `env:"S3_REGION"   envDefault:"auto"`
	S3Endpoint        string        `env:"S3_ENDPOINT"`
	S3AccessKeyID     string        `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string        `env:"S3_SECRET_ACCESS_KEY"`
	ThumbnailURLTTL   time.Duration `env:"THUMBNAIL_URL_TTL" envDefault:"1h"`

	// Cross-Origin Resource Sharing, comma separated
	ExtraOrigins string `env:"EXTRA_ORIGINS"`

	// Browser session behaviour
	LoginPath    string `env:"LOGIN_PATH"    envDefault:"/login"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"true"`
}

// # Configuration Loading

// Load reads the default dotenv files, if any, then parses the environment.
func Load() (*Config, error) {
	return LoadFiles(DefaultEnvFiles...)
}

// LoadFiles is [Load] with an explicit list of dotenv files.
// Missing files are skipped; malformed ones are an error.
func LoadFiles(files ...string) (*Config, error) {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: failed to load %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the trimmed, non-empty entries of ExtraOrigins.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
