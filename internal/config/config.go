// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	// GitHub repository that acts as the storage backend
	GitHubToken  string
	GitHubOwner  string
	GitHubRepo   string
	GitHubAPIURL string // optional override, e.g. GitHub Enterprise "https://ghe.example.com/api/v3/"

	// Branch layout: uploads land on "<BranchPrefix>/<identifier>", created
	// on demand from BaseBranch.
	BaseBranch   string
	BranchPrefix string

	// Identity recorded on every upload commit
	CommitAuthorName  string
	CommitAuthorEmail string

	// CDN that resolves "owner/repo@branch/path" to raw file bytes
	CDNBaseURL string

	MaxUploadBytes   int64
	AllowedFileTypes []string // MIME allowlist; empty disables the check
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, reading from environment")
	}

	return &Config{
		Port:     getEnv("PORT", "8080"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		GitHubToken:  getEnv("GITHUB_TOKEN", ""),
		GitHubOwner:  getEnv("GITHUB_OWNER", ""),
		GitHubRepo:   getEnv("GITHUB_REPO", ""),
		GitHubAPIURL: getEnv("GITHUB_API_URL", ""),

		BaseBranch:   getEnv("BASE_BRANCH", "main"),
		BranchPrefix: getEnv("BRANCH_PREFIX", "files"),

		CommitAuthorName:  getEnv("COMMIT_AUTHOR_NAME", "gitbin"),
		CommitAuthorEmail: getEnv("COMMIT_AUTHOR_EMAIL", "gitbin@users.noreply.github.com"),

		CDNBaseURL: getEnv("CDN_BASE_URL", "https://cdn.jsdelivr.net/gh"),

		MaxUploadBytes:   getEnvInt64("MAX_UPLOAD_BYTES", 5*1024*1024),
		AllowedFileTypes: splitList(getEnv("ALLOWED_FILE_TYPES", "")),
	}
}

// Validate checks that the settings without usable defaults are present.
// Values are validated for presence only; whether they actually work is
// discovered on the first remote call.
func (c *Config) Validate() error {
	var missing []string
	if c.GitHubToken == "" {
		missing = append(missing, "GITHUB_TOKEN")
	}
	if c.GitHubOwner == "" {
		missing = append(missing, "GITHUB_OWNER")
	}
	if c.GitHubRepo == "" {
		missing = append(missing, "GITHUB_REPO")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Warn().Str("var", key).Str("value", v).Msg("not an integer, using default")
		return fallback
	}
	return n
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
