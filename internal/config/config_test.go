package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearAppEnv blanks every variable Load reads, so tests see the
// defaults regardless of the host environment.
func clearAppEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "APP_ENV", "LOG_LEVEL",
		"GITHUB_TOKEN", "GITHUB_OWNER", "GITHUB_REPO", "GITHUB_API_URL",
		"BASE_BRANCH", "BRANCH_PREFIX",
		"COMMIT_AUTHOR_NAME", "COMMIT_AUTHOR_EMAIL",
		"CDN_BASE_URL", "MAX_UPLOAD_BYTES", "ALLOWED_FILE_TYPES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_ShouldApplyDefaults(t *testing.T) {
	// given
	clearAppEnv(t)

	// when
	cfg := Load()

	// then
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "main", cfg.BaseBranch)
	assert.Equal(t, "files", cfg.BranchPrefix)
	assert.Equal(t, "gitbin", cfg.CommitAuthorName)
	assert.Equal(t, "gitbin@users.noreply.github.com", cfg.CommitAuthorEmail)
	assert.Equal(t, "https://cdn.jsdelivr.net/gh", cfg.CDNBaseURL)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadBytes)
	assert.Empty(t, cfg.AllowedFileTypes)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_ShouldReadOverrides(t *testing.T) {
	// given
	clearAppEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("GITHUB_OWNER", "acme")
	t.Setenv("GITHUB_REPO", "uploads")
	t.Setenv("BASE_BRANCH", "trunk")
	t.Setenv("BRANCH_PREFIX", "blobs")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("ALLOWED_FILE_TYPES", "image/png, image/jpeg,")

	// when
	cfg := Load()

	// then
	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "trunk", cfg.BaseBranch)
	assert.Equal(t, "blobs", cfg.BranchPrefix)
	assert.Equal(t, int64(1048576), cfg.MaxUploadBytes)
	assert.Equal(t, []string{"image/png", "image/jpeg"}, cfg.AllowedFileTypes)
}

func TestLoad_ShouldFallBackWhenSizeIsNotAnInteger(t *testing.T) {
	// given
	clearAppEnv(t)
	t.Setenv("MAX_UPLOAD_BYTES", "five megabytes")

	// when
	cfg := Load()

	// then
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadBytes)
}

func TestValidate_ShouldPassWithAllRequiredSettings(t *testing.T) {
	// given
	clearAppEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("GITHUB_OWNER", "acme")
	t.Setenv("GITHUB_REPO", "uploads")

	// when
	err := Load().Validate()

	// then
	assert.NoError(t, err)
}

func TestValidate_ShouldListEveryMissingVariable(t *testing.T) {
	// given
	clearAppEnv(t)
	t.Setenv("GITHUB_OWNER", "acme")

	// when
	err := Load().Validate()

	// then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
	assert.Contains(t, err.Error(), "GITHUB_REPO")
	assert.NotContains(t, err.Error(), "GITHUB_OWNER")
}
