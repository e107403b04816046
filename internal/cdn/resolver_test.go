package cdn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileURL_ShouldComposeCDNAddress(t *testing.T) {
	// given
	r := NewResolver("https://cdn.jsdelivr.net/gh", "acme", "uploads")

	// when
	got := r.FileURL("files/team-a-", "1700000000000-photo.png")

	// then
	assert.Equal(t, "https://cdn.jsdelivr.net/gh/acme/uploads@files/team-a-/1700000000000-photo.png", got)
}

func TestFileURL_ShouldPercentEncodeThePath(t *testing.T) {
	// given a path that kept unusual extension bytes
	r := NewResolver("https://cdn.jsdelivr.net/gh", "acme", "uploads")

	// when
	got := r.FileURL("files/u", "42-photo.p ng")

	// then
	assert.Equal(t, "https://cdn.jsdelivr.net/gh/acme/uploads@files/u/42-photo.p%20ng", got)
}

func TestNewResolver_ShouldTolerateTrailingSlashInBase(t *testing.T) {
	// given
	r := NewResolver("https://cdn.example.com/gh/", "acme", "uploads")

	// when
	got := r.FileURL("files/u", "42-f.txt")

	// then
	assert.Equal(t, "https://cdn.example.com/gh/acme/uploads@files/u/42-f.txt", got)
}

func TestFileURL_ShouldKeepExtensionVisibleToTheCDN(t *testing.T) {
	// given file-type inference on the CDN side depends on the suffix
	r := NewResolver("https://cdn.jsdelivr.net/gh", "acme", "uploads")

	// when
	got := r.FileURL("files/team-a-", "1700000000000-photo.png")

	// then
	assert.Regexp(t, `\.png$`, got)
}
