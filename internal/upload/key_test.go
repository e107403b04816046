package upload

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var identifierPattern = regexp.MustCompile(`^[a-z0-9_-]{1,50}$`)

func TestSanitizeIdentifier_ShouldReplaceUnsafeRunesOneForOne(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"space and punctuation", "Team A!", "team-a-"},
		{"already clean", "alice_01", "alice_01"},
		{"uppercase only", "ALICE", "alice"},
		{"dots", "a.b.c", "a-b-c"},
		{"accented rune", "héllo", "h-llo"},
		{"slashes", "a/b\\c", "a-b-c"},
		{"empty input", "", FallbackIdentifier},
		{"all unsafe", "!!!", "---"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeIdentifier(tt.raw))
		})
	}
}

func TestSanitizeIdentifier_ShouldAlwaysProduceSafeToken(t *testing.T) {
	// given
	inputs := []string{
		"",
		"Team A!",
		"user@example.com",
		strings.Repeat("x", 500),
		"日本語のユーザー",
		"../../etc",
		"   ",
	}

	for _, in := range inputs {
		// when
		got := SanitizeIdentifier(in)

		// then
		assert.Regexp(t, identifierPattern, got, "input %q", in)
		assert.Equal(t, got, SanitizeIdentifier(in), "must be deterministic for %q", in)
	}
}

func TestSanitizeIdentifier_ShouldTruncateToFiftyCharacters(t *testing.T) {
	// when
	got := SanitizeIdentifier(strings.Repeat("A", 80))

	// then
	assert.Equal(t, strings.Repeat("a", 50), got)
	assert.Len(t, got, 50)
}

func TestBuildStorageKey_ShouldComposeBranchAndTimestampedPath(t *testing.T) {
	// given
	now := time.UnixMilli(1700000000000)

	// when
	key := BuildStorageKey("team-a-", "photo.png", now, "files")

	// then
	assert.Equal(t, "files/team-a-", key.Branch)
	assert.Equal(t, "1700000000000-photo.png", key.Path)
	assert.Equal(t, "photo.png", key.DisplayName)
}

func TestBuildStorageKey_ShouldPreserveExtensionExactly(t *testing.T) {
	// given
	now := time.UnixMilli(42)

	tests := []struct {
		file       string
		wantSuffix string
	}{
		{"report.pdf", ".pdf"},
		{"archive.tar.gz", ".gz"},
		{"photo.PNG", ".PNG"},
		{"noextension", "-noextension"},
		{".gitignore", ".gitignore"},
	}

	for _, tt := range tests {
		// when
		key := BuildStorageKey("u", tt.file, now, "files")

		// then
		assert.True(t, strings.HasSuffix(key.Path, tt.wantSuffix), "path %q should end in %q", key.Path, tt.wantSuffix)
		assert.NotContains(t, key.Path, "/")
	}
}

func TestBuildStorageKey_ShouldSanitizeBaseNameButNotExtension(t *testing.T) {
	// when
	key := BuildStorageKey("u", "my file (1).png", time.UnixMilli(42), "files")

	// then
	assert.Equal(t, "42-my_file__1_.png", key.Path)
	assert.Equal(t, "my_file__1_.png", key.DisplayName)
}

func TestBuildStorageKey_ShouldStripDirectoryComponents(t *testing.T) {
	// given a file name trying to escape the branch root
	key := BuildStorageKey("u", "../../etc/passwd.txt", time.UnixMilli(42), "files")

	// then
	assert.Equal(t, "42-passwd.txt", key.Path)
	assert.NotContains(t, key.Path, "/")
}

func TestBuildStorageKey_ShouldProduceDistinctPathsAcrossMilliseconds(t *testing.T) {
	// when
	a := BuildStorageKey("u", "f.txt", time.UnixMilli(1000), "files")
	b := BuildStorageKey("u", "f.txt", time.UnixMilli(1001), "files")

	// then
	assert.NotEqual(t, a.Path, b.Path)
	assert.Equal(t, a.Branch, b.Branch)
}
