// Package upload implements the upload pipeline: deriving a storage location
// from the caller-supplied identifier and file name, committing the file to
// the backing repository with on-demand branch creation, and the HTTP
// boundary in front of it.
package upload

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"
)

// FallbackIdentifier namespaces uploads whose identifier sanitizes to nothing.
const FallbackIdentifier = "unknown-user"

const maxIdentifierLen = 50

// baseNameUnsafe matches file base-name characters that become "_".
var baseNameUnsafe = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeIdentifier normalizes a free-form caller identifier into a safe
// branch/path token matching [a-z0-9_-]{1,50}: lowercase first, then every
// rune outside that set becomes a single "-" ("Team A!" → "team-a-").
// Deterministic and total; an empty result yields FallbackIdentifier.
func SanitizeIdentifier(raw string) string {
	lowered := strings.ToLower(raw)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	id := b.String()
	if len(id) > maxIdentifierLen {
		id = id[:maxIdentifierLen]
	}
	if id == "" {
		return FallbackIdentifier
	}
	return id
}

// StorageKey locates one uploaded file inside the backing repository.
// Built once per upload, never mutated.
type StorageKey struct {
	Branch      string // "<prefix>/<sanitized identifier>"
	Path        string // "<unix_ms>-<base><ext>", flat in the branch root
	DisplayName string // sanitized base name plus the original extension
}

// BuildStorageKey derives the branch and file path for an upload. The path
// embeds the wall-clock millisecond timestamp, so two uploads at least one
// millisecond apart never collide; same-millisecond uploads for one
// identifier can, and that is an accepted limitation. The file extension is
// preserved byte-for-byte; any directory part of the name is stripped.
func BuildStorageKey(sanitizedID, fileName string, now time.Time, branchPrefix string) StorageKey {
	name := path.Base(fileName)
	if name == "." || name == "/" {
		name = ""
	}
	base, ext := splitName(name)
	display := baseNameUnsafe.ReplaceAllString(base, "_") + ext

	return StorageKey{
		Branch:      branchPrefix + "/" + sanitizedID,
		Path:        fmt.Sprintf("%d-%s", now.UnixMilli(), display),
		DisplayName: display,
	}
}

// splitName splits at the last "."; names without one get an empty extension.
func splitName(name string) (base, ext string) {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i], name[i:]
	}
	return name, ""
}
