// Package cdn constructs the publicly resolvable URLs for committed files.
package cdn

import (
	"net/url"
	"strings"
)

// Resolver maps a committed branch + path onto the CDN that serves the
// backing repository. It is pure string assembly: malformed inputs produce a
// malformed but well-typed URL, validation happens upstream.
type Resolver struct {
	base  string
	owner string
	repo  string
}

// NewResolver creates a Resolver. base is the CDN root, e.g.
// "https://cdn.jsdelivr.net/gh" for the jsDelivr GitHub endpoint.
func NewResolver(base, owner, repo string) *Resolver {
	return &Resolver{base: strings.TrimRight(base, "/"), owner: owner, repo: repo}
}

// FileURL returns the CDN URL for the given branch and committed path.
// Only the path is percent-encoded; storage keys are flat, so it never
// contains "/". For branch "files/team-a-" and path "1700000000000-photo.png":
// "https://cdn.jsdelivr.net/gh/acme/uploads@files/team-a-/1700000000000-photo.png"
func (r *Resolver) FileURL(branch, path string) string {
	return r.base + "/" + r.owner + "/" + r.repo + "@" + branch + "/" + url.PathEscape(path)
}
