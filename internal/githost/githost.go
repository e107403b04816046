// Package githost defines the interface for the remote Git hosting API that
// durably stores uploaded files. The remote repository is the system of
// record; nothing is persisted locally. Swap implementations by changing
// the concrete type injected at startup.
package githost

import (
	"context"
	"errors"
)

// Sentinel errors returned by Repository implementations. Callers branch on
// these with errors.Is; everything else is an opaque remote failure.
var (
	// ErrBranchNotFound indicates the named branch does not exist. On reads
	// this is a normal outcome; on writes it is the one failure an upload
	// can recover from locally.
	ErrBranchNotFound = errors.New("branch not found")

	// ErrBranchExists indicates the branch was already created, usually by
	// a concurrent request. Callers treat it as success.
	ErrBranchExists = errors.New("branch already exists")
)

// CommitInput describes a single file write recorded as one commit.
type CommitInput struct {
	Branch  string
	Path    string
	Content []byte
	Message string
}

// Commit is the result of a successful file write.
type Commit struct {
	SHA        string
	Branch     string
	Path       string
	HostingURL string // human-facing URL, taken verbatim from the hosting API
}

// Repository wraps the three remote operations an upload needs.
type Repository interface {
	// BranchHead returns the commit SHA at the tip of branch, or
	// ErrBranchNotFound.
	BranchHead(ctx context.Context, branch string) (string, error)

	// CreateBranch points a new branch at fromSHA. Losing a creation race
	// surfaces as ErrBranchExists.
	CreateBranch(ctx context.Context, branch, fromSHA string) error

	// CommitFile creates a file at the given path on branch. A missing
	// destination branch is reported as ErrBranchNotFound; all other
	// failures (auth, quota, validation, network) are unrecoverable here.
	CommitFile(ctx context.Context, in CommitInput) (*Commit, error)
}
