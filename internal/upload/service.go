package upload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gitbin/service/internal/cdn"
	"github.com/gitbin/service/internal/githost"
	"github.com/gitbin/service/internal/metrics"
)

// Classification sentinels for failed uploads. The handler maps both onto an
// internal server error; they differ in what the operator should do about
// them: ErrConfiguration means the service points at a base branch it cannot
// read, ErrRemote carries the hosting API's reason for a single failed call.
var (
	ErrConfiguration = errors.New("storage configuration error")
	ErrRemote        = errors.New("remote storage error")
)

// Request carries one validated file to store.
type Request struct {
	OwnerIdentifier string // free-form; sanitized before any remote use
	FileName        string
	Content         []byte
	MimeType        string
	Size            int64
}

// Result is the terminal artifact of a successful upload.
type Result struct {
	Path       string
	Branch     string
	HostingURL string
	CDNURL     string
	MimeType   string
	Size       int64
}

// Options fixes the orchestration knobs at construction. Zero fields fall
// back to the documented defaults.
type Options struct {
	// BaseBranch is the branch new storage branches fork from. Default "main".
	BaseBranch string
	// BranchPrefix namespaces storage branches. Default "files".
	BranchPrefix string
	// Now supplies the clock for storage keys. Default time.Now.
	Now func() time.Time
}

// Service sequences uploads against the backing repository. It is stateless:
// concurrent uploads share nothing in-process, and branch-creation races are
// settled by the remote's own atomicity.
type Service struct {
	repo     githost.Repository
	resolver *cdn.Resolver
	metrics  *metrics.Metrics
	opts     Options
}

func NewService(repo githost.Repository, resolver *cdn.Resolver, m *metrics.Metrics, opts Options) *Service {
	if opts.BaseBranch == "" {
		opts.BaseBranch = "main"
	}
	if opts.BranchPrefix == "" {
		opts.BranchPrefix = "files"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{repo: repo, resolver: resolver, metrics: m, opts: opts}
}

// Upload commits the file to its per-identifier branch, creating the branch
// from the base branch when the optimistic first write reports it missing.
// The write is retried exactly once, and only for that one failure: anything
// else from a write endpoint must not be blindly retried, since the remote
// may already have applied it.
func (s *Service) Upload(ctx context.Context, req Request) (*Result, error) {
	id := SanitizeIdentifier(req.OwnerIdentifier)
	key := BuildStorageKey(id, req.FileName, s.opts.Now(), s.opts.BranchPrefix)

	in := githost.CommitInput{
		Branch:  key.Branch,
		Path:    key.Path,
		Content: req.Content,
		Message: fmt.Sprintf("Upload %s", key.DisplayName),
	}

	commit, err := s.repo.CommitFile(ctx, in)
	switch {
	case err == nil:
	case errors.Is(err, githost.ErrBranchNotFound):
		commit, err = s.createBranchAndRetry(ctx, in)
		if err != nil {
			s.metrics.ObserveUpload(classify(err), req.Size)
			return nil, err
		}
	default:
		s.metrics.ObserveUpload(metrics.OutcomeRemote, req.Size)
		return nil, fmt.Errorf("%w: write %q: %w", ErrRemote, key.Path, err)
	}

	s.metrics.ObserveUpload(metrics.OutcomeOK, req.Size)
	return &Result{
		Path:       commit.Path,
		Branch:     commit.Branch,
		HostingURL: commit.HostingURL,
		CDNURL:     s.resolver.FileURL(commit.Branch, commit.Path),
		MimeType:   req.MimeType,
		Size:       req.Size,
	}, nil
}

// createBranchAndRetry handles the one locally recoverable failure: the
// destination branch does not exist yet. It reads the base branch head,
// forks the destination branch there and retries the write once. Losing the
// creation race to a concurrent upload is fine, the branch exists either way.
func (s *Service) createBranchAndRetry(ctx context.Context, in githost.CommitInput) (*githost.Commit, error) {
	log.Info().
		Str("branch", in.Branch).
		Str("base", s.opts.BaseBranch).
		Msg("destination branch missing, creating from base")

	baseSHA, err := s.repo.BranchHead(ctx, s.opts.BaseBranch)
	if err != nil {
		// An unreadable base branch is misconfiguration, not a race.
		return nil, fmt.Errorf("%w: read base branch %q: %w", ErrConfiguration, s.opts.BaseBranch, err)
	}

	switch err := s.repo.CreateBranch(ctx, in.Branch, baseSHA); {
	case err == nil:
		s.metrics.BranchCreated()
	case errors.Is(err, githost.ErrBranchExists):
		log.Debug().Str("branch", in.Branch).Msg("branch created concurrently")
	default:
		return nil, fmt.Errorf("%w: create branch %q: %w", ErrRemote, in.Branch, err)
	}

	s.metrics.WriteRetried()
	commit, err := s.repo.CommitFile(ctx, in)
	if err != nil {
		// Surface the retry's reason, it is more specific than the first.
		return nil, fmt.Errorf("%w: retry write %q on %q: %w", ErrRemote, in.Path, in.Branch, err)
	}
	return commit, nil
}

func classify(err error) string {
	if errors.Is(err, ErrConfiguration) {
		return metrics.OutcomeConfig
	}
	return metrics.OutcomeRemote
}
