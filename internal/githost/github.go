package githost

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
)

// Options configures a GitHub-backed Repository.
type Options struct {
	Token       string
	Owner       string
	Repo        string
	AuthorName  string
	AuthorEmail string

	// APIBaseURL overrides the API endpoint (GitHub Enterprise, tests).
	// Empty means api.github.com.
	APIBaseURL string

	// HTTPClient overrides the underlying client. Nil gets a 30s-timeout default.
	HTTPClient *http.Client
}

// GitHub implements Repository against the GitHub REST API
// (git refs + repository contents endpoints).
type GitHub struct {
	gh          *github.Client
	owner       string
	repo        string
	authorName  string
	authorEmail string
}

// NewGitHub creates a Repository backed by the GitHub API.
func NewGitHub(opts Options) (*GitHub, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	gh := github.NewClient(httpClient).WithAuthToken(opts.Token)
	if opts.APIBaseURL != "" {
		u, err := url.Parse(opts.APIBaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse api base url: %w", err)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		gh.BaseURL = u
	}

	return &GitHub{
		gh:          gh,
		owner:       opts.Owner,
		repo:        opts.Repo,
		authorName:  opts.AuthorName,
		authorEmail: opts.AuthorEmail,
	}, nil
}

// BranchHead returns the commit SHA the branch currently points at.
func (g *GitHub) BranchHead(ctx context.Context, branch string) (string, error) {
	ref, _, err := g.gh.Git.GetRef(ctx, g.owner, g.repo, "heads/"+branch)
	if err != nil {
		if statusCode(err) == http.StatusNotFound {
			return "", fmt.Errorf("branch %q: %w", branch, ErrBranchNotFound)
		}
		return "", fmt.Errorf("get ref %q: %w", branch, err)
	}
	return ref.GetObject().GetSHA(), nil
}

// CreateBranch creates a new branch pointing at fromSHA.
func (g *GitHub) CreateBranch(ctx context.Context, branch, fromSHA string) error {
	_, _, err := g.gh.Git.CreateRef(ctx, g.owner, g.repo, &github.Reference{
		Ref:    github.Ptr("refs/heads/" + branch),
		Object: &github.GitObject{SHA: github.Ptr(fromSHA)},
	})
	if err != nil {
		if isAlreadyExists(err) {
			return fmt.Errorf("branch %q: %w", branch, ErrBranchExists)
		}
		return fmt.Errorf("create ref %q: %w", branch, err)
	}
	return nil
}

// CommitFile creates the file as a single commit on the destination branch.
func (g *GitHub) CommitFile(ctx context.Context, in CommitInput) (*Commit, error) {
	res, _, err := g.gh.Repositories.CreateFile(ctx, g.owner, g.repo, in.Path, &github.RepositoryContentFileOptions{
		Message: github.Ptr(in.Message),
		Content: in.Content,
		Branch:  github.Ptr(in.Branch),
		Committer: &github.CommitAuthor{
			Name:  github.Ptr(g.authorName),
			Email: github.Ptr(g.authorEmail),
		},
	})
	if err != nil {
		// The contents API reports a missing destination branch as 404. A 404
		// caused by true misconfiguration (repo or base branch absent) fails
		// the subsequent base-branch read instead, so callers may always take
		// this as "create the branch and retry".
		if statusCode(err) == http.StatusNotFound {
			return nil, fmt.Errorf("branch %q: %w", in.Branch, ErrBranchNotFound)
		}
		return nil, fmt.Errorf("create file %q on %q: %w", in.Path, in.Branch, err)
	}

	return &Commit{
		SHA:        res.Commit.GetSHA(),
		Branch:     in.Branch,
		Path:       in.Path,
		HostingURL: res.Content.GetHTMLURL(),
	}, nil
}

// statusCode extracts the HTTP status from a go-github error, or 0.
func statusCode(err error) int {
	var gherr *github.ErrorResponse
	if errors.As(err, &gherr) && gherr.Response != nil {
		return gherr.Response.StatusCode
	}
	return 0
}

// isAlreadyExists reports whether err is GitHub's 422 "Reference already
// exists" validation failure. The API exposes no machine-readable code for
// it, so the wording check lives here and nowhere else.
func isAlreadyExists(err error) bool {
	var gherr *github.ErrorResponse
	if !errors.As(err, &gherr) || gherr.Response == nil {
		return false
	}
	return gherr.Response.StatusCode == http.StatusUnprocessableEntity &&
		strings.Contains(strings.ToLower(gherr.Message), "already exists")
}
