// Package mirror knows about the GitHub mirror of the AUR: one repository
// (archlinux/aur by default) with one branch per package.
//
// The API client here is advisory only. The mirror pipeline has no catalog
// query, so without it a missing package and a dead network both surface as a
// clone failure; a branch-existence preflight lets the job report "not found
// upstream" precisely. The clone itself never depends on the API being up.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/go-github/v81/github"
	"golang.org/x/oauth2"
)

// DefaultRemote is the canonical branch-per-package mirror.
const DefaultRemote = "https://github.com/archlinux/aur"

type Client struct {
	API   *github.Client
	Owner string
	Repo  string
}

type options struct {
	verbose bool
	writer  io.Writer
}

type Option func(*options)

func WithVerbose(enabled bool, writer io.Writer) Option {
	return func(o *options) {
		o.verbose = enabled
		o.writer = writer
	}
}

type loggingRoundTripper struct {
	base http.RoundTripper
	w    io.Writer
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	if t.w != nil {
		_, _ = fmt.Fprintf(t.w, "[verbose] mirror api: %s %s\n", req.Method, req.URL.String())
	}
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start)
	if t.w != nil {
		if err != nil {
			_, _ = fmt.Fprintf(t.w, "[verbose] mirror api: error after %s: %v\n", dur.Truncate(time.Millisecond), err)
		} else {
			_, _ = fmt.Fprintf(t.w, "[verbose] mirror api: %d %s (%s)\n", resp.StatusCode, http.StatusText(resp.StatusCode), dur.Truncate(time.Millisecond))
		}
	}
	return resp, err
}

// New builds a mirror API client for the given remote (a github.com
// owner/repo URL). token may be empty; unauthenticated requests work at the
// low volumes a preflight needs.
func New(remote, token string, opts ...Option) (*Client, error) {
	owner, repo, err := ParseRemote(remote)
	if err != nil {
		return nil, err
	}

	o := &options{}
	for _, apply := range opts {
		if apply != nil {
			apply(o)
		}
	}
	if o.verbose && o.writer == nil {
		o.writer = os.Stderr
	}

	transport := http.DefaultTransport
	if o.verbose {
		transport = &loggingRoundTripper{base: transport, w: o.writer}
	}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		transport = &oauth2.Transport{Source: ts, Base: transport}
	}

	return &Client{
		API:   github.NewClient(&http.Client{Transport: transport}),
		Owner: owner,
		Repo:  repo,
	}, nil
}

// BranchExists reports whether the mirror carries a branch for the package.
// A confirmed 404 is (false, nil); any other failure is an error, which
// callers treat as "unknown, attempt the clone anyway".
func (c *Client) BranchExists(ctx context.Context, name string) (bool, error) {
	_, _, err := c.API.Repositories.GetBranch(ctx, c.Owner, c.Repo, name, 0)
	if err == nil {
		return true, nil
	}
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
		return false, nil
	}
	return false, fmt.Errorf("mirror branch lookup for %s: %w", name, err)
}

// ParseRemote extracts owner and repo from a github.com remote URL.
// Accepted forms: https://github.com/owner/repo, github.com/owner/repo,
// with or without a trailing .git.
func ParseRemote(remote string) (owner, repo string, err error) {
	raw := strings.TrimSpace(remote)
	if raw == "" {
		return "", "", errors.New("empty mirror remote")
	}
	if strings.HasPrefix(raw, "github.com/") || strings.HasPrefix(raw, "www.github.com/") {
		raw = "https://" + raw
	}
	u, parseErr := url.Parse(raw)
	if parseErr != nil {
		return "", "", fmt.Errorf("invalid mirror remote %q: %w", remote, parseErr)
	}
	host := strings.ToLower(u.Hostname())
	if host == "www.github.com" {
		host = "github.com"
	}
	if host != "github.com" {
		return "", "", fmt.Errorf("mirror remote %q is not a github.com repository", remote)
	}
	parts := strings.FieldsFunc(strings.Trim(u.Path, "/"), func(r rune) bool { return r == '/' })
	if len(parts) != 2 {
		return "", "", fmt.Errorf("mirror remote %q is not an owner/repo URL", remote)
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}

// CloneURL returns the git remote for the mirror repository.
func (c *Client) CloneURL() string {
	return fmt.Sprintf("https://github.com/%s/%s.git", c.Owner, c.Repo)
}
