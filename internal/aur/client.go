// Package aur talks to the Arch User Repository: a single availability probe
// per batch and RPC v5 info lookups.
package aur

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultBaseURL is the canonical AUR endpoint.
const DefaultBaseURL = "https://aur.archlinux.org"

type Client struct {
	base string
	http *http.Client
}

type options struct {
	verbose bool
	// writer controls where verbose HTTP logs are written (typically stderr)
	// so structured output on stdout stays clean and tests can capture logs.
	writer io.Writer
}

type Option func(*options)

func WithVerbose(enabled bool, writer io.Writer) Option {
	return func(o *options) {
		o.verbose = enabled
		o.writer = writer
	}
}

// loggingRoundTripper wraps an underlying transport and emits one line per
// request and response (including latency) when verbose logging is enabled.
type loggingRoundTripper struct {
	base http.RoundTripper
	w    io.Writer
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	if t.w != nil {
		_, _ = fmt.Fprintf(t.w, "[verbose] aur: %s %s\n", req.Method, req.URL.String())
	}
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start)
	if t.w != nil {
		if err != nil {
			_, _ = fmt.Fprintf(t.w, "[verbose] aur: error after %s: %v\n", dur.Truncate(time.Millisecond), err)
		} else {
			_, _ = fmt.Fprintf(t.w, "[verbose] aur: %d %s (%s)\n", resp.StatusCode, http.StatusText(resp.StatusCode), dur.Truncate(time.Millisecond))
		}
	}
	return resp, err
}

func New(base string, opts ...Option) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	base = strings.TrimRight(base, "/")

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

	return &Client{
		base: base,
		http: &http.Client{Transport: transport},
	}
}

// Probe reports whether the AUR looks reachable. It issues one GET against the
// base URL and classifies by status class: 2xx-3xx is up, anything else is
// down. Transport failures and unreadable responses also count as down, so a
// broken probe routes installs toward the mirror rather than silently trusting
// an unreachable primary. Invoke once per batch, not per package.
func (c *Client) Probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base, nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode < 400
}

// Exists queries the RPC v5 info endpoint and reports whether the package is
// known to the AUR: true iff the results array is non-empty.
func (c *Client) Exists(ctx context.Context, name string) (bool, error) {
	u := fmt.Sprintf("%s/rpc/?v=5&type=info&arg=%s", c.base, url.QueryEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("aur info query for %s: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("aur info query for %s: unexpected status %d", name, resp.StatusCode)
	}

	var body struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("aur info query for %s: decode response: %w", name, err)
	}
	return len(body.Results) > 0, nil
}

// PackageURL returns the clone URL of a package's build-recipe repository.
func (c *Client) PackageURL(name string) string {
	return c.base + "/" + name + ".git"
}
