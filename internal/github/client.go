package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/dnscache"

	"github.com/woozymasta/relprune"
)

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL = "https://api.github.com"

	// DefaultPerPage is the largest page size the releases endpoint accepts.
	DefaultPerPage = 100

	defaultUserAgent = "relprune"

	// error bodies are only kept for the message
	maxErrorBody = 4 << 10
)

// Client talks to the GitHub REST API with a bearer token.
type Client struct {
	http      *http.Client
	baseURL   string
	token     string
	userAgent string
	perPage   int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (GitHub Enterprise, tests).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithPerPage sets the page size used for listing.
func WithPerPage(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.perPage = n
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a Client. Pass an empty token for anonymous access
// (listing public repositories only).
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		http:      newHTTPClient(),
		baseURL:   DefaultBaseURL,
		token:     token,
		userAgent: defaultUserAgent,
		perPage:   DefaultPerPage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newHTTPClient builds a client whose dialer resolves through a DNS cache.
// A run is short, so cached entries are never refreshed.
func newHTTPClient() *http.Client {
	resolver := &dnscache.Resolver{}
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	return &http.Client{
		Timeout: time.Minute,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				host, port, err := net.SplitHostPort(addr)
				if err != nil {
					return nil, err
				}
				ips, err := resolver.LookupHost(ctx, host)
				if err != nil {
					return nil, err
				}
				for _, ip := range ips {
					conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
					if err == nil {
						return conn, nil
					}
				}
				return nil, fmt.Errorf("failed to dial any resolved IP for %s", host)
			},
			MaxIdleConns:          20,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// Repository returns the collaborator bound to owner/name.
func (c *Client) Repository(owner, name string) *Repository {
	return &Repository{client: c, owner: owner, name: name}
}

// do sends a request and decodes a JSON response into v when v is not nil.
func (c *Client) do(ctx context.Context, method, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return checkStatus(resp.StatusCode, u, []byte(strings.TrimSpace(string(body))))
	}

	if v == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", u, err)
	}
	return nil
}

// Repository is one owner/name pair on a Client.
type Repository struct {
	client *Client
	owner  string
	name   string
}

// String returns "owner/name".
func (r *Repository) String() string {
	return r.owner + "/" + r.name
}

func (r *Repository) url(parts ...string) string {
	return r.client.baseURL + "/repos/" + url.PathEscape(r.owner) + "/" + url.PathEscape(r.name) + "/" + strings.Join(parts, "/")
}

// FetchAllReleases lists every release, page by page, until a short page.
// Releases are returned in the order the API lists them.
func (r *Repository) FetchAllReleases(ctx context.Context) ([]relprune.Release, error) {
	var out []relprune.Release

	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("per_page", strconv.Itoa(r.client.perPage))
		q.Set("page", strconv.Itoa(page))

		var data []releaseResponse
		if err := r.client.do(ctx, http.MethodGet, r.url("releases")+"?"+q.Encode(), &data); err != nil {
			return nil, fmt.Errorf("listing releases of %s (page %d): %w", r, page, err)
		}

		for _, d := range data {
			out = append(out, d.release())
		}

		if len(data) < r.client.perPage {
			return out, nil
		}
	}
}

// DeleteRelease deletes the release with the given id. The tag stays.
func (r *Repository) DeleteRelease(ctx context.Context, id int64) error {
	u := r.url("releases", strconv.FormatInt(id, 10))
	if err := r.client.do(ctx, http.MethodDelete, u, nil); err != nil {
		return fmt.Errorf("deleting release %d of %s: %w", id, r, err)
	}
	return nil
}

// DeleteTag deletes the git tag ref. Slashes in the tag name are kept as
// path separators, every segment is escaped on its own.
func (r *Repository) DeleteTag(ctx context.Context, tag string) error {
	segs := strings.Split(tag, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}

	u := r.url("git", "refs", "tags", strings.Join(segs, "/"))
	if err := r.client.do(ctx, http.MethodDelete, u, nil); err != nil {
		return fmt.Errorf("deleting tag %s of %s: %w", tag, r, err)
	}
	return nil
}

// ParseRepository splits "owner/name".
func ParseRepository(s string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("repository must be owner/name, got %q", s)
	}
	return owner, name, nil
}
