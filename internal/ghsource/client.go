// Package ghsource retrieves tutorial markdown from GitHub: single files via
// the raw-content host and whole folders via the repository contents API.
package ghsource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v81/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

var log = logrus.WithField("package", "ghsource")

// DefaultTimeout bounds every request when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Options configures a Client.
type Options struct {
	// Token is an optional GitHub token. Without one, requests are
	// unauthenticated and subject to the anonymous rate limit.
	Token string
	// APIURL overrides https://api.github.com/ (tests, GitHub Enterprise).
	APIURL string
	// Timeout applies to each HTTP request.
	Timeout time.Duration
	// Include and Exclude are doublestar patterns applied to entry names
	// and folder-relative paths during a folder scan.
	Include []string
	Exclude []string
	// Transport replaces the default HTTP transport.
	Transport http.RoundTripper
}

// Client talks to GitHub. Requests are issued one at a time by the caller's
// goroutine; a Client holds no per-import state.
type Client struct {
	http    *http.Client
	gh      *github.Client
	include []string
	exclude []string
}

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := &http.Client{Timeout: timeout, Transport: opts.Transport}
	if opts.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}))
		httpClient.Timeout = timeout
	}

	gh := github.NewClient(httpClient)
	if opts.APIURL != "" {
		base, err := url.Parse(ensureTrailingSlash(opts.APIURL))
		if err != nil {
			return nil, fmt.Errorf("parsing github api url %q: %w", opts.APIURL, err)
		}
		gh.BaseURL = base
	}

	include := opts.Include
	if len(include) == 0 {
		include = []string{"*.md"}
	}
	for _, p := range append(append([]string{}, include...), opts.Exclude...) {
		if !validPattern(p) {
			return nil, fmt.Errorf("invalid file pattern %q", p)
		}
	}

	log.WithFields(logrus.Fields{
		"api":           gh.BaseURL.String(),
		"authenticated": opts.Token != "",
		"timeout":       timeout,
	}).Debug("github client ready")

	return &Client{
		http:    httpClient,
		gh:      gh,
		include: include,
		exclude: opts.Exclude,
	}, nil
}

func ensureTrailingSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}

// Viewer returns the login the client's token belongs to. It fails for an
// unauthenticated client or a rejected token.
func (c *Client) Viewer(ctx context.Context) (string, error) {
	user, resp, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		if resp != nil && resp.StatusCode >= 300 {
			return "", &FetchError{Status: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode), URL: "/user"}
		}
		return "", &UpstreamError{URL: "/user", Err: err}
	}
	return user.GetLogin(), nil
}
