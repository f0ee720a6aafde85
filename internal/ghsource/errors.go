package ghsource

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL is returned for URLs that are not a recognised GitHub
	// file or folder shape.
	ErrInvalidURL = errors.New("invalid GitHub URL")

	// ErrEmptyContent is returned when a fetched markdown body is blank.
	ErrEmptyContent = errors.New("the markdown file appears to be empty")

	// ErrNoMarkdownFound is returned when a folder scan yields nothing.
	ErrNoMarkdownFound = errors.New("no markdown files found in the specified directory")
)

// FetchError reports a non-2xx response from GitHub.
type FetchError struct {
	Status     int
	StatusText string
	URL        string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %d %s", e.URL, e.Status, e.StatusText)
}

// UpstreamError reports a transport failure talking to GitHub: DNS, refused
// connections, timeouts, truncated bodies.
type UpstreamError struct {
	URL string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("requesting %s: %v", e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
