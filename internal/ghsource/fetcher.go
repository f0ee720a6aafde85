package ghsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ziadkadry99/primer/internal/markdown"
)

// File is one markdown document retrieved from GitHub.
type File struct {
	Name        string // base file name, empty for single-file imports
	Path        string // path relative to the scanned folder
	Title       string
	Description string
	Content     string // markdown with any front matter removed
	Author      string
	Meta        markdown.FrontMatter
}

// FetchRaw downloads rawURL and returns the body. Non-2xx responses become a
// *FetchError and transport failures an *UpstreamError.
func (c *Client) FetchRaw(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &UpstreamError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			URL:        rawURL,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{URL: rawURL, Err: err}
	}
	return string(body), nil
}

// FetchFile retrieves a single markdown file given its github.com blob URL
// (or raw URL) and derives its metadata.
func (c *Client) FetchFile(ctx context.Context, fileURL string) (*File, error) {
	rawURL, err := RawURL(fileURL)
	if err != nil {
		return nil, fmt.Errorf("github fetch: %w", err)
	}

	log.WithField("url", rawURL).Debug("fetching markdown")

	f, err := c.fetchMarkdown(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("github fetch: %w", err)
	}
	f.Author = OwnerOf(fileURL)
	return f, nil
}

// fetchMarkdown downloads and analyses one document. Blank bodies are
// rejected with ErrEmptyContent.
func (c *Client) fetchMarkdown(ctx context.Context, rawURL string) (*File, error) {
	content, err := c.FetchRaw(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	meta, body := markdown.SplitFrontMatter(content)
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyContent
	}

	return &File{
		Title:       markdown.ExtractTitle(body),
		Description: markdown.ExtractDescription(body),
		Content:     body,
		Meta:        meta,
	}, nil
}
