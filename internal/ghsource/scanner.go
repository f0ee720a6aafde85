package ghsource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/go-github/v81/github"
	"github.com/sirupsen/logrus"
)

// ScanResult is everything a folder scan produced. Files and Errors are in
// traversal order.
type ScanResult struct {
	Location   Location
	Files      []File
	Errors     []string
	TotalFound int
}

// ProgressFunc is called once per markdown entry, before it is fetched.
type ProgressFunc func(relPath string)

// frame is one pending directory on the traversal stack.
type frame struct {
	apiPath string // repository path passed to the contents API
	relPath string // path below the scanned folder, "" for the root
}

// ScanFolder walks the folder named by a GitHub tree URL depth-first and
// fetches every markdown file under it.
//
// A file or sub-directory that cannot be read is recorded in
// ScanResult.Errors and the walk continues. Failing to list the folder
// itself aborts the scan. A scan that finds no files and records no errors
// returns ErrNoMarkdownFound.
func (c *Client) ScanFolder(ctx context.Context, folderURL string, progress ProgressFunc) (*ScanResult, error) {
	loc, err := ParseTreeURL(folderURL)
	if err != nil {
		return nil, fmt.Errorf("github folder scan: %w", err)
	}

	logger := log.WithFields(logrus.Fields{
		"owner":  loc.Owner,
		"repo":   loc.Repo,
		"branch": loc.Branch,
		"path":   loc.Path,
	})
	logger.Info("scanning folder")

	result := &ScanResult{Location: loc}
	opts := &github.RepositoryContentGetOptions{Ref: loc.Branch}

	stack := []frame{{apiPath: strings.TrimSuffix(loc.Path, "/")}}
	root := true
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("github folder scan: %w", err)
		}

		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := c.listDirectory(ctx, loc, current.apiPath, opts)
		if err != nil {
			if root {
				return nil, fmt.Errorf("github folder scan: %w", err)
			}
			result.Errors = append(result.Errors, fmt.Sprintf("Directory %s: %v", current.relPath, err))
			logger.WithError(err).WithField("dir", current.relPath).Warn("skipping unreadable directory")
			continue
		}
		root = false

		var subdirs []frame
		for _, entry := range entries {
			name := entry.GetName()
			rel := current.relPath + "/" + name

			switch entry.GetType() {
			case "dir":
				if c.excluded(rel) {
					continue
				}
				subdirs = append(subdirs, frame{
					apiPath: path.Join(current.apiPath, name),
					relPath: rel,
				})

			case "file":
				if !c.wanted(rel) {
					continue
				}
				if progress != nil {
					progress(strings.TrimPrefix(rel, "/"))
				}

				f, err := c.fetchEntry(ctx, entry)
				if err != nil {
					result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rel, err))
					logger.WithError(err).WithField("file", rel).Warn("skipping unreadable file")
					continue
				}
				f.Name = name
				f.Path = strings.TrimPrefix(rel, "/")
				f.Author = loc.Owner
				result.Files = append(result.Files, *f)
				result.TotalFound++
			}
		}

		// Push in reverse so the first listed sub-directory is visited next.
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	logger.WithFields(logrus.Fields{
		"files":  len(result.Files),
		"errors": len(result.Errors),
	}).Info("folder scan complete")

	if len(result.Files) == 0 && len(result.Errors) == 0 {
		return nil, fmt.Errorf("github folder scan: %w", ErrNoMarkdownFound)
	}
	return result, nil
}

// listDirectory lists one directory through the contents API.
func (c *Client) listDirectory(ctx context.Context, loc Location, dir string, opts *github.RepositoryContentGetOptions) ([]*github.RepositoryContent, error) {
	file, entries, resp, err := c.gh.Repositories.GetContents(ctx, loc.Owner, loc.Repo, dir, opts)
	if err != nil {
		if resp != nil && resp.Response != nil && resp.StatusCode >= http.StatusMultipleChoices {
			return nil, &FetchError{
				Status:     resp.StatusCode,
				StatusText: http.StatusText(resp.StatusCode),
				URL:        resp.Request.URL.String(),
			}
		}
		return nil, &UpstreamError{URL: fmt.Sprintf("repos/%s/%s/contents/%s", loc.Owner, loc.Repo, dir), Err: err}
	}
	if entries == nil && file != nil {
		return nil, fmt.Errorf("%s is a file, not a directory", file.GetPath())
	}
	return entries, nil
}

func (c *Client) fetchEntry(ctx context.Context, entry *github.RepositoryContent) (*File, error) {
	downloadURL := entry.GetDownloadURL()
	if downloadURL == "" {
		return nil, errors.New("entry has no download URL")
	}
	return c.fetchMarkdown(ctx, downloadURL)
}

// wanted reports whether a file entry passes the include and exclude
// patterns. Patterns match either the base name or the folder-relative path.
func (c *Client) wanted(rel string) bool {
	return matchAny(c.include, rel) && !matchAny(c.exclude, rel)
}

func (c *Client) excluded(rel string) bool {
	return matchAny(c.exclude, rel)
}

func matchAny(patterns []string, rel string) bool {
	rel = strings.TrimPrefix(rel, "/")
	base := path.Base(rel)
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, base); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func validPattern(p string) bool {
	return doublestar.ValidatePattern(p)
}
