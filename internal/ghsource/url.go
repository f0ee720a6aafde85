package ghsource

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Kind says which import path a GitHub URL takes.
type Kind int

const (
	KindUnknown Kind = iota
	KindFile
	KindFolder
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindFolder:
		return "folder"
	default:
		return "unknown"
	}
}

// Location identifies a directory inside a GitHub repository at a branch.
type Location struct {
	Owner  string
	Repo   string
	Branch string
	Path   string
}

var (
	treeURLPattern = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)/tree/([^/]+)/(.+)$`)
	repoPattern    = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)`)
)

const (
	githubHost = "github.com"
	rawHost    = "raw.githubusercontent.com"
)

// Classify decides between a folder import (a /tree/ URL) and a single file
// import (a /blob/ URL).
func Classify(url string) (Kind, error) {
	switch {
	case strings.Contains(url, "/tree/"):
		return KindFolder, nil
	case strings.Contains(url, "/blob/"):
		return KindFile, nil
	default:
		return KindUnknown, fmt.Errorf("%w: %s is neither a file (/blob/) nor a folder (/tree/) URL", ErrInvalidURL, url)
	}
}

// ParseTreeURL splits https://github.com/{owner}/{repo}/tree/{branch}/{path}.
func ParseTreeURL(url string) (Location, error) {
	m := treeURLPattern.FindStringSubmatch(url)
	if m == nil {
		return Location{}, fmt.Errorf("%w: expected https://github.com/owner/repo/tree/branch/path, got %s", ErrInvalidURL, url)
	}
	return Location{Owner: m[1], Repo: m[2], Branch: m[3], Path: m[4]}, nil
}

// RawURL maps a github.com blob URL to its raw.githubusercontent.com
// equivalent. Raw URLs are returned as is.
func RawURL(url string) (string, error) {
	if strings.Contains(url, githubHost) && strings.Contains(url, "/blob/") {
		raw := strings.Replace(url, githubHost, rawHost, 1)
		return strings.Replace(raw, "/blob/", "/", 1), nil
	}
	if strings.Contains(url, rawHost) {
		return url, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidURL, url)
}

// OwnerOf returns the account that owns the repository in url, or "" when
// url does not name a github.com repository.
func OwnerOf(url string) string {
	m := repoPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// FolderTitle derives a display title from a folder URL: the last path
// segment with hyphens turned into spaces and every word capitalised.
func FolderTitle(url string) string {
	name := "Tutorial"
	if loc, err := ParseTreeURL(url); err == nil {
		name = loc.Repo
		segments := strings.Split(loc.Path, "/")
		for i := len(segments) - 1; i >= 0; i-- {
			if segments[i] != "" {
				name = segments[i]
				break
			}
		}
	}
	return capitalizeWords(strings.ReplaceAll(name, "-", " "))
}

func capitalizeWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWord := false
	for _, r := range s {
		word := isWordRune(r)
		if word && !inWord {
			r = unicode.ToUpper(r)
		}
		inWord = word
		b.WriteRune(r)
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
