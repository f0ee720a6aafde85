package tutorials

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/primer/internal/ghsource"
	"github.com/ziadkadry99/primer/internal/markdown"
)

var log = logrus.WithField("package", "tutorials")

// Source is the part of the GitHub client an Importer needs.
type Source interface {
	FetchFile(ctx context.Context, fileURL string) (*ghsource.File, error)
	ScanFolder(ctx context.Context, folderURL string, progress ghsource.ProgressFunc) (*ghsource.ScanResult, error)
}

// ImportRequest asks for one GitHub URL to be imported.
type ImportRequest struct {
	GitHubURL string `json:"githubUrl"`
	// Progress, when set, is told about each file of a folder import.
	Progress ghsource.ProgressFunc `json:"-"`
}

var httpsPrefix = regexp.MustCompile(`^https://`)

// Validate checks the request shape before anything is fetched.
func (r ImportRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.GitHubURL,
			validation.Required.Error("GitHub URL is required"),
			validation.Match(httpsPrefix).Error("must be an https URL"),
		),
	)
}

// ImportResult describes a successful import.
type ImportResult struct {
	Tutorial *Tutorial
	Kind     ghsource.Kind
	// Warnings are per-file scan errors of a folder import.
	Warnings []string
}

// Importer turns GitHub URLs into stored tutorials.
type Importer struct {
	store  *Store
	source Source
}

// NewImporter creates an importer that fetches through source.
func NewImporter(store *Store, source Source) *Importer {
	return &Importer{store: store, source: source}
}

// Import classifies the URL and runs the file or folder import.
func (im *Importer) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	req.GitHubURL = strings.TrimSpace(req.GitHubURL)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	kind, err := ghsource.Classify(req.GitHubURL)
	if err != nil {
		return nil, err
	}

	logger := log.WithFields(logrus.Fields{"url": req.GitHubURL, "kind": kind})
	logger.Info("importing tutorial")

	var res *ImportResult
	switch kind {
	case ghsource.KindFolder:
		res, err = im.importFolder(ctx, req)
	default:
		res, err = im.importFile(ctx, req.GitHubURL)
	}
	if err != nil {
		logger.WithError(err).Warn("import failed")
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"id":       res.Tutorial.ID,
		"title":    res.Tutorial.Title,
		"warnings": len(res.Warnings),
	}).Info("tutorial imported")
	return res, nil
}

func (im *Importer) importFile(ctx context.Context, fileURL string) (*ImportResult, error) {
	existing, err := im.store.FindByURL(ctx, fileURL)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateURL
	}

	f, err := im.source.FetchFile(ctx, fileURL)
	if err != nil {
		return nil, fmt.Errorf("import failed: %w", err)
	}

	t := &Tutorial{
		Title:       f.Title,
		Description: f.Description,
		Body:        FlatBody{Content: f.Content},
		GitHubURL:   fileURL,
		Author:      f.Author,
		Category:    f.Meta.Category,
		ReadTime:    markdown.EstimateReadTime(f.Content),
	}
	if d, ok := ParseDifficulty(f.Meta.Difficulty); ok {
		t.Difficulty = d
	}

	if err := im.store.Create(ctx, t); err != nil {
		return nil, err
	}
	return &ImportResult{Tutorial: t, Kind: ghsource.KindFile}, nil
}

func (im *Importer) importFolder(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	scan, err := im.source.ScanFolder(ctx, req.GitHubURL, req.Progress)
	if err != nil {
		return nil, fmt.Errorf("import failed: %w", err)
	}
	if len(scan.Files) == 0 {
		return nil, fmt.Errorf("import failed: %w: %s", ghsource.ErrNoMarkdownFound, strings.Join(scan.Errors, "; "))
	}

	chapters := OrganizeChapters(scan.Files)
	title := ghsource.FolderTitle(req.GitHubURL)
	author := scan.Location.Owner

	existing, err := im.store.FindByTitleAuthor(ctx, title, author)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateTutorial, title)
	}

	total := 0
	for _, ch := range chapters {
		total += ch.ReadTime
	}

	t := &Tutorial{
		Title:       title,
		Description: markdown.ExtractDescription(chapters[0].Content),
		Body:        ChapteredBody{Chapters: chapters},
		GitHubURL:   req.GitHubURL,
		Author:      author,
		ReadTime:    total,
	}
	applyFolderMeta(t, scan.Files)

	if err := im.store.Create(ctx, t); err != nil {
		return nil, err
	}
	return &ImportResult{Tutorial: t, Kind: ghsource.KindFolder, Warnings: scan.Errors}, nil
}

// applyFolderMeta takes category and difficulty from the first file in scan
// order that declares them.
func applyFolderMeta(t *Tutorial, files []ghsource.File) {
	for _, f := range files {
		if t.Category == "" && f.Meta.Category != "" {
			t.Category = f.Meta.Category
		}
		if t.Difficulty == "" {
			if d, ok := ParseDifficulty(f.Meta.Difficulty); ok {
				t.Difficulty = d
			}
		}
	}
}
