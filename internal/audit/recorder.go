package audit

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/primer/internal/tutorials"
)

var log = logrus.WithField("package", "audit")

// Recorder writes tutorial changes to the audit store. A failed write is
// logged and never surfaces to the caller.
type Recorder struct {
	store *Store
}

var _ tutorials.Journal = (*Recorder)(nil)

// NewRecorder creates a Recorder over store.
func NewRecorder(store *Store) *Recorder {
	return &Recorder{store: store}
}

func (r *Recorder) Imported(ctx context.Context, actor string, res *tutorials.ImportResult) {
	t := res.Tutorial
	summary := fmt.Sprintf("Imported %q", t.Title)
	if n := t.TotalChapters; n > 0 {
		summary = fmt.Sprintf("Imported %q with %d chapters", t.Title, n)
	}
	r.log(ctx, Entry{
		Actor:      actor,
		Action:     ActionImported,
		TutorialID: t.ID,
		GitHubURL:  t.GitHubURL,
		Summary:    summary,
		Warnings:   res.Warnings,
	})
}

func (r *Recorder) ImportFailed(ctx context.Context, actor, githubURL string, err error) {
	r.log(ctx, Entry{
		Actor:     actor,
		Action:    ActionImportFailed,
		GitHubURL: githubURL,
		Summary:   err.Error(),
	})
}

func (r *Recorder) Deleted(ctx context.Context, actor string, t *tutorials.Summary) {
	r.log(ctx, Entry{
		Actor:      actor,
		Action:     ActionDeleted,
		TutorialID: t.ID,
		Summary:    fmt.Sprintf("Deleted %q", t.Title),
	})
}

func (r *Recorder) Seeded(ctx context.Context, actor string, t *tutorials.Tutorial) {
	r.log(ctx, Entry{
		Actor:      actor,
		Action:     ActionSeeded,
		TutorialID: t.ID,
		GitHubURL:  t.GitHubURL,
		Summary:    fmt.Sprintf("Seeded sample tutorial %q", t.Title),
	})
}

func (r *Recorder) log(ctx context.Context, e Entry) {
	// The request may already be cancelled; the record is still wanted.
	if err := r.store.Log(context.WithoutCancel(ctx), e); err != nil {
		log.WithError(err).WithField("action", e.Action).Error("recording audit entry")
	}
}
