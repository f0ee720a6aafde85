package tutorials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ziadkadry99/primer/internal/ghsource"
)

// DefaultListTimeout bounds the public list query when none is configured.
const DefaultListTimeout = 5 * time.Second

// RouteOptions configures RegisterRoutes.
type RouteOptions struct {
	// ListTimeout is the deadline after which GET /api/tutorials answers
	// with an empty, degraded list.
	ListTimeout time.Duration
	// AdminAuth guards the /api/admin routes. Nil leaves them open.
	AdminAuth func(http.Handler) http.Handler
	// Journal records admin changes. Nil disables recording.
	Journal Journal
}

// Journal records changes made to the library. Implementations must not
// fail the action being recorded.
type Journal interface {
	Imported(ctx context.Context, actor string, res *ImportResult)
	ImportFailed(ctx context.Context, actor, githubURL string, err error)
	Deleted(ctx context.Context, actor string, t *Summary)
	Seeded(ctx context.Context, actor string, t *Tutorial)
}

type nopJournal struct{}

func (nopJournal) Imported(context.Context, string, *ImportResult) {}
func (nopJournal) ImportFailed(context.Context, string, string, error) {}
func (nopJournal) Deleted(context.Context, string, *Summary) {}
func (nopJournal) Seeded(context.Context, string, *Tutorial) {}

// actorOf names the admin behind a request.
func actorOf(r *http.Request) string {
	if user, _, ok := r.BasicAuth(); ok && user != "" {
		return user
	}
	return "anonymous"
}

// RegisterRoutes mounts the tutorial API routes.
func RegisterRoutes(r chi.Router, store *Store, importer *Importer, opts RouteOptions) {
	if opts.ListTimeout <= 0 {
		opts.ListTimeout = DefaultListTimeout
	}
	if opts.Journal == nil {
		opts.Journal = nopJournal{}
	}

	r.Route("/api/tutorials", func(r chi.Router) {
		r.Get("/", handleList(store, opts.ListTimeout))
		r.Get("/{id}", handleGet(store))
	})

	r.Route("/api/admin", func(r chi.Router) {
		if opts.AdminAuth != nil {
			r.Use(opts.AdminAuth)
		}
		r.Post("/add", handleImport(importer, opts.Journal))
		r.Delete("/{id}", handleDelete(store, opts.Journal))
	})
}

type listResponse struct {
	Tutorials []Summary `json:"tutorials"`
	Degraded  bool      `json:"degraded,omitempty"`
}

func handleList(store *Store, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, degraded, err := store.ListOrEmpty(r.Context(), timeout)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to fetch tutorials")
			log.WithError(err).Error("listing tutorials")
			return
		}
		writeJSON(w, http.StatusOK, listResponse{Tutorials: summaries, Degraded: degraded})
	}
}

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := store.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, StatusFor(err), messageFor(err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"tutorial": t})
	}
}

type tutorialRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type importedTutorial struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	TotalChapters *int   `json:"totalChapters,omitempty"`
	TotalReadTime *int   `json:"totalReadTime,omitempty"`
}

type chapterBrief struct {
	Title    string `json:"title"`
	ReadTime int    `json:"readTime"`
}

type importResponse struct {
	Message  string           `json:"message"`
	Tutorial importedTutorial `json:"tutorial"`
	Chapters []chapterBrief   `json:"chapters,omitempty"`
	Errors   []string         `json:"errors,omitempty"`
}

// NewImportResponse builds the JSON body reported for a successful import.
func NewImportResponse(res *ImportResult) any {
	t := res.Tutorial
	out := importResponse{
		Message: "Tutorial added successfully",
		Tutorial: importedTutorial{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
		},
	}
	if res.Kind != ghsource.KindFolder {
		return out
	}

	chapters := t.Chapters()
	count, readTime := len(chapters), t.ReadTime
	out.Message = fmt.Sprintf("Tutorial %q created successfully with %d chapters", t.Title, count)
	out.Tutorial.TotalChapters = &count
	out.Tutorial.TotalReadTime = &readTime
	out.Chapters = make([]chapterBrief, 0, len(chapters))
	for _, ch := range chapters {
		out.Chapters = append(out.Chapters, chapterBrief{Title: ch.Title, ReadTime: ch.ReadTime})
	}
	out.Errors = res.Warnings
	return out
}

func handleImport(importer *Importer, journal Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ImportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		res, err := importer.Import(r.Context(), req)
		if err != nil {
			journal.ImportFailed(r.Context(), actorOf(r), req.GitHubURL, err)
			writeError(w, StatusFor(err), messageFor(err))
			return
		}
		journal.Imported(r.Context(), actorOf(r), res)
		writeJSON(w, http.StatusOK, NewImportResponse(res))
	}
}

func handleDelete(store *Store, journal Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleted, err := store.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, StatusFor(err), messageFor(err))
			return
		}
		journal.Deleted(r.Context(), actorOf(r), deleted)
		writeJSON(w, http.StatusOK, map[string]any{
			"message":         "Tutorial deleted successfully",
			"deletedTutorial": tutorialRef{ID: deleted.ID, Title: deleted.Title},
		})
	}
}

// StatusFor maps an error from this package or ghsource onto an HTTP status.
func StatusFor(err error) int {
	var verrs validation.Errors
	var fetchErr *ghsource.FetchError
	var upstream *ghsource.UpstreamError

	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateURL), errors.Is(err, ErrDuplicateTutorial):
		return http.StatusConflict
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	case errors.Is(err, ghsource.ErrInvalidURL),
		errors.Is(err, ghsource.ErrEmptyContent),
		errors.Is(err, ghsource.ErrNoMarkdownFound),
		errors.As(err, &fetchErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, ErrInvalidID):
		return "Invalid tutorial ID"
	case errors.Is(err, ErrNotFound):
		return "Tutorial not found"
	case StatusFor(err) == http.StatusInternalServerError:
		log.WithError(err).Error("request failed")
		return "Internal server error"
	default:
		return err.Error()
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
