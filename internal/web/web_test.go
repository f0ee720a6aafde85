package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/primer/internal/db"
	"github.com/ziadkadry99/primer/internal/markdown"
	"github.com/ziadkadry99/primer/internal/tutorials"
)

func setupUI(t *testing.T) (http.Handler, *tutorials.Store) {
	t.Helper()
	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	store := tutorials.NewStore(database)
	ui, err := New(store, markdown.NewRenderer(false), time.Second)
	require.NoError(t, err)

	r := chi.NewRouter()
	ui.RegisterRoutes(r, middleware.BasicAuth("primer", map[string]string{"admin": "secret"}))
	return r, store
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func createChaptered(t *testing.T, store *tutorials.Store, orders ...int) *tutorials.Tutorial {
	t.Helper()
	var chapters []tutorials.Chapter
	for _, o := range orders {
		title := "Chapter " + string(rune('A'+o-1))
		chapters = append(chapters, tutorials.Chapter{
			Title:    title,
			Content:  "# " + title + "\n\nText of " + title,
			Order:    o,
			ReadTime: 1,
		})
	}
	tut := &tutorials.Tutorial{
		Title:     "Course",
		GitHubURL: "https://github.com/octo/guides/tree/main/course",
		Author:    "octo",
		Body:      tutorials.ChapteredBody{Chapters: chapters},
	}
	require.NoError(t, store.Create(context.Background(), tut))
	return tut
}

func TestIndex(t *testing.T) {
	r, store := setupUI(t)

	w := get(r, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No tutorials yet.")

	_, _, err := tutorials.Seed(context.Background(), store)
	require.NoError(t, err)

	w = get(r, "/")
	assert.Contains(t, w.Body.String(), "Getting Started with First Principles")
	assert.Contains(t, w.Body.String(), "5 min read")
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestFlatTutorialPage(t *testing.T) {
	r, store := setupUI(t)
	tut, _, err := tutorials.Seed(context.Background(), store)
	require.NoError(t, err)

	w := get(r, "/tutorial/"+tut.ID)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<h2 id="what-are-first-principles">What Are First Principles?</h2>`)
	assert.Contains(t, body, "View on GitHub")
}

func TestChapteredTutorialPage(t *testing.T) {
	r, store := setupUI(t)
	tut := createChaptered(t, store, 1, 2, 3)

	w := get(r, "/tutorial/"+tut.ID)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "/tutorial/"+tut.ID+"/chapter/1")
	assert.Contains(t, body, "/tutorial/"+tut.ID+"/chapter/3")
	assert.Contains(t, body, "Chapter B")
}

func TestChapterNavigation(t *testing.T) {
	r, store := setupUI(t)
	tut := createChaptered(t, store, 1, 2, 3)
	base := "/tutorial/" + tut.ID + "/chapter/"

	first := get(r, base+"1").Body.String()
	assert.NotContains(t, first, "Previous")
	assert.Contains(t, first, base+"2")
	assert.Contains(t, first, "Chapter 1 of 3")

	middle := get(r, base+"2").Body.String()
	assert.Contains(t, middle, base+"1")
	assert.Contains(t, middle, base+"3")
	assert.Contains(t, middle, "Text of Chapter B")

	last := get(r, base+"3").Body.String()
	assert.Contains(t, last, "Previous")
	assert.NotContains(t, last, "Next &rarr;")
}

func TestChapterNavigationToleratesGaps(t *testing.T) {
	r, store := setupUI(t)
	tut := createChaptered(t, store, 1, 2, 4)
	base := "/tutorial/" + tut.ID + "/chapter/"

	w := get(r, base+"2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), base+"4")

	assert.Equal(t, http.StatusNotFound, get(r, base+"3").Code)
}

func TestChapterErrors(t *testing.T) {
	r, store := setupUI(t)
	tut := createChaptered(t, store, 1)

	assert.Equal(t, http.StatusBadRequest, get(r, "/tutorial/"+tut.ID+"/chapter/zero").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/tutorial/"+tut.ID+"/chapter/0").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/tutorial/"+tut.ID+"/chapter/9").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/tutorial/"+uuid.New().String()).Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/tutorial/bogus").Code)
}

func TestAdminPageRequiresAuth(t *testing.T) {
	r, _ := setupUI(t)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/admin").Code)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.SetBasicAuth("admin", "secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "import-form")
}

func TestStylesheet(t *testing.T) {
	r, _ := setupUI(t)
	w := get(r, "/static/style.css")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/css; charset=utf-8", w.Header().Get("Content-Type"))
}
