package tutorials

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/primer/internal/ghsource/ghsourcetest"
)

func setupRouter(t *testing.T) (chi.Router, *Store, *ghsourcetest.Server) {
	t.Helper()
	im, store, gh := setupImporter(t)
	r := chi.NewRouter()
	RegisterRoutes(r, store, im, RouteOptions{
		ListTimeout: time.Second,
		AdminAuth:   middleware.BasicAuth("primer", map[string]string{"admin": "secret"}),
	})
	return r, store, gh
}

func do(t *testing.T, r http.Handler, method, path, body string, auth bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.SetBasicAuth("admin", "secret")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHandleImportFile(t *testing.T) {
	r, _, gh := setupRouter(t)
	gh.Files["hello.md"] = "# Hello\n\nWorld"

	w := do(t, r, http.MethodPost, "/api/admin/add", `{"githubUrl":"`+gh.BlobURL("hello.md")+`"}`, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "Tutorial added successfully", body["message"])
	tut := body["tutorial"].(map[string]any)
	assert.Equal(t, "Hello", tut["title"])
	assert.Equal(t, "World", tut["description"])
	assert.NotEmpty(t, tut["id"])
	assert.NotContains(t, tut, "totalChapters")

	w = do(t, r, http.MethodPost, "/api/admin/add", `{"githubUrl":"`+gh.BlobURL("hello.md")+`"}`, true)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, ErrDuplicateURL.Error(), decode(t, w)["error"])
}

func TestHandleImportFolder(t *testing.T) {
	r, _, gh := setupRouter(t)
	gh.Dirs["getting-started"] = []string{"2-setup.md", "1-welcome.md", "notes/"}
	gh.Dirs["getting-started/notes"] = []string{"x.md"}
	gh.Files["getting-started/1-welcome.md"] = "# Welcome\n\nHi there."
	gh.Files["getting-started/2-setup.md"] = "# Setup\n\nInstall things."
	gh.Status["getting-started/notes/x.md"] = http.StatusNotFound

	w := do(t, r, http.MethodPost, "/api/admin/add", `{"githubUrl":"`+gh.TreeURL("getting-started")+`"}`, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, `Tutorial "Getting Started" created successfully with 2 chapters`, body["message"])

	tut := body["tutorial"].(map[string]any)
	assert.Equal(t, "Getting Started", tut["title"])
	assert.Equal(t, "Hi there.", tut["description"])
	assert.EqualValues(t, 2, tut["totalChapters"])
	assert.EqualValues(t, 2, tut["totalReadTime"])

	chapters := body["chapters"].([]any)
	require.Len(t, chapters, 2)
	assert.Equal(t, "Welcome", chapters[0].(map[string]any)["title"])

	errs := body["errors"].([]any)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "/notes/x.md")
}

func TestHandleImportErrors(t *testing.T) {
	r, _, gh := setupRouter(t)
	gh.Dirs["empty"] = []string{}
	gh.Files["blank.md"] = " "

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"missing url", `{}`, http.StatusBadRequest},
		{"not a file or folder", `{"githubUrl":"https://github.com/octo/guides"}`, http.StatusBadRequest},
		{"missing file", `{"githubUrl":"` + gh.BlobURL("nope.md") + `"}`, http.StatusBadRequest},
		{"blank file", `{"githubUrl":"` + gh.BlobURL("blank.md") + `"}`, http.StatusBadRequest},
		{"empty folder", `{"githubUrl":"` + gh.TreeURL("empty") + `"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/admin/add", tt.body, true)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.NotEmpty(t, decode(t, w)["error"])
		})
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := do(t, r, http.MethodPost, "/api/admin/add", `{"githubUrl":"x"}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodDelete, "/api/admin/"+uuid.New().String(), "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleDelete(t *testing.T) {
	r, store, _ := setupRouter(t)
	tut := flatTutorial("https://github.com/octo/guides/blob/main/hello.md")
	require.NoError(t, store.Create(context.Background(), tut))

	w := do(t, r, http.MethodDelete, "/api/admin/"+tut.ID, "", true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Tutorial deleted successfully", body["message"])
	deleted := body["deletedTutorial"].(map[string]any)
	assert.Equal(t, tut.ID, deleted["id"])
	assert.Equal(t, "Hello", deleted["title"])

	w = do(t, r, http.MethodDelete, "/api/admin/"+tut.ID, "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Tutorial not found", decode(t, w)["error"])

	w = do(t, r, http.MethodDelete, "/api/admin/garbage", "", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid tutorial ID", decode(t, w)["error"])
}

func TestHandleList(t *testing.T) {
	r, store, _ := setupRouter(t)

	w := do(t, r, http.MethodGet, "/api/tutorials", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"tutorials":[]}`, strings.TrimSpace(w.Body.String()))

	require.NoError(t, store.Create(context.Background(), flatTutorial("https://github.com/a/b/blob/main/1.md")))
	second := flatTutorial("https://github.com/a/b/blob/main/2.md")
	second.Title = "Second"
	require.NoError(t, store.Create(context.Background(), second))

	w = do(t, r, http.MethodGet, "/api/tutorials", "", false)
	list := decode(t, w)["tutorials"].([]any)
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[0].(map[string]any)["title"])
	assert.NotContains(t, list[0], "content")
}

func TestHandleGet(t *testing.T) {
	r, store, _ := setupRouter(t)
	tut := &Tutorial{
		Title:     "Docs",
		GitHubURL: "https://github.com/octo/guides/tree/main/docs",
		Body: ChapteredBody{Chapters: []Chapter{
			{Title: "One", Content: "# One", Order: 1, ReadTime: 1},
			{Title: "Two", Content: "# Two", Order: 2, ReadTime: 1},
		}},
	}
	require.NoError(t, store.Create(context.Background(), tut))

	w := do(t, r, http.MethodGet, "/api/tutorials/"+tut.ID, "", false)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)["tutorial"].(map[string]any)
	assert.Equal(t, "chaptered", got["kind"])
	assert.Equal(t, "https://github.com/octo/guides/tree/main/docs", got["githubUrl"])
	assert.Len(t, got["chapters"], 2)
	assert.NotContains(t, got, "content")

	w = do(t, r, http.MethodGet, "/api/tutorials/"+uuid.New().String(), "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/tutorials/nope", "", false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type recordingJournal struct {
	nopJournal
	events []string
}

func (j *recordingJournal) Imported(_ context.Context, actor string, res *ImportResult) {
	j.events = append(j.events, "imported:"+actor+":"+res.Tutorial.Title)
}

func (j *recordingJournal) ImportFailed(_ context.Context, actor, githubURL string, _ error) {
	j.events = append(j.events, "failed:"+actor+":"+githubURL)
}

func (j *recordingJournal) Deleted(_ context.Context, actor string, t *Summary) {
	j.events = append(j.events, "deleted:"+actor+":"+t.Title)
}

func TestAdminActionsAreJournaled(t *testing.T) {
	im, store, gh := setupImporter(t)
	gh.Files["hello.md"] = "# Hello\n\nWorld"

	journal := &recordingJournal{}
	r := chi.NewRouter()
	RegisterRoutes(r, store, im, RouteOptions{
		AdminAuth: middleware.BasicAuth("primer", map[string]string{"admin": "secret"}),
		Journal:   journal,
	})

	w := do(t, r, http.MethodPost, "/api/admin/add", `{"githubUrl":"`+gh.BlobURL("hello.md")+`"}`, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	id := decode(t, w)["tutorial"].(map[string]any)["id"].(string)

	missing := gh.BlobURL("missing.md")
	w = do(t, r, http.MethodPost, "/api/admin/add", `{"githubUrl":"`+missing+`"}`, true)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodDelete, "/api/admin/"+id, "", true)
	require.Equal(t, http.StatusOK, w.Code)

	// Unauthenticated requests never reach the handlers.
	do(t, r, http.MethodDelete, "/api/admin/"+id, "", false)

	assert.Equal(t, []string{
		"imported:admin:Hello",
		"failed:admin:" + missing,
		"deleted:admin:Hello",
	}, journal.events)
}
