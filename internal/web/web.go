// Package web serves the server-rendered reading UI and the admin page.
package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/primer/internal/markdown"
	"github.com/ziadkadry99/primer/internal/tutorials"
)

var log = logrus.WithField("package", "web")

// UI renders tutorials as HTML pages.
type UI struct {
	store       *tutorials.Store
	renderer    *markdown.Renderer
	listTimeout time.Duration
	pages       map[string]*template.Template
}

// New parses the page templates.
func New(store *tutorials.Store, renderer *markdown.Renderer, listTimeout time.Duration) (*UI, error) {
	if listTimeout <= 0 {
		listTimeout = tutorials.DefaultListTimeout
	}

	pages := map[string]string{
		"index":    indexTemplate,
		"tutorial": tutorialTemplate,
		"chapter":  chapterTemplate,
		"admin":    adminTemplate,
		"error":    errorTemplate,
	}
	u := &UI{
		store:       store,
		renderer:    renderer,
		listTimeout: listTimeout,
		pages:       make(map[string]*template.Template, len(pages)),
	}
	for name, src := range pages {
		tmpl, err := template.New(name).Parse(layoutTemplate)
		if err == nil {
			_, err = tmpl.Parse(src)
		}
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		u.pages[name] = tmpl
	}
	return u, nil
}

// RegisterRoutes mounts the reading UI. adminAuth guards /admin and may be
// nil.
func (u *UI) RegisterRoutes(r chi.Router, adminAuth func(http.Handler) http.Handler) {
	r.Get("/", u.handleIndex)
	r.Get("/tutorial/{id}", u.handleTutorial)
	r.Get("/tutorial/{id}/chapter/{n}", u.handleChapter)
	r.Get("/static/style.css", handleCSS)

	r.Group(func(r chi.Router) {
		if adminAuth != nil {
			r.Use(adminAuth)
		}
		r.Get("/admin", u.handleAdmin)
	})
}

type listPage struct {
	Tutorials []tutorials.Summary
	Degraded  bool
}

func (u *UI) list(w http.ResponseWriter, r *http.Request, page string) {
	summaries, degraded, err := u.store.ListOrEmpty(r.Context(), u.listTimeout)
	if err != nil {
		log.WithError(err).Error("listing tutorials")
		u.renderError(w, http.StatusInternalServerError, "Failed to fetch tutorials.")
		return
	}
	u.render(w, http.StatusOK, page, listPage{Tutorials: summaries, Degraded: degraded})
}

func (u *UI) handleIndex(w http.ResponseWriter, r *http.Request) {
	u.list(w, r, "index")
}

func (u *UI) handleAdmin(w http.ResponseWriter, r *http.Request) {
	u.list(w, r, "admin")
}

type tutorialPage struct {
	Tutorial *tutorials.Tutorial
	Chapters []tutorials.Chapter
	Body     template.HTML
}

func (u *UI) handleTutorial(w http.ResponseWriter, r *http.Request) {
	t, ok := u.load(w, r)
	if !ok {
		return
	}

	page := tutorialPage{Tutorial: t}
	switch t.Kind() {
	case tutorials.KindChaptered:
		page.Chapters = t.Chapters()
	case tutorials.KindFlat:
		body, err := u.renderer.Render(t.Content())
		if err != nil {
			log.WithError(err).WithField("id", t.ID).Error("rendering tutorial")
			u.renderError(w, http.StatusInternalServerError, "Failed to render tutorial.")
			return
		}
		page.Body = template.HTML(body)
	}
	u.render(w, http.StatusOK, "tutorial", page)
}

type chapterPage struct {
	Tutorial *tutorials.Tutorial
	Chapter  tutorials.Chapter
	Body     template.HTML
	Position int
	Total    int
	Prev     int
	Next     int
}

func (u *UI) handleChapter(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 1 {
		u.renderError(w, http.StatusBadRequest, "Invalid chapter number.")
		return
	}

	t, ok := u.load(w, r)
	if !ok {
		return
	}

	nav, found := t.ChapterAt(n)
	if !found {
		u.renderError(w, http.StatusNotFound, "Chapter not found.")
		return
	}

	body, err := u.renderer.Render(nav.Chapter.Content)
	if err != nil {
		log.WithError(err).WithField("id", t.ID).Error("rendering chapter")
		u.renderError(w, http.StatusInternalServerError, "Failed to render chapter.")
		return
	}

	u.render(w, http.StatusOK, "chapter", chapterPage{
		Tutorial: t,
		Chapter:  nav.Chapter,
		Body:     template.HTML(body),
		Position: nav.Index + 1,
		Total:    len(t.Chapters()),
		Prev:     nav.Prev,
		Next:     nav.Next,
	})
}

// load fetches the tutorial named in the URL, writing an error page when it
// cannot.
func (u *UI) load(w http.ResponseWriter, r *http.Request) (*tutorials.Tutorial, bool) {
	t, err := u.store.GetByID(r.Context(), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		return t, true
	case errors.Is(err, tutorials.ErrInvalidID):
		u.renderError(w, http.StatusBadRequest, "Invalid tutorial ID.")
	case errors.Is(err, tutorials.ErrNotFound):
		u.renderError(w, http.StatusNotFound, "Tutorial not found.")
	default:
		log.WithError(err).Error("loading tutorial")
		u.renderError(w, http.StatusInternalServerError, "Failed to load tutorial.")
	}
	return nil, false
}

type errorPage struct {
	Status  int
	Message string
}

func (u *UI) renderError(w http.ResponseWriter, status int, msg string) {
	u.render(w, status, "error", errorPage{Status: status, Message: msg})
}

func (u *UI) render(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := u.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		log.WithError(err).WithField("page", page).Error("executing template")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func handleCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write([]byte(cssContent))
}
