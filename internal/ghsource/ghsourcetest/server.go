// Package ghsourcetest provides an in-process stand-in for the GitHub
// contents API and raw-content host.
package ghsourcetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

const (
	Owner  = "octo"
	Repo   = "guides"
	Branch = "main"
)

// Server serves a fake repository Owner/Repo at Branch.
//
// Dirs maps a repository directory to its entries in listing order; entries
// ending in "/" are sub-directories. Files maps repository paths to content.
// Status forces an HTTP status for a directory listing or file download.
// Token is the only bearer token /user accepts.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	Dirs     map[string][]string
	Files    map[string]string
	Status   map[string]int
	Token    string
	requests []string
}

// NewServer starts a fake GitHub and closes it when the test ends.
func NewServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{
		Dirs:   make(map[string][]string),
		Files:  make(map[string]string),
		Status: make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// APIURL is the base URL to hand to ghsource.Options.APIURL.
func (s *Server) APIURL() string {
	return s.URL + "/"
}

// Transport routes every request, whatever its host, to the fake server so
// that github.com and raw.githubusercontent.com URLs resolve locally.
func (s *Server) Transport() http.RoundTripper {
	target, _ := url.Parse(s.URL)
	return rewriteTransport{target: target}
}

// TreeURL is the github.com folder URL for dir.
func (s *Server) TreeURL(dir string) string {
	return "https://github.com/" + Owner + "/" + Repo + "/tree/" + Branch + "/" + dir
}

// BlobURL is the github.com file URL for path.
func (s *Server) BlobURL(path string) string {
	return "https://github.com/" + Owner + "/" + Repo + "/blob/" + Branch + "/" + path
}

// Requests returns the request paths served so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.URL.Path)
	s.mu.Unlock()

	contentsPrefix := "/repos/" + Owner + "/" + Repo + "/contents/"
	rawPrefix := "/" + Owner + "/" + Repo + "/" + Branch + "/"

	switch {
	case r.URL.Path == "/user":
		if s.Token == "" || r.Header.Get("Authorization") != "Bearer "+s.Token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"login": Owner, "id": 1})

	case strings.HasPrefix(r.URL.Path, contentsPrefix):
		dir := strings.Trim(strings.TrimPrefix(r.URL.Path, contentsPrefix), "/")
		if r.URL.Query().Get("ref") != Branch {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "No commit found for the ref"})
			return
		}
		if code, ok := s.Status[dir]; ok {
			writeJSON(w, code, map[string]string{"message": http.StatusText(code)})
			return
		}
		names, ok := s.Dirs[dir]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
			return
		}

		entries := make([]map[string]string, 0, len(names))
		for _, name := range names {
			if strings.HasSuffix(name, "/") {
				name = strings.TrimSuffix(name, "/")
				entries = append(entries, map[string]string{
					"name": name,
					"path": dir + "/" + name,
					"type": "dir",
				})
				continue
			}
			p := dir + "/" + name
			entries = append(entries, map[string]string{
				"name":         name,
				"path":         p,
				"type":         "file",
				"download_url": s.URL + rawPrefix + p,
			})
		}
		writeJSON(w, http.StatusOK, entries)

	case strings.HasPrefix(r.URL.Path, rawPrefix):
		p := strings.TrimPrefix(r.URL.Path, rawPrefix)
		if code, ok := s.Status[p]; ok {
			w.WriteHeader(code)
			return
		}
		content, ok := s.Files[p]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(content))

	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = rt.target.Scheme
	out.URL.Host = rt.target.Host
	out.Host = ""
	return http.DefaultTransport.RoundTrip(out)
}
