package site

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"braces.dev/errtrace"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.wayfind.dev/docsite/internal/html"
)

// PageRenderer renders site pages into HTML.
type PageRenderer interface {
	RenderDocument(io.Writer, *html.DocumentInfo) error
	RenderSectionIndex(io.Writer, *html.SectionIndex) error
	RenderNotFound(io.Writer, *html.NotFoundInfo) error
	StaticHandler() http.Handler
}

var _ PageRenderer = (*html.Renderer)(nil)

// Server serves the documentation site during development.
//
// The server never renders from a half-loaded site:
// reloads build a complete new [Index] and swap it in atomically.
type Server struct {
	Log      *log.Logger  // required
	Renderer PageRenderer // required

	// Metrics records server metrics if set.
	Metrics *Metrics

	signal LoadSignal
	index  atomic.Pointer[Index]

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// Signal exposes the loading signal
// that feeds the busy indicator.
func (s *Server) Signal() *LoadSignal {
	return &s.signal
}

// SetIndex installs a new site snapshot.
func (s *Server) SetIndex(ix *Index) {
	s.index.Store(ix)
}

// Reload rebuilds the site via the given function,
// keeping the loading signal raised for the duration
// and telling connected clients to refresh afterwards.
//
// If the rebuild fails, the previous snapshot stays in place.
func (s *Server) Reload(load func() (*Index, error)) error {
	s.signal.Begin(Route{Path: "*"})
	s.broadcast(reloadMessage{Busy: true})
	defer func() {
		s.signal.End()
	}()

	ix, err := load()
	if err != nil {
		s.broadcast(reloadMessage{})
		return errtrace.Wrap(err)
	}

	s.SetIndex(ix)
	s.Metrics.reload()
	s.broadcast(reloadMessage{Reload: true})
	return nil
}

// Handler builds the HTTP handler for the site.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/api/status", s.status)
	r.Get("/api/reload", s.reloadSocket)
	r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	r.Handle("/_/*", http.StripPrefix("/_", s.Renderer.StaticHandler()))
	r.Get("/*", s.page)
	r.NotFound(s.notFound)

	return r
}

// page resolves a URL to a document or section and renders it.
// The loading signal is raised for the duration of the load.
func (s *Server) page(w http.ResponseWriter, req *http.Request) {
	ix := s.index.Load()
	if ix == nil {
		http.Error(w, "site is still loading", http.StatusServiceUnavailable)
		return
	}

	path := strings.Trim(req.URL.Path, "/")

	s.signal.Begin(Route{Path: path})
	defer s.signal.End()

	start := time.Now()
	defer s.Metrics.observeRender(start)

	var buff bytes.Buffer
	if info, ok := ix.Page(path); ok {
		if err := s.Renderer.RenderDocument(&buff, info); err != nil {
			s.Log.Printf("render %q: %v", path, err)
			http.Error(w, "render error", http.StatusInternalServerError)
			return
		}
		s.Metrics.pageView("document")
	} else if idx, ok := ix.Section(path); ok {
		if err := s.Renderer.RenderSectionIndex(&buff, idx); err != nil {
			s.Log.Printf("render %q: %v", path, err)
			http.Error(w, "render error", http.StatusInternalServerError)
			return
		}
		s.Metrics.pageView("section")
	} else {
		s.notFound(w, req)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buff.Bytes())
}

// notFound renders the fallback page
// for URLs that match no document.
func (s *Server) notFound(w http.ResponseWriter, req *http.Request) {
	s.Metrics.notFound()

	var buff bytes.Buffer
	if err := s.Renderer.RenderNotFound(&buff, &html.NotFoundInfo{Path: req.URL.Path}); err != nil {
		s.Log.Printf("render not-found: %v", err)
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(buff.Bytes())
}

// status reports whether a load is in flight.
// The busy indicator is a pure function of the loading signal.
func (s *Server) status(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Busy bool `json:"busy"`
	}{Busy: s.signal.Busy()})
}

// reloadMessage is pushed to live-reload clients.
type reloadMessage struct {
	Busy   bool `json:"busy"`
	Reload bool `json:"reload,omitempty"`
}

// reloadSocket upgrades the connection and keeps it registered
// for reload broadcasts until the client goes away.
func (s *Server) reloadSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.Log.Printf("reload socket: %v", err)
		return
	}

	s.mu.Lock()
	if s.clients == nil {
		s.clients = make(map[*websocket.Conn]struct{})
	}
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	// Drain the connection; clients never send meaningful data.
	go func() {
		defer s.dropClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) dropClient(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	_ = conn.Close()
}

func (s *Server) broadcast(msg reloadMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for conn := range s.clients {
		if err := conn.WriteJSON(msg); err != nil {
			delete(s.clients, conn)
			_ = conn.Close()
		}
	}
}
