package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/cragmap/internal/metrics"
)

// Server serves the generated map data for local preview.
type Server struct {
	router    chi.Router
	artifacts map[string]string // public name -> file path
	metrics   *metrics.Metrics
	log       *slog.Logger
	apiKey    string
}

// NewServer creates and configures the preview server. An empty apiKey
// disables authentication.
func NewServer(artifacts map[string]string, apiKey string, m *metrics.Metrics, log *slog.Logger) *Server {
	s := &Server{
		artifacts: artifacts,
		metrics:   m,
		log:       log,
		apiKey:    apiKey,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log, s.metrics))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Group(func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(AuthMiddleware(s.apiKey, s.log))
		}
		r.Get("/api/artifacts", s.handleListArtifacts)
		r.Get("/api/artifacts/{name}", s.handleGetArtifact)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

type artifactInfo struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

func (s *Server) handleListArtifacts(w http.ResponseWriter, r *http.Request) {
	list := make([]artifactInfo, 0, len(s.artifacts))
	for name, path := range s.artifacts {
		st, err := os.Stat(path)
		if err != nil {
			continue
		}
		list = append(list, artifactInfo{Name: name, Size: st.Size(), Modified: st.ModTime().UTC()})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"artifacts": list})
}

func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	path, ok := s.artifacts[name]
	if !ok {
		jsonError(w, "unknown artifact", http.StatusNotFound)
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			jsonError(w, "artifact not generated yet", http.StatusNotFound)
			return
		}
		s.log.Error("read artifact", "name", name, "error", err)
		jsonError(w, "read failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType(path))
	w.Write(data)
}

func contentType(path string) string {
	switch filepath.Ext(path) {
	case ".json":
		return "application/json; charset=utf-8"
	case ".ts":
		return "text/typescript; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
