// CLAUDE:SUMMARY Read-only chi HTTP API over persisted reports: latest, history listing, single history file.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes persisted reports as a read-only JSON API for external
// report consumers (charting scripts, dashboards).
type Server struct {
	dir        string
	historyDir string
	index      *Index
	logger     *slog.Logger
}

// NewServer creates a report Server over the output directory. index
// may be nil when no run index exists.
func NewServer(dir, historyDir string, index *Index, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if historyDir == "" {
		historyDir = filepath.Join(dir, "history")
	}
	return &Server{dir: dir, historyDir: historyDir, index: index, logger: logger}
}

// Router builds the chi router.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/api/latest", s.handleLatest)
	r.Get("/api/history", s.handleHistory)
	r.Get("/api/history/{name}", s.handleHistoryFile)
	r.Get("/api/runs", s.handleRuns)

	return r
}

// ListenAndServe runs the HTTP server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	s.logger.Info("report: serving", "addr", addr, "dir", s.dir)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	rep, err := ReadLatest(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			writeError(w, http.StatusNotFound, "no report yet")
			return
		}
		s.logger.Error("report: read latest failed", "error", err)
		writeError(w, http.StatusInternalServerError, "read failed")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.historyDir)
	if err != nil {
		if os.IsNotExist(err) {
			writeJSON(w, http.StatusOK, []string{})
			return
		}
		s.logger.Error("report: read history dir failed", "error", err)
		writeError(w, http.StatusInternalServerError, "read failed")
		return
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleHistoryFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	// History names are flat; anything else is a traversal attempt.
	if name != filepath.Base(name) || !strings.HasSuffix(name, ".json") {
		writeError(w, http.StatusBadRequest, "invalid name")
		return
	}

	data, err := os.ReadFile(filepath.Join(s.historyDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		s.logger.Error("report: read history file failed", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "read failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.index == nil {
		writeError(w, http.StatusNotFound, "run index disabled")
		return
	}
	runs, err := s.index.ListRuns(r.Context(), 50)
	if err != nil {
		s.logger.Error("report: list runs failed", "error", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	if runs == nil {
		runs = []RunRow{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
