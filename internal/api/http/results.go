package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/accesslog"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/auth"
	authmw "github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/auth/middleware"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/catalog"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/storage"
)

// GET /results-list -> ["test.2025.hsc.science.2024-2025.json", ...]
func ListResultsHandler(store storage.ResultStore, rec accesslog.Recorder, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := store.List(r.Context())
		record(r, rec, log, accesslog.Event{Type: accesslog.TypeList, Success: err == nil})
		if err != nil {
			log.Error("read results directory", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Unable to read results directory"})
			return
		}
		log.Debug("results listed", zap.Int("count", len(names)), zap.Strings("files", names))
		writeJSON(w, http.StatusOK, names)
	}
}

// POST /verify-password  { "password": "..." } -> { "success": bool, "token"?: "..." }
func VerifyPasswordHandler(gate *auth.Gate, authSvc *authmw.AuthService, rec accesslog.Recorder, log *zap.Logger) http.HandlerFunc {
	type out struct {
		Success bool   `json:"success"`
		Token   string `json:"token,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		err := gate.Check(req.Password)
		record(r, rec, log, accesslog.Event{Type: accesslog.TypeGate, Success: err == nil})
		if errors.Is(err, auth.ErrGateRejected) {
			log.Info("password verification failed")
			writeJSON(w, http.StatusOK, out{Success: false})
			return
		}
		tok, err := authSvc.IssueViewerToken()
		if err != nil {
			log.Error("issue viewer token", zap.Error(err))
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		log.Info("password verification succeeded")
		writeJSON(w, http.StatusOK, out{Success: true, Token: tok})
	}
}

// GET /results-file/{file} -> raw JSON array
func ResultFileHandler(store storage.ResultStore, rec accesslog.Recorder, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "file")
		rc, err := store.Open(r.Context(), name)
		ev := accesslog.Event{Type: accesslog.TypeFetch, File: name, Success: err == nil}
		record(r, rec, log, ev)
		switch {
		case errors.Is(err, catalog.ErrInvalidName):
			http.Error(w, "invalid file name", http.StatusBadRequest)
			return
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "not found", http.StatusNotFound)
			return
		case err != nil:
			log.Error("open result file", zap.String("file", name), zap.Error(err))
			http.Error(w, "store error", http.StatusInternalServerError)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/json")
		if _, err := io.Copy(w, rc); err != nil {
			log.Warn("copy result file", zap.String("file", name), zap.Error(err))
		}
	}
}

// GET /access-log?limit=50 -> newest access events first
func AccessLogHandler(reader accesslog.Reader, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := accesslog.DefaultLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				http.Error(w, "bad limit", http.StatusBadRequest)
				return
			}
			limit = n
		}
		events, err := reader.Recent(r.Context(), limit)
		if err != nil {
			log.Error("read access log", zap.Error(err))
			http.Error(w, "access log unavailable", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, events)
	}
}

// GET /result-view -> the viewer page
func ResultViewHandler(staticDir string) http.HandlerFunc {
	page := filepath.Join(staticDir, "result-view", "index.html")
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, page)
	}
}

func record(r *http.Request, rec accesslog.Recorder, log *zap.Logger, e accesslog.Event) {
	e.Viewer = authmw.ViewerFromContext(r.Context())
	e.RemoteAddr = r.RemoteAddr
	e.RequestID = middleware.GetReqID(r.Context())
	if err := rec.Record(r.Context(), e); err != nil {
		log.Warn("access log", zap.String("type", string(e.Type)), zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
