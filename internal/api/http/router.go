package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/accesslog"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/auth"
	authmw "github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/auth/middleware"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/storage"
)

// Deps are the collaborators of the file server.
type Deps struct {
	Store     storage.ResultStore
	Gate      *auth.Gate
	Auth      *authmw.AuthService
	Access    accesslog.Recorder
	// AccessLog serves GET /access-log to token holders; nil leaves the
	// route unmounted.
	AccessLog accesslog.Reader
	Log       *zap.Logger
	StaticDir string
	// RequireToken makes /results-file demand the token issued by the gate.
	RequireToken bool
	CORSOrigins  []string
	// Ready reports readiness; nil means always ready.
	Ready func() error
}

func NewRouter(d Deps) chi.Router {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Access == nil {
		d.Access = accesslog.Nop{}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, RequestLogger(d.Log), middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Post("/verify-password", VerifyPasswordHandler(d.Gate, d.Auth, d.Access, d.Log))
	r.With(authmw.JWTMiddleware(d.Auth, false)).
		Get("/results-list", ListResultsHandler(d.Store, d.Access, d.Log))
	r.With(authmw.JWTMiddleware(d.Auth, d.RequireToken)).
		Get("/results-file/{file}", ResultFileHandler(d.Store, d.Access, d.Log))
	if d.AccessLog != nil {
		r.With(authmw.JWTMiddleware(d.Auth, true)).
			Get("/access-log", AccessLogHandler(d.AccessLog, d.Log))
	}
	r.Get("/result-view", ResultViewHandler(d.StaticDir))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Ready != nil {
			if err := d.Ready(); err != nil {
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(200)
	})

	if d.StaticDir != "" {
		// nested paths under the results directory never bypass the file route
		r.Handle("/results-file/*", http.NotFoundHandler())
		r.Handle("/*", http.FileServer(http.Dir(d.StaticDir)))
	}
	return r
}
