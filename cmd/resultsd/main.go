// Command resultsd serves the result viewer: static pages, the result file
// listing, the password gate and the result files themselves.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/accesslog"
	api "github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/api/http"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/auth"
	authmw "github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/auth/middleware"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/config"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/db"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/logging"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, false)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Result files ---
	store, err := storage.New(ctx, storage.Options{
		Driver: storage.Driver(cfg.ResultsDriver),
		Dir:    cfg.ResultsDir,
		S3: storage.S3Config{
			Bucket:   cfg.S3Bucket,
			Prefix:   cfg.S3Prefix,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
		},
	})
	if err != nil {
		logger.Fatal("results store", zap.Error(err))
	}
	resultsAt := cfg.S3Bucket + "/" + cfg.S3Prefix
	if fs, ok := store.(*storage.FSStore); ok {
		resultsAt = fs.Dir()
	}

	// --- Access log (optional) ---
	var (
		access    accesslog.Recorder = accesslog.Nop{}
		accessLog accesslog.Reader
		dbh       *sql.DB
	)
	if db.Driver(cfg.DBDriver) != db.DriverNone {
		openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		dbh, err = db.Open(openCtx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		cancel()
		if err != nil {
			logger.Fatal("db open failed", zap.String("driver", cfg.DBDriver), zap.Error(err))
		}
		defer dbh.Close()
		repo := accesslog.NewRepo(dbh, db.Driver(cfg.DBDriver))
		access = repo
		if cfg.ExposeAccessLog {
			accessLog = repo
		}
	}

	ready := func() error {
		if dbh == nil {
			return nil
		}
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return dbh.PingContext(pingCtx)
	}

	r := api.NewRouter(api.Deps{
		Store:        store,
		Gate:         auth.NewGate(cfg.GatePassword, cfg.GatePassHash),
		Auth:         authmw.NewAuthService(cfg.AuthHMACSecret, cfg.GateTokenTTL),
		Access:       access,
		AccessLog:    accessLog,
		Log:          logger,
		StaticDir:    cfg.StaticDir,
		RequireToken: cfg.RequireGateToken,
		CORSOrigins:  cfg.CORSOrigins,
		Ready:        ready,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server running at "+cfg.PublicURL(),
			zap.String("results", cfg.ResultsDriver),
			zap.String("results_at", resultsAt),
			zap.Bool("access_log_route", accessLog != nil),
			zap.String("db", cfg.DBDriver),
			zap.Bool("require_token", cfg.RequireGateToken))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
