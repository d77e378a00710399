// Package health serves liveness and readiness probes over plain HTTP next
// to the gRPC endpoint.
package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/userbase/internal/logging"
	"github.com/gorilla/mux"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

const pingTimeout = 2 * time.Second

// NewRouter routes GET /health (process is up) and GET /ready (database
// answers a ping).
func NewRouter(db Pinger, l logging.Logger) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")
	r.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			l.Warn(ctx, "readiness check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintln(w, "OK")
	}).Methods("GET")
	return r
}

type Server struct {
	address         string
	shutdownTimeout time.Duration
	handler         http.Handler
	logger          logging.Logger
}

func NewServer(address string, shutdownTimeout time.Duration, db Pinger, l logging.Logger) *Server {
	l = l.With("module", "health_server")
	return &Server{
		address:         address,
		shutdownTimeout: shutdownTimeout,
		handler:         NewRouter(db, l),
		logger:          l,
	}
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping health server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn(ctx, "health server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting health server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
