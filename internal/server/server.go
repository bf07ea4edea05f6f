// Package server exposes the validation and scoring core over HTTP for
// upstream backends that already hold parsed model output.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/docsentry/docsentry/internal/decision"
	"github.com/docsentry/docsentry/internal/model"
	"github.com/docsentry/docsentry/internal/validate"
)

// Server wires the stateless core behind JSON endpoints.
type Server struct {
	validator *validate.Validator
	scorer    *decision.Scorer
	records   RecordFetcher
	logger    *slog.Logger
}

// RecordFetcher reads stored verification records. Nil disables the
// record endpoints.
type RecordFetcher interface {
	GetVerification(ctx context.Context, id string) (*model.VerificationRecord, error)
}

// New creates a server around the given core components.
func New(validator *validate.Validator, scorer *decision.Scorer, records RecordFetcher, logger *slog.Logger) *Server {
	return &Server{
		validator: validator,
		scorer:    scorer,
		records:   records,
		logger:    logger,
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/validate", s.handleValidate).Methods(http.MethodPost)
	r.HandleFunc("/v1/score", s.handleScore).Methods(http.MethodPost)
	r.HandleFunc("/v1/cross", s.handleCross).Methods(http.MethodPost)
	if s.records != nil {
		r.HandleFunc("/v1/verifications/{id}", s.handleGetVerification).Methods(http.MethodGet)
	}
	return r
}

// ListenAndServe runs the server until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("HTTP relay listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
