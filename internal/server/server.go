package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/akolanti/cogcompanion/internal/adapter/utils"
	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/handlers"
	"github.com/akolanti/cogcompanion/internal/middleware"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
	"github.com/go-chi/cors"
)

type Server struct {
	server *http.Server
	logger *logger_i.Logger
}

// Routes mounts every endpoint behind the middleware chain and wraps the mux
// in CORS handling so browser preflights never reach a handler.
func Routes(h *handlers.Handler, chain *middleware.Chain, allowedOrigins []string) http.Handler {
	r := utils.NewRouter()

	r.Router.Get("/health", handlers.GetHandler)
	r.Router.Post("/chat", chain.Wrap(h.Chat))
	r.Router.Post("/upload", chain.Wrap(h.Upload))
	r.Router.Post("/search", chain.Wrap(h.Search))
	r.Router.Post("/recommendations", chain.Wrap(h.Recommendations))
	r.Router.Get("/sessions/{id}/history", chain.Wrap(h.GetHistory))
	r.Router.Delete("/sessions/{id}/history", chain.Wrap(h.ClearHistory))
	r.Router.Delete("/sessions/{id}/files", chain.Wrap(h.ClearFiles))

	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Trace-Id"},
		ExposedHeaders: []string{"X-Trace-Id"},
		MaxAge:         300,
	})(r.Router)
}

func NewServer(listenAddr string, handler http.Handler) *Server {
	return &Server{
		server: &http.Server{
			Addr:         listenAddr,
			Handler:      handler,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
		logger: logger_i.NewLogger("Server"),
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for at most
// ShutdownContextTimeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server is listening at", "address", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.logger.Error("Server crashed", "error", err, "addr", s.server.Addr)
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Server is shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	s.server.SetKeepAlivesEnabled(false)
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Could not shutdown gracefully", "error", err)
		return err
	}
	s.logger.Info("Server stopped gracefully")
	return nil
}
