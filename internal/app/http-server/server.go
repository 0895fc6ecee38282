package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	log        *slog.Logger
	httpServer *http.Server
}

func NewServer(log *slog.Logger, address string, handler http.Handler, timeout, idleTimeout time.Duration) *Server {
	return &Server{
		log: log,
		httpServer: &http.Server{
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: timeout,
			ReadTimeout:       timeout,
			WriteTimeout:      timeout,
			IdleTimeout:       idleTimeout,
		},
	}
}

func (s *Server) MustRun() {
	if err := s.Run(); err != nil {
		panic(err)
	}
}

// Run blocks until the server stops. A graceful Stop is not an error.
func (s *Server) Run() error {
	const op = "httpserver.Run"

	s.log.Info("http server started", slog.String("op", op), slog.String("address", s.httpServer.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Stop drains in-flight requests, giving up after shutdownTimeout.
func (s *Server) Stop(ctx context.Context) error {
	const op = "httpserver.Stop"

	s.log.Info("stopping http server", slog.String("op", op))

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
