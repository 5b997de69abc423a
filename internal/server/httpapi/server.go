// Package httpapi exposes the users/posts API over HTTP and hosts the
// guard pipeline: every request passes the route classifier, the
// authentication guard, and, on owner-scoped routes, an ownership guard
// before its handler runs.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mbelov/microblog/internal/logging"
	"github.com/mbelov/microblog/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address   string
	logger    logging.Logger
	users     *services.UserService
	posts     *services.PostService
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, us *services.UserService, ps *services.PostService, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "httpapi"),
		users:     us,
		posts:     ps,
		jwtSecret: []byte(secretKey),
	}
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
