package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jaekwang-park/todo-backend/internal/http/handler"
	"github.com/jaekwang-park/todo-backend/internal/middleware"
	"github.com/jaekwang-park/todo-backend/internal/service"
)

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

func NewServer(port string, logger *slog.Logger, todoSvc *service.TodoService, ping handler.StoragePinger) *Server {
	router := NewRouter(todoSvc, ping)

	// Apply middleware chain: request id -> recovery -> logging -> cors -> router
	chain := middleware.RequestID(
		middleware.Recovery(logger)(
			middleware.Logging(logger)(
				middleware.CORS(router),
			),
		),
	)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      chain,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
