package keepalive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trepalabs/sparkbot/core/buildinfo"
	"github.com/trepalabs/sparkbot/core/logger"
	"log/slog"
)

const shutdownTimeout = 5 * time.Second

// Server is a tiny HTTP responder that lets external uptime monitors ping the
// bot while it runs long polling. It serves liveness and version endpoints
// and nothing else.
type Server struct {
	echo      *echo.Echo
	addr      string
	startTime time.Time
}

// New builds the keep-alive server listening on listen:port.
func New(listen string, port int) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:      e,
		addr:      fmt.Sprintf("%s:%d", listen, port),
		startTime: time.Now(),
	}
	srv.registerRoutes()
	return srv
}

func (s *Server) registerRoutes() {
	s.echo.GET("/", s.handleRoot)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/version", s.handleVersion)
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := time.Since(s.startTime).Seconds()

	response := map[string]any{
		"status": "ok",
		"uptime": uptime,
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write liveness response: %w", err)
	}
	return nil
}

func (s *Server) handleVersion(c echo.Context) error {
	response := map[string]string{
		"version":    buildinfo.Version,
		"commit":     buildinfo.Commit,
		"build_time": buildinfo.Date,
		"go_version": runtime.Version(),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write version response: %w", err)
	}
	return nil
}

// Start begins serving in a background goroutine. Listen failures are logged,
// not fatal; losing the uptime responder must never take the bot down.
func (s *Server) Start() {
	go func() {
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn(context.Background(), "keepalive", "serve.fail",
				slog.String("addr", s.addr),
				slog.String("err", err.Error()),
			)
		}
	}()
	logger.Info(context.Background(), "keepalive", "listening",
		slog.String("addr", s.addr),
	)
}

// Shutdown stops the server, waiting up to shutdownTimeout for in-flight
// requests. The caller's context is usually already canceled at this point,
// so the drain runs on its own deadline.
func (s *Server) Shutdown(context.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("keepalive shutdown: %w", err)
	}
	return nil
}
