// Package httpserver serves the health check and the OAuth return landing page.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/service"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Pinger reports storage health
type Pinger interface {
	Ping(ctx context.Context) error
}

// OAuthCompleter resolves a signed return state to a Telegram user
type OAuthCompleter interface {
	CompleteOAuth(state string) (int64, error)
}

type Server struct {
	echo   *echo.Echo
	addr   string
	logger *zap.Logger
}

func NewServer(addr string, db Pinger, oauth OAuthCompleter, notifier service.Notifier, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(recovery(logger))
	e.Use(echomw.RequestID())
	e.Use(requestLogger(logger))

	e.GET("/healthz", healthHandler(db))
	e.GET("/oauth/calendar/return", oauthReturnHandler(oauth, notifier, logger))

	return &Server{echo: e, addr: addr, logger: logger}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks until the server stops; a graceful shutdown is not an error
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.addr))
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.echo.Shutdown(ctx)
}

func healthHandler(db Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		if db != nil {
			if err := db.Ping(ctx); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			fields := []zap.Field{
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
			}
			if err != nil {
				logger.Error("request", append(fields, zap.Error(err))...)
				return err
			}
			logger.Info("request", fields...)
			return nil
		}
	}
}

func recovery(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic recovered",
						zap.String("path", c.Request().URL.Path),
						zap.Any("panic", r),
						zap.Stack("stack"))
					err = echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
				}
			}()
			return next(c)
		}
	}
}
