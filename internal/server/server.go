package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"PriceProphet/internal/snapshot"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server exposes the latest forecast snapshot over HTTP. Handlers only read
// the snapshot cache: no I/O, no blocking, safe for any number of
// concurrent requests while the scheduler refreshes in the background.
type Server struct {
	echo  *echo.Echo
	cache *snapshot.Cache
	port  int
}

// New creates the HTTP server and registers routes.
func New(cache *snapshot.Cache, port int) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))

	s := &Server{echo: e, cache: cache, port: port}
	e.GET("/api/forecast", s.getForecast)
	e.GET("/healthz", s.healthz)
	return s
}

func (s *Server) getForecast(c echo.Context) error {
	snap, err := s.cache.Get()
	if err != nil {
		if errors.Is(err, snapshot.ErrNotReady) {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "forecast not ready yet"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, snap)
}

func (s *Server) healthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%d", s.port))
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
