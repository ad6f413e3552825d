// Package web serves the live dashboard over HTTP.
package web

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/huangsam/tempdash/core/algo"
	"github.com/huangsam/tempdash/internal/contract"
	"github.com/huangsam/tempdash/internal/outwriter"
	"github.com/huangsam/tempdash/schema"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds graceful shutdown of the HTTP server.
const ShutdownTimeout = 5 * time.Second

// Server is the dashboard HTTP server. It only reads published snapshots.
type Server struct {
	source   contract.SnapshotSource
	cfg      *contract.Config
	logger   *slog.Logger
	metrics  *Metrics
	echo     *echo.Echo
	listener net.Listener
}

// NewServer wires routes for the dashboard page, the JSON API, chart images,
// metrics and health checks.
func NewServer(source contract.SnapshotSource, cfg *contract.Config, logger *slog.Logger, metrics *Metrics) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if metrics == nil {
		metrics = NewMetrics()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = newTemplateRenderer()

	s := &Server{source: source, cfg: cfg, logger: logger, metrics: metrics, echo: e}

	// Request logging
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/healthz"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			if v.Error == nil {
				logger.DebugContext(rctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				logger.ErrorContext(rctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(metrics.Middleware())

	e.GET("/", s.handleIndex)
	e.GET("/api/snapshot", s.handleSnapshot)
	e.GET("/chart.svg", s.handleChart(schema.SVGChart))
	e.GET("/chart.png", s.handleChart(schema.PNGChart))
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/healthz", s.handleHealth)

	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Listen binds the configured address. Run listens on its own when Listen
// was not called first.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.echo.Listener = ln
	return nil
}

// Addr returns the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Addr
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	s.logger.Info("starting dashboard server", "address", s.Addr())

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		s.logger.Info("shutting down dashboard server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// report builds the report for the latest snapshot, if any.
func (s *Server) report() (schema.SnapshotReport, bool) {
	snap, ok := s.source.Latest()
	if !ok {
		return schema.SnapshotReport{}, false
	}
	return algo.BuildReport(snap, contract.GetPlainLabel), true
}

func (s *Server) handleIndex(c echo.Context) error {
	report, _ := s.report()
	return c.Render(http.StatusOK, indexTemplate, newPageData(outwriter.DashboardTitle, report, s.cfg.Interval, s.cfg.Capacity))
}

func (s *Server) handleSnapshot(c echo.Context) error {
	report, ok := s.report()
	if !ok {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "no readings yet"})
	}
	return c.JSON(http.StatusOK, report)
}

func (s *Server) handleChart(format schema.ChartFormat) echo.HandlerFunc {
	return func(c echo.Context) error {
		report, ok := s.report()
		if !ok {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "no readings yet"})
		}
		var buf bytes.Buffer
		if err := outwriter.RenderChart(&buf, report, format, outwriter.DefaultChartWidth, outwriter.DefaultChartHeight); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
		return c.Blob(http.StatusOK, outwriter.ChartContentType(format), buf.Bytes())
	}
}

func (s *Server) handleHealth(c echo.Context) error {
	_, ok := s.source.Latest()
	return c.JSON(http.StatusOK, map[string]any{
		"status": "healthy",
		"ready":  ok,
	})
}
