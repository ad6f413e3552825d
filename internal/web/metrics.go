package web

import (
	"net/http"
	"strconv"

	"github.com/huangsam/tempdash/core/algo"
	"github.com/huangsam/tempdash/schema"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "tempdash"

// Metrics holds the dashboard's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	ticksTotal   prometheus.Counter
	latestTemp   prometheus.Gauge
	windowSize   prometheus.Gauge
	trendSlope   prometheus.Gauge
	httpRequests *prometheus.CounterVec
}

// NewMetrics creates and registers the dashboard collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ticks_total",
			Help:      "Total number of scheduler ticks observed.",
		}),
		latestTemp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "latest_temperature_fahrenheit",
			Help:      "Most recent synthetic temperature reading.",
		}),
		windowSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "window_size",
			Help:      "Number of readings currently held in the history window.",
		}),
		trendSlope: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "trend_slope",
			Help:      "Slope of the linear trend over the window in degrees per tick (0 until two readings exist).",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
	}

	m.registry.MustRegister(
		m.ticksTotal,
		m.latestTemp,
		m.windowSize,
		m.trendSlope,
		m.httpRequests,
	)
	return m
}

// Observe updates the gauges from a snapshot. It is registered as a
// scheduler subscriber and runs once per tick.
func (m *Metrics) Observe(snap schema.Snapshot) {
	m.ticksTotal.Inc()
	m.windowSize.Set(float64(snap.Len()))
	if !snap.Empty() {
		m.latestTemp.Set(snap.Latest.Temp)
	}
	if trend, err := algo.FitSnapshot(snap); err == nil {
		m.trendSlope.Set(trend.Slope)
	}
}

// Handler exposes the private registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware counts requests by matched route and response status.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
			return err
		}
	}
}
