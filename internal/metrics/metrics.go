package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics captures the service's request and pipeline health signals.
type Metrics struct {
	httpDuration  *prometheus.HistogramVec
	generations   *prometheus.CounterVec
	rasterSeconds prometheus.Observer
	creditCharges prometheus.Counter
	webhookEvents *prometheus.CounterVec
	extractions   *prometheus.CounterVec
}

func New() *Metrics {
	return newMetrics(prometheus.DefaultRegisterer)
}

func newMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reciply_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"method", "route", "status"})
	generations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reciply_generations_total",
		Help: "Receipt generations by outcome.",
	}, []string{"outcome"})
	rasterSeconds := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "reciply_raster_duration_seconds",
		Help:    "Headless-browser rasterization latency.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
	})
	creditCharges := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reciply_credit_charges_total",
		Help: "Credits charged for successful generations.",
	})
	webhookEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reciply_webhook_events_total",
		Help: "Billing webhook deliveries by event type.",
	}, []string{"event_type"})
	extractions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reciply_layout_extractions_total",
		Help: "Layout extractions by outcome.",
	}, []string{"outcome"})

	for _, c := range []prometheus.Collector{
		httpDuration, generations, rasterSeconds, creditCharges, webhookEvents, extractions,
	} {
		if err := registerer.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}

	return &Metrics{
		httpDuration:  httpDuration,
		generations:   generations,
		rasterSeconds: rasterSeconds,
		creditCharges: creditCharges,
		webhookEvents: webhookEvents,
		extractions:   extractions,
	}
}

// Handler instruments every request with route-level latency.
func (m *Metrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpDuration.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) RecordGeneration(outcome string) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRasterDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.rasterSeconds.Observe(d.Seconds())
}

func (m *Metrics) RecordCreditCharge() {
	if m == nil {
		return
	}
	m.creditCharges.Inc()
}

func (m *Metrics) RecordWebhookEvent(eventType string) {
	if m == nil {
		return
	}
	m.webhookEvents.WithLabelValues(eventType).Inc()
}

func (m *Metrics) RecordExtraction(outcome string) {
	if m == nil {
		return
	}
	m.extractions.WithLabelValues(outcome).Inc()
}
