package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"eventbot/internal/ports/output"
)

const namespace = "eventbot"

var _ output.PipelineMetrics = (*Collector)(nil)

// Collector owns a private registry with the pipeline and HTTP metrics.
type Collector struct {
	registry *prometheus.Registry

	postsProcessed    *prometheus.CounterVec
	eventsSaved       *prometheus.CounterVec
	aiRequests        *prometheus.CounterVec
	translationFailed *prometheus.CounterVec
	groupsFailed      *prometheus.CounterVec

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func NewCollector() (*Collector, error) {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		postsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "posts_processed_total",
			Help:      "Posts run through the extraction pipeline, by language and outcome.",
		}, []string{"language", "outcome"}),
		eventsSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "events_saved_total",
			Help:      "New event records persisted, by language.",
		}, []string{"language"}),
		aiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ai",
			Name:      "requests_total",
			Help:      "AI analysis calls, by result.",
		}, []string{"outcome"}),
		translationFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ai",
			Name:      "translation_failures_total",
			Help:      "Field translations that fell back to the original text.",
		}, []string{"field"}),
		groupsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "vk",
			Name:      "group_failures_total",
			Help:      "Groups skipped during a parse run.",
		}, []string{"group"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution for inbound HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of inbound HTTP requests.",
		}, []string{"method", "path", "status"}),
	}

	for _, col := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.postsProcessed,
		c.eventsSaved,
		c.aiRequests,
		c.translationFailed,
		c.groupsFailed,
		c.requestDuration,
		c.requestTotal,
	} {
		if err := c.registry.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Handler returns an HTTP handler for exposing Prometheus metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one served HTTP request.
func (c *Collector) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	s := strconv.Itoa(status)
	c.requestTotal.WithLabelValues(method, path, s).Inc()
	c.requestDuration.WithLabelValues(method, path, s).Observe(elapsed.Seconds())
}

func (c *Collector) PostProcessed(language, outcome string) {
	c.postsProcessed.WithLabelValues(language, outcome).Inc()
}

func (c *Collector) EventsSaved(language string, n int) {
	c.eventsSaved.WithLabelValues(language).Add(float64(n))
}

func (c *Collector) AIRequest(outcome string) {
	c.aiRequests.WithLabelValues(outcome).Inc()
}

func (c *Collector) TranslationFailed(field string) {
	c.translationFailed.WithLabelValues(field).Inc()
}

func (c *Collector) GroupFailed(group string) {
	c.groupsFailed.WithLabelValues(group).Inc()
}
