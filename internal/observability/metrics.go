package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Business metrics
	ChatbotsCreatedTotal prometheus.Counter
	PagesScrapedTotal    prometheus.Counter
	PageFetchesFailed    prometheus.Counter
	QuestionsAskedTotal  *prometheus.CounterVec
	LeadsCapturedTotal   prometheus.Counter

	// LLM metrics
	LLMRequestsTotal *prometheus.CounterVec
	LLMCacheHits     prometheus.Counter
	LLMCacheMisses   prometheus.Counter
}

// NewMetrics creates a new metrics instance with all Prometheus metrics registered
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "leadgenie"
	}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		ChatbotsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chatbots_created_total",
				Help:      "Total number of chatbots created",
			},
		),
		PagesScrapedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pages_scraped_total",
				Help:      "Total number of website pages scraped successfully",
			},
		),
		PageFetchesFailed: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "page_fetches_failed_total",
				Help:      "Total number of candidate page fetches that yielded no content",
			},
		),
		QuestionsAskedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "questions_asked_total",
				Help:      "Total number of visitor questions by routing outcome",
			},
			[]string{"route"},
		),
		LeadsCapturedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "leads_captured_total",
				Help:      "Total number of leads captured",
			},
		),
		LLMRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_requests_total",
				Help:      "Total number of LLM API requests by outcome",
			},
			[]string{"outcome"},
		),
		LLMCacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_cache_hits_total",
				Help:      "Total number of LLM prompt cache hits",
			},
		),
		LLMCacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_cache_misses_total",
				Help:      "Total number of LLM prompt cache misses",
			},
		),
	}
}

// RecordHTTPRequest records one served HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveLLMRequest records one completed LLM round trip by outcome.
func (m *Metrics) ObserveLLMRequest(outcome string) {
	m.LLMRequestsTotal.WithLabelValues(outcome).Inc()
}

// ObserveLLMCache records one prompt-cache lookup.
func (m *Metrics) ObserveLLMCache(hit bool) {
	if hit {
		m.LLMCacheHits.Inc()
		return
	}
	m.LLMCacheMisses.Inc()
}

// Handler returns the Prometheus scrape endpoint handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
