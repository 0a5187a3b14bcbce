package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glow",
			Subsystem: "server",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "glow",
			Subsystem: "server",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Chat turns
	ChatTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glow",
			Subsystem: "server",
			Name:      "chat_turns_total",
			Help:      "Total chat turns by outcome",
		},
		[]string{"model", "status"},
	)

	ChatDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "glow",
			Subsystem: "server",
			Name:      "chat_duration_seconds",
			Help:      "Remote chat completion duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"model"},
	)

	// Token counters
	TokensPromptTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glow",
			Subsystem: "server",
			Name:      "tokens_prompt_total",
			Help:      "Total prompt tokens consumed",
		},
		[]string{"model"},
	)

	TokensCompletionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glow",
			Subsystem: "server",
			Name:      "tokens_completion_total",
			Help:      "Total completion tokens generated",
		},
		[]string{"model"},
	)

	// Image generations
	ImageGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glow",
			Subsystem: "server",
			Name:      "image_generations_total",
			Help:      "Total image generations by outcome",
		},
		[]string{"model", "status"},
	)

	ImageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "glow",
			Subsystem: "server",
			Name:      "image_duration_seconds",
			Help:      "Remote image generation duration in seconds",
			Buckets:   []float64{1, 2, 5, 10, 30, 60, 120, 180},
		},
		[]string{"model"},
	)

	// Credit ledger
	CreditsSpentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glow",
			Subsystem: "server",
			Name:      "credits_spent_total",
			Help:      "Total credits spent by reason",
		},
		[]string{"reason"},
	)

	CreditsRefundedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glow",
			Subsystem: "server",
			Name:      "credits_refunded_total",
			Help:      "Total credits refunded by reason",
		},
		[]string{"reason"},
	)

	InsufficientCreditsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glow",
			Subsystem: "server",
			Name:      "insufficient_credits_total",
			Help:      "Total operations rejected for insufficient credits",
		},
		[]string{"operation"},
	)

	// Threads
	ThreadsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "glow",
			Subsystem: "server",
			Name:      "threads_created_total",
			Help:      "Total threads created",
		},
	)

	// Uploads
	DocumentsIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glow",
			Subsystem: "server",
			Name:      "documents_ingested_total",
			Help:      "Total documents ingested by mime family",
		},
		[]string{"mime_family"},
	)

	// Auth requests
	AuthRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glow",
			Subsystem: "server",
			Name:      "auth_requests_total",
			Help:      "Total authentication requests",
		},
		[]string{"status"},
	)
)

// RecordRequest records an HTTP request with its duration in seconds.
func RecordRequest(method, endpoint string, status int, seconds float64) {
	code := strconv.Itoa(status)
	RequestsTotal.WithLabelValues(method, endpoint, code).Inc()
	RequestDuration.WithLabelValues(method, endpoint, code).Observe(seconds)
}

// RecordChatTurn records a finished chat turn.
func RecordChatTurn(model, status string, seconds float64) {
	if model == "" {
		model = "unknown"
	}
	ChatTurnsTotal.WithLabelValues(model, status).Inc()
	ChatDuration.WithLabelValues(model).Observe(seconds)
}

// RecordTokens records provider reported token usage.
func RecordTokens(model string, promptTokens, completionTokens int) {
	if model == "" {
		model = "unknown"
	}
	TokensPromptTotal.WithLabelValues(model).Add(float64(promptTokens))
	TokensCompletionTotal.WithLabelValues(model).Add(float64(completionTokens))
}

// RecordImageGeneration records a finished image generation.
func RecordImageGeneration(model, status string, seconds float64) {
	if model == "" {
		model = "unknown"
	}
	ImageGenerationsTotal.WithLabelValues(model, status).Inc()
	ImageDuration.WithLabelValues(model).Observe(seconds)
}

// RecordCreditsSpent records a committed debit.
func RecordCreditsSpent(reason string, amount int) {
	CreditsSpentTotal.WithLabelValues(reason).Add(float64(amount))
}

// RecordCreditsRefunded records a released reservation.
func RecordCreditsRefunded(reason string, amount int) {
	CreditsRefundedTotal.WithLabelValues(reason).Add(float64(amount))
}

// RecordInsufficientCredits records a rejected operation.
func RecordInsufficientCredits(operation string) {
	InsufficientCreditsTotal.WithLabelValues(operation).Inc()
}

// RecordDocumentIngested records a stored upload bucketed by mime family.
func RecordDocumentIngested(mimeType string) {
	family := "other"
	for i := 0; i < len(mimeType); i++ {
		if mimeType[i] == '/' {
			family = mimeType[:i]
			break
		}
	}
	DocumentsIngestedTotal.WithLabelValues(family).Inc()
}

// RecordAuthRequest records an authentication attempt.
func RecordAuthRequest(status string) {
	AuthRequestsTotal.WithLabelValues(status).Inc()
}
