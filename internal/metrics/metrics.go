package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "booking_assistant"

var (
	once sync.Once

	messagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_messages_total",
			Help:      "Chat messages processed by intent.",
		},
		[]string{"intent"},
	)

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_created_total",
			Help:      "Count of bookings created by status.",
		},
		[]string{"status"},
	)

	bookingCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_cancelled_total",
			Help:      "Count of bookings cancelled by an admin.",
		},
	)

	emailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_sent_total",
			Help:      "Confirmation emails by result.",
		},
		[]string{"result"},
	)

	documentsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_ingested_total",
			Help:      "Uploaded documents by ingestion result.",
		},
		[]string{"result"},
	)

	chatLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chat_latency_seconds",
			Help:      "Time spent answering a chat message.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			messagesProcessed,
			bookingCreated,
			bookingCancelled,
			emailsSent,
			documentsIngested,
			chatLatency,
		)
	})
}

func IncMessage(intent string) {
	messagesProcessed.WithLabelValues(intent).Inc()
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncBookingCancelled() {
	bookingCancelled.Inc()
}

func IncEmail(result string) {
	emailsSent.WithLabelValues(result).Inc()
}

func IncDocument(result string) {
	documentsIngested.WithLabelValues(result).Inc()
}

func ObserveChat(start time.Time) {
	chatLatency.Observe(time.Since(start).Seconds())
}
