package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "turfbook",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "turfbook",
			Name:      "bookings_created_total",
			Help:      "Bookings committed successfully.",
		},
	)

	bookingConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "turfbook",
			Name:      "booking_conflicts_total",
			Help:      "Booking attempts rejected by a business rule.",
		},
		[]string{"reason"},
	)

	bookingsCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "turfbook",
			Name:      "bookings_cancelled_total",
			Help:      "Bookings cancelled within the allowed window.",
		},
	)

	slotsPublished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "turfbook",
			Name:      "slots_published_total",
			Help:      "Slots published by turf owners.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, bookingConflicts, bookingsCancelled, slotsPublished)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncBookingCreated() { bookingsCreated.Inc() }

func IncBookingConflict(reason string) { bookingConflicts.WithLabelValues(reason).Inc() }

func IncBookingCancelled() { bookingsCancelled.Inc() }

func IncSlotPublished() { slotsPublished.Inc() }
