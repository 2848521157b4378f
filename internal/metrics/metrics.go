package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "north_trips_bookings_created_total",
		Help: "Bookings successfully created",
	})
	// BookingsCancelled by = user | admin
	BookingsCancelled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "north_trips_bookings_cancelled_total",
		Help: "Bookings cancelled",
	}, []string{"by"})
	BookingsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "north_trips_bookings_confirmed_total",
		Help: "Bookings confirmed by an administrator",
	})
	// BookingRejections reason = participants | date | capacity | not_found
	BookingRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "north_trips_booking_rejections_total",
		Help: "Booking requests rejected by validation or capacity",
	}, []string{"reason"})
	SeatsReleased = promauto.NewCounter(prometheus.CounterOpts{
		Name: "north_trips_seats_released_total",
		Help: "Seats returned to group tours by cancellations",
	})

	InvoicesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "north_trips_invoices_rendered_total",
		Help: "Invoices rendered to PDF",
	})
	InvoiceRenderErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "north_trips_invoice_render_errors_total",
		Help: "Invoice renders that failed",
	})
	InvoiceRenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "north_trips_invoice_render_duration_seconds",
		Help:    "Time spent converting invoices to PDF",
		Buckets: prometheus.DefBuckets,
	})

	// TourCache result = hit | miss
	TourCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "north_trips_tour_cache_total",
		Help: "Tour catalogue cache lookups",
	}, []string{"result"})
)

// ObserveSince 記錄從 start 到現在的秒數
func ObserveSince(h prometheus.Observer, start time.Time) {
	h.Observe(time.Since(start).Seconds())
}
