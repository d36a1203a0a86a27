package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Failure reasons used as label values.
const (
	ReasonUnsupportedType = "unsupported_type"
	ReasonZeroDuration    = "zero_duration"
	ReasonZeroHeight      = "zero_height"
	ReasonInvalidArgs     = "invalid_args"
	ReasonOther           = "other"
)

var (
	readingsProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trainingtracker",
		Name:      "readings_processed_total",
		Help:      "Number of readings rendered into a report, by activity code.",
	}, []string{"code"})
	readingsFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trainingtracker",
		Name:      "readings_failed_total",
		Help:      "Number of readings that could not be reported, by failure reason.",
	}, []string{"reason"})
	caloriesBurned = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "trainingtracker",
		Name:      "calories_burned_kcal",
		Help:      "Calories computed per reported workout.",
		Buckets:   []float64{50, 100, 200, 300, 500, 750, 1000, 1500},
	}, []string{"code"})
)

func init() {
	prometheus.MustRegister(readingsProcessed, readingsFailed, caloriesBurned)
}

// RecordProcessed counts a rendered reading and observes its calories.
func RecordProcessed(code string, calories float64) {
	readingsProcessed.WithLabelValues(code).Inc()
	caloriesBurned.WithLabelValues(code).Observe(calories)
}

// RecordFailed counts a reading dropped for reason.
func RecordFailed(reason string) {
	readingsFailed.WithLabelValues(reason).Inc()
}
