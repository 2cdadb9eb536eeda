package history

import "github.com/prometheus/client_golang/prometheus"

var (
	readingsMetric = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trainspeed_readings_total",
			Help: "Number of resolved passes over the sensor pair",
		},
		[]string{"direction", "valid"},
	)

	speedMetric = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trainspeed_speed_kmh",
			Help: "The last valid scaled speed in km/h",
		},
		[]string{"direction"},
	)

	elapsedMetric = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "trainspeed_elapsed_ms",
			Help: "The time between the two sensor triggers of the last pass",
		},
	)

	speedHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trainspeed_speed_kmh_distribution",
			Help:    "Distribution of valid scaled speeds in km/h",
			Buckets: prometheus.LinearBuckets(20, 20, 14),
		},
	)
)

func init() {
	prometheus.MustRegister(readingsMetric)
	prometheus.MustRegister(speedMetric)
	prometheus.MustRegister(elapsedMetric)
	prometheus.MustRegister(speedHistogram)
}

// observe exports one entry.
func observe(e Entry) {
	dir := e.Direction.String()
	valid := "0"
	if e.Valid {
		valid = "1"
	}
	readingsMetric.WithLabelValues(dir, valid).Inc()
	elapsedMetric.Set(float64(e.ElapsedMs))

	if !e.Valid {
		return
	}
	speedMetric.WithLabelValues(dir).Set(float64(e.KMH))
	speedHistogram.Observe(float64(e.KMH))
}
