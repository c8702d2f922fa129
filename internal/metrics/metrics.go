package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Vector Addition Benchmark Metrics
	VectorAddDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vector_add_duration_ms",
		Help:    "Duration of the vector addition compute step in milliseconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 20), // 10us to ~5s
	})

	VectorAddSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vector_add_size",
		Help: "Vector length N used in the last benchmark run",
	})

	VectorAddThroughput = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vector_add_melems_per_second",
		Help: "Throughput of the last vector addition in millions of elements per second",
	})

	VectorAddRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vector_add_runs_total",
		Help: "Total number of benchmark runs by backend",
	}, []string{"backend"})
)

// Record updates all benchmark collectors for one completed run.
func Record(backend string, n int, durationMs float64) {
	VectorAddDuration.Observe(durationMs)
	VectorAddSize.Set(float64(n))
	if durationMs > 0 {
		VectorAddThroughput.Set(float64(n) / durationMs / 1000)
	}
	VectorAddRuns.WithLabelValues(backend).Inc()
}

// Serve exposes /metrics on addr for the lifetime of the process. It is
// best-effort: the benchmark does not wait on it, and errors surface only
// through the returned channel.
func Serve(addr string) <-chan error {
	errCh := make(chan error, 1)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		errCh <- http.ListenAndServe(addr, mux)
	}()
	return errCh
}
