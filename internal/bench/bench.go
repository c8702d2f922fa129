// Package bench runs the measurement procedure both binaries share: build
// random host vectors, print them, run the addition once on a backend, and
// report the compute time.
package bench

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/parbench/vecadd/internal/compute"
	"github.com/parbench/vecadd/internal/metrics"
	"github.com/parbench/vecadd/internal/vector"
)

// Report summarizes one completed run.
type Report struct {
	Backend string
	Device  compute.DeviceInfo
	N       int
	Compute time.Duration
}

// Millis returns the compute interval in floating-point milliseconds, the
// unit the console line reports.
func (r *Report) Millis() float64 {
	return float64(r.Compute.Nanoseconds()) / 1e6
}

// Runner owns everything one run needs. It is constructed in main and
// passed explicitly; nothing here is process-global.
type Runner struct {
	backend compute.Backend
	label   string
	out     io.Writer
	log     *zap.Logger
}

// NewRunner creates a Runner printing to out. label names the backend in
// the rendered output and the timing line.
func NewRunner(backend compute.Backend, label string, out io.Writer, log *zap.Logger) *Runner {
	return &Runner{
		backend: backend,
		label:   label,
		out:     out,
		log:     log,
	}
}

// Run executes the benchmark once for vectors of length n. The output
// vector is pre-filled with random values and overwritten by the addition;
// only the backend's compute interval is measured, never allocation,
// initialization, or printing.
func (r *Runner) Run(n int) (*Report, error) {
	if n < 0 {
		return nil, fmt.Errorf("vector size must be non-negative, got %d", n)
	}

	r.log.Info("initializing vectors", zap.Int("n", n))
	v1 := vector.NewRandom(n)
	v2 := vector.NewRandom(n)
	vOut := vector.NewRandom(n)

	vector.Fprint(r.out, "Vector v1", v1)
	vector.Fprint(r.out, "Vector v2", v2)

	elapsed, err := r.backend.Add(vOut, v1, v2)
	if err != nil {
		return nil, fmt.Errorf("%s addition failed: %w", r.label, err)
	}

	vector.Fprint(r.out, fmt.Sprintf("Vector v_out (%s)", r.label), vOut)

	report := &Report{
		Backend: r.backend.Name(),
		Device:  r.backend.DeviceInfo(),
		N:       n,
		Compute: elapsed,
	}
	fmt.Fprintf(r.out, "%s execution time: %f ms\n", r.label, report.Millis())

	metrics.Record(report.Backend, n, report.Millis())
	r.log.Info("benchmark complete",
		zap.String("backend", report.Backend),
		zap.String("device", report.Device.Name),
		zap.Int("n", n),
		zap.Duration("compute", elapsed))
	return report, nil
}
