package compute

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CPUBackend computes the addition on the host with a fork-join pool of
// goroutines. Each worker owns a disjoint contiguous slice of the output, so
// the loop needs no synchronization beyond the final join.
type CPUBackend struct {
	log         *zap.Logger
	maxWorkers  int
	initialized bool
}

// NewCPUBackend creates a CPU backend. maxWorkers caps the pool width; zero
// means GOMAXPROCS, which is the runtime's standard environment control for
// parallel width.
func NewCPUBackend(log *zap.Logger, maxWorkers int) *CPUBackend {
	return &CPUBackend{
		log:        log,
		maxWorkers: maxWorkers,
	}
}

// Initialize prepares the CPU backend for use.
func (c *CPUBackend) Initialize() error {
	if c.initialized {
		return nil
	}
	c.initialized = true
	c.log.Info("CPU backend initialized", zap.Int("workers", c.Workers()))
	return nil
}

// Cleanup releases any resources (none for the CPU backend).
func (c *CPUBackend) Cleanup() error {
	c.initialized = false
	return nil
}

// Name identifies the backend.
func (c *CPUBackend) Name() string {
	return "cpu"
}

// Workers returns the pool width Add will use for large inputs.
func (c *CPUBackend) Workers() int {
	workers := runtime.GOMAXPROCS(0)
	if c.maxWorkers > 0 && workers > c.maxWorkers {
		workers = c.maxWorkers
	}
	return workers
}

// DeviceInfo returns device information for the host CPU.
func (c *CPUBackend) DeviceInfo() DeviceInfo {
	return DeviceInfo{
		Name:    fmt.Sprintf("CPU (%s, %s)", runtime.GOARCH, runtime.Version()),
		Mode:    "cpu",
		Workers: c.Workers(),
	}
}

// Add computes dst[i] = a[i] + b[i] across the pool and blocks until every
// worker finishes. The returned duration covers only the parallel loop.
func (c *CPUBackend) Add(dst, a, b []int32) (time.Duration, error) {
	if !c.initialized {
		return 0, fmt.Errorf("CPU backend not initialized")
	}
	n := len(a)
	if len(b) != n {
		return 0, fmt.Errorf("input length mismatch: %d vs %d", n, len(b))
	}
	if len(dst) != n {
		return 0, fmt.Errorf("output length mismatch: expected %d, got %d", n, len(dst))
	}
	if n == 0 {
		return 0, nil
	}

	workers := c.Workers()
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, n)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				dst[i] = a[i] + b[i]
			}
		}(lo, hi)
	}
	wg.Wait()
	return time.Since(start), nil
}
