// Package compute provides the two vector-addition engines the benchmarks
// compare: a fork-join CPU pool and a device-offload pipeline driven through
// the OCCA runtime.
package compute

import "time"

// DeviceInfo describes the compute resource a backend runs on.
type DeviceInfo struct {
	// Name is a human-readable device description.
	Name string
	// Mode is the runtime mode, e.g. "CUDA", "OpenCL", "OpenMP",
	// "Serial" for the device backend or "cpu" for the host pool.
	Mode string
	// Workers is the fork-join pool width; zero for device backends,
	// whose internal parallelism is opaque to the host.
	Workers int
}

// Backend is one vector-addition engine.
//
// Add computes dst[i] = a[i] + b[i] for every index and returns the measured
// compute interval. What the interval covers is backend-specific and is the
// point of the comparison: the CPU backend times only the parallel loop, the
// device backend times only dispatch-through-completion, excluding buffer
// transfers. Addition wraps per int32 two's-complement overflow. All three
// slices must have equal length; dst is written in place.
type Backend interface {
	// Initialize acquires whatever the backend needs before the first
	// Add: for the device backend this selects a device and compiles the
	// kernel, and any failure is final (no retry, no degraded mode).
	Initialize() error

	// Add runs the addition once and reports the compute duration.
	Add(dst, a, b []int32) (time.Duration, error)

	// Name identifies the backend in output and metrics labels.
	Name() string

	// DeviceInfo reports what Add will run on.
	DeviceInfo() DeviceInfo

	// Cleanup releases device resources. Called once, on the
	// successful-completion path only.
	Cleanup() error
}
