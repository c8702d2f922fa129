package compute

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/notargets/gocca"
	"go.uber.org/zap"
)

const elementSize = 4 // int32

// OCCABackend offloads the addition to a compute device through the OCCA
// runtime. Device selection walks an ordered candidate list (GPU-class
// modes first, CPU-class fallbacks last) and takes the first device that
// constructs; the kernel is compiled once from an external source artifact.
type OCCABackend struct {
	log        *zap.Logger
	modes      []string
	kernelPath string

	device *gocca.OCCADevice
	kernel *gocca.OCCAKernel
}

// NewOCCABackend creates a device backend. modes is the ordered list of
// OCCA device property strings to try; kernelPath locates the kernel
// source artifact.
func NewOCCABackend(log *zap.Logger, modes []string, kernelPath string) *OCCABackend {
	return &OCCABackend{
		log:        log,
		modes:      modes,
		kernelPath: kernelPath,
	}
}

// Name identifies the backend.
func (o *OCCABackend) Name() string {
	return "occa"
}

// DeviceInfo reports the selected device. Before Initialize the mode is
// unknown.
func (o *OCCABackend) DeviceInfo() DeviceInfo {
	if o.device == nil {
		return DeviceInfo{Name: "OCCA (unselected)", Mode: ""}
	}
	mode := o.device.Mode()
	return DeviceInfo{
		Name: fmt.Sprintf("OCCA (%s)", mode),
		Mode: mode,
	}
}

// Initialize selects a device and compiles the kernel. Every step is
// sequential and its failure is final: there is no retry and no degraded
// execution path.
func (o *OCCABackend) Initialize() error {
	if o.device != nil {
		return nil
	}

	for _, props := range o.modes {
		device, err := gocca.NewDevice(props)
		if err != nil {
			o.log.Debug("device mode unavailable",
				zap.String("props", props),
				zap.Error(err))
			continue
		}
		o.device = device
		break
	}
	if o.device == nil {
		return fmt.Errorf("no compute device available (tried %d modes)", len(o.modes))
	}
	o.log.Info("compute device selected", zap.String("mode", o.device.Mode()))

	source, err := LoadKernelSource(o.kernelPath)
	if err != nil {
		return err
	}

	if o.device.Mode() == "OpenMP" {
		// OCCA's OpenMP mode misses the default -O3 flag
		props := gocca.JsonParse(`{"compiler_flags": "-O3"}`)
		defer props.Free()
		o.kernel, err = o.device.BuildKernelFromString(source, KernelName, props)
	} else {
		o.kernel, err = o.device.BuildKernelFromString(source, KernelName, nil)
	}
	if err != nil {
		// The runtime's error carries the full build diagnostic log.
		return fmt.Errorf("failed to build kernel %s from %s: %w", KernelName, o.kernelPath, err)
	}

	o.log.Info("kernel compiled",
		zap.String("kernel", KernelName),
		zap.String("source", o.kernelPath))
	return nil
}

// Add runs the device pipeline once: allocate three n*4-byte buffers,
// upload both inputs, dispatch vector_add over n work items, block until
// completion, download the output. The returned duration covers only
// dispatch through completion; transfers are deliberately outside it.
func (o *OCCABackend) Add(dst, a, b []int32) (time.Duration, error) {
	if o.device == nil || o.kernel == nil {
		return 0, fmt.Errorf("OCCA backend not initialized")
	}
	n := len(a)
	if len(b) != n {
		return 0, fmt.Errorf("input length mismatch: %d vs %d", n, len(b))
	}
	if len(dst) != n {
		return 0, fmt.Errorf("output length mismatch: expected %d, got %d", n, len(dst))
	}
	if n == 0 {
		// Degenerate zero-work dispatch: nothing to allocate or run.
		return 0, nil
	}

	bytes := int64(n) * elementSize

	aMem := o.device.Malloc(bytes, nil, nil)
	defer aMem.Free()
	bMem := o.device.Malloc(bytes, nil, nil)
	defer bMem.Free()
	outMem := o.device.Malloc(bytes, nil, nil)
	defer outMem.Free()

	aMem.CopyFrom(unsafe.Pointer(&a[0]), bytes)
	bMem.CopyFrom(unsafe.Pointer(&b[0]), bytes)

	start := time.Now()
	if err := o.kernel.RunWithArgs(int32(n), aMem, bMem, outMem); err != nil {
		return 0, fmt.Errorf("kernel dispatch failed: %w", err)
	}
	o.device.Finish()
	elapsed := time.Since(start)

	outMem.CopyTo(unsafe.Pointer(&dst[0]), bytes)
	return elapsed, nil
}

// Cleanup releases the kernel before the device that owns it.
func (o *OCCABackend) Cleanup() error {
	if o.kernel != nil {
		o.kernel.Free()
		o.kernel = nil
	}
	if o.device != nil {
		o.device.Free()
		o.device = nil
	}
	return nil
}
