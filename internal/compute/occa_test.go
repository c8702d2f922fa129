package compute

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestOCCA builds an initialized device backend against a temp copy of
// the kernel, skipping the test when no OCCA runtime is installed.
func newTestOCCA(t *testing.T, modes []string) *OCCABackend {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vector_add.okl")
	require.NoError(t, os.WriteFile(path, []byte(validKernel), 0o644))

	backend := NewOCCABackend(zap.NewNop(), modes, path)
	if err := backend.Initialize(); err != nil {
		t.Skipf("no usable OCCA device: %v", err)
	}
	t.Cleanup(func() { _ = backend.Cleanup() })
	return backend
}

func TestOCCABackendAdd(t *testing.T) {
	backend := newTestOCCA(t, []string{`{"mode": "Serial"}`})

	n := 512
	a := make([]int32, n)
	b := make([]int32, n)
	dst := make([]int32, n)
	for i := 0; i < n; i++ {
		a[i] = int32(rand.Intn(100))
		b[i] = int32(rand.Intn(100))
	}

	elapsed, err := backend.Add(dst, a, b)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, elapsed.Nanoseconds(), int64(0))

	for i := 0; i < n; i++ {
		require.Equal(t, a[i]+b[i], dst[i], "index %d", i)
	}
}

func TestOCCABackendSingleElement(t *testing.T) {
	backend := newTestOCCA(t, []string{`{"mode": "Serial"}`})

	dst := make([]int32, 1)
	_, err := backend.Add(dst, []int32{7}, []int32{5})
	require.NoError(t, err)
	assert.Equal(t, int32(12), dst[0])
}

func TestOCCABackendZeroLength(t *testing.T) {
	backend := newTestOCCA(t, []string{`{"mode": "Serial"}`})

	elapsed, err := backend.Add([]int32{}, []int32{}, []int32{})
	require.NoError(t, err)
	assert.Zero(t, elapsed)
}

func TestOCCABackendFallbackOrder(t *testing.T) {
	// An unavailable GPU-class mode falls through to the CPU-class one
	backend := newTestOCCA(t, []string{
		`{"mode": "CUDA", "device_id": 99}`,
		`{"mode": "Serial"}`,
	})
	info := backend.DeviceInfo()
	assert.NotEmpty(t, info.Mode)
}

func TestOCCABackendNoDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vector_add.okl")
	require.NoError(t, os.WriteFile(path, []byte(validKernel), 0o644))

	backend := NewOCCABackend(zap.NewNop(), []string{`{"mode": "NoSuchMode"}`}, path)
	err := backend.Initialize()
	assert.Error(t, err)
}

func TestOCCABackendMissingKernelSource(t *testing.T) {
	backend := NewOCCABackend(zap.NewNop(),
		[]string{`{"mode": "Serial"}`},
		filepath.Join(t.TempDir(), "nope.okl"))
	err := backend.Initialize()
	if err == nil {
		t.Fatal("expected error for missing kernel source")
	}
	_ = backend.Cleanup()
	assert.Contains(t, err.Error(), "nope.okl")
}

func TestOCCABackendNotInitialized(t *testing.T) {
	backend := NewOCCABackend(zap.NewNop(), nil, "kernels/vector_add.okl")
	_, err := backend.Add(make([]int32, 1), make([]int32, 1), make([]int32, 1))
	assert.Error(t, err)
}
