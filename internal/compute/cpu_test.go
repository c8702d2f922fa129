package compute

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newInitializedCPU(t *testing.T, maxWorkers int) *CPUBackend {
	t.Helper()
	backend := NewCPUBackend(zap.NewNop(), maxWorkers)
	require.NoError(t, backend.Initialize())
	t.Cleanup(func() { _ = backend.Cleanup() })
	return backend
}

func TestCPUBackendAdd(t *testing.T) {
	// Correctness must not depend on pool width
	widths := []int{1, 2, 0} // 0 means GOMAXPROCS
	for _, width := range widths {
		t.Run(fmt.Sprintf("workers_%d", width), func(t *testing.T) {
			backend := newInitializedCPU(t, width)

			n := 1000
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
		})
	}
}

func TestCPUBackendSingleElement(t *testing.T) {
	backend := newInitializedCPU(t, 0)

	dst := make([]int32, 1)
	_, err := backend.Add(dst, []int32{7}, []int32{5})
	require.NoError(t, err)
	assert.Equal(t, int32(12), dst[0])
}

func TestCPUBackendZeroLength(t *testing.T) {
	backend := newInitializedCPU(t, 0)

	elapsed, err := backend.Add([]int32{}, []int32{}, []int32{})
	require.NoError(t, err)
	assert.Zero(t, elapsed)
}

func TestCPUBackendOverflowWraps(t *testing.T) {
	backend := newInitializedCPU(t, 1)

	dst := make([]int32, 1)
	_, err := backend.Add(dst, []int32{math.MaxInt32}, []int32{1})
	require.NoError(t, err)
	assert.Equal(t, int32(math.MinInt32), dst[0])
}

func TestCPUBackendLengthMismatch(t *testing.T) {
	backend := newInitializedCPU(t, 0)

	_, err := backend.Add(make([]int32, 2), make([]int32, 2), make([]int32, 3))
	assert.Error(t, err)

	_, err = backend.Add(make([]int32, 1), make([]int32, 2), make([]int32, 2))
	assert.Error(t, err)
}

func TestCPUBackendNotInitialized(t *testing.T) {
	backend := NewCPUBackend(zap.NewNop(), 0)
	_, err := backend.Add(make([]int32, 1), make([]int32, 1), make([]int32, 1))
	assert.Error(t, err)
}

func TestCPUBackendWorkers(t *testing.T) {
	t.Run("capped", func(t *testing.T) {
		backend := NewCPUBackend(zap.NewNop(), 1)
		assert.Equal(t, 1, backend.Workers())
	})

	t.Run("uncapped", func(t *testing.T) {
		backend := NewCPUBackend(zap.NewNop(), 0)
		assert.Equal(t, runtime.GOMAXPROCS(0), backend.Workers())
	})

	t.Run("cap above GOMAXPROCS has no effect", func(t *testing.T) {
		backend := NewCPUBackend(zap.NewNop(), runtime.GOMAXPROCS(0)+8)
		assert.Equal(t, runtime.GOMAXPROCS(0), backend.Workers())
	})
}

func TestCPUBackendDeviceInfo(t *testing.T) {
	backend := newInitializedCPU(t, 0)
	info := backend.DeviceInfo()
	assert.Contains(t, info.Name, "CPU")
	assert.Equal(t, "cpu", info.Mode)
	assert.Equal(t, backend.Workers(), info.Workers)
}
