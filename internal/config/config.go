package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSize is the vector length used when neither the command line nor
// the config file sets one.
const DefaultSize = 100_000_000

// DefaultKernelPath is where the device benchmark looks for its kernel
// source, relative to the working directory.
const DefaultKernelPath = "kernels/vector_add.okl"

// DefaultDeviceModes is the device selection order: GPU-class runtimes
// first, then CPU-class fallbacks. Each entry is an OCCA device property
// string.
var DefaultDeviceModes = []string{
	`{"mode": "CUDA", "device_id": 0}`,
	`{"mode": "OpenCL", "platform_id": 0, "device_id": 0}`,
	`{"mode": "OpenMP"}`,
	`{"mode": "Serial"}`,
}

type Config struct {
	Logger struct {
		Verbosity string `yaml:"verbosity"`
	} `yaml:"logger"`
	Benchmark struct {
		// Size is the default vector length N; the positional
		// command-line argument overrides it.
		Size int `yaml:"size"`
	} `yaml:"benchmark"`
	Device struct {
		// KernelPath locates the kernel source artifact.
		KernelPath string `yaml:"kernelPath"`
		// Modes overrides the device selection order.
		Modes []string `yaml:"modes"`
	} `yaml:"device"`
	CPU struct {
		// MaxWorkers caps the fork-join pool width. Zero means no cap
		// beyond GOMAXPROCS.
		MaxWorkers int `yaml:"maxWorkers"`
	} `yaml:"cpu"`
	Metrics struct {
		// Listen, when set, serves Prometheus metrics on this address
		// for the duration of the run.
		Listen string `yaml:"listen"`
	} `yaml:"metrics"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.Logger.Verbosity = "info"
	cfg.Benchmark.Size = DefaultSize
	cfg.Device.KernelPath = DefaultKernelPath
	cfg.Device.Modes = append([]string(nil), DefaultDeviceModes...)
	return cfg
}

// Load reads a YAML config from path. A missing file is not an error: the
// benchmarks run with defaults so `program [N]` needs no setup.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Benchmark.Size < 0 {
		return nil, fmt.Errorf("benchmark.size must be non-negative, got %d", cfg.Benchmark.Size)
	}
	if cfg.CPU.MaxWorkers < 0 {
		return nil, fmt.Errorf("cpu.maxWorkers must be non-negative, got %d", cfg.CPU.MaxWorkers)
	}
	if cfg.Logger.Verbosity == "" {
		cfg.Logger.Verbosity = "info"
	}
	if cfg.Device.KernelPath == "" {
		cfg.Device.KernelPath = DefaultKernelPath
	}
	if len(cfg.Device.Modes) == 0 {
		cfg.Device.Modes = append([]string(nil), DefaultDeviceModes...)
	}
	return cfg, nil
}
