package logger

import (
	"go.uber.org/zap"
)

// New builds the process logger. Logs go to stderr so the benchmark's
// vector and timing output on stdout stays readable on its own.
func New(verbosity string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	level, err := zap.ParseAtomicLevel(verbosity)
	if err != nil {
		return nil, err
	}
	config.Level = level
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config.Build()
}
