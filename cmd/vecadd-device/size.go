package main

import (
	"fmt"
	"strconv"
)

// parseSize resolves the optional positional N argument, falling back to
// the configured default when absent.
func parseSize(arg string, fallback int) (int, error) {
	if arg == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid vector size %q: %w", arg, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("vector size must be non-negative, got %d", n)
	}
	return n, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
