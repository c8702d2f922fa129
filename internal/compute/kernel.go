package compute

import (
	"fmt"
	"os"
	"regexp"
)

// KernelName is the entry point the device backend dispatches.
const KernelName = "vector_add"

// kernelSignature matches the required entry-point declaration. Parameter
// names are free; the order and types (size, input, input, output) are not.
var kernelSignature = regexp.MustCompile(
	`@kernel\s+void\s+` + KernelName +
		`\s*\(\s*const\s+int\s+\w+\s*,` +
		`\s*const\s+int\s*\*\s*\w+\s*,` +
		`\s*const\s+int\s*\*\s*\w+\s*,` +
		`\s*int\s*\*\s*\w+\s*\)`)

// LoadKernelSource reads the kernel artifact at path and checks it declares
// the expected entry point before it is handed to the device compiler. A
// missing file or a signature mismatch is a load error; nothing degraded
// runs in its place.
func LoadKernelSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read kernel source %s: %w", path, err)
	}
	src := string(data)
	if err := ValidateKernelSource(src); err != nil {
		return "", fmt.Errorf("invalid kernel source %s: %w", path, err)
	}
	return src, nil
}

// ValidateKernelSource checks that src declares the vector_add entry point
// with the argument order the pipeline binds: (const int N, const int *a,
// const int *b, int *out).
func ValidateKernelSource(src string) error {
	if !kernelSignature.MatchString(src) {
		return fmt.Errorf(
			"missing entry point %q with signature (const int N, const int *a, const int *b, int *out)",
			KernelName)
	}
	return nil
}
