// Package vector provides the host-side buffers the benchmarks operate on:
// random initialization and the truncated console rendering used for manual
// sanity-checking.
package vector

import (
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
)

const (
	// randomBound keeps element values in [0, randomBound) so sums stay
	// readable and far from overflow for the default inputs.
	randomBound = 100

	// renderLimit is the largest vector printed in full; anything longer
	// shows renderEdge elements from each end around an ellipsis.
	renderLimit = 15
	renderEdge  = 5

	ellipsis = "....."
	rule     = "----------------------------"
)

// NewRandom allocates a vector of n elements, each drawn independently from
// [0, 100). The package-level rand source is deliberately unseeded; exact
// values are not part of any contract.
func NewRandom(n int) []int32 {
	v := make([]int32, n)
	for i := range v {
		v[i] = int32(rand.Intn(randomBound))
	}
	return v
}

// Render returns a one-line view of v: every element when len(v) <= 15,
// otherwise the first and last five around an ellipsis marker.
func Render(v []int32) string {
	var b strings.Builder
	if len(v) <= renderLimit {
		for i, x := range v {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(int(x)))
		}
		return b.String()
	}

	for i := 0; i < renderEdge; i++ {
		b.WriteString(strconv.Itoa(int(v[i])))
		b.WriteByte(' ')
	}
	b.WriteString(ellipsis)
	for i := len(v) - renderEdge; i < len(v); i++ {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(int(v[i])))
	}
	return b.String()
}

// Fprint writes a labeled rendering of v followed by a rule line. It is a
// diagnostic aid only; it performs no verification.
func Fprint(w io.Writer, label string, v []int32) {
	fmt.Fprintf(w, "%s:\n%s\n%s\n", label, Render(v), rule)
}
