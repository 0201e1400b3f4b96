// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"

	"rrna16/pkg/api"
)

// SummaryWriters maps a summary format to its handler. Formats register
// themselves in init() blocks.
var SummaryWriters = map[string]func(w io.Writer, s api.SummaryV1) error{}

// RegisterSummary adds or replaces the writer for format (last wins).
func RegisterSummary(format string, fn func(io.Writer, api.SummaryV1) error) {
	SummaryWriters[format] = fn
}

// WriteSummary dispatches to the writer registered for format.
func WriteSummary(format string, w io.Writer, s api.SummaryV1) error {
	fn, ok := SummaryWriters[format]
	if !ok {
		return fmt.Errorf("unknown summary format %q (no writer registered)", format)
	}
	return fn(w, s)
}
