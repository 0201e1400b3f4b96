package writers

import (
	"io"

	"rrna16/internal/output"
	"rrna16/pkg/api"
)

func init() {
	RegisterSummary(output.FormatText, output.WriteSummaryText)
	RegisterSummary(output.FormatJSON, output.WriteSummaryJSON)
	RegisterSummary(output.FormatJSONL, writeSummaryJSONL)
}

// writeSummaryJSONL emits one JSON line per genome row.
func writeSummaryJSONL(w io.Writer, s api.SummaryV1) error {
	in, done := StartGenomeJSONLWriter(w, len(s.Genomes))
	for _, g := range s.Genomes {
		in <- g
	}
	close(in)
	return <-done
}
