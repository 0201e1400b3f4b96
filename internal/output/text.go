// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"strings"

	"rrna16/pkg/api"
)

// WriteSummaryText prints the run totals, errors by kind, length statistics
// and one TSV row per genome.
func WriteSummaryText(w io.Writer, s api.SummaryV1) error {
	var b strings.Builder
	fmt.Fprintf(&b, "genomes\t%d\n", s.GenomesTotal)
	fmt.Fprintf(&b, "genomes_processed\t%d\n", s.GenomesProcessed)
	fmt.Fprintf(&b, "genomes_failed\t%d\n", s.GenomesFailed)
	fmt.Fprintf(&b, "genomes_without_16s\t%d\n", s.GenomesWithout16S)
	if s.GenomesCached > 0 {
		fmt.Fprintf(&b, "genomes_cached\t%d\n", s.GenomesCached)
	}
	fmt.Fprintf(&b, "features_selected\t%d\n", s.FeaturesSelected)
	fmt.Fprintf(&b, "duplicates_skipped\t%d\n", s.DuplicatesSkipped)
	fmt.Fprintf(&b, "sequences_written\t%d\n", s.SequencesWritten)
	for _, k := range SortedKeys(s.ErrorsByKind) {
		fmt.Fprintf(&b, "errors[%s]\t%d\n", k, s.ErrorsByKind[k])
	}
	if s.SequencesWritten > 0 {
		fmt.Fprintf(&b, "length_min\t%.0f\nlength_max\t%.0f\nlength_mean\t%.1f\nlength_median\t%.1f\n",
			s.Length.Min, s.Length.Max, s.Length.Mean, s.Length.Median)
	}
	for _, kv := range [][2]string{{"corpus", s.Corpus}, {"alignment", s.Alignment}, {"tree", s.Tree}} {
		if kv[1] != "" {
			fmt.Fprintf(&b, "%s\t%s\n", kv[0], kv[1])
		}
	}
	b.WriteString("\n")
	b.WriteString(GenomeTSVHeader)
	b.WriteString("\n")
	for _, g := range s.Genomes {
		b.WriteString(FormatGenomeRowTSV(g))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatGenomeRowTSV returns one per-genome row (no trailing newline).
func FormatGenomeRowTSV(g api.GenomeV1) string {
	cached := "no"
	if g.Cached {
		cached = "yes"
	}
	errText := g.Error
	if errText == "" {
		errText = "-"
	}
	return fmt.Sprintf("%s\t%s\t%d\t%d\t%d\t%d\t%s\t%s",
		g.ID, g.Format, g.Selected, g.Duplicates, g.Written, g.Skipped, cached,
		strings.ReplaceAll(errText, "\t", " "),
	)
}
