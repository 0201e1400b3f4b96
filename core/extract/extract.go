// Package extract slices annotated features out of genome sequences.
package extract

import (
	"fmt"

	"rrna16-core/genome"
)

var complement [256]byte

func init() {
	for i := range complement {
		complement[i] = byte(i)
	}
	complement['A'] = 'T'
	complement['T'] = 'A'
	complement['C'] = 'G'
	complement['G'] = 'C'
}

// RevComp returns the reverse complement of seq. Only upper-case A, C, G and T
// are complemented; any other byte keeps its value in the reversed position.
func RevComp(seq []byte) []byte {
	n := len(seq)
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = complement[seq[n-1-i]]
	}
	return out
}

// Slice returns the bases covered by f in g, reverse-complemented for
// minus-strand features. Feature coordinates are 1-based inclusive; this is
// the only place they are turned into a Go slice range.
//
// The result never aliases g.Seq.
func Slice(g genome.Record, f genome.Feature) ([]byte, error) {
	if f.Start < 1 || f.End > len(g.Seq) || f.Start > f.End {
		return nil, &genome.Error{
			Kind:     genome.ErrCoordinateOutOfRange,
			Path:     g.SourcePath,
			Line:     f.Line,
			ContigID: f.ContigID,
			Start:    f.Start,
			End:      f.End,
			Err:      fmt.Errorf("contig %s has %d bases", g.ID, len(g.Seq)),
		}
	}
	sub := g.Seq[f.Start-1 : f.End]
	if f.Strand == genome.Minus {
		return RevComp(sub), nil
	}
	out := make([]byte, len(sub))
	copy(out, sub)
	return out, nil
}
