// Package fasta loads genome sequences from FASTA files.
package fasta

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	biofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"rrna16-core/genome"
)

// Load reads every record in the FASTA file at path.
// Bases are kept exactly as written (case and ambiguity codes included).
func Load(path string) ([]genome.Record, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return ReadAll(rc, path)
}

// ReadAll parses FASTA from r, tagging each record with source.
func ReadAll(r io.Reader, source string) ([]genome.Record, error) {
	var recs []genome.Record
	sc := seqio.NewScanner(biofasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA)))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		recs = append(recs, genome.Record{
			ID:         s.Name(),
			Seq:        letterBytes(s.Seq),
			SourcePath: source,
		})
	}
	if err := sc.Error(); err != nil {
		return recs, fmt.Errorf("fasta %s: %w", source, err)
	}
	return recs, nil
}

// Index maps record IDs to records. Later duplicates do not replace earlier ones.
func Index(recs []genome.Record) map[string]genome.Record {
	m := make(map[string]genome.Record, len(recs))
	for _, r := range recs {
		if _, ok := m[r.ID]; !ok {
			m[r.ID] = r
		}
	}
	return m
}

func letterBytes(l alphabet.Letters) []byte {
	b := make([]byte, len(l))
	for i, c := range l {
		b[i] = byte(c)
	}
	return b
}
