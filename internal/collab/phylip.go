package collab

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

type row struct {
	name string
	seq  []byte
}

// WritePhylip writes the aligned FASTA read from r as relaxed sequential
// PHYLIP: a "<n> <length>" line then one "<name> <sequence>" line per record.
// Every sequence must have the same length.
func WritePhylip(w io.Writer, r io.Reader) error {
	var rows []row
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAgapped)))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		b := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			b[i] = byte(l)
		}
		rows = append(rows, row{name: s.Name(), seq: b})
	}
	if err := sc.Error(); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("alignment has no sequences")
	}
	alnLen := len(rows[0].seq)
	for _, r := range rows {
		if len(r.seq) != alnLen {
			return fmt.Errorf("sequence %s has length %d, alignment length is %d", r.name, len(r.seq), alnLen)
		}
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", len(rows), alnLen)
	for _, r := range rows {
		fmt.Fprintf(bw, "%s %s\n", r.name, r.seq)
	}
	return bw.Flush()
}

// ConvertPhylip converts the aligned FASTA file in to PHYLIP file out.
func ConvertPhylip(in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()
	o, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := WritePhylip(o, f); err != nil {
		_ = o.Close()
		return fmt.Errorf("phylip %s: %w", in, err)
	}
	return o.Close()
}
