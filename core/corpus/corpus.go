// Package corpus collects extracted 16S sequences from many genomes into one
// FASTA corpus with traceable, collision-free headers.
package corpus

import (
	"fmt"
	"io"
	"sort"

	"rrna16-core/genome"
)

// Entry is one extracted sequence waiting to be written.
type Entry struct {
	GenomeID string         `json:"genome_id"`
	Feature  genome.Feature `json:"feature"`
	Bases    []byte         `json:"-"`
}

// Header returns the FASTA header (without '>') for e:
// {genome_id}_{contig_id}_{start}_{end}_16S.
func (e Entry) Header() string {
	return Header(e.GenomeID, e.Feature)
}

// Header builds the corpus header for feature f of genome genomeID.
func Header(genomeID string, f genome.Feature) string {
	return fmt.Sprintf("%s_%s_%d_%d_16S", genomeID, f.ContigID, f.Start, f.End)
}

// Less orders entries by genome, contig, start, end and strand.
func Less(a, b Entry) bool {
	if a.GenomeID != b.GenomeID {
		return a.GenomeID < b.GenomeID
	}
	if a.Feature.ContigID != b.Feature.ContigID {
		return a.Feature.ContigID < b.Feature.ContigID
	}
	if a.Feature.Start != b.Feature.Start {
		return a.Feature.Start < b.Feature.Start
	}
	if a.Feature.End != b.Feature.End {
		return a.Feature.End < b.Feature.End
	}
	return a.Feature.Strand < b.Feature.Strand
}

// Sort orders list in place with Less.
func Sort(list []Entry) {
	sort.Slice(list, func(i, j int) bool { return Less(list[i], list[j]) })
}

// Builder accumulates entries. The zero value is ready to use. A Builder is
// not safe for concurrent use; callers merge per-genome results themselves.
type Builder struct {
	entries []Entry
	headers map[string]struct{}
}

// Add appends one extracted sequence. A header already present in the corpus
// is an error and the entry is not added.
func (b *Builder) Add(genomeID string, f genome.Feature, bases []byte) error {
	if b.headers == nil {
		b.headers = make(map[string]struct{})
	}
	e := Entry{GenomeID: genomeID, Feature: f, Bases: bases}
	h := e.Header()
	if _, dup := b.headers[h]; dup {
		return fmt.Errorf("corpus: duplicate header %q", h)
	}
	b.headers[h] = struct{}{}
	b.entries = append(b.entries, e)
	return nil
}

// AddAll adds every entry in list, stopping at the first error.
func (b *Builder) AddAll(list []Entry) error {
	for _, e := range list {
		if err := b.Add(e.GenomeID, e.Feature, e.Bases); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of entries added.
func (b *Builder) Len() int { return len(b.entries) }

// Entries returns a sorted copy of the entries. Output order does not depend
// on the order of Add calls.
func (b *Builder) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	Sort(out)
	return out
}

// WriteFASTA writes the corpus, one header line and one sequence line per
// record. An empty corpus writes nothing and returns genome.ErrEmptyCorpus.
func (b *Builder) WriteFASTA(w io.Writer) error {
	if len(b.entries) == 0 {
		return genome.ErrEmptyCorpus
	}
	return WriteFASTA(w, b.Entries())
}

// WriteFASTA writes list as FASTA in the given order.
func WriteFASTA(w io.Writer, list []Entry) error {
	for _, e := range list {
		if _, err := fmt.Fprintf(w, ">%s\n%s\n", e.Header(), e.Bases); err != nil {
			return err
		}
	}
	return nil
}
