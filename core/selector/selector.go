// Package selector picks 16S rRNA features out of an annotation stream.
//
// Matching is exact on a normalized field. "16S" appearing somewhere in a
// product such as "16S rRNA (guanine(527)-N(7))-methyltransferase RsmG" is not
// enough: those are proteins that act on the 16S gene, not the gene itself.
package selector

import (
	"strings"

	"rrna16-core/genome"
)

// Product16S is the normalized product annotation of a 16S rRNA gene.
const Product16S = "16s ribosomal rna"

// Gene16S is the gene-name value that marks a 16S rRNA feature in GFF3.
const Gene16S = "16s"

// MatchFunc decides whether a feature is a 16S rRNA gene.
type MatchFunc func(genome.Feature) bool

// Normalize lower-cases s, trims it and collapses internal whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// IsGenBank16S matches rRNA features whose /product is exactly
// "16S ribosomal RNA", ignoring case and surrounding whitespace.
func IsGenBank16S(f genome.Feature) bool {
	return f.Type == genome.RRNA && Normalize(f.Product) == Product16S
}

// IsGFF16S matches rRNA features whose gene-name attribute is exactly "16S".
// The product rule of IsGenBank16S is accepted too, since NCBI GFF3 carries
// the name only in product=.
func IsGFF16S(f genome.Feature) bool {
	if f.Type != genome.RRNA {
		return false
	}
	return Normalize(f.Gene) == Gene16S || Normalize(f.Product) == Product16S
}

// Key identifies a feature position within one genome.
type Key struct {
	ContigID   string
	Start, End int
	Strand     genome.Strand
}

// KeyOf returns the dedup key of f.
func KeyOf(f genome.Feature) Key {
	return Key{ContigID: f.ContigID, Start: f.Start, End: f.End, Strand: f.Strand}
}

// Decision is the outcome of offering one feature.
type Decision int

const (
	Rejected Decision = iota
	Selected
	Duplicate
)

func (d Decision) String() string {
	switch d {
	case Selected:
		return "selected"
	case Duplicate:
		return "duplicate"
	default:
		return "rejected"
	}
}

// Stats counts decisions made by a Selector.
type Stats struct {
	Offered    int `json:"offered"`
	Selected   int `json:"selected"`
	Duplicates int `json:"duplicates"`
}

// Selector applies a MatchFunc and drops repeated coordinates. It is scoped to
// one genome and is not safe for concurrent use.
type Selector struct {
	match MatchFunc
	seen  map[Key]struct{}
	stats Stats
}

// New returns a Selector using match.
func New(match MatchFunc) *Selector {
	return &Selector{match: match, seen: make(map[Key]struct{})}
}

// Offer classifies f. A matching feature at a position already selected is a
// Duplicate, not an error.
func (s *Selector) Offer(f genome.Feature) Decision {
	s.stats.Offered++
	if !s.match(f) {
		return Rejected
	}
	k := KeyOf(f)
	if _, dup := s.seen[k]; dup {
		s.stats.Duplicates++
		return Duplicate
	}
	s.seen[k] = struct{}{}
	s.stats.Selected++
	return Selected
}

// Stats returns the counts so far.
func (s *Selector) Stats() Stats { return s.stats }
