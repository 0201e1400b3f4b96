// core/genome/genome.go
package genome

import "fmt"

// FeatureType is the annotated kind of a feature. Only RRNA matters downstream.
type FeatureType int

const (
	Other FeatureType = iota
	RRNA
)

func (t FeatureType) String() string {
	if t == RRNA {
		return "rRNA"
	}
	return "other"
}

// ParseFeatureType maps a GenBank feature key or GFF type column to a FeatureType.
func ParseFeatureType(s string) FeatureType {
	if s == "rRNA" {
		return RRNA
	}
	return Other
}

// Strand of a feature relative to the contig sequence.
type Strand int

const (
	Plus Strand = iota
	Minus
)

func (s Strand) String() string {
	if s == Minus {
		return "-"
	}
	return "+"
}

// Record is one sequenced contig. Seq is never mutated after loading.
type Record struct {
	ID         string `json:"id"`
	Seq        []byte `json:"-"`
	SourcePath string `json:"source_path"`
}

// Len returns the number of bases in the record.
func (r Record) Len() int { return len(r.Seq) }

// Feature is one annotated region. Start and End are 1-based inclusive,
// exactly as written in the annotation file.
type Feature struct {
	ContigID string      `json:"contig_id"`
	Type     FeatureType `json:"-"`
	Product  string      `json:"product,omitempty"`
	Gene     string      `json:"gene,omitempty"`
	Start    int         `json:"start"`
	End      int         `json:"end"`
	Strand   Strand      `json:"-"`

	// Line is the 1-based line in the annotation file where the feature begins.
	Line int `json:"-"`
}

// Length is the inclusive span of the feature in bases.
func (f Feature) Length() int { return f.End - f.Start + 1 }

func (f Feature) String() string {
	return fmt.Sprintf("%s:%d-%d(%s)", f.ContigID, f.Start, f.End, f.Strand)
}

// EmitFunc receives one feature together with the contig that owns it.
// Annotation readers stop and return the error if EmitFunc fails.
type EmitFunc func(Record, Feature) error
