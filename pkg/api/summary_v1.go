// pkg/api/summary_v1.go
package api

// SummaryV1 is the stable JSON schema of a run summary.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type SummaryV1 struct {
	Version           int            `json:"version"` // always 1
	GenomesTotal      int            `json:"genomes_total"`
	GenomesProcessed  int            `json:"genomes_processed"`
	GenomesFailed     int            `json:"genomes_failed"`
	GenomesWithout16S int            `json:"genomes_without_16s"`
	GenomesCached     int            `json:"genomes_cached,omitempty"`
	FeaturesSelected  int            `json:"features_selected"`
	DuplicatesSkipped int            `json:"duplicates_skipped"`
	SequencesWritten  int            `json:"sequences_written"`
	ErrorsByKind      map[string]int `json:"errors_by_kind"`
	Length            LengthStatsV1  `json:"length"`
	Genomes           []GenomeV1     `json:"genomes"`

	Corpus    string `json:"corpus,omitempty"`
	Alignment string `json:"alignment,omitempty"`
	Tree      string `json:"tree,omitempty"`
}

// LengthStatsV1 describes the lengths of the written 16S sequences.
type LengthStatsV1 struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// GenomeV1 is one per-genome row of a summary.
type GenomeV1 struct {
	ID         string `json:"id"`
	Format     string `json:"format"` // "genbank" | "gff" | "fasta"
	Path       string `json:"path"`
	Selected   int    `json:"selected"`
	Duplicates int    `json:"duplicates"`
	Written    int    `json:"written"`
	Skipped    int    `json:"skipped,omitempty"` // recovered per-feature errors
	Cached     bool   `json:"cached,omitempty"`
	Error      string `json:"error,omitempty"`
}
