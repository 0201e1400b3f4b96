package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rrna16-core/corpus"
	"rrna16-core/genome"
	"rrna16/pkg/api"
)

func TestFormats_Stable(t *testing.T) {
	if FormatText != "text" || FormatJSON != "json" || FormatJSONL != "jsonl" {
		t.Fatalf("output format constants changed")
	}
}

func sample() api.SummaryV1 {
	return api.SummaryV1{
		Version: 1, GenomesTotal: 2, GenomesProcessed: 1, GenomesFailed: 1,
		FeaturesSelected: 2, DuplicatesSkipped: 1, SequencesWritten: 2,
		ErrorsByKind: map[string]int{"source not found": 1, "coordinate out of range": 0},
		Length:       api.LengthStatsV1{Min: 1500, Max: 1540, Mean: 1520, Median: 1520},
		Genomes: []api.GenomeV1{
			{ID: "A", Format: "genbank", Selected: 2, Duplicates: 1, Written: 2},
			{ID: "B", Format: "gff", Error: "source not found:\tx.gff"},
		},
	}
}

func TestWriteSummaryText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummaryText(&buf, sample()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"genomes\t2\n",
		"duplicates_skipped\t1\n",
		"errors[coordinate out of range]\t0\nerrors[source not found]\t1\n",
		"length_median\t1520.0\n",
		GenomeTSVHeader + "\n",
		"A\tgenbank\t2\t1\t2\t0\tno\t-\n",
		"B\tgff\t0\t0\t0\t0\tno\tsource not found: x.gff\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
}

func TestWriteSummaryJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummaryJSON(&buf, sample()); err != nil {
		t.Fatal(err)
	}
	var back api.SummaryV1
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if back.Version != 1 || len(back.Genomes) != 2 || back.ErrorsByKind["source not found"] != 1 {
		t.Errorf("round trip lost data: %+v", back)
	}
}

func TestWritePerGenomeFASTA(t *testing.T) {
	var b corpus.Builder
	_ = b.Add("B", genome.Feature{ContigID: "c", Start: 1, End: 2}, []byte("AC"))
	_ = b.Add("A", genome.Feature{ContigID: "c", Start: 5, End: 6}, []byte("GG"))
	_ = b.Add("A", genome.Feature{ContigID: "c", Start: 1, End: 2}, []byte("TT"))
	dir := t.TempDir()
	paths, err := WritePerGenomeFASTA(dir, b.Entries())
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 || filepath.Base(paths[0]) != "A_16S.fasta" {
		t.Fatalf("paths = %v", paths)
	}
	got, _ := os.ReadFile(paths[0])
	if string(got) != ">A_c_1_2_16S\nTT\n>A_c_5_6_16S\nGG\n" {
		t.Errorf("A file = %q", got)
	}
}

func TestWriteCorpusFileEmpty(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out", "corpus.fasta")
	err := WriteCorpusFile(p, &corpus.Builder{})
	if !errors.Is(err, genome.ErrEmptyCorpus) {
		t.Fatalf("want ErrEmptyCorpus, got %v", err)
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Fatalf("empty corpus left a file behind")
	}
}
