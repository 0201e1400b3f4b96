package genbank

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"rrna16-core/genome"
)

// synth returns n bases cycling through a fixed 7-mer so slices are easy to check.
func synth(n int) string {
	const unit = "ACGTTGA"
	var b strings.Builder
	for b.Len() < n {
		b.WriteString(unit)
	}
	return b.String()[:n]
}

// record renders a minimal GenBank record around a feature table.
func record(id, seq, table string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "LOCUS       %s %d bp    DNA     linear   BCT 01-JAN-2024\n", id, len(seq))
	fmt.Fprintf(&b, "ACCESSION   %s\n", strings.Split(id, ".")[0])
	fmt.Fprintf(&b, "VERSION     %s\n", id)
	b.WriteString("FEATURES             Location/Qualifiers\n")
	b.WriteString(table)
	b.WriteString("ORIGIN\n")
	low := strings.ToLower(seq)
	for i := 0; i < len(low); i += 60 {
		fmt.Fprintf(&b, "%9d", i+1)
		for j := i; j < i+60 && j < len(low); j += 10 {
			k := j + 10
			if k > len(low) {
				k = len(low)
			}
			b.WriteString(" " + low[j:k])
		}
		b.WriteString("\n")
	}
	b.WriteString("//\n")
	return b.String()
}

const twoRRNA = `     source          1..5000
                     /organism="Streptomyces sp."
     rRNA            100..1600
                     /product="16S ribosomal RNA"
     rRNA            2000..4500
                     /product="23S ribosomal RNA"
`

type hit struct {
	rec  genome.Record
	feat genome.Feature
}

func scan(t *testing.T, text string) ([]hit, []error, error) {
	t.Helper()
	var hits []hit
	var errs []error
	err := Scan(strings.NewReader(text), "mem.gbk", func(r genome.Record, f genome.Feature) error {
		hits = append(hits, hit{r, f})
		return nil
	}, func(e error) { errs = append(errs, e) })
	return hits, errs, err
}

func TestScanFeaturesAndSequence(t *testing.T) {
	seq := synth(5000)
	hits, errs, err := scan(t, record("NZ_CP000001.1", seq, twoRRNA))
	if err != nil || len(errs) != 0 {
		t.Fatalf("scan err=%v errs=%v", err, errs)
	}
	if len(hits) != 3 {
		t.Fatalf("want 3 features (source + 2 rRNA), got %d", len(hits))
	}
	f := hits[1].feat
	if f.Type != genome.RRNA || f.Product != "16S ribosomal RNA" || f.Start != 100 || f.End != 1600 || f.Strand != genome.Plus {
		t.Errorf("unexpected 16S feature: %+v", f)
	}
	if hits[0].feat.Type != genome.Other {
		t.Errorf("source should be OTHER, got %v", hits[0].feat.Type)
	}
	r := hits[1].rec
	if r.ID != "NZ_CP000001.1" || f.ContigID != r.ID {
		t.Errorf("record id = %q contig = %q", r.ID, f.ContigID)
	}
	if string(r.Seq) != seq {
		t.Errorf("ORIGIN sequence mismatch (len %d vs %d)", len(r.Seq), len(seq))
	}
}

func TestScanMultipleRecords(t *testing.T) {
	text := record("C1.1", synth(2000), "     rRNA            1..10\n                     /product=\"16S ribosomal RNA\"\n") +
		record("C2.1", synth(3000), "     rRNA            complement(20..30)\n                     /product=\"16S ribosomal RNA\"\n")
	hits, _, err := scan(t, text)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("want 2 hits, got %d", len(hits))
	}
	if hits[0].rec.ID != "C1.1" || hits[1].rec.ID != "C2.1" {
		t.Errorf("ids = %s, %s", hits[0].rec.ID, hits[1].rec.ID)
	}
	if hits[1].feat.Strand != genome.Minus || hits[1].rec.Len() != 3000 {
		t.Errorf("second record: %+v len=%d", hits[1].feat, hits[1].rec.Len())
	}
}

func TestScanMultilineQualifier(t *testing.T) {
	table := `     rRNA            complement(<5..>80)
                     /locus_tag="X_1"
                     /product="16S ribosomal
                     RNA"
                     /note="made by
                     /a tool"
`
	hits, errs, err := scan(t, record("C1.1", synth(100), table))
	if err != nil || len(errs) != 0 {
		t.Fatalf("scan err=%v errs=%v", err, errs)
	}
	f := hits[0].feat
	if f.Product != "16S ribosomal RNA" {
		t.Errorf("product = %q", f.Product)
	}
	if f.Start != 5 || f.End != 80 || f.Strand != genome.Minus {
		t.Errorf("location = %d..%d %v", f.Start, f.End, f.Strand)
	}
}

func TestScanJoinIsMalformedAndSkipped(t *testing.T) {
	table := `     rRNA            join(1..10,20..30)
                     /product="16S ribosomal RNA"
     rRNA            40..60
                     /product="16S ribosomal RNA"
`
	hits, errs, err := scan(t, record("C1.1", synth(100), table))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(hits) != 1 || hits[0].feat.Start != 40 {
		t.Fatalf("want only the 40..60 feature, got %+v", hits)
	}
	if len(errs) != 1 || !errors.Is(errs[0], genome.ErrMalformedAnnotation) {
		t.Fatalf("want one malformed error, got %v", errs)
	}
	if !strings.Contains(errs[0].Error(), "mem.gbk:") {
		t.Errorf("error should carry path:line, got %v", errs[0])
	}
}

func TestScanMissingOriginIsSourceNotFound(t *testing.T) {
	text := "LOCUS       C1 100 bp DNA\nFEATURES             Location/Qualifiers\n     rRNA            1..10\n//\n"
	_, _, err := scan(t, text)
	if !errors.Is(err, genome.ErrSourceNotFound) {
		t.Fatalf("want ErrSourceNotFound, got %v", err)
	}
}

func TestScanEmitErrorStops(t *testing.T) {
	stop := errors.New("stop")
	n := 0
	err := Scan(strings.NewReader(record("C1.1", synth(5000), twoRRNA)), "mem", func(genome.Record, genome.Feature) error {
		n++
		return stop
	}, nil)
	if !errors.Is(err, stop) || n != 1 {
		t.Fatalf("want stop after first emit, got err=%v n=%d", err, n)
	}
}

func TestParseLocation(t *testing.T) {
	cases := []struct {
		in     string
		start  int
		end    int
		strand genome.Strand
		bad    bool
	}{
		{"100..1600", 100, 1600, genome.Plus, false},
		{"complement(3..9)", 3, 9, genome.Minus, false},
		{"<1..>50", 1, 50, genome.Plus, false},
		{"42", 42, 42, genome.Plus, false},
		{"join(1..2,5..9)", 0, 0, 0, true},
		{"complement(join(1..2,5..9))", 0, 0, 0, true},
		{"AB000001.1:1..20", 0, 0, 0, true},
		{"10^11", 0, 0, 0, true},
		{"9..3", 0, 0, 0, true},
		{"x..9", 0, 0, 0, true},
		{"1..99999999999999999999999", 0, 0, 0, true},
		{"+5..9", 0, 0, 0, true},
	}
	for _, c := range cases {
		s, e, st, err := ParseLocation(c.in)
		if c.bad {
			if err == nil {
				t.Errorf("%q: expected error", c.in)
			}
			continue
		}
		if err != nil || s != c.start || e != c.end || st != c.strand {
			t.Errorf("%q: got %d..%d %v err=%v", c.in, s, e, st, err)
		}
	}
}
