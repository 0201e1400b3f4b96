package extract

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"rrna16-core/genome"
)

func TestRevComp(t *testing.T) {
	cases := map[string]string{
		"":         "",
		"A":        "T",
		"ACGT":     "ACGT",
		"AACG":     "CGTT",
		"ACNGT":    "ACNGT",
		"AcgT":     "AgcT",
		"GATRYC":   "GYRATC",
		"TTTTGGGG": "CCCCAAAA",
	}
	for in, want := range cases {
		if got := string(RevComp([]byte(in))); got != want {
			t.Errorf("RevComp(%q) = %q, want %q", in, got, want)
		}
	}
}

func randomSeq(r *rand.Rand, n int) []byte {
	const alpha = "ACGTACGTACGTNRYacgt"
	b := make([]byte, n)
	for i := range b {
		b[i] = alpha[r.Intn(len(alpha))]
	}
	return b
}

func TestSlicePlusMatchesRange(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	g := genome.Record{ID: "c", Seq: randomSeq(r, 500)}
	for i := 0; i < 200; i++ {
		s := 1 + r.Intn(len(g.Seq))
		e := s + r.Intn(len(g.Seq)-s+1)
		got, err := Slice(g, genome.Feature{ContigID: "c", Start: s, End: e})
		if err != nil {
			t.Fatalf("%d..%d: %v", s, e, err)
		}
		if !bytes.Equal(got, g.Seq[s-1:e]) {
			t.Fatalf("%d..%d: got %q", s, e, got)
		}
	}
}

func TestSliceMinusRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	g := genome.Record{ID: "c", Seq: randomSeq(r, 300)}
	for i := 0; i < 200; i++ {
		s := 1 + r.Intn(len(g.Seq))
		e := s + r.Intn(len(g.Seq)-s+1)
		got, err := Slice(g, genome.Feature{ContigID: "c", Start: s, End: e, Strand: genome.Minus})
		if err != nil {
			t.Fatalf("%d..%d: %v", s, e, err)
		}
		if back := RevComp(RevComp(got)); !bytes.Equal(back, got) {
			t.Fatalf("double revcomp changed %q to %q", got, back)
		}
		if fwd := RevComp(got); !bytes.Equal(fwd, g.Seq[s-1:e]) {
			t.Fatalf("%d..%d: revcomp of minus slice %q is not the forward slice", s, e, fwd)
		}
	}
}

func TestSliceDoesNotAlias(t *testing.T) {
	g := genome.Record{ID: "c", Seq: []byte("ACGTACGT")}
	got, err := Slice(g, genome.Feature{Start: 1, End: 4})
	if err != nil {
		t.Fatal(err)
	}
	got[0] = 'N'
	if g.Seq[0] != 'A' {
		t.Fatal("slice aliases the genome sequence")
	}
}

func TestSliceOutOfRange(t *testing.T) {
	g := genome.Record{ID: "c", Seq: []byte("ACGTACGTAC"), SourcePath: "g.gbk"}
	for _, f := range []genome.Feature{
		{ContigID: "c", Start: 1, End: len(g.Seq) + 50},
		{ContigID: "c", Start: 0, End: 5},
		{ContigID: "c", Start: 7, End: 6},
	} {
		_, err := Slice(g, f)
		if !errors.Is(err, genome.ErrCoordinateOutOfRange) {
			t.Errorf("%v: want ErrCoordinateOutOfRange, got %v", f, err)
		}
	}
	_, err := Slice(g, genome.Feature{ContigID: "c", Start: 1, End: 60})
	var ge *genome.Error
	if !errors.As(err, &ge) || ge.Path != "g.gbk" || ge.End != 60 {
		t.Errorf("error lacks context: %v", err)
	}
}
