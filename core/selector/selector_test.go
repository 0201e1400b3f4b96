package selector

import (
	"testing"

	"rrna16-core/genome"
)

func rrna(product string) genome.Feature {
	return genome.Feature{ContigID: "c", Type: genome.RRNA, Product: product, Start: 1, End: 10}
}

func TestIsGenBank16S(t *testing.T) {
	cases := []struct {
		f    genome.Feature
		want bool
	}{
		{rrna("16S ribosomal RNA"), true},
		{rrna("  16s   Ribosomal rna "), true},
		{rrna("23S ribosomal RNA"), false},
		{rrna("16S rRNA methyltransferase"), false},
		{rrna("16S ribosomal RNA methyltransferase RsmE"), false},
		{rrna("16S"), false},
		{genome.Feature{Type: genome.Other, Product: "16S ribosomal RNA"}, false},
	}
	for _, c := range cases {
		if got := IsGenBank16S(c.f); got != c.want {
			t.Errorf("IsGenBank16S(%q, %v) = %v, want %v", c.f.Product, c.f.Type, got, c.want)
		}
	}
}

func TestIsGFF16S(t *testing.T) {
	cases := []struct {
		f    genome.Feature
		want bool
	}{
		{genome.Feature{Type: genome.RRNA, Gene: "16S"}, true},
		{genome.Feature{Type: genome.RRNA, Gene: " 16s "}, true},
		{genome.Feature{Type: genome.RRNA, Gene: "16S_rRNA"}, false},
		{genome.Feature{Type: genome.RRNA, Gene: "rsmG", Product: "16S rRNA methyltransferase"}, false},
		{genome.Feature{Type: genome.RRNA, Product: "16S ribosomal RNA"}, true},
		{genome.Feature{Type: genome.Other, Gene: "16S"}, false},
	}
	for _, c := range cases {
		if got := IsGFF16S(c.f); got != c.want {
			t.Errorf("IsGFF16S(%+v) = %v, want %v", c.f, got, c.want)
		}
	}
}

func TestSelectorDedup(t *testing.T) {
	s := New(IsGenBank16S)
	a := rrna("16S ribosomal RNA")
	b := a
	b.Line = 99 // same coordinates, different annotation line
	c := a
	c.Strand = genome.Minus

	got := []Decision{s.Offer(a), s.Offer(b), s.Offer(c), s.Offer(rrna("23S ribosomal RNA"))}
	want := []Decision{Selected, Duplicate, Selected, Rejected}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("offer %d = %v, want %v", i, got[i], want[i])
		}
	}
	st := s.Stats()
	if st.Offered != 4 || st.Selected != 2 || st.Duplicates != 1 {
		t.Errorf("stats = %+v", st)
	}
}
