package corpus

import (
	"bytes"
	"errors"
	"testing"

	"rrna16-core/genome"
)

func feat(contig string, s, e int, st genome.Strand) genome.Feature {
	return genome.Feature{ContigID: contig, Type: genome.RRNA, Start: s, End: e, Strand: st}
}

func TestHeader(t *testing.T) {
	got := Header("GCF_0001", feat("NZ_CP1.1", 100, 1600, genome.Minus))
	if got != "GCF_0001_NZ_CP1.1_100_1600_16S" {
		t.Fatalf("header = %q", got)
	}
}

func TestBuilderSortsAndWrites(t *testing.T) {
	var b Builder
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(b.Add("g2", feat("c1", 5, 9, genome.Plus), []byte("AAAAA")))
	must(b.Add("g1", feat("c2", 1, 3, genome.Plus), []byte("CCC")))
	must(b.Add("g1", feat("c1", 10, 12, genome.Minus), []byte("GGG")))
	must(b.Add("g1", feat("c1", 1, 4, genome.Plus), []byte("TTTT")))

	var buf bytes.Buffer
	must(b.WriteFASTA(&buf))
	want := ">g1_c1_1_4_16S\nTTTT\n" +
		">g1_c1_10_12_16S\nGGG\n" +
		">g1_c2_1_3_16S\nCCC\n" +
		">g2_c1_5_9_16S\nAAAAA\n"
	if buf.String() != want {
		t.Fatalf("corpus:\n%s\nwant:\n%s", buf.String(), want)
	}
	if b.Len() != 4 {
		t.Errorf("Len = %d", b.Len())
	}
}

func TestBuilderRejectsDuplicateHeader(t *testing.T) {
	var b Builder
	if err := b.Add("g", feat("c", 1, 10, genome.Plus), []byte("A")); err != nil {
		t.Fatal(err)
	}
	if err := b.Add("g", feat("c", 1, 10, genome.Minus), []byte("T")); err == nil {
		t.Fatal("expected duplicate header error")
	}
	if b.Len() != 1 {
		t.Fatalf("duplicate was added")
	}
}

func TestEmptyCorpus(t *testing.T) {
	var b Builder
	var buf bytes.Buffer
	if err := b.WriteFASTA(&buf); !errors.Is(err, genome.ErrEmptyCorpus) {
		t.Fatalf("want ErrEmptyCorpus, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("empty corpus wrote %q", buf.String())
	}
}
