package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPutGetFingerprint(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(filepath.Join(dir, "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	in := filepath.Join(dir, "g.gbk")
	if err := os.WriteFile(in, []byte("LOCUS"), 0o644); err != nil {
		t.Fatal(err)
	}
	fp, err := Fingerprint(in)
	if err != nil {
		t.Fatal(err)
	}
	item := Item{
		Fingerprint: fp,
		Offered:     3,
		Selected:    1,
		Errors:      map[string]int{"malformed annotation": 2},
		Entries:     []Entry{{ContigID: "c1", Start: 5, End: 9, Minus: true, Bases: []byte("ACGTA")}},
	}
	if err := c.Put("g", item); err != nil {
		t.Fatal(err)
	}

	got, ok, err := c.Get("g", fp)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(got.Entries) != 1 || string(got.Entries[0].Bases) != "ACGTA" || !got.Entries[0].Minus {
		t.Errorf("entries = %+v", got.Entries)
	}
	if got.Errors["malformed annotation"] != 2 || got.Selected != 1 {
		t.Errorf("item = %+v", got)
	}

	if _, ok, _ := c.Get("g", fp+"x"); ok {
		t.Error("stale fingerprint should miss")
	}
	if _, ok, _ := c.Get("other", fp); ok {
		t.Error("unknown genome should miss")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d", c.Len())
	}
}

func TestFingerprintMissingFile(t *testing.T) {
	if _, err := Fingerprint(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error")
	}
}
