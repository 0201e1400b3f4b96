// Package inputs discovers genome inputs under files, globs and directories
// and assigns each genome a stable, unique ID.
package inputs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rrna16/internal/cliutil"
)

// Kind is the annotation source of a genome.
type Kind int

const (
	GenBank Kind = iota
	GFF
	FASTA // bare sequence; needs the gene finder
)

func (k Kind) String() string {
	switch k {
	case GenBank:
		return "genbank"
	case GFF:
		return "gff"
	default:
		return "fasta"
	}
}

// Genome is one unit of work. Annotation is the GenBank or GFF path; Sequence
// is the FASTA path paired with a GFF, or the bare FASTA for Kind FASTA.
type Genome struct {
	ID         string
	Kind       Kind
	Annotation string
	Sequence   string
}

// Paths lists every file the genome is read from.
func (g Genome) Paths() []string {
	var out []string
	if g.Annotation != "" {
		out = append(out, g.Annotation)
	}
	if g.Sequence != "" {
		out = append(out, g.Sequence)
	}
	return out
}

var (
	genbankExt = []string{".gbff", ".gbk", ".gb", ".genbank"}
	gffExt     = []string{".gff3", ".gff"}
	fastaExt   = []string{".fasta", ".fna", ".fas", ".fa"}
)

// Classify reports the kind of a file from its name and the name with the
// annotation extension stripped. ok is false for unrelated files.
func Classify(path string) (k Kind, stem string, ok bool) {
	name := filepath.Base(path)
	if hasSuffixFold(name, ".gz") {
		name = name[:len(name)-len(".gz")]
	}
	for _, set := range []struct {
		kind Kind
		exts []string
	}{{GenBank, genbankExt}, {GFF, gffExt}, {FASTA, fastaExt}} {
		for _, ext := range set.exts {
			if hasSuffixFold(name, ext) {
				return set.kind, name[:len(name)-len(ext)], true
			}
		}
	}
	return 0, "", false
}

// hasSuffixFold is strings.HasSuffix ignoring ASCII case. Only the suffix
// bytes are compared, so the stem keeps its original bytes.
func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}

type file struct {
	path string
	kind Kind
	stem string
}

// Discover expands globs in args, walks directories recursively and returns
// the genomes found, sorted by ID.
//
// Within one directory a GFF and a FASTA file with the same stem form one
// genome. A GFF without a FASTA partner is kept (its sequence may be embedded).
// A FASTA without a GFF becomes Kind FASTA. GenBank files stand alone.
func Discover(args []string) ([]Genome, error) {
	paths, err := cliutil.ExpandPositionals(args)
	if err != nil {
		return nil, err
	}
	byDir := map[string][]file{}
	seen := map[string]bool{}
	add := func(p string) {
		k, stem, ok := Classify(p)
		if !ok {
			return
		}
		abs, err := filepath.Abs(p)
		if err == nil {
			if seen[abs] {
				return
			}
			seen[abs] = true
		}
		dir := filepath.Dir(p)
		byDir[dir] = append(byDir[dir], file{path: p, kind: k, stem: stem})
	}
	for _, p := range paths {
		st, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", p, err)
		}
		if !st.IsDir() {
			if _, _, ok := Classify(p); !ok {
				return nil, fmt.Errorf("input %s: not a GenBank, GFF or FASTA file", p)
			}
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	var out []Genome
	for _, files := range byDir {
		out = append(out, pair(files)...)
	}
	assignIDs(out)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// pair groups the files of one directory into genomes.
func pair(files []file) []Genome {
	sort.Slice(files, func(i, j int) bool { return files[i].path < files[j].path })
	gffs := map[string]int{}
	var out []Genome
	for _, f := range files {
		switch f.kind {
		case GenBank:
			out = append(out, Genome{ID: f.stem, Kind: GenBank, Annotation: f.path})
		case GFF:
			gffs[f.stem] = len(out)
			out = append(out, Genome{ID: f.stem, Kind: GFF, Annotation: f.path})
		}
	}
	for _, f := range files {
		if f.kind != FASTA {
			continue
		}
		if i, ok := gffs[f.stem]; ok && out[i].Sequence == "" {
			out[i].Sequence = f.path
			continue
		}
		out = append(out, Genome{ID: f.stem, Kind: FASTA, Sequence: f.path})
	}
	return out
}

// assignIDs makes IDs unique. Colliding IDs are prefixed with their parent
// directory name; anything still colliding gets a numeric suffix.
func assignIDs(gs []Genome) {
	count := map[string]int{}
	for _, g := range gs {
		count[g.ID]++
	}
	for i := range gs {
		if count[gs[i].ID] > 1 {
			parent := filepath.Base(filepath.Dir(gs[i].Paths()[0]))
			gs[i].ID = parent + "_" + gs[i].ID
		}
	}
	sort.SliceStable(gs, func(i, j int) bool { return gs[i].Paths()[0] < gs[j].Paths()[0] })
	used := map[string]int{}
	for i := range gs {
		id := gs[i].ID
		used[id]++
		if n := used[id]; n > 1 {
			gs[i].ID = fmt.Sprintf("%s_%d", id, n)
		}
	}
}
