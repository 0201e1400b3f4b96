package collab

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"rrna16-core/genome"
)

// Collaborator names, as reported in failures.
const (
	NameAligner    = "mafft"
	NameTree       = "phyml"
	NameGeneFinder = "prokka"
)

// Fixed output names inside the output directory.
const (
	AlignedName = "aligned_16S.fasta"
	PhylipName  = "aligned_16S.phy"
	TreeName    = "tree_16S.nwk"
)

// Aligner runs the multiple-sequence aligner on the corpus.
type Aligner struct {
	Invoker Invoker
	Bin     string
	Args    []string
}

// Align writes <outDir>/aligned_16S.fasta from the corpus at in.
// An empty or missing corpus is rejected before the tool is started.
func (a Aligner) Align(ctx context.Context, in, outDir string) (string, error) {
	if err := nonEmpty(in); err != nil {
		return "", err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	out := filepath.Join(outDir, AlignedName)
	return a.Invoker.Invoke(ctx, NameAligner, []string{in}, Options{
		Bin:    a.Bin,
		Args:   a.Args,
		Stdout: out,
	})
}

// TreeBuilder runs the maximum-likelihood tree builder on an alignment.
type TreeBuilder struct {
	Invoker   Invoker
	Bin       string
	Model     string
	Bootstrap int
}

// Build converts the aligned FASTA at in to PHYLIP, runs the tree builder and
// moves the resulting tree to <outDir>/tree_16S.nwk.
func (t TreeBuilder) Build(ctx context.Context, in, outDir string) (string, error) {
	if err := nonEmpty(in); err != nil {
		return "", err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	phy := filepath.Join(outDir, PhylipName)
	if err := ConvertPhylip(in, phy); err != nil {
		return "", err
	}
	model := t.Model
	if model == "" {
		model = "GTR"
	}
	tree, err := t.Invoker.Invoke(ctx, NameTree, []string{phy}, Options{
		Bin:    t.Bin,
		Args:   []string{"-d", "nt", "-m", model, "-b", strconv.Itoa(t.Bootstrap), "-i"},
		Output: phy + "_phyml_tree.txt",
	})
	if err != nil {
		return "", err
	}
	dst := filepath.Join(outDir, TreeName)
	if err := os.Rename(tree, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// GeneFinder annotates a bare genome FASTA.
type GeneFinder struct {
	Invoker Invoker
	Bin     string
}

// Annotate runs the gene finder on fna with output under <outDir>/<id> and
// returns the GFF3 it wrote (sequence embedded after ##FASTA).
func (g GeneFinder) Annotate(ctx context.Context, fna, outDir, id string) (string, error) {
	dir := filepath.Join(outDir, id)
	return g.Invoker.Invoke(ctx, NameGeneFinder, []string{fna}, Options{
		Bin:    g.Bin,
		Args:   []string{"--force", "--quiet", "--prefix", id, "--outdir", dir},
		Output: filepath.Join(dir, id+".gff"),
	})
}

func nonEmpty(path string) error {
	st, err := os.Stat(path)
	if err != nil {
		return &genome.Error{Kind: genome.ErrSourceNotFound, Path: path, Err: err}
	}
	if st.Size() == 0 {
		return fmt.Errorf("%s: %w", path, genome.ErrEmptyCorpus)
	}
	return nil
}
