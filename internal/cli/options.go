// internal/cli/options.go
package cli

import (
	"github.com/spf13/pflag"
)

// Options holds command flags that are not configuration keys.
type Options struct {
	ConfigFile string
	NoTree     bool
}

// RegisterExtract adds the extraction flags to fs.
func RegisterExtract(fs *pflag.FlagSet) {
	fs.String("input-dir", "", "input root used when no paths are given")
	fs.String("corpus-name", "16S_corpus.fasta", "corpus file name inside the output directory")
	fs.String("cache", "", "bolt database caching per-genome results (empty = off)")
	fs.Bool("per-genome", false, "also write <out>/16S/<genome>_16S.fasta per genome")
	fs.Bool("annotate", false, "annotate bare FASTA genomes with the gene finder")
	fs.String("gene-finder", "prokka", "gene finder executable")
	fs.Bool("progress", false, "show a progress bar on stderr")
}

// RegisterAlign adds the aligner flags to fs.
func RegisterAlign(fs *pflag.FlagSet) {
	fs.String("aligner", "mafft", "aligner executable")
	fs.StringSlice("aligner-args", []string{"--auto"}, "aligner arguments placed before the corpus path")
}

// RegisterTree adds the tree builder flags to fs.
func RegisterTree(fs *pflag.FlagSet) {
	fs.String("tree-builder", "phyml", "tree builder executable")
	fs.String("model", "GTR", "nucleotide substitution model")
	fs.Int("bootstrap", 100, "bootstrap replicates (0 = none)")
}

// RegisterRun adds the options of the full pipeline command.
func RegisterRun(fs *pflag.FlagSet, o *Options) {
	RegisterExtract(fs)
	RegisterAlign(fs)
	RegisterTree(fs)
	fs.BoolVar(&o.NoTree, "no-tree", false, "stop after the alignment")
}
