package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"rrna16-core/corpus"
)

// PerGenomeFileName is the name of a genome's own 16S FASTA file.
func PerGenomeFileName(genomeID string) string {
	return genomeID + "_16S.fasta"
}

// WritePerGenomeFASTA writes one FASTA file per genome into dir. list must be
// sorted by genome (corpus.Builder.Entries is). It returns the paths written.
func WritePerGenomeFASTA(dir string, list []corpus.Entry) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var paths []string
	for i := 0; i < len(list); {
		j := i
		for j < len(list) && list[j].GenomeID == list[i].GenomeID {
			j++
		}
		p := filepath.Join(dir, PerGenomeFileName(list[i].GenomeID))
		if err := writeFASTAFile(p, list[i:j]); err != nil {
			return paths, err
		}
		paths = append(paths, p)
		i = j
	}
	return paths, nil
}

// WriteCorpusFile writes the corpus to path. An empty corpus leaves no file
// behind and returns genome.ErrEmptyCorpus.
func WriteCorpusFile(path string, b *corpus.Builder) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := b.WriteFASTA(bw); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func writeFASTAFile(path string, list []corpus.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := corpus.WriteFASTA(bw, list); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
