// internal/clibase/examples.go
package clibase

// Examples shown in help, per command.
const (
	ExamplesExtract = `  rrna16 extract genomes/
  rrna16 extract 'data/*/*.gbff.gz' -o out --per-genome
  rrna16 extract genomes/ --annotate --cache rrna16.db --summary-format json`

	ExamplesRun = `  rrna16 run genomes/ -o out
  rrna16 run genomes/ --model HKY85 --bootstrap 1000
  rrna16 run genomes/ --no-tree`

	ExamplesAlign = `  rrna16 align out/16S_corpus.fasta -o out`

	ExamplesTree = `  rrna16 tree out/aligned_16S.fasta -o out --bootstrap 100`
)
