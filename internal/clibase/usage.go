// internal/clibase/usage.go
package clibase

import (
	"fmt"

	"rrna16/internal/version"
)

// Banner is the long description of the root command.
func Banner(name string) string {
	return fmt.Sprintf(`%s – 16S rRNA corpus extraction and phylogeny driver

Extracts 16S ribosomal RNA genes from GenBank files or GFF3+FASTA pairs,
builds one combined FASTA corpus, then drives an external aligner (MAFFT)
and maximum-likelihood tree builder (PhyML).

Version: %s

Exit codes: 0 ok, 1 no 16S extracted (--no-match-exit-code), 2 usage,
3 runtime or external tool failure, 130 interrupted.`, name, version.Version)
}
