// internal/pipeline/annotator.go
package pipeline

import "context"

// Annotator is the minimal capability the pipeline needs for genomes that
// come without annotation. collab.GeneFinder satisfies it.
type Annotator interface {
	Annotate(ctx context.Context, fna, outDir, id string) (gffPath string, err error)
}
