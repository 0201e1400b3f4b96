// internal/writers/jsonl.go
package writers

import (
	"io"

	"rrna16/internal/jsonlutil"
	"rrna16/pkg/api"
)

// StartGenomeJSONLWriter streams each per-genome row as one JSON line (v1).
func StartGenomeJSONLWriter(out io.Writer, bufSize int) (chan<- api.GenomeV1, <-chan error) {
	return jsonlutil.Start[api.GenomeV1](out, bufSize, IsBrokenPipe)
}
