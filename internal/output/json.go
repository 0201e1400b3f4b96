// internal/output/json.go
package output

import (
	"encoding/json"
	"io"
	"sort"

	"rrna16/pkg/api"
)

// WriteSummaryJSON writes the summary as one indented JSON document (v1).
func WriteSummaryJSON(w io.Writer, s api.SummaryV1) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
