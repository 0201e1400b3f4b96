// internal/integration/helpers_test.go
package integration

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"rrna16/internal/app"
)

func init() { color.NoColor = true }

func synth(n int) string {
	const unit = "ACGTTGAC"
	return strings.Repeat(unit, n/len(unit)+1)[:n]
}

// gbk renders one GenBank record with the given (location, product) rRNA
// features.
func gbk(id, seq string, feats ...[2]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "LOCUS       %s %d bp    DNA     linear   BCT 01-JAN-2024\n", id, len(seq))
	fmt.Fprintf(&b, "VERSION     %s\n", id)
	b.WriteString("FEATURES             Location/Qualifiers\n")
	for _, f := range feats {
		fmt.Fprintf(&b, "     rRNA            %s\n", f[0])
		fmt.Fprintf(&b, "                     /product=\"%s\"\n", f[1])
	}
	b.WriteString("ORIGIN\n")
	for i := 0; i < len(seq); i += 60 {
		j := i + 60
		if j > len(seq) {
			j = len(seq)
		}
		fmt.Fprintf(&b, "%9d %s\n", i+1, strings.ToLower(seq[i:j]))
	}
	b.WriteString("//\n")
	return b.String()
}

func write(t *testing.T, fn, data string, perm os.FileMode) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(fn), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fn, []byte(data), perm); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

// genomes writes n GenBank genomes with one 16S gene each under dir.
func genomes(t *testing.T, dir string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		seq := synth(3000 + 10*i)
		write(t, filepath.Join(dir, fmt.Sprintf("g%02d.gbk", i)), gbk(fmt.Sprintf("NC_%d.1", i), seq,
			[2]string{"101..1600", "16S ribosomal RNA"},
			[2]string{"complement(1701..2900)", "23S ribosomal RNA"},
		), 0o644)
	}
}

func run(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(argv, &out, &errBuf)
	return code, out.String(), errBuf.String()
}
