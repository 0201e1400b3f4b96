package integration

import (
	"context"
	"io"
	"testing"

	"rrna16/internal/app"
)

func TestCancelledRunExit130(t *testing.T) {
	in := t.TempDir()
	genomes(t, in, 8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := app.RunContext(ctx, []string{"extract", in, "-o", t.TempDir(), "-q"}, io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
}
