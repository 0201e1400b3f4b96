package app

import (
	"bytes"
	"testing"

	"rrna16/internal/config"
)

func TestNoMatchFollowsLoadedConfig(t *testing.T) {
	s := &state{}
	if got := s.noMatch(); got != config.DefaultNoMatchExitCode {
		t.Fatalf("before loading: got %d, want %d", got, config.DefaultNoMatchExitCode)
	}

	var stderr bytes.Buffer
	s = &state{stderr: &stderr}
	root := newRoot(s)
	if err := root.ParseFlags([]string{"--no-match-exit-code", "0", "-o", ""}); err != nil {
		t.Fatal(err)
	}
	if err := s.load(root, nil); err == nil {
		t.Fatal("empty output dir should fail validation")
	}
	if got := s.noMatch(); got != config.DefaultNoMatchExitCode {
		t.Errorf("failed load: got %d", got)
	}

	if err := root.ParseFlags([]string{"-o", t.TempDir()}); err != nil {
		t.Fatal(err)
	}
	if err := s.load(root, nil); err != nil {
		t.Fatal(err)
	}
	if got := s.noMatch(); got != 0 {
		t.Errorf("loaded --no-match-exit-code 0: got %d", got)
	}
}
