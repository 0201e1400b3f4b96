// Package collab runs the external tools of the pipeline (aligner, tree
// builder, gene finder). Invoker is the only place that spawns processes.
package collab

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"rrna16-core/genome"
)

// Options describe one invocation.
type Options struct {
	Bin    string   // executable; defaults to the collaborator name
	Args   []string // placed before the input paths
	Dir    string   // working directory
	Stdout string   // if set, standard output is written to this file
	Output string   // file the tool is expected to produce; defaults to Stdout
}

// Invoker runs a named collaborator on inputs and returns the path of the
// file it produced.
type Invoker interface {
	Invoke(ctx context.Context, name string, inputs []string, opts Options) (string, error)
}

// Failure is a collaborator that exited non-zero or produced no output.
type Failure struct {
	Name     string
	ExitCode int
	Stderr   string
}

func (f *Failure) Error() string {
	msg := strings.TrimSpace(f.Stderr)
	if msg == "" {
		msg = "(no stderr)"
	}
	return fmt.Sprintf("%s: %s exited with status %d: %s", genome.ErrCollaboratorFailure, f.Name, f.ExitCode, msg)
}

func (f *Failure) Unwrap() error { return genome.ErrCollaboratorFailure }

// maxStderr bounds the captured standard error kept in a Failure.
const maxStderr = 8 << 10

// ExecInvoker runs collaborators with os/exec. No retries: a failure with the
// same input fails again.
type ExecInvoker struct {
	// Trace, if set, receives the command line of every invocation.
	Trace func(cmdline string)
}

func (e ExecInvoker) Invoke(ctx context.Context, name string, inputs []string, opts Options) (string, error) {
	bin := opts.Bin
	if bin == "" {
		bin = name
	}
	args := append(append([]string{}, opts.Args...), inputs...)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = opts.Dir

	stderr := new(bytes.Buffer)
	cmd.Stderr = stderr
	cmd.Stdout = io.Discard
	if opts.Stdout != "" {
		f, err := os.Create(opts.Stdout)
		if err != nil {
			return "", err
		}
		defer func() { _ = f.Close() }()
		cmd.Stdout = f
	}
	// A failed tool leaves no partial stdout file behind.
	discard := func() {
		if opts.Stdout != "" {
			_ = os.Remove(opts.Stdout)
		}
	}
	if e.Trace != nil {
		e.Trace(strings.Join(cmd.Args, " "))
	}

	if err := cmd.Run(); err != nil {
		discard()
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		fail := &Failure{Name: name, ExitCode: -1, Stderr: tail(stderr.String(), maxStderr)}
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			fail.ExitCode = ee.ExitCode()
		} else if fail.Stderr == "" {
			fail.Stderr = err.Error()
		}
		return "", fail
	}

	out := opts.Output
	if out == "" {
		out = opts.Stdout
	}
	if out == "" {
		return "", nil
	}
	if st, err := os.Stat(out); err != nil || st.Size() == 0 {
		discard()
		return "", &Failure{Name: name, ExitCode: 0, Stderr: fmt.Sprintf("expected output %s was not produced\n%s", out, tail(stderr.String(), maxStderr))}
	}
	return out, nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
