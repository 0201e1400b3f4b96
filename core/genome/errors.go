package genome

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Per-feature and per-genome kinds are recovered by the caller;
// ErrEmptyCorpus and ErrCollaboratorFailure end a run.
var (
	ErrMalformedAnnotation  = errors.New("malformed annotation")
	ErrSourceNotFound       = errors.New("source not found")
	ErrCoordinateOutOfRange = errors.New("coordinate out of range")
	ErrEmptyCorpus          = errors.New("empty corpus")
	ErrCollaboratorFailure  = errors.New("collaborator failure")
)

// Kinds lists the error kinds in reporting order.
var Kinds = []error{
	ErrMalformedAnnotation,
	ErrSourceNotFound,
	ErrCoordinateOutOfRange,
	ErrEmptyCorpus,
	ErrCollaboratorFailure,
}

// Error carries enough context to reproduce a failure: the file and genome,
// plus the contig and coordinates when known.
type Error struct {
	Kind     error
	Path     string
	Line     int
	GenomeID string
	ContigID string
	Start    int
	End      int
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Path != "" {
		b.WriteString(": ")
		b.WriteString(e.Path)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
	}
	if e.GenomeID != "" {
		fmt.Fprintf(&b, " genome=%s", e.GenomeID)
	}
	if e.ContigID != "" {
		fmt.Fprintf(&b, " contig=%s", e.ContigID)
	}
	if e.Start != 0 || e.End != 0 {
		fmt.Fprintf(&b, " start=%d end=%d", e.Start, e.End)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the taxonomy kind of err, or nil if err is not classified.
func KindOf(err error) error {
	for _, k := range Kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Malformed builds an ErrMalformedAnnotation for path:line.
func Malformed(path string, line int, format string, args ...any) *Error {
	return &Error{Kind: ErrMalformedAnnotation, Path: path, Line: line, Err: fmt.Errorf(format, args...)}
}
