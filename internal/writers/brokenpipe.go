package writers

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether err comes from writing to a reader that went
// away (stdout piped into head, for example).
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// Flush flushes f, treating a broken pipe as success.
func Flush(f interface{ Flush() error }) error {
	if err := f.Flush(); err != nil && !IsBrokenPipe(err) {
		return err
	}
	return nil
}
