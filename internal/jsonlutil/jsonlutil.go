// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
)

// Start runs a goroutine that writes every value received on the returned
// channel as one JSON line on out. The caller closes the channel and then
// reads exactly one result from done.
//
// After the first encode or write error the goroutine keeps draining the
// channel so senders never block; the error is reported on done. Errors
// matched by ignore (a closed pipe, typically) are reported as nil.
func Start[T any](out io.Writer, bufSize int, ignore func(error) bool) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bufio.NewWriterSize(out, 64<<10)
		enc := json.NewEncoder(bw)
		enc.SetEscapeHTML(false)

		var err error
		for v := range in {
			if err == nil {
				err = enc.Encode(v)
			}
		}
		if err == nil {
			err = bw.Flush()
		}
		if err != nil && ignore != nil && ignore(err) {
			err = nil
		}
		done <- err
	}()
	return in, done
}
