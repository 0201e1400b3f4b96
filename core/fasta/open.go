// core/fasta/open.go
package fasta

import (
	"bufio"
	"compress/gzip"
	"errors"
	"io"
	"io/fs"
	"os"

	"rrna16-core/genome"
)

// gzipFile reads through a gzip stream and closes both layers.
type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g gzipFile) Close() error {
	err := g.Reader.Close()
	if ferr := closeFile(g.f); err == nil {
		err = ferr
	}
	return err
}

// bufferedFile peeks at the head of f without seeking.
type bufferedFile struct {
	*bufio.Reader
	f *os.File
}

func (b bufferedFile) Close() error { return closeFile(b.f) }

// closeFile leaves stdin open.
func closeFile(f *os.File) error {
	if f == os.Stdin {
		return nil
	}
	return f.Close()
}

// Open returns a reader over path. Compressed input is recognised by its gzip
// magic bytes, whatever the extension, so .gbff.gz and .gff.gz both work.
// "-" reads stdin. A missing file is reported as genome.ErrSourceNotFound.
func Open(path string) (io.ReadCloser, error) {
	var f *os.File
	if path == "-" {
		f = os.Stdin
	} else {
		var err error
		if f, err = os.Open(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, &genome.Error{Kind: genome.ErrSourceNotFound, Path: path, Err: err}
			}
			return nil, err
		}
	}
	br := bufio.NewReaderSize(f, 256<<10)
	if magic, _ := br.Peek(2); len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = closeFile(f)
			return nil, &genome.Error{Kind: genome.ErrSourceNotFound, Path: path, Err: err}
		}
		return gzipFile{Reader: gr, f: f}, nil
	}
	return bufferedFile{Reader: br, f: f}, nil
}
