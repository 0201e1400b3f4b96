// Package gff reads GFF3 feature tables and resolves them against genome
// sequences, either from a companion FASTA file or from an embedded ##FASTA
// section (as written by Prokka).
package gff

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"rrna16-core/fasta"
	"rrna16-core/genome"
)

// Column indexes of a GFF3 line.
const (
	colSeqID = iota
	colSource
	colType
	colStart
	colEnd
	colScore
	colStrand
	colPhase
	colAttributes
	numColumns
)

// Read parses the GFF3 file at path. See Scan.
func Read(path string, genomes map[string]genome.Record, emit genome.EmitFunc, onErr func(error)) error {
	rc, err := fasta.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()
	return Scan(rc, path, genomes, emit, onErr)
}

// Scan parses GFF3 from r and emits every feature with the contig named by its
// seqid column. Contigs are looked up in genomes first, then in the file's own
// ##FASTA section.
//
// Lines with fewer than 9 tab-separated columns or non-integer coordinates are
// reported to onErr as genome.ErrMalformedAnnotation and skipped. A seqid that
// cannot be resolved returns genome.ErrSourceNotFound.
func Scan(r io.Reader, path string, genomes map[string]genome.Record, emit genome.EmitFunc, onErr func(error)) error {
	if onErr == nil {
		onErr = func(error) {}
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)

	var (
		feats    []genome.Feature
		embedded bytes.Buffer
		inFasta  bool
		ln       int
	)
	for sc.Scan() {
		ln++
		line := sc.Text()
		if inFasta {
			embedded.WriteString(line)
			embedded.WriteByte('\n')
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "##FASTA") {
			inFasta = true
			continue
		}
		if line[0] == '>' {
			// FASTA without the directive; tolerated.
			inFasta = true
			embedded.WriteString(line)
			embedded.WriteByte('\n')
			continue
		}
		if line[0] == '#' {
			continue
		}
		f, err := ParseLine(line)
		if err != nil {
			onErr(genome.Malformed(path, ln, "%v", err))
			continue
		}
		f.Line = ln
		feats = append(feats, f)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("gff scan %s: %w", path, err)
	}

	var local map[string]genome.Record
	if embedded.Len() > 0 {
		recs, err := fasta.ReadAll(&embedded, path)
		if err != nil {
			return err
		}
		local = fasta.Index(recs)
	}
	for _, f := range feats {
		rec, ok := genomes[f.ContigID]
		if !ok {
			rec, ok = local[f.ContigID]
		}
		if !ok {
			return &genome.Error{Kind: genome.ErrSourceNotFound, Path: path, Line: f.Line, ContigID: f.ContigID,
				Err: fmt.Errorf("seqid %q not found in sequence data", f.ContigID)}
		}
		if err := emit(rec, f); err != nil {
			return err
		}
	}
	return nil
}

// ParseLine decodes one GFF3 feature line.
func ParseLine(line string) (genome.Feature, error) {
	var f genome.Feature
	cols := strings.Split(line, "\t")
	if len(cols) < numColumns {
		return f, fmt.Errorf("want %d tab-separated fields, got %d", numColumns, len(cols))
	}
	start, err := strconv.Atoi(strings.TrimSpace(cols[colStart]))
	if err != nil {
		return f, fmt.Errorf("bad start %q", cols[colStart])
	}
	end, err := strconv.Atoi(strings.TrimSpace(cols[colEnd]))
	if err != nil {
		return f, fmt.Errorf("bad end %q", cols[colEnd])
	}
	if start > end {
		return f, fmt.Errorf("start %d > end %d", start, end)
	}
	attrs := ParseAttributes(cols[colAttributes])
	f = genome.Feature{
		ContigID: cols[colSeqID],
		Type:     genome.ParseFeatureType(cols[colType]),
		Product:  attrs["product"],
		Gene:     attrs["gene"],
		Start:    start,
		End:      end,
		Strand:   genome.Plus,
	}
	if f.Gene == "" {
		f.Gene = attrs["Name"]
	}
	if strings.TrimSpace(cols[colStrand]) == "-" {
		f.Strand = genome.Minus
	}
	return f, nil
}

// ParseAttributes splits a column-9 blob ("k=v;k2=v2") into a map.
// Values are percent-decoded; a later duplicate key overwrites an earlier one.
func ParseAttributes(s string) map[string]string {
	m := map[string]string{}
	for _, kv := range strings.Split(s, ";") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if dec, err := url.PathUnescape(v); err == nil {
			v = dec
		}
		m[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return m
}
