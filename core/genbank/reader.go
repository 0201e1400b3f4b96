// Package genbank reads GenBank flat files (.gb, .gbk, .gbff) into contig
// records and their feature tables.
package genbank

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"rrna16-core/fasta"
	"rrna16-core/genome"
)

// Column layout of the feature table.
const (
	keyCol   = 5
	valueCol = 21
)

// Read scans the GenBank file at path. See Scan.
func Read(path string, emit genome.EmitFunc, onErr func(error)) error {
	rc, err := fasta.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()
	return Scan(rc, path, emit, onErr)
}

type pending struct {
	feat     genome.Feature
	key      string
	location string
	quals    map[string]string
	open     string // qualifier whose quoted value is still open
	locDone  bool
}

// Scan parses every LOCUS record in r. Features of a record are emitted once
// the record's sequence has been read (the ORIGIN block follows the feature
// table), in file order.
//
// A feature with an unusable location is reported to onErr as
// genome.ErrMalformedAnnotation and skipped. A record that has features but no
// sequence ends the scan with genome.ErrSourceNotFound.
func Scan(r io.Reader, path string, emit genome.EmitFunc, onErr func(error)) error {
	if onErr == nil {
		onErr = func(error) {}
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	const (
		header = iota
		features
		origin
	)

	var (
		ln      int
		state   = header
		inRec   bool
		rec     genome.Record
		locus   string
		feats   []*pending
		cur     *pending
		seq     = make([]byte, 0, 1<<20)
		nRecord int
	)

	reset := func() {
		state = header
		rec = genome.Record{SourcePath: path}
		locus = ""
		feats = feats[:0]
		cur = nil
		seq = seq[:0]
	}

	flush := func() error {
		if !inRec {
			return nil
		}
		inRec = false
		nRecord++
		if rec.ID == "" {
			rec.ID = locus
		}
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("record%d", nRecord)
		}
		if len(feats) > 0 && len(seq) == 0 {
			return &genome.Error{Kind: genome.ErrSourceNotFound, Path: path, GenomeID: rec.ID,
				Err: fmt.Errorf("record %s has no ORIGIN sequence", rec.ID)}
		}
		rec.Seq = append([]byte(nil), seq...)
		for _, p := range feats {
			f, err := p.finish(rec.ID)
			if err != nil {
				onErr(genome.Malformed(path, p.feat.Line, "%s %s: %v", p.key, p.location, err))
				continue
			}
			if err := emit(rec, f); err != nil {
				return err
			}
		}
		return nil
	}

	reset()
	for sc.Scan() {
		ln++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, "//") {
			if err := flush(); err != nil {
				return err
			}
			reset()
			continue
		}
		if strings.HasPrefix(line, "LOCUS") {
			if err := flush(); err != nil {
				return err
			}
			reset()
			inRec = true
			if f := strings.Fields(line); len(f) > 1 {
				locus = f[1]
			}
			continue
		}
		if !inRec {
			continue
		}

		// Any keyword in column 0 closes the feature table.
		if line[0] != ' ' {
			kw := line
			if i := strings.IndexByte(line, ' '); i >= 0 {
				kw = line[:i]
			}
			switch kw {
			case "FEATURES":
				state = features
			case "ORIGIN":
				state = origin
			case "VERSION":
				if f := strings.Fields(line); len(f) > 1 {
					rec.ID = f[1]
				}
				state = header
			case "ACCESSION":
				if f := strings.Fields(line); len(f) > 1 && rec.ID == "" {
					rec.ID = f[1]
				}
				state = header
			default:
				state = header
			}
			continue
		}

		switch state {
		case origin:
			seq = appendBases(seq, line)
		case features:
			if len(line) > keyCol && line[keyCol] != ' ' {
				rest := strings.Fields(line[keyCol:])
				if len(rest) == 0 {
					continue
				}
				cur = &pending{
					key:   rest[0],
					quals: map[string]string{},
					feat:  genome.Feature{Line: ln, Type: genome.ParseFeatureType(rest[0])},
				}
				cur.location = strings.Join(rest[1:], "")
				feats = append(feats, cur)
				continue
			}
			if cur == nil {
				onErr(genome.Malformed(path, ln, "qualifier outside a feature"))
				continue
			}
			text := strings.TrimSpace(line)
			if len(line) > valueCol {
				text = strings.TrimRight(line[valueCol:], " ")
			}
			cur.add(text)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("genbank scan %s: %w", path, err)
	}
	return flush()
}

// add folds one feature-table line into the pending feature.
func (p *pending) add(text string) {
	switch {
	case p.open != "":
		p.quals[p.open] += " " + strings.TrimSpace(text)
		if strings.HasSuffix(text, `"`) {
			p.open = ""
		}
	case strings.HasPrefix(text, "/"):
		p.locDone = true
		name, val, hasVal := strings.Cut(text[1:], "=")
		if !hasVal {
			p.quals[name] = ""
			return
		}
		p.quals[name] = val
		if strings.HasPrefix(val, `"`) && (len(val) == 1 || !strings.HasSuffix(val, `"`)) {
			p.open = name
		}
	case !p.locDone:
		p.location += strings.TrimSpace(text)
	}
}

func (p *pending) finish(contig string) (genome.Feature, error) {
	f := p.feat
	f.ContigID = contig
	f.Product = unquote(p.quals["product"])
	f.Gene = unquote(p.quals["gene"])
	start, end, strand, err := ParseLocation(p.location)
	if err != nil {
		return f, err
	}
	f.Start, f.End, f.Strand = start, end, strand
	return f, nil
}

// ParseLocation decodes a simple GenBank location: "a..b", "a",
// "complement(a..b)", with optional partial markers '<' and '>'.
// Split locations (join/order), remote references and between-base sites
// cannot be represented by one span and are rejected.
func ParseLocation(loc string) (start, end int, strand genome.Strand, err error) {
	s := strings.TrimSpace(loc)
	strand = genome.Plus
	if strings.HasPrefix(s, "complement(") && strings.HasSuffix(s, ")") {
		strand = genome.Minus
		s = s[len("complement(") : len(s)-1]
	}
	if strings.ContainsAny(s, "(),:^") {
		return 0, 0, strand, fmt.Errorf("unsupported location %q", loc)
	}
	a, b, ok := strings.Cut(s, "..")
	if !ok {
		b = a
	}
	if start, err = atoiPartial(a); err != nil {
		return 0, 0, strand, err
	}
	if end, err = atoiPartial(b); err != nil {
		return 0, 0, strand, err
	}
	if start < 1 || start > end {
		return 0, 0, strand, fmt.Errorf("bad span %d..%d", start, end)
	}
	return start, end, strand, nil
}

func atoiPartial(s string) (int, error) {
	s = strings.TrimLeft(s, "<>")
	if s == "" {
		return 0, fmt.Errorf("empty coordinate")
	}
	if s[0] < '0' || s[0] > '9' {
		return 0, fmt.Errorf("non-integer coordinate %q", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad coordinate %q", s)
	}
	return n, nil
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.Join(strings.Fields(s), " ")
}

// appendBases copies the letters of an ORIGIN line, skipping the position
// column and spacing. Bases are upper-cased.
func appendBases(dst []byte, line string) []byte {
	for _, c := range []byte(line) {
		switch {
		case c >= 'a' && c <= 'z':
			dst = append(dst, c-'a'+'A')
		case c >= 'A' && c <= 'Z', c == '-', c == '*':
			dst = append(dst, c)
		}
	}
	return dst
}
