// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"rrna16-core/corpus"
	"rrna16-core/extract"
	"rrna16-core/fasta"
	"rrna16-core/genbank"
	"rrna16-core/genome"
	"rrna16-core/gff"
	"rrna16-core/selector"
	"rrna16/internal/cache"
	"rrna16/internal/inputs"
	"rrna16/internal/logging"
)

// Config controls the extraction pipeline.
type Config struct {
	Threads       int    // worker goroutines; 0 = all CPUs
	Annotate      bool   // run the Annotator on bare FASTA genomes
	AnnotationDir string // where the Annotator writes
}

// Deps are the optional collaborators of a run. Nil fields are skipped.
type Deps struct {
	Cache     *cache.Cache
	Annotator Annotator
	Log       *logging.Logger
	Progress  func() // called once per finished genome
}

// Result is the outcome of one genome.
type Result struct {
	Genome    inputs.Genome
	Entries   []corpus.Entry
	Stats     selector.Stats
	Errors    []error        // recovered per-feature errors
	ErrCounts map[string]int // recovered errors by kind
	Err       error          // set when the genome was aborted
	Cached    bool
}

// KindName is the summary label of err's kind.
func KindName(err error) string {
	if k := genome.KindOf(err); k != nil {
		return k.Error()
	}
	return "other"
}

func (r *Result) recover(log *logging.Logger, err error) {
	var ge *genome.Error
	if errors.As(err, &ge) && ge.GenomeID == "" {
		ge.GenomeID = r.Genome.ID
	}
	r.Errors = append(r.Errors, err)
	r.ErrCounts[KindName(err)]++
	log.Warn.Printf("skipped: %v", err)
}

// Run processes genomes on a bounded worker pool. The returned slice is
// index-aligned with genomes. A genome failing with a per-genome error is
// recorded in its Result; Run itself fails only on cancellation or on a
// collaborator failure.
func Run(ctx context.Context, cfg Config, genomes []inputs.Genome, deps Deps) ([]Result, error) {
	if deps.Log == nil {
		deps.Log = logging.Discard()
	}
	thr := cfg.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	results := make([]Result, len(genomes))
	finished := make([]bool, len(genomes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(thr)
feed:
	for i := range genomes {
		select {
		case <-gctx.Done():
			break feed
		default:
		}
		i := i
		g.Go(func() error {
			r := ProcessGenome(gctx, cfg, genomes[i], deps)
			results[i] = r
			finished[i] = true
			if deps.Progress != nil {
				deps.Progress()
			}
			if errors.Is(r.Err, genome.ErrCollaboratorFailure) {
				return r.Err
			}
			return gctx.Err()
		})
	}
	err := g.Wait()
	if ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		// Genomes never started still get a row in the summary.
		for i := range results {
			if !finished[i] {
				results[i] = Result{Genome: genomes[i], ErrCounts: map[string]int{}, Err: context.Canceled}
			}
		}
	}
	return results, err
}

// ProcessGenome reads, selects and extracts the 16S sequences of one genome.
func ProcessGenome(ctx context.Context, cfg Config, in inputs.Genome, deps Deps) Result {
	log := deps.Log
	if log == nil {
		log = logging.Discard()
	}
	res := Result{Genome: in, ErrCounts: map[string]int{}}

	var fp string
	if deps.Cache != nil {
		var err error
		if fp, err = cache.Fingerprint(in.Paths()...); err == nil {
			if it, ok, err := deps.Cache.Get(in.ID, fp); err != nil {
				log.Warn.Printf("%v", err)
			} else if ok {
				log.Info.Printf("%s: unchanged since last run, using cached result", in.ID)
				return fromCache(in, it)
			}
		}
	}

	var sel *selector.Selector
	headers := map[string]genome.Feature{}
	emit := func(rec genome.Record, f genome.Feature) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if sel.Offer(f) != selector.Selected {
			return nil
		}
		// Opposite strands at one span share a header; the first one wins.
		h := corpus.Header(in.ID, f)
		if first, dup := headers[h]; dup {
			res.recover(log, &genome.Error{Kind: genome.ErrMalformedAnnotation, Path: in.Annotation, Line: f.Line,
				ContigID: f.ContigID, Start: f.Start, End: f.End,
				Err: fmt.Errorf("header %s already used by the feature on strand %s at line %d", h, first.Strand, first.Line)})
			return nil
		}
		bases, err := extract.Slice(rec, f)
		if err != nil {
			res.recover(log, err)
			return nil
		}
		headers[h] = f
		res.Entries = append(res.Entries, corpus.Entry{GenomeID: in.ID, Feature: f, Bases: bases})
		return nil
	}
	onErr := func(err error) { res.recover(log, err) }

	var err error
	switch in.Kind {
	case inputs.GenBank:
		sel = selector.New(selector.IsGenBank16S)
		err = genbank.Read(in.Annotation, emit, onErr)
	case inputs.GFF:
		sel = selector.New(selector.IsGFF16S)
		err = readGFF(in.Annotation, in.Sequence, emit, onErr)
	case inputs.FASTA:
		sel = selector.New(selector.IsGFF16S)
		if !cfg.Annotate || deps.Annotator == nil {
			err = &genome.Error{Kind: genome.ErrSourceNotFound, Path: in.Sequence,
				Err: errors.New("no annotation found (enable --annotate to run the gene finder)")}
			break
		}
		var gffPath string
		if gffPath, err = deps.Annotator.Annotate(ctx, in.Sequence, cfg.AnnotationDir, in.ID); err == nil {
			err = readGFF(gffPath, in.Sequence, emit, onErr)
		}
	default:
		err = fmt.Errorf("unknown input kind %v", in.Kind)
	}
	if sel != nil {
		res.Stats = sel.Stats()
	}

	if err != nil {
		var ge *genome.Error
		if errors.As(err, &ge) && ge.GenomeID == "" {
			ge.GenomeID = in.ID
		}
		res.Err = err
		if ctx.Err() == nil {
			log.Error.Printf("%s: genome skipped: %v", in.ID, err)
		}
		return res
	}
	if len(res.Entries) == 0 {
		log.Warn.Printf("%s: no 16S rRNA feature found", in.ID)
	}
	if deps.Cache != nil && fp != "" {
		if err := deps.Cache.Put(in.ID, toCache(fp, res)); err != nil {
			log.Warn.Printf("%v", err)
		}
	}
	return res
}

// readGFF resolves a GFF3 file against its companion FASTA, if any.
func readGFF(gffPath, seqPath string, emit genome.EmitFunc, onErr func(error)) error {
	var genomes map[string]genome.Record
	if seqPath != "" {
		recs, err := fasta.Load(seqPath)
		if err != nil {
			return err
		}
		genomes = fasta.Index(recs)
	}
	return gff.Read(gffPath, genomes, emit, onErr)
}

func toCache(fp string, r Result) cache.Item {
	it := cache.Item{
		Fingerprint: fp,
		Offered:     r.Stats.Offered,
		Selected:    r.Stats.Selected,
		Duplicates:  r.Stats.Duplicates,
		Errors:      r.ErrCounts,
	}
	for _, e := range r.Entries {
		f := e.Feature
		it.Entries = append(it.Entries, cache.Entry{
			ContigID: f.ContigID, Product: f.Product, Gene: f.Gene,
			Start: f.Start, End: f.End, Minus: f.Strand == genome.Minus, Bases: e.Bases,
		})
	}
	return it
}

func fromCache(in inputs.Genome, it cache.Item) Result {
	r := Result{
		Genome:    in,
		Stats:     selector.Stats{Offered: it.Offered, Selected: it.Selected, Duplicates: it.Duplicates},
		ErrCounts: map[string]int{},
		Cached:    true,
	}
	for k, v := range it.Errors {
		r.ErrCounts[k] = v
	}
	for _, e := range it.Entries {
		f := genome.Feature{
			ContigID: e.ContigID, Type: genome.RRNA, Product: e.Product, Gene: e.Gene,
			Start: e.Start, End: e.End, Strand: genome.Plus,
		}
		if e.Minus {
			f.Strand = genome.Minus
		}
		r.Entries = append(r.Entries, corpus.Entry{GenomeID: in.ID, Feature: f, Bases: e.Bases})
	}
	return r
}

// Collect merges per-genome entries into a corpus in result order.
func Collect(results []Result) (*corpus.Builder, error) {
	b := &corpus.Builder{}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if err := b.AddAll(r.Entries); err != nil {
			return nil, err
		}
	}
	return b, nil
}
