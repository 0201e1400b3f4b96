// internal/appcore/core.go
package appcore

import (
	"context"
	"errors"
	"io"

	"gopkg.in/cheggaaa/pb.v1"

	"rrna16-core/genome"
	"rrna16/internal/cache"
	"rrna16/internal/cliutil"
	"rrna16/internal/collab"
	"rrna16/internal/config"
	"rrna16/internal/inputs"
	"rrna16/internal/logging"
	"rrna16/internal/output"
	"rrna16/internal/pipeline"
	"rrna16/pkg/api"
)

// Env carries the process-level dependencies of a command.
type Env struct {
	Stderr  io.Writer
	Log     *logging.Logger
	Invoker collab.Invoker
}

// Extract discovers genomes under args (or cfg.InputDir), extracts their 16S
// sequences and writes the corpus to cfg.CorpusPath(). The summary is
// returned even when err is non-nil, as long as genomes were processed. An
// empty corpus returns genome.ErrEmptyCorpus and writes no corpus file.
func Extract(ctx context.Context, cfg config.Config, args []string, env Env) (api.SummaryV1, error) {
	if len(args) == 0 {
		if cfg.InputDir == "" {
			return api.SummaryV1{}, cliutil.Usagef("no inputs: pass files, globs or directories, or set input_dir")
		}
		args = []string{cfg.InputDir}
	}
	genomes, err := inputs.Discover(args)
	if err != nil {
		return api.SummaryV1{}, cliutil.Usagef("%v", err)
	}
	env.Log.Info.Printf("found %d genome(s)", len(genomes))

	deps := pipeline.Deps{Log: env.Log}
	if cfg.Cache != "" {
		c, err := cache.Open(cfg.Cache)
		if err != nil {
			return api.SummaryV1{}, err
		}
		defer func() { _ = c.Close() }()
		deps.Cache = c
	}
	if cfg.Annotate {
		deps.Annotator = collab.GeneFinder{Invoker: env.Invoker, Bin: cfg.GeneFinder.Bin}
	}
	if cfg.Progress && len(genomes) > 0 {
		bar := pb.New(len(genomes)).Prefix("genomes ")
		bar.Output = env.Stderr
		bar.Start()
		defer bar.Finish()
		deps.Progress = func() { bar.Increment() }
	}

	results, err := pipeline.Run(ctx, pipeline.Config{
		Threads:       cfg.Threads,
		Annotate:      cfg.Annotate,
		AnnotationDir: cfg.AnnotationDir(),
	}, genomes, deps)
	if err != nil {
		return pipeline.Summarize(results, nil), err
	}

	b, err := pipeline.Collect(results)
	if err != nil {
		return pipeline.Summarize(results, nil), err
	}
	entries := b.Entries()
	sum := pipeline.Summarize(results, entries)

	if err := output.WriteCorpusFile(cfg.CorpusPath(), b); err != nil {
		if errors.Is(err, genome.ErrEmptyCorpus) {
			env.Log.Error.Printf("no 16S rRNA sequence extracted from %d genome(s); nothing to align", len(genomes))
		}
		return sum, err
	}
	sum.Corpus = cfg.CorpusPath()
	env.Log.Info.Printf("wrote %d sequence(s) to %s", len(entries), sum.Corpus)

	if cfg.PerGenome {
		paths, err := output.WritePerGenomeFASTA(cfg.PerGenomeDir(), entries)
		if err != nil {
			return sum, err
		}
		env.Log.Info.Printf("wrote %d per-genome file(s) to %s", len(paths), cfg.PerGenomeDir())
	}
	return sum, nil
}

// Align runs the aligner on the corpus at in.
func Align(ctx context.Context, cfg config.Config, in string, env Env) (string, error) {
	env.Log.Info.Printf("aligning %s", in)
	out, err := collab.Aligner{Invoker: env.Invoker, Bin: cfg.Align.Bin, Args: cfg.Align.Args}.Align(ctx, in, cfg.OutputDir)
	if err != nil {
		return "", err
	}
	env.Log.Info.Printf("alignment written to %s", out)
	return out, nil
}

// Tree runs the tree builder on the alignment at in.
func Tree(ctx context.Context, cfg config.Config, in string, env Env) (string, error) {
	env.Log.Info.Printf("building %s tree (%d bootstrap replicates) from %s", cfg.Tree.Model, cfg.Tree.Bootstrap, in)
	out, err := collab.TreeBuilder{
		Invoker:   env.Invoker,
		Bin:       cfg.Tree.Bin,
		Model:     cfg.Tree.Model,
		Bootstrap: cfg.Tree.Bootstrap,
	}.Build(ctx, in, cfg.OutputDir)
	if err != nil {
		return "", err
	}
	env.Log.Info.Printf("tree written to %s", out)
	return out, nil
}

// Run extracts the corpus, aligns it and, unless noTree, builds the tree.
// Collaborators are never started on an empty corpus.
func Run(ctx context.Context, cfg config.Config, args []string, noTree bool, env Env) (api.SummaryV1, error) {
	sum, err := Extract(ctx, cfg, args, env)
	if err != nil {
		return sum, err
	}
	if sum.Alignment, err = Align(ctx, cfg, sum.Corpus, env); err != nil {
		return sum, err
	}
	if noTree {
		return sum, nil
	}
	sum.Tree, err = Tree(ctx, cfg, sum.Alignment, env)
	return sum, err
}

// ExitCode maps a command error to the process exit code:
// 0 ok, noMatch for an empty corpus, 2 usage, 3 runtime, 130 cancelled.
func ExitCode(err error, noMatch int) int {
	var ue *cliutil.UsageError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	case errors.As(err, &ue):
		return 2
	case errors.Is(err, genome.ErrEmptyCorpus):
		return noMatch
	default:
		return 3
	}
}
