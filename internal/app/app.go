// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rrna16/internal/appcore"
	"rrna16/internal/cli"
	"rrna16/internal/clibase"
	"rrna16/internal/cliutil"
	"rrna16/internal/collab"
	"rrna16/internal/config"
	"rrna16/internal/logging"
	"rrna16/internal/version"
	"rrna16/internal/writers"
	"rrna16/pkg/api"
)

const name = "rrna16"

// state is shared by the commands of one invocation.
type state struct {
	out    *bufio.Writer
	stderr io.Writer
	opts   cli.Options
	cfg    config.Config
	loaded bool
	env    appcore.Env
}

// load resolves the configuration for cmd: defaults, then the config file,
// then RRNA16_* environment variables, then flags given on the command line.
func (s *state) load(cmd *cobra.Command, _ []string) error {
	v := config.New()
	if err := clibase.Bind(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(v, s.opts.ConfigFile, ".")
	if err != nil {
		return &cliutil.UsageError{Err: err}
	}
	s.cfg = cfg
	s.loaded = true
	log := logging.New(s.stderr, cfg.Quiet)
	s.env = appcore.Env{
		Stderr: s.stderr,
		Log:    log,
		Invoker: collab.ExecInvoker{Trace: func(cmdline string) {
			log.Info.Printf("running %s", cmdline)
		}},
	}
	return nil
}

// summary writes s on stdout in the configured format. It is written even for
// a failed run once genomes were looked at.
func (s *state) summary(sum api.SummaryV1, runErr error) error {
	if runErr != nil && sum.GenomesTotal == 0 {
		return runErr
	}
	if err := writers.WriteSummary(s.cfg.SummaryFormat, s.out, sum); err != nil {
		return err
	}
	return runErr
}

func newRoot(s *state) *cobra.Command {
	root := &cobra.Command{
		Use:               name,
		Short:             "Extract 16S rRNA genes and build an alignment and phylogeny",
		Long:              clibase.Banner(name),
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: s.load,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cliutil.Usagef("unknown command %q for %q", args[0], name)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(cliutil.FlagError)
	root.SetVersionTemplate(name + " version {{.Version}}\n")
	clibase.RegisterCommon(root.PersistentFlags(), &s.opts.ConfigFile)

	extract := &cobra.Command{
		Use:     "extract [flags] <genome files|globs|dirs>...",
		Short:   "Extract 16S rRNA sequences into one FASTA corpus",
		Example: clibase.ExamplesExtract,
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := appcore.Extract(cmd.Context(), s.cfg, args, s.env)
			return s.summary(sum, err)
		},
	}
	cli.RegisterExtract(extract.Flags())

	run := &cobra.Command{
		Use:     "run [flags] <genome files|globs|dirs>...",
		Short:   "Extract, align and build the tree in one go",
		Example: clibase.ExamplesRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := appcore.Run(cmd.Context(), s.cfg, args, s.opts.NoTree, s.env)
			return s.summary(sum, err)
		},
	}
	cli.RegisterRun(run.Flags(), &s.opts)

	align := &cobra.Command{
		Use:     "align [flags] <corpus.fasta>",
		Short:   "Align an existing 16S corpus",
		Example: clibase.ExamplesAlign,
		Args:    cliutil.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := appcore.Align(cmd.Context(), s.cfg, args[0], s.env)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(s.out, out)
			return err
		},
	}
	cli.RegisterAlign(align.Flags())

	tree := &cobra.Command{
		Use:     "tree [flags] <alignment.fasta>",
		Short:   "Build a maximum-likelihood tree from an alignment",
		Example: clibase.ExamplesTree,
		Args:    cliutil.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := appcore.Tree(cmd.Context(), s.cfg, args[0], s.env)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(s.out, out)
			return err
		},
	}
	cli.RegisterTree(tree.Flags())

	ver := &cobra.Command{
		Use:               "version",
		Short:             "Print the version",
		Args:              cliutil.ExactArgs(0),
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(*cobra.Command, []string) error {
			_, err := fmt.Fprintf(s.out, "%s version %s\n", name, version.Version)
			return err
		},
	}

	root.AddCommand(extract, run, align, tree, ver)
	return root
}

// RunContext executes one command line and returns the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	s := &state{out: bufio.NewWriter(stdout), stderr: stderr}
	root := newRoot(s)
	root.SetArgs(argv)
	root.SetOut(s.out)
	root.SetErr(stderr)

	err := root.ExecuteContext(parent)
	if ferr := writers.Flush(s.out); ferr != nil && err == nil {
		err = ferr
	}
	if err == nil && parent.Err() != nil {
		err = parent.Err()
	}
	code := appcore.ExitCode(err, s.noMatch())
	if err != nil && !errors.Is(err, context.Canceled) && !writers.IsBrokenPipe(err) {
		_, _ = fmt.Fprintf(stderr, "%s: %v\n", name, err)
		var ue *cliutil.UsageError
		if errors.As(err, &ue) {
			_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", name)
		}
	}
	if writers.IsBrokenPipe(err) {
		return 0
	}
	return code
}

// noMatch is the exit code for an empty corpus, before or after config loading.
func (s *state) noMatch() int {
	if !s.loaded {
		return config.DefaultNoMatchExitCode
	}
	return s.cfg.NoMatchExitCode
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
