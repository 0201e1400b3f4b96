// internal/clibase/common.go
package clibase

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FlagKeys maps flag names to config keys. Flags not listed here are
// command options and never reach the config.
var FlagKeys = map[string]string{
	"input-dir":          "input_dir",
	"output-dir":         "output_dir",
	"corpus-name":        "corpus_name",
	"threads":            "threads",
	"cache":              "cache",
	"quiet":              "quiet",
	"progress":           "progress",
	"per-genome":         "per_genome",
	"annotate":           "annotate",
	"summary-format":     "summary_format",
	"no-match-exit-code": "no_match_exit_code",
	"aligner":            "align.bin",
	"aligner-args":       "align.args",
	"tree-builder":       "tree.bin",
	"model":              "tree.model",
	"bootstrap":          "tree.bootstrap",
	"gene-finder":        "genefinder.bin",
}

// RegisterCommon adds the flags shared by every command to fs (normally the
// root command's persistent flags). Defaults live in the config package;
// the zero values here only show up in help.
func RegisterCommon(fs *pflag.FlagSet, configFile *string) {
	fs.StringVar(configFile, "config", "", "config file (default ./rrna16.{yaml,toml,json} if present)")
	fs.StringP("output-dir", "o", "rrna16_out", "output directory")
	fs.IntP("threads", "t", 0, "worker threads (0=all CPUs)")
	fs.BoolP("quiet", "q", false, "suppress INFO messages")
	fs.String("summary-format", "text", "run summary on stdout: text | json | jsonl")
	fs.Int("no-match-exit-code", 1, "exit code when no 16S sequence is extracted")
}

// Bind makes every flag of fs listed in FlagKeys override its config key.
// A flag only takes effect when set on the command line.
func Bind(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := FlagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		err = v.BindPFlag(key, f)
	})
	return err
}
