// Package config resolves run settings from defaults, an optional config file,
// RRNA16_* environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"rrna16/internal/output"
)

// EnvPrefix is the environment variable prefix (RRNA16_THREADS, RRNA16_TREE_MODEL, ...).
const EnvPrefix = "RRNA16"

// DefaultName is the config file base name looked up when --config is not given.
const DefaultName = "rrna16"

// DefaultNoMatchExitCode is the exit code of a run that extracted nothing.
const DefaultNoMatchExitCode = 1

// Summary formats.
const (
	FormatText  = output.FormatText
	FormatJSON  = output.FormatJSON
	FormatJSONL = output.FormatJSONL
)

// AlignConfig configures the multiple-sequence aligner.
type AlignConfig struct {
	Bin  string   `mapstructure:"bin"`
	Args []string `mapstructure:"args"`
}

// TreeConfig configures the maximum-likelihood tree builder.
type TreeConfig struct {
	Bin       string `mapstructure:"bin"`
	Model     string `mapstructure:"model"`
	Bootstrap int    `mapstructure:"bootstrap"`
}

// GeneFinderConfig configures the annotator used on bare FASTA genomes.
type GeneFinderConfig struct {
	Bin string `mapstructure:"bin"`
}

// Config is the full set of recognised settings.
type Config struct {
	InputDir        string `mapstructure:"input_dir"`
	OutputDir       string `mapstructure:"output_dir"`
	CorpusName      string `mapstructure:"corpus_name"`
	Threads         int    `mapstructure:"threads"`
	Cache           string `mapstructure:"cache"`
	Quiet           bool   `mapstructure:"quiet"`
	Progress        bool   `mapstructure:"progress"`
	PerGenome       bool   `mapstructure:"per_genome"`
	Annotate        bool   `mapstructure:"annotate"`
	SummaryFormat   string `mapstructure:"summary_format"`
	NoMatchExitCode int    `mapstructure:"no_match_exit_code"`

	Align      AlignConfig      `mapstructure:"align"`
	Tree       TreeConfig       `mapstructure:"tree"`
	GeneFinder GeneFinderConfig `mapstructure:"genefinder"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input_dir", "")
	v.SetDefault("output_dir", "rrna16_out")
	v.SetDefault("corpus_name", "16S_corpus.fasta")
	v.SetDefault("threads", 0)
	v.SetDefault("cache", "")
	v.SetDefault("quiet", false)
	v.SetDefault("progress", false)
	v.SetDefault("per_genome", false)
	v.SetDefault("annotate", false)
	v.SetDefault("summary_format", FormatText)
	v.SetDefault("no_match_exit_code", DefaultNoMatchExitCode)
	v.SetDefault("align.bin", "mafft")
	v.SetDefault("align.args", []string{"--auto"})
	v.SetDefault("tree.bin", "phyml")
	v.SetDefault("tree.model", "GTR")
	v.SetDefault("tree.bootstrap", 100)
	v.SetDefault("genefinder.bin", "prokka")
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file and decodes v into a Config. An explicit file
// must exist; otherwise rrna16.{yaml,toml,json} is looked up in the working
// directory and then in searchDirs, and its absence is not an error.
func Load(v *viper.Viper, file string, searchDirs ...string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", file, err)
		}
	} else {
		v.SetConfigName(DefaultName)
		v.AddConfigPath(".")
		for _, d := range searchDirs {
			if d != "" {
				v.AddConfigPath(d)
			}
		}
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return Config{}, fmt.Errorf("config: %w", err)
			}
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, c.Validate()
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if c.Threads < 0 {
		return fmt.Errorf("threads must be >= 0 (got %d)", c.Threads)
	}
	if c.Tree.Bootstrap < 0 {
		return fmt.Errorf("tree.bootstrap must be >= 0 (got %d)", c.Tree.Bootstrap)
	}
	switch c.SummaryFormat {
	case FormatText, FormatJSON, FormatJSONL:
	default:
		return fmt.Errorf("summary_format must be %s, %s or %s (got %q)", FormatText, FormatJSON, FormatJSONL, c.SummaryFormat)
	}
	if c.OutputDir == "" {
		return errors.New("output_dir must not be empty")
	}
	if c.CorpusName == "" || strings.ContainsRune(c.CorpusName, filepath.Separator) {
		return fmt.Errorf("corpus_name must be a plain file name (got %q)", c.CorpusName)
	}
	if c.NoMatchExitCode < 0 || c.NoMatchExitCode > 125 {
		return fmt.Errorf("no_match_exit_code must be in 0..125 (got %d)", c.NoMatchExitCode)
	}
	return nil
}

// CorpusPath is where the combined FASTA corpus is written.
func (c Config) CorpusPath() string { return filepath.Join(c.OutputDir, c.CorpusName) }

// PerGenomeDir holds one FASTA file per contributing genome.
func (c Config) PerGenomeDir() string { return filepath.Join(c.OutputDir, "16S") }

// AnnotationDir is where the gene finder writes its output.
func (c Config) AnnotationDir() string { return filepath.Join(c.OutputDir, "annotation") }
