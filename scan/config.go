package scan

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for scan configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Concurrency string
	Exclude     string
	ConfigFile  string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for scan configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Settings may also come from a YAML file loaded
// with [Config.LoadFile]. Use [Config.NewScanner] to create a [Scanner].
type Config struct {
	Flags       Flags
	ConfigFile  string
	Exclude     []string
	Concurrency int
}

// fileConfig is the configuration file layout.
type fileConfig struct {
	Concurrency *int     `toml:"concurrency" yaml:"concurrency"`
	Exclude     []string `toml:"exclude"     yaml:"exclude"`
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Concurrency: "concurrency",
		Exclude:     "exclude",
		ConfigFile:  "config",
	}

	return f.NewConfig()
}

// RegisterFlags adds scan flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.IntVarP(&c.Concurrency, c.Flags.Concurrency, "j", 0,
		"number of files classified in parallel (0 for GOMAXPROCS)")
	flags.StringSliceVar(&c.Exclude, c.Flags.Exclude, nil,
		"glob patterns of paths to skip (repeatable)")
	flags.StringVar(&c.ConfigFile, c.Flags.ConfigFile, "",
		"configuration file (YAML, or TOML with a .toml extension)")
}

// RegisterCompletions registers shell completions for scan flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{c.Flags.Concurrency, c.Flags.Exclude} {
		err := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.ConfigFile,
		cobra.FixedCompletions([]string{"yaml", "yml", "toml"}, cobra.ShellCompDirectiveFilterFileExt))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.ConfigFile, err)
	}

	return nil
}

// LoadFile merges settings from the file at p into c. Files ending in
// ".toml" are read as TOML and anything else as YAML; unknown keys are
// rejected in both. Settings whose flags were set explicitly on flags are
// kept. A nil flags treats every flag as unset.
func (c *Config) LoadFile(p string, flags *pflag.FlagSet) error {
	data, err := os.ReadFile(p) //nolint:gosec // Config path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("%w: config file: %w", ErrInvalidOption, err)
	}

	fc, err := decodeFile(p, data)
	if err != nil {
		return fmt.Errorf("%w: config file %s: %w", ErrInvalidOption, p, err)
	}

	changed := func(name string) bool {
		return flags != nil && flags.Changed(name)
	}

	if fc.Concurrency != nil && !changed(c.Flags.Concurrency) {
		c.Concurrency = *fc.Concurrency
	}

	if fc.Exclude != nil && !changed(c.Flags.Exclude) {
		c.Exclude = fc.Exclude
	}

	return nil
}

func decodeFile(p string, data []byte) (fileConfig, error) {
	var fc fileConfig

	if strings.EqualFold(filepath.Ext(p), ".toml") {
		md, err := toml.Decode(string(data), &fc)
		if err != nil {
			return fc, err //nolint:wrapcheck // Wrapped by LoadFile.
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fc, fmt.Errorf("unknown field %q", undecoded[0].String())
		}

		return fc, nil
	}

	err := yaml.UnmarshalWithOptions(data, &fc, yaml.DisallowUnknownField())
	if err != nil {
		return fc, err //nolint:wrapcheck // Wrapped by LoadFile.
	}

	return fc, nil
}

// NewScanner validates c and creates a [Scanner] that logs to logger.
func (c *Config) NewScanner(logger *slog.Logger) (*Scanner, error) {
	if c.Concurrency < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative: %d",
			ErrInvalidOption, c.Flags.Concurrency, c.Concurrency)
	}

	for _, pattern := range c.Exclude {
		_, err := path.Match(pattern, "")
		if err != nil {
			return nil, fmt.Errorf("%w: %s pattern %q: %w", ErrInvalidOption, c.Flags.Exclude, pattern, err)
		}
	}

	opts := []Option{
		WithLogger(logger),
		WithExcludes(c.Exclude...),
	}

	if c.Concurrency > 0 {
		opts = append(opts, WithConcurrency(c.Concurrency))
	}

	return New(opts...), nil
}
