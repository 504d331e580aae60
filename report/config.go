package report

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for report configuration.
type Flags struct {
	Format string
	Output string
}

// Config holds CLI flag values for report configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags].
type Config struct {
	Flags  Flags
	Format string
	Output string
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			Format: "format",
			Output: "output",
		},
	}
}

// RegisterFlags adds report flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Format, c.Flags.Format, "f", string(FormatText),
		fmt.Sprintf("report format, one of: %s", GetAllFormatStrings()))
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "-",
		"output file path (- for stdout)")
}

// RegisterCompletions registers shell completions for report flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(GetAllFormatStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	return nil
}

// Open returns the writer selected by [Config.Output] and a function that
// closes it. Standard output is never closed.
func (c *Config) Open(stdout io.Writer) (io.Writer, func() error, error) {
	if c.Output == "" || c.Output == "-" {
		return stdout, func() error { return nil }, nil
	}

	f, err := os.Create(c.Output) //nolint:gosec // Output path from CLI flag is expected.
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return f, f.Close, nil
}
