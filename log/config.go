package log

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for log configuration.
type Flags struct {
	Level   string
	Format  string
	Verbose string
	Quiet   string
}

// Config holds CLI flag values for log configuration.
//
// The effective level starts at Level, is raised one step toward
// [LevelDebug] for every Verbose count, and is forced to [LevelError] by
// Quiet. Use [Config.NewHandler] to build the [slog.Handler].
type Config struct {
	Flags   Flags
	Level   string
	Format  string
	Verbose int
	Quiet   bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			Level:   "log-level",
			Format:  "log-format",
			Verbose: "verbose",
			Quiet:   "quiet",
		},
	}
}

// RegisterFlags adds logging flags to the given [*pflag.FlagSet]. The
// default level is [LevelWarn], so unreadable files are reported and
// per-file classification records are not.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, c.Flags.Level, string(LevelWarn),
		fmt.Sprintf("log level, one of: %s", GetAllLevelStrings()))
	flags.StringVar(&c.Format, c.Flags.Format, string(FormatText),
		fmt.Sprintf("log format, one of: %s", GetAllFormatStrings()))
	flags.CountVarP(&c.Verbose, c.Flags.Verbose, "v",
		"raise the log level one step per use (-vv logs every classified header)")
	flags.BoolVarP(&c.Quiet, c.Flags.Quiet, "q", false,
		"log errors only")
}

// RegisterCompletions registers shell completions for log flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	completions := map[string][]string{
		c.Flags.Level:  GetAllLevelStrings(),
		c.Flags.Format: GetAllFormatStrings(),
	}

	for flag, values := range completions {
		err := cmd.RegisterFlagCompletionFunc(flag,
			cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	return nil
}

// EffectiveLevel parses [Config.Level] and applies the verbosity and quiet
// settings to it.
func (c *Config) EffectiveLevel() (Level, error) {
	lvl, err := ParseLevel(c.Level)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	if c.Quiet {
		return LevelError, nil
	}

	i := slices.Index(allLevels, lvl) + max(c.Verbose, 0)

	return allLevels[min(i, len(allLevels)-1)], nil
}

// NewHandler creates a [slog.Handler] that writes to w at the level
// reported by [Config.EffectiveLevel].
func (c *Config) NewHandler(w io.Writer) (slog.Handler, error) {
	lvl, err := c.EffectiveLevel()
	if err != nil {
		return nil, err
	}

	logFmt, err := ParseFormat(c.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return NewHandler(w, lvl, logFmt), nil
}
