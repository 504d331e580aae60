package profile

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for profiling configuration.
type Flags struct {
	CPUProfile  string
	HeapProfile string
}

// Config holds profile output paths. Empty paths disable the profile.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags].
type Config struct {
	Flags       Flags
	CPUProfile  string
	HeapProfile string
}

// NewConfig returns a new [Config] with default flag names and all profiles
// disabled.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			CPUProfile:  "cpu-profile",
			HeapProfile: "heap-profile",
		},
	}
}

// RegisterFlags adds profiling flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPUProfile, c.Flags.CPUProfile, "", "write CPU profile to file")
	flags.StringVar(&c.HeapProfile, c.Flags.HeapProfile, "", "write heap profile to file")
}

// RegisterCompletions registers shell completions for profile flags on cmd.
// Both flags complete pprof output files.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	for _, flag := range []string{c.Flags.CPUProfile, c.Flags.HeapProfile} {
		err := cmd.RegisterFlagCompletionFunc(flag,
			cobra.FixedCompletions([]string{"prof", "pprof"}, cobra.ShellCompDirectiveFilterFileExt))
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	return nil
}

// NewProfiler creates a [Profiler] for the paths in c.
func (c *Config) NewProfiler() *Profiler {
	return &Profiler{
		cpuPath:  c.CPUProfile,
		heapPath: c.HeapProfile,
	}
}
