// Package profile writes CPU and heap profiles for a single CLI run.
//
// Register the flags on a command, then bracket the work with
// [Profiler.Start] and [Profiler.Stop]:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	p := cfg.NewProfiler()
//	if err := p.Start(); err != nil {
//	    return err
//	}
//	defer p.Stop()
//
// Profiles are disabled unless a path is given, e.g. --cpu-profile=cpu.prof.
package profile
