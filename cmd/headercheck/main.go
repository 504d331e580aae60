// Package main provides the CLI entry point for headercheck, a tool that
// reports which source files are marked as generated or opted out of style
// checking by their file header.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Hengle/StyleCop/log"
	"github.com/Hengle/StyleCop/profile"
	"github.com/Hengle/StyleCop/report"
	"github.com/Hengle/StyleCop/scan"
	"github.com/Hengle/StyleCop/version"
)

var errGenerated = errors.New("generated files found")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd(os.Stdout, os.Stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		stop()
		os.Exit(1)
	}
}

type options struct {
	log             *log.Config
	profile         *profile.Config
	scan            *scan.Config
	report          *report.Config
	failOnGenerated bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{
		log:     log.NewConfig(),
		profile: profile.NewConfig(),
		scan:    scan.NewConfig(),
		report:  report.NewConfig(),
	}

	rootCmd := &cobra.Command{
		Use:   "headercheck [flags] [path ...]",
		Short: "Classify source file headers",
		Long: `headercheck reads the leading comment block of each source file and reports
whether it marks the file as generated (<autogenerated/>, <auto-generated/>)
or opts it out of style checking (<unstyled/>, <stylecopoff/>, <nostyle/>).

Headers that are not well-formed markup are reported as malformed and are
treated as carrying no markers.`,
		Args:          cobra.ArbitraryArgs,
		Version:       version.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, stdout, stderr, args)
		},
	}

	opts.log.RegisterFlags(rootCmd.PersistentFlags())
	opts.profile.RegisterFlags(rootCmd.PersistentFlags())
	opts.scan.RegisterFlags(rootCmd.Flags())
	opts.report.RegisterFlags(rootCmd.Flags())
	rootCmd.Flags().BoolVar(&opts.failOnGenerated, "fail-on-generated", false,
		"exit non-zero when any file is marked as generated")

	for _, register := range []func(*cobra.Command) error{
		opts.log.RegisterCompletions,
		opts.profile.RegisterCompletions,
		opts.scan.RegisterCompletions,
		opts.report.RegisterCompletions,
	} {
		err := register(rootCmd)
		if err != nil {
			fmt.Fprintf(stderr, "register completions: %v\n", err)
		}
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.AddCommand(newSchemaCmd(stdout))

	return rootCmd
}

func newSchemaCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the json and yaml reports",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			schema, err := report.Schema()
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return fmt.Errorf("%w: %w", report.ErrWriteOutput, err)
			}

			_, err = fmt.Fprintf(stdout, "%s\n", out)
			if err != nil {
				return fmt.Errorf("%w: %w", report.ErrWriteOutput, err)
			}

			return nil
		},
	}
}

func run(cmd *cobra.Command, opts *options, stdout, stderr io.Writer, args []string) (err error) {
	handler, err := opts.log.NewHandler(stderr)
	if err != nil {
		return err
	}

	profiler := opts.profile.NewProfiler()

	err = profiler.Start()
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, profiler.Stop())
	}()

	logger := slog.New(handler)

	if opts.scan.ConfigFile != "" {
		err = opts.scan.LoadFile(opts.scan.ConfigFile, cmd.Flags())
		if err != nil {
			return err
		}
	}

	if !cmd.Flags().Changed(opts.report.Flags.Format) && !isTerminal(stdout) {
		opts.report.Format = string(report.FormatJSON)
	}

	format, err := report.ParseFormat(opts.report.Format)
	if err != nil {
		return err
	}

	scanner, err := opts.scan.NewScanner(logger)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	results, scanErr := scanArgs(cmd.Context(), scanner, args)
	if scanErr != nil && results == nil {
		return scanErr
	}

	w, closeOutput, err := opts.report.Open(stdout)
	if err != nil {
		return err
	}

	err = report.Write(w, format, results)
	if closeErr := closeOutput(); err == nil && closeErr != nil {
		err = fmt.Errorf("%w: %w", report.ErrWriteOutput, closeErr)
	}

	if err != nil {
		return err
	}

	if scanErr != nil {
		return scanErr
	}

	summary := report.Summarize(results)
	logger.Info("scan complete",
		slog.Int("files", summary.Files),
		slog.Int("generated", summary.Generated),
		slog.Int("unstyled", summary.Unstyled),
		slog.Int("malformed", summary.Malformed),
	)

	if opts.failOnGenerated && summary.Generated > 0 {
		return fmt.Errorf("%w: %d", errGenerated, summary.Generated)
	}

	return nil
}

// scanArgs classifies each argument. Directories are scanned through
// [os.DirFS] and their result paths are prefixed with the argument; files
// are read and classified directly. Per-file read errors are joined and
// returned together with the results that did succeed.
func scanArgs(ctx context.Context, s *scan.Scanner, args []string) ([]scan.Result, error) {
	var (
		results []scan.Result
		errs    []error
	)

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", scan.ErrReadFile, err)
		}

		if !info.IsDir() {
			data, err := os.ReadFile(arg) //nolint:gosec // Input path from CLI argument is expected.
			if err != nil {
				return nil, fmt.Errorf("%w: %w", scan.ErrReadFile, err)
			}

			results = append(results, s.ClassifyBytes(filepath.ToSlash(arg), data))

			continue
		}

		dirResults, err := s.Scan(ctx, os.DirFS(arg))
		if dirResults == nil && err != nil {
			return nil, err
		}

		if err != nil {
			errs = append(errs, err)
		}

		prefix := filepath.ToSlash(arg)
		for _, r := range dirResults {
			if prefix != "." {
				r.Path = path.Join(prefix, r.Path)
			}

			results = append(results, r)
		}
	}

	slices.SortStableFunc(results, func(a, b scan.Result) int {
		return strings.Compare(a.Path, b.Path)
	})

	if results == nil {
		results = []scan.Result{}
	}

	return results, errors.Join(errs...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in int.
}
