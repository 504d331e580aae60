package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Hengle/StyleCop/header"
	"github.com/Hengle/StyleCop/lexer"
	"github.com/Hengle/StyleCop/source"
)

// Sentinel errors returned by the scanner.
var (
	ErrReadFile      = errors.New("read file")
	ErrInvalidOption = errors.New("invalid option")
)

// DefaultExtension is the file extension walked when a directory is scanned.
const DefaultExtension = ".cs"

// Result is the classification of one file.
type Result struct {
	Err       error           `json:"-"                 yaml:"-"`
	Path      string          `json:"path"              yaml:"path"`
	Outcome   string          `json:"outcome"           yaml:"outcome"`
	Error     string          `json:"error,omitempty"   yaml:"error,omitempty"`
	Markers   []string        `json:"markers,omitempty" yaml:"markers,omitempty"`
	Span      source.Location `json:"span"              yaml:"span"`
	Line      int             `json:"line"              yaml:"line"`
	Generated bool            `json:"generated"         yaml:"generated"`
	Unstyled  bool            `json:"unstyled"          yaml:"unstyled"`
}

// Scanner classifies the headers of many files concurrently.
//
// Create instances with [New].
type Scanner struct {
	logger      *slog.Logger
	excludes    []string
	concurrency int
}

// Option configures a [Scanner].
type Option func(*Scanner)

// New creates a [Scanner] with the given options.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		logger:      slog.Default(),
		concurrency: runtime.GOMAXPROCS(0),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithConcurrency sets the maximum number of files classified at once.
// Values less than 1 are clamped to 1.
func WithConcurrency(n int) Option {
	return func(s *Scanner) {
		if n < 1 {
			n = 1
		}

		s.concurrency = n
	}
}

// WithLogger sets the logger used for per-file events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithExcludes skips files and directories whose slash-separated path, or
// base name, matches any of the given [path.Match] patterns.
func WithExcludes(patterns ...string) Option {
	return func(s *Scanner) {
		s.excludes = append(s.excludes, patterns...)
	}
}

// Classify lexes src and classifies its header. The header's parent is the
// document element of a fresh [source.Tree] named after p.
func (s *Scanner) Classify(p string, src []byte) (*header.Header, error) {
	tree := source.NewTree()
	doc := tree.Add(source.NoElement, source.ElementDocument, p)

	res := lexer.Scan(src)

	h, err := header.New(res.Text, res.Tokens, tree.Ref(doc))
	if err != nil {
		return nil, fmt.Errorf("classify %s: %w", p, err)
	}

	return h, nil
}

// ClassifyBytes classifies one in-memory file and returns its [Result].
func (s *Scanner) ClassifyBytes(p string, src []byte) Result {
	h, err := s.Classify(p, src)
	if err != nil {
		return Result{Path: p, Err: err, Error: err.Error()}
	}

	attrs := []any{
		slog.String("path", p),
		slog.String("outcome", h.Outcome().String()),
		slog.Bool("generated", h.Generated()),
		slog.Bool("unstyled", h.Unstyled()),
	}

	if parseErr := h.ParseErr(); parseErr != nil {
		attrs = append(attrs, slog.String("reason", parseErr.Error()))
	}

	s.logger.Debug("classified header", attrs...)

	return Result{
		Path:      p,
		Outcome:   h.Outcome().String(),
		Generated: h.Generated(),
		Unstyled:  h.Unstyled(),
		Line:      h.LineNumber(),
		Span:      h.Location(),
		Markers:   h.Markers(),
	}
}

// Scan classifies the files named by paths in fsys. Directories are walked
// for files ending in [DefaultExtension]; with no paths, the root of fsys
// is walked. Results are sorted by path.
//
// Read failures are recorded on the affected [Result] and joined into the
// returned error, wrapping [ErrReadFile]. Cancelling ctx stops the scan and
// returns ctx.Err().
func (s *Scanner) Scan(ctx context.Context, fsys fs.FS, paths ...string) ([]Result, error) {
	files, err := s.collect(fsys, paths)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, p := range files {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			data, err := fs.ReadFile(fsys, p)
			if err != nil {
				readErr := fmt.Errorf("%w: %w", ErrReadFile, err)
				results[i] = Result{Path: p, Err: readErr, Error: readErr.Error()}

				s.logger.Warn("read file", slog.String("path", p), slog.Any("error", err))

				return nil
			}

			results[i] = s.ClassifyBytes(p, data)

			return nil
		})
	}

	err = g.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	if err != nil {
		return nil, err
	}

	var errs []error

	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}

	return results, errors.Join(errs...)
}

// collect expands paths into a sorted, de-duplicated list of files.
func (s *Scanner) collect(fsys fs.FS, paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var files []string

	for _, root := range paths {
		root = path.Clean(strings.TrimPrefix(root, "./"))

		info, err := fs.Stat(fsys, root)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadFile, err)
		}

		if !info.IsDir() {
			if !s.excluded(root) {
				files = append(files, root)
			}

			continue
		}

		err = fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if p != root && s.excluded(p) {
				if d.IsDir() {
					return fs.SkipDir
				}

				return nil
			}

			if !d.IsDir() && strings.EqualFold(path.Ext(p), DefaultExtension) {
				files = append(files, p)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadFile, err)
		}
	}

	slices.Sort(files)

	return slices.Compact(files), nil
}

func (s *Scanner) excluded(p string) bool {
	base := path.Base(p)

	for _, pattern := range s.excludes {
		if ok, _ := path.Match(pattern, p); ok {
			return true
		}

		if ok, _ := path.Match(pattern, base); ok {
			return true
		}
	}

	return false
}
