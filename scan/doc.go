// Package scan classifies the headers of many source files in parallel.
//
// A [Scanner] reads files from an [io/fs.FS], extracts each header with
// [github.com/Hengle/StyleCop/lexer.Scan], and classifies it with
// [github.com/Hengle/StyleCop/header.New]. Every file gets its own
// [github.com/Hengle/StyleCop/source.Tree], so classifications share no
// mutable state and need no coordination beyond the bounded worker pool.
//
// A header whose markup is malformed is a normal result: its [Result] has
// outcome "malformed" and both flags false. Only I/O failures are errors;
// they wrap [ErrReadFile] and are also recorded on the affected Result so
// the rest of the batch is still reported.
//
//	s := scan.New(scan.WithConcurrency(8), scan.WithExcludes("obj", "*.Designer.cs"))
//	results, err := s.Scan(ctx, os.DirFS(root))
//
// [Config] bridges CLI flags and an optional YAML file to a Scanner:
//
//	concurrency: 4
//	exclude:
//	  - bin
//	  - obj
package scan
