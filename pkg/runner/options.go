// Package runner exports many documents at once: it discovers source files
// under a set of paths and processes them on a pool of workers.
package runner

// Options controls discovery and concurrency.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// to match globs. If empty, the process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered documents. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths when set.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories. "**" crosses
	// directories; a pattern without a slash also matches base names.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int
}

// DefaultExtensions returns the extensions of the documents richview reads.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".html", ".htm"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
