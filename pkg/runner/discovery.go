package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Discover finds documents matching opts. It returns a sorted,
// deduplicated list of absolute file paths. Explicit file arguments are
// filtered like walked files.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m, err := newMatcher(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(found ...string) {
		for _, f := range found {
			if _, ok := seen[f]; !ok {
				seen[f] = struct{}{}
				files = append(files, f)
			}
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if m.file(absPath) {
				add(absPath)
			}
			continue
		}

		discovered, err := m.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		add(discovered...)
	}

	sort.Strings(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// pattern is a compiled glob. Patterns without a slash also match the
// base name of a path.
type pattern struct {
	glob     glob.Glob
	baseName bool
}

func compile(patterns []string) ([]pattern, error) {
	out := make([]pattern, 0, len(patterns))
	for _, p := range patterns {
		p = filepath.ToSlash(p)
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", p, err)
		}
		out = append(out, pattern{glob: g, baseName: !strings.Contains(p, "/")})
	}
	return out, nil
}

func matchAny(patterns []pattern, relPath string) bool {
	for _, p := range patterns {
		if p.glob.Match(relPath) || (p.baseName && p.glob.Match(path.Base(relPath))) {
			return true
		}
	}
	return false
}

// matcher applies the extension and glob filters of one discovery.
type matcher struct {
	workDir        string
	extensions     []string
	include        []pattern
	exclude        []pattern
	followSymlinks bool
}

func newMatcher(workDir string, opts Options) (*matcher, error) {
	include, err := compile(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compile(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}
	return &matcher{
		workDir:        workDir,
		extensions:     opts.effectiveExtensions(),
		include:        include,
		exclude:        exclude,
		followSymlinks: opts.FollowSymlinks,
	}, nil
}

func (m *matcher) rel(p string) string {
	relPath, err := filepath.Rel(m.workDir, p)
	if err != nil {
		relPath = p
	}
	return filepath.ToSlash(relPath)
}

// file reports whether the file at p should be processed.
func (m *matcher) file(p string) bool {
	if !hasMatchingExtension(p, m.extensions) {
		return false
	}
	relPath := m.rel(p)
	if matchAny(m.exclude, relPath) {
		return false
	}
	return len(m.include) == 0 || matchAny(m.include, relPath)
}

// skipDir reports whether the directory at p is excluded. A trailing
// slash lets "dir/**" exclude dir itself.
func (m *matcher) skipDir(p string) bool {
	relPath := m.rel(p)
	return matchAny(m.exclude, relPath) || matchAny(m.exclude, relPath+"/")
}

// walk returns the matching files under root. Hidden files and
// directories are skipped, as are unreadable directories.
func (m *matcher) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if p != root && (strings.HasPrefix(entry.Name(), ".") || m.skipDir(p)) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, err := filepath.EvalSymlinks(p)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(realPath)
			if err != nil {
				return nil //nolint:nilerr // Unreadable symlink targets are skipped.
			}
			if info.IsDir() {
				if !m.followSymlinks {
					return nil
				}
				// Walk the target; WalkDir does not descend into a symlinked root.
				sub, err := m.walk(ctx, realPath)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if m.file(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func hasMatchingExtension(p string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
