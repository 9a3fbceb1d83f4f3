package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/richview/pkg/runner"
)

// writeTree creates each file under dir with placeholder content.
func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

func relAll(t *testing.T, dir string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func assertFiles(t *testing.T, got, want []string) {
	t.Helper()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("discovered %v, want %v", got, want)
	}
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "readme.md")
	mdFile := filepath.Join(dir, "readme.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{mdFile},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 || files[0] != mdFile {
		t.Errorf("expected [%s], got %v", mdFile, files)
	}
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir,
		"readme.md",
		"docs/guide.md",
		"docs/api.markdown",
		"site/index.html",
		"site/old.HTM",
		"src/main.go",
		"notes.txt",
		"out/readme.rvsb",
	)

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	assertFiles(t, relAll(t, dir, files), []string{
		"docs/api.markdown",
		"docs/guide.md",
		"readme.md",
		"site/index.html",
		"site/old.HTM",
	})
}

func TestDiscover_DefaultsToWorkingDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "test.md")

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %v", files)
	}
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.md", "b.html", "c.txt")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".TXT", ".md"},
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertFiles(t, relAll(t, dir, files), []string{"a.md", "c.txt"})
}

func TestDiscover_Globs(t *testing.T) {
	t.Parallel()

	tree := []string{
		"readme.md",
		"CHANGELOG.md",
		"docs/guide.md",
		"docs/draft/wip.md",
		"vendor/lib/readme.md",
		"site/index.html",
	}

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{
			name:    "directory glob",
			exclude: []string{"vendor/**"},
			want:    []string{"CHANGELOG.md", "docs/draft/wip.md", "docs/guide.md", "readme.md", "site/index.html"},
		},
		{
			name:    "nested directory anywhere",
			exclude: []string{"**/draft/**"},
			want:    []string{"CHANGELOG.md", "docs/guide.md", "readme.md", "site/index.html", "vendor/lib/readme.md"},
		},
		{
			name:    "base name",
			exclude: []string{"readme.md"},
			want:    []string{"CHANGELOG.md", "docs/draft/wip.md", "docs/guide.md", "site/index.html"},
		},
		{
			name:    "include",
			include: []string{"docs/**"},
			want:    []string{"docs/draft/wip.md", "docs/guide.md"},
		},
		{
			name:    "include and exclude",
			include: []string{"*.md"},
			exclude: []string{"{vendor,docs}/**"},
			want:    []string{"CHANGELOG.md", "readme.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, tree...)

			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir:   dir,
				IncludeGlobs: tt.include,
				ExcludeGlobs: tt.exclude,
			})
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}
			assertFiles(t, relAll(t, dir, files), tt.want)
		})
	}
}

func TestDiscover_HiddenFilesAndDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "visible.md", ".hidden.md", ".git/notes.md", "docs/.draft/x.md")

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertFiles(t, relAll(t, dir, files), []string{"visible.md"})
}

func TestDiscover_DeduplicatesAndSorts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "b.md", "a.md", "docs/c.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"docs", ".", "b.md", filepath.Join(dir, "a.md")},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertFiles(t, relAll(t, dir, files), []string{"a.md", "b.md", "docs/c.md"})
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Discover(ctx, runner.Options{WorkingDir: dir}); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "real/doc.md")

	externalDir := t.TempDir()
	writeTree(t, externalDir, "external.md")

	if err := os.Symlink(externalDir, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	opts := runner.Options{WorkingDir: dir}
	files, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 || !strings.HasSuffix(files[0], "doc.md") {
		t.Errorf("expected only real/doc.md without FollowSymlinks, got %v", files)
	}

	opts.FollowSymlinks = true
	files, err = runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files with FollowSymlinks, got %v", files)
	}
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	want := map[string]bool{".md": true, ".markdown": true, ".html": true, ".htm": true}
	exts := runner.DefaultExtensions()
	if len(exts) != len(want) {
		t.Fatalf("expected %d extensions, got %v", len(want), exts)
	}
	for _, ext := range exts {
		if !want[ext] {
			t.Errorf("unexpected extension %q", ext)
		}
	}
}
