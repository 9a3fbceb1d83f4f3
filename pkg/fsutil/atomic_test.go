package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/richview/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.rvsb")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("bundle"), 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != "bundle" {
			t.Errorf("content = %q", got)
		}

		stat, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if stat.Mode().Perm() != fsutil.DefaultFileMode {
			t.Errorf("mode = %v, want %v", stat.Mode().Perm(), fsutil.DefaultFileMode)
		}
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.rvsb")
		if err := os.WriteFile(path, []byte("old"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0600); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("read dir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected only the target file, got %d entries", len(entries))
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "out.rvsb")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0); err == nil {
			t.Error("expected error for missing directory")
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "out.rvsb")
		if err := fsutil.WriteAtomic(ctx, path, []byte("x"), 0); !errors.Is(err, context.Canceled) {
			t.Errorf("WriteAtomic() error = %v, want context.Canceled", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("expected no file after cancellation")
		}
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.rvsb")
	ctx := context.Background()

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("v1"), 0)
	if err != nil || !written {
		t.Fatalf("first write = %v, %v; want true, nil", written, err)
	}

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("v1"), 0)
	if err != nil || written {
		t.Errorf("unchanged write = %v, %v; want false, nil", written, err)
	}

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("v2"), 0)
	if err != nil || !written {
		t.Errorf("changed write = %v, %v; want true, nil", written, err)
	}
}
