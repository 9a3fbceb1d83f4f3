package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/richview/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	if got := fsutil.BackupPath("/out/doc.rvsb"); got != "/out/doc.rvsb.richview.bak" {
		t.Errorf("BackupPath() = %q", got)
	}
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("missing original", func(t *testing.T) {
		t.Parallel()

		created, err := fsutil.CreateBackup(ctx, filepath.Join(t.TempDir(), "none.rvsb"))
		if err != nil || created {
			t.Errorf("CreateBackup() = %v, %v; want false, nil", created, err)
		}
	})

	t.Run("keeps the first backup", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.rvsb")
		if err := os.WriteFile(path, []byte("first"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		created, err := fsutil.CreateBackup(ctx, path)
		if err != nil || !created {
			t.Fatalf("CreateBackup() = %v, %v; want true, nil", created, err)
		}

		if err := os.WriteFile(path, []byte("second"), 0600); err != nil {
			t.Fatalf("rewrite: %v", err)
		}
		created, err = fsutil.CreateBackup(ctx, path)
		if err != nil || created {
			t.Errorf("second CreateBackup() = %v, %v; want false, nil", created, err)
		}

		got, err := os.ReadFile(fsutil.BackupPath(path))
		if err != nil {
			t.Fatalf("read backup: %v", err)
		}
		if string(got) != "first" {
			t.Errorf("backup = %q, want %q", got, "first")
		}

		stat, err := os.Stat(fsutil.BackupPath(path))
		if err != nil {
			t.Fatalf("stat backup: %v", err)
		}
		if stat.Mode().Perm() != 0600 {
			t.Errorf("backup mode = %v, want 0600", stat.Mode().Perm())
		}
	})
}
