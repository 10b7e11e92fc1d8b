package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yaklabco/adoclint/pkg/fsutil"
)

func writeTemp(t *testing.T, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.adoc")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads file content and metadata", func(t *testing.T) {
		t.Parallel()

		content := []byte("= Title\n")
		path := writeTemp(t, content)

		got, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}
		if info.Path != path || info.Size != int64(len(content)) {
			t.Errorf("info = %+v", info)
		}

		var zeroHash [32]byte
		if info.Hash == zeroHash {
			t.Error("Hash should not be zero")
		}
	})

	t.Run("strips byte order mark", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, []byte("\xEF\xBB\xBF= Title\n"))

		got, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != "= Title\n" || !info.HadBOM {
			t.Errorf("content = %q, HadBOM = %v", got, info.HadBOM)
		}
		if info.Size != int64(len(got))+3 {
			t.Errorf("Size = %d should count the BOM", info.Size)
		}
	})

	t.Run("not found is categorized", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), "/nonexistent/path/file.adoc")
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("directory is rejected", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Fatalf("error = %v, want ErrIsDirectory", err)
		}
	})

	t.Run("size limit", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, []byte("0123456789"))

		_, _, err := fsutil.ReadFileLimit(context.Background(), path, 5)
		if !errors.Is(err, fsutil.ErrTooLarge) {
			t.Fatalf("error = %v, want ErrTooLarge", err)
		}
		if _, _, err := fsutil.ReadFileLimit(context.Background(), path, 0); err != nil {
			t.Fatalf("unlimited read error = %v", err)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, _, err := fsutil.ReadFile(ctx, "anypath"); !errors.Is(err, context.Canceled) {
			t.Fatalf("error = %v, want context.Canceled", err)
		}
	})
}

func TestChanged(t *testing.T) {
	t.Parallel()

	t.Run("unchanged file", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, []byte("text"))
		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		for _, strict := range []bool{false, true} {
			changed, err := fsutil.Changed(context.Background(), info, strict)
			if err != nil || changed {
				t.Errorf("Changed(strict=%v) = %v, %v", strict, changed, err)
			}
		}
	})

	t.Run("rewritten file", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, []byte("text"))
		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if err := os.WriteFile(path, []byte("other text"), 0o644); err != nil {
			t.Fatalf("rewrite: %v", err)
		}

		changed, err := fsutil.Changed(context.Background(), info, false)
		if err != nil || !changed {
			t.Errorf("Changed() = %v, %v, want true", changed, err)
		}
	})

	t.Run("same size different content needs strict", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, []byte("aaaa"))
		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if err := os.WriteFile(path, []byte("bbbb"), 0o644); err != nil {
			t.Fatalf("rewrite: %v", err)
		}
		if err := os.Chtimes(path, info.ModTime, info.ModTime); err != nil {
			t.Fatalf("chtimes: %v", err)
		}

		quick, _ := fsutil.Changed(context.Background(), info, false)
		strict, _ := fsutil.Changed(context.Background(), info, true)
		if quick || !strict {
			t.Errorf("quick = %v strict = %v, want false/true", quick, strict)
		}
	})

	t.Run("deleted file", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, []byte("text"))
		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if err := os.Remove(path); err != nil {
			t.Fatalf("remove: %v", err)
		}

		changed, err := fsutil.Changed(context.Background(), info, true)
		if err != nil || !changed {
			t.Errorf("Changed() = %v, %v, want true", changed, err)
		}
	})

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		if _, err := fsutil.Changed(context.Background(), nil, true); !errors.Is(err, fsutil.ErrNilFileInfo) {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("modtime only", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, []byte("text"))
		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		later := info.ModTime.Add(time.Hour)
		if err := os.Chtimes(path, later, later); err != nil {
			t.Fatalf("chtimes: %v", err)
		}

		changed, _ := fsutil.Changed(context.Background(), info, false)
		if !changed {
			t.Error("a newer mod time should count as changed")
		}
	})
}
