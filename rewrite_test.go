package lie

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestRewriteFailureKeepsOriginal(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "keep.csv")
	if err := os.WriteFile(name, []byte("original\n"), 0644); err != nil {
		Te.Fatal(err)
	}
	err := Rewrite(name, func(dst io.Writer, src io.Reader) error {
		io.WriteString(dst, "half written")
		return errors.New("interrupted")
	})
	if err == nil {
		Te.Fatal("Rewrite should report the error")
	}
	b, _ := os.ReadFile(name)
	if string(b) != "original\n" {
		Te.Errorf("original file modified: %q", b)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		Te.Errorf("temporary files left behind: %d entries", len(entries))
	}
}

func TestRewriteMissing(Te *testing.T) {
	err := Prepend(filepath.Join(Te.TempDir(), "nope.csv"), "x")
	if !IsKind(err, MissingInput) {
		Te.Errorf("expected MissingInput, got %v", err)
	}
}

func TestWriteAtomicReplaces(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "out.csv")
	for _, s := range []string{"first", "second"} {
		s := s
		if err := WriteAtomic(name, func(w io.Writer) error { _, err := io.WriteString(w, s); return err }); err != nil {
			Te.Fatal(err)
		}
	}
	b, _ := os.ReadFile(name)
	if string(b) != "second" {
		Te.Errorf("file not replaced: %q", b)
	}
}
