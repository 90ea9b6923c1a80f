package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAtomicReturnsChecksum(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "shots", "frame.txt")
	sum, err := WriteAtomic(p, []byte("hello world"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	const want = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if sum != want {
		t.Fatalf("unexpected hash: got %s want %s", sum, want)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "hello world" {
		t.Fatalf("unexpected content %q", b)
	}
	entries, err := os.ReadDir(filepath.Dir(p))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the target file, got %d entries", len(entries))
	}
}

func TestWriteAtomicReplaces(t *testing.T) {
	p := filepath.Join(t.TempDir(), "frame.txt")
	if _, err := WriteAtomic(p, []byte("first")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := WriteAtomic(p, []byte("second")); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "second" {
		t.Fatalf("unexpected content %q", b)
	}
}
