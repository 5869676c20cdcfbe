// Package fstest provides test infrastructure for building and
// asserting on directory trees under t.TempDir().
package fstest

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Tree builds a directory under t.TempDir() from a declarative layout
// and offers assertion helpers against a second tree (typically the
// backup target) once a run has completed.
type Tree struct {
	t    *testing.T
	root string
}

// New creates an empty Tree rooted at a fresh temporary directory.
func New(t *testing.T) *Tree {
	t.Helper()
	return &Tree{t: t, root: t.TempDir()}
}

// Root returns the tree's root path.
func (tr *Tree) Root() string { return tr.root }

// Path joins rel onto the tree's root.
func (tr *Tree) Path(rel string) string { return filepath.Join(tr.root, rel) }

// Mkdir creates rel (and parents) under the tree.
func (tr *Tree) Mkdir(rel string) string {
	tr.t.Helper()
	p := tr.Path(rel)
	if err := os.MkdirAll(p, 0o755); err != nil {
		tr.t.Fatalf("mkdir %s: %v", rel, err)
	}
	return p
}

// WriteFile creates rel with the given content, creating parent
// directories as needed.
func (tr *Tree) WriteFile(rel, content string) string {
	tr.t.Helper()
	p := tr.Path(rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		tr.t.Fatalf("mkdir parent of %s: %v", rel, err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		tr.t.Fatalf("write %s: %v", rel, err)
	}
	return p
}

// Touch creates rel as an empty file with the given mtime offset from
// now (negative means in the past), for exercising the mtime-based
// Changed() diff rule.
func (tr *Tree) Touch(rel string, age time.Duration) string {
	tr.t.Helper()
	p := tr.WriteFile(rel, "")
	ts := time.Now().Add(age)
	if err := os.Chtimes(p, ts, ts); err != nil {
		tr.t.Fatalf("chtimes %s: %v", rel, err)
	}
	return p
}

// Chmod sets rel's mode.
func (tr *Tree) Chmod(rel string, mode os.FileMode) {
	tr.t.Helper()
	if err := os.Chmod(tr.Path(rel), mode); err != nil {
		tr.t.Fatalf("chmod %s: %v", rel, err)
	}
}

// AssertFile fails the test unless rel exists as a regular file with
// the given content.
func (tr *Tree) AssertFile(rel, want string) {
	tr.t.Helper()
	got, err := os.ReadFile(tr.Path(rel))
	if err != nil {
		tr.t.Fatalf("read %s: %v", rel, err)
	}
	if string(got) != want {
		tr.t.Fatalf("%s: content mismatch: got %q want %q", rel, got, want)
	}
}

// AssertExists fails the test unless rel is present.
func (tr *Tree) AssertExists(rel string) {
	tr.t.Helper()
	if _, err := os.Stat(tr.Path(rel)); err != nil {
		tr.t.Fatalf("expected %s to exist: %v", rel, err)
	}
}

// AssertAbsent fails the test unless rel is absent.
func (tr *Tree) AssertAbsent(rel string) {
	tr.t.Helper()
	if _, err := os.Stat(tr.Path(rel)); err == nil {
		tr.t.Fatalf("expected %s to be absent", rel)
	}
}
