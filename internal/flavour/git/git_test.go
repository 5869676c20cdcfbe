package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/Henneberg-Systemdesign/devsync/internal/backup/dirjob"
)

func TestProbe(t *testing.T) {
	tmpl := New(false, false, false, false, false, false)
	if !tmpl.Probe(&dirjob.Dir{Dirs: []string{".git"}}) {
		t.Fatalf("Probe() = false, want true when .git is present")
	}
	if tmpl.Probe(&dirjob.Dir{Dirs: []string{"src"}}) {
		t.Fatalf("Probe() = true without .git, want false")
	}
}

func TestRecurseOnlyWhenFull(t *testing.T) {
	distilled := New(false, false, false, false, false, false)
	if distilled.Build(&dirjob.Dir{}).Recurse() {
		t.Fatalf("Recurse() = true without --git-full, want false")
	}

	full := New(false, true, false, false, false, false)
	if !full.Build(&dirjob.Dir{}).Recurse() {
		t.Fatalf("Recurse() = false with --git-full, want true")
	}
}

func TestStayIsAlwaysFalse(t *testing.T) {
	tmpl := New(false, false, false, false, false, false)
	if tmpl.Build(&dirjob.Dir{}).Stay() {
		t.Fatalf("Stay() = true, want false (Git never carries classification to children)")
	}
}

// initRepo creates a minimal repository with one commit, one untracked
// file and one unstaged modification, for exercising dupAll end to end.
func initRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	repo, err := gogit.PlainInit(root, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}

	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("v1"), 0o644); err != nil {
		t.Fatalf("write a.txt: %v", err)
	}
	if _, err := wt.Add("a.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()}
	_, err = wt.Commit("initial", &gogit.CommitOptions{
		Author: sig,
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("v2"), 0o644); err != nil {
		t.Fatalf("modify a.txt: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "b.txt"), []byte("new"), 0o644); err != nil {
		t.Fatalf("write b.txt: %v", err)
	}

	return root
}

func TestBuildPrunesGitDirFromChildren(t *testing.T) {
	tmpl := New(false, true, false, false, false, false)
	dir := &dirjob.Dir{Dirs: []string{".git", "src"}}
	tmpl.Build(dir)

	for _, d := range dir.Dirs {
		if d == ".git" {
			t.Fatalf(".git should never survive into the recursion list")
		}
	}
}

func TestDupAllWritesIgnoredMarkers(t *testing.T) {
	src := initRepo(t)
	dst := t.TempDir()

	dir := &dirjob.Dir{
		SrcPath: src, DstPath: dst,
		Config: &dirjob.Config{},
	}
	tmpl := New(false, false, true, true, true, true)
	bound := tmpl.Build(dir)

	if err := bound.Dup(); err != nil {
		t.Fatalf("Dup/dupAll: %v", err)
	}

	for _, name := range []string{subdirStashes, subdirUntracked, subdirUnstaged, subdirRepo} {
		if _, err := os.Stat(filepath.Join(dst, name+".ignored")); err != nil {
			t.Errorf("expected %s.ignored marker: %v", name, err)
		}
		if _, err := os.Stat(filepath.Join(dst, name)); !os.IsNotExist(err) {
			t.Errorf("%s subdirectory should not exist when ignored", name)
		}
	}
}

func TestDupAllDistillsStatusIntoTarget(t *testing.T) {
	src := initRepo(t)
	dst := t.TempDir()

	dir := &dirjob.Dir{
		SrcPath: src, DstPath: dst,
		Config: &dirjob.Config{},
	}
	tmpl := New(false, false, false, false, false, false)
	bound := tmpl.Build(dir)

	if err := bound.Merge(); err != nil {
		t.Fatalf("Merge/dupAll: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, subdirUnstaged, "a.txt")); err != nil {
		t.Errorf("expected unstaged/a.txt to be captured: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, subdirUntracked, "b.txt")); err != nil {
		t.Errorf("expected untracked/b.txt to be captured: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, subdirStashes+".empty")); err != nil {
		t.Errorf("expected stashes.empty marker since there are no stashes: %v", err)
	}
}
