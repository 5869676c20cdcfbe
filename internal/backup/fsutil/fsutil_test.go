package fsutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestListFiltersReservedNamesAndIgnore(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.c", "b.o", SessionFile, LogFile} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	ignore := func(p string) bool { return filepath.Ext(p) == ".o" }
	entries, err := List(dir, false, ignore)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(entries.Dirs) != 1 || entries.Dirs[0] != "sub" {
		t.Fatalf("Dirs = %v, want [sub]", entries.Dirs)
	}
	if len(entries.Files) != 1 || entries.Files[0] != "a.c" {
		t.Fatalf("Files = %v, want [a.c]", entries.Files)
	}
}

func TestExtraneous(t *testing.T) {
	target := t.TempDir()
	for _, name := range []string{"keep.txt", "stale.txt"} {
		if err := os.WriteFile(filepath.Join(target, name), nil, 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(target, "stale_dir"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	dirs, files, err := Extraneous(target, nil, []string{"keep.txt"})
	if err != nil {
		t.Fatalf("Extraneous: %v", err)
	}
	if len(dirs) != 1 || dirs[0] != "stale_dir" {
		t.Fatalf("dirs = %v, want [stale_dir]", dirs)
	}
	if len(files) != 1 || files[0] != "stale.txt" {
		t.Fatalf("files = %v, want [stale.txt]", files)
	}
}

func TestExtraneousMissingTargetIsNotAnError(t *testing.T) {
	dirs, files, err := Extraneous(filepath.Join(t.TempDir(), "missing"), nil, nil)
	if err != nil {
		t.Fatalf("Extraneous: %v", err)
	}
	if dirs != nil || files != nil {
		t.Fatalf("expected no extraneous entries for a nonexistent target")
	}
}

func TestCopyFileArchivePreservesMetadata(t *testing.T) {
	srcDir, dstDir := t.TempDir(), t.TempDir()
	src := filepath.Join(srcDir, "a.txt")
	dst := filepath.Join(dstDir, "a.txt")

	if err := os.WriteFile(src, []byte("hello"), 0o640); err != nil {
		t.Fatalf("setup: %v", err)
	}
	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := os.Chtimes(src, past, past); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := CopyFile(src, dst, true); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "hello" {
		t.Fatalf("copied content mismatch: %q, err=%v", data, err)
	}

	dInfo, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat dst: %v", err)
	}
	if dInfo.Mode().Perm() != 0o640 {
		t.Fatalf("perm = %v, want 0640", dInfo.Mode().Perm())
	}
	if !dInfo.ModTime().Equal(past) {
		t.Fatalf("mtime = %v, want %v", dInfo.ModTime(), past)
	}
}

func TestChanged(t *testing.T) {
	srcDir, dstDir := t.TempDir(), t.TempDir()
	src := filepath.Join(srcDir, "a.txt")
	dst := filepath.Join(dstDir, "a.txt")
	if err := os.WriteFile(src, nil, 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	changed, err := Changed(src, dst)
	if err != nil {
		t.Fatalf("Changed: %v", err)
	}
	if !changed {
		t.Fatalf("missing target should be Changed")
	}

	if err := CopyFile(src, dst, true); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	changed, err = Changed(src, dst)
	if err != nil {
		t.Fatalf("Changed: %v", err)
	}
	if changed {
		t.Fatalf("freshly copied target should not be Changed")
	}

	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(src, future, future); err != nil {
		t.Fatalf("touch src: %v", err)
	}
	changed, err = Changed(src, dst)
	if err != nil {
		t.Fatalf("Changed: %v", err)
	}
	if !changed {
		t.Fatalf("newer source mtime should mark target Changed")
	}
}

func TestResetSubdirRemovesAllVariants(t *testing.T) {
	parent := t.TempDir()
	if err := os.MkdirAll(filepath.Join(parent, "stashes", "x"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(parent, "stashes.ignored"), nil, 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := ResetSubdir(parent, "stashes"); err != nil {
		t.Fatalf("ResetSubdir: %v", err)
	}

	for _, suffix := range []string{"", ".ignored", ".empty"} {
		if Exists(filepath.Join(parent, "stashes"+suffix)) {
			t.Fatalf("stashes%s should have been removed", suffix)
		}
	}
}

func TestWriteMarker(t *testing.T) {
	parent := t.TempDir()
	markerDir := filepath.Join(parent, "stashes")

	if err := WriteMarker(markerDir, ".empty"); err != nil {
		t.Fatalf("WriteMarker: %v", err)
	}
	if !Exists(markerDir + ".empty") {
		t.Fatalf("expected marker file to exist")
	}
}
