package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Henneberg-Systemdesign/devsync/internal/backup/fsutil"
)

func TestMaybeLoadSessionOnlyWithNoArgs(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	defer os.Chdir(cwd)
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}

	data := []byte("-s\x00/src\x00-t\x00/dst")
	if err := os.WriteFile(filepath.Join(dir, fsutil.SessionFile), data, 0o644); err != nil {
		t.Fatalf("write session file: %v", err)
	}

	effective, loaded := maybeLoadSession([]string{"devsync"})
	if !loaded {
		t.Fatalf("expected session to be loaded")
	}
	want := []string{"devsync", "-s", "/src", "-t", "/dst"}
	if len(effective) != len(want) {
		t.Fatalf("effective = %v, want %v", effective, want)
	}
	for i, w := range want {
		if effective[i] != w {
			t.Fatalf("effective = %v, want %v", effective, want)
		}
	}
}

func TestMaybeLoadSessionIgnoredWithExplicitArgs(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	defer os.Chdir(cwd)
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, fsutil.SessionFile), []byte("-s\x00/src"), 0o644); err != nil {
		t.Fatalf("write session file: %v", err)
	}

	argv := []string{"devsync", "-s", "/other", "-t", "/dst"}
	effective, loaded := maybeLoadSession(argv)
	if loaded {
		t.Fatalf("session should not be loaded when args are given explicitly")
	}
	if len(effective) != len(argv) {
		t.Fatalf("effective = %v, want unchanged %v", effective, argv)
	}
}

func TestPersistSessionRewritesSourceAndTargetToAbsolute(t *testing.T) {
	target := t.TempDir()

	rawArgs := []string{"-s", "relsrc", "-t", "reldst", "-d"}
	if err := persistSession(rawArgs, target); err != nil {
		t.Fatalf("persistSession: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(target, fsutil.SessionFile))
	if err != nil {
		t.Fatalf("read session file: %v", err)
	}

	parts, _ := readSessionFile(target)
	if len(parts) != 5 {
		t.Fatalf("parts = %v, want 5 entries", parts)
	}
	if !filepath.IsAbs(parts[1]) {
		t.Fatalf("source arg %q was not made absolute", parts[1])
	}
	if !filepath.IsAbs(parts[3]) {
		t.Fatalf("target arg %q was not made absolute", parts[3])
	}
	if string(data) == "" {
		t.Fatalf("session file is empty")
	}
}
