package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Henneberg-Systemdesign/devsync/internal/backup/dirjob"
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/flavour"
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/scanner"
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/stats"
	"github.com/Henneberg-Systemdesign/devsync/internal/flavour/buildkind"
	"github.com/Henneberg-Systemdesign/devsync/internal/flavour/git"
	"github.com/Henneberg-Systemdesign/devsync/internal/flavour/plain"
	"github.com/Henneberg-Systemdesign/devsync/internal/flavour/svn"
	"github.com/Henneberg-Systemdesign/devsync/internal/flavour/sysroot"
	"github.com/Henneberg-Systemdesign/devsync/internal/flavour/yocto"
	"github.com/Henneberg-Systemdesign/devsync/internal/progress"
)

// runDevsync validates flags, builds the flavour registry and scan
// controller from opts, and drives the run to completion.
func runDevsync(rawArgs []string, loadedFromSession bool, opts *options) error {
	if opts.Source == "" || opts.Target == "" {
		return fmt.Errorf("both --source and --target are required")
	}
	if opts.Jobs < 1 || opts.Jobs > 255 {
		return fmt.Errorf("--jobs must be between 1 and 255")
	}

	src, err := filepath.Abs(opts.Source)
	if err != nil {
		return fmt.Errorf("resolve --source: %w", err)
	}
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("--source: %w", err)
	}

	target, err := filepath.Abs(opts.Target)
	if err != nil {
		return fmt.Errorf("resolve --target: %w", err)
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("create --target: %w", err)
	}

	if !loadedFromSession {
		if err := persistSession(rawArgs, target); err != nil {
			return fmt.Errorf("write session file: %w", err)
		}
	}

	cfg := &dirjob.Config{
		Jobs:    uint8(opts.Jobs),
		Delete:  opts.Delete,
		Archive: opts.Archive,
		Owned:   false,
		Ignore:  opts.Ignore,
	}

	registry := buildRegistry(opts)
	st := stats.New()
	sc := scanner.New(src, target, cfg, st, registry)

	done := make(chan struct{})
	if opts.UI {
		go runUI(st, done)
	} else {
		go runHeadless(st, done)
	}

	sc.Run()
	st.Close()
	<-done

	return nil
}

// buildRegistry instantiates one template per flavour from the parsed
// options. The registry re-sorts by Category, so registration order
// only matters as a tie-break among same-category flavours.
func buildRegistry(opts *options) *flavour.Registry {
	return flavour.NewRegistry(
		yocto.New(opts.YoctoIgnore, opts.YoctoDownloadsSync, opts.YoctoBuildSync),
		sysroot.New(opts.SysrootSync),
		buildkind.New("cmake", buildkind.CMake, opts.CmakeSync),
		buildkind.New("meson", buildkind.Meson, opts.MesonSync),
		buildkind.New("ninja", buildkind.Ninja, opts.NinjaSync),
		buildkind.New("cargo", buildkind.Cargo, opts.CargoSync),
		buildkind.New("flutter", buildkind.Flutter, opts.FlutterSync),
		git.New(opts.GitIgnore, opts.GitFull, opts.GitIgnoreStashes, opts.GitIgnoreUnstaged,
			opts.GitIgnoreUntracked, opts.GitIgnoreUnpushed),
		svn.New(opts.SvnIgnore, opts.SvnFull, opts.SvnIgnoreUnversioned, opts.SvnIgnoreModified),
		plain.New(),
	)
}

// runHeadless prints warnings as they arrive on stderr and a final
// counters/completion line on stdout.
func runHeadless(st *stats.Stats, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	seen := 0
	flush := func() {
		warnings := st.Runtime()
		for _, info := range warnings[seen:] {
			fmt.Fprintf(os.Stderr, "warning: %s: %s\n", info.Name, info.Desc)
		}
		seen = len(warnings)
	}

	for !st.ProcDone() {
		<-ticker.C
		flush()
	}
	flush()
	fmt.Println(st.Snapshot().String())
}

// runUI drives the progressbar-backed live view: a determinate bar
// once todo is known, describing the current snapshot and finishing
// with a checkmark summary line.
func runUI(st *stats.Stats, done chan<- struct{}) {
	defer close(done)
	bar := progress.New(true, -1)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for !st.ProcDone() {
		<-ticker.C
		snap := st.Snapshot()
		bar.SetTotal(snap.Todo)
		bar.Set(uint64(snap.Done + snap.Error))
		bar.Describe(snap, st.Jobs(), st.Runtime())
	}
	bar.Finish(st.Snapshot())
}
