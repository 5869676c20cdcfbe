// Package base implements the default prepare/dup/merge semantics:
// mirror a directory's regular files into its target,
// diffing by whole-file mtime/permissions rather than content. Plain
// uses this directly; every flavour that degrades to "behave like
// Plain" (Git with --git-full, an opted-in build kind) calls into it
// too.
package base

import (
	"path/filepath"

	"github.com/Henneberg-Systemdesign/devsync/internal/backup/dirjob"
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/fsutil"
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/stats"
)

// Prepare ensures dir.DstPath exists (removing it first if a regular
// file occupies that path) and reports whether this is a fresh
// Duplicate or a pre-existing Merge target.
func Prepare(dir *dirjob.Dir) (dirjob.SyncMethod, error) {
	if fsutil.IsRegularFile(dir.DstPath) {
		if err := fsutil.RemoveAll(dir.DstPath); err != nil {
			return dirjob.Duplicate, err
		}
	}

	if !fsutil.Exists(dir.DstPath) {
		if err := fsutil.EnsureDir(dir.DstPath); err != nil {
			return dirjob.Duplicate, err
		}
		return dirjob.Duplicate, nil
	}
	return dirjob.Merge, nil
}

// Dup copies every file in dir.Files from source to target. Per-file
// failures are reported as Runtime events and do not fail the
// directory as a whole.
func Dup(dir *dirjob.Dir) error {
	sink := dir.Stats.Sender()
	for _, name := range dir.Files {
		src := filepath.Join(dir.SrcPath, name)
		dst := filepath.Join(dir.DstPath, name)
		if err := fsutil.CopyFile(src, dst, dir.Config.Archive); err != nil {
			stats.EmitInfo(sink, stats.Runtime, 0, stats.Info{Name: src, Desc: err.Error()})
		}
	}
	return nil
}

// Merge removes dir.ExFiles, then re-copies any file whose target is
// stale per fsutil.Changed.
func Merge(dir *dirjob.Dir) error {
	sink := dir.Stats.Sender()

	for _, name := range dir.ExFiles {
		if err := fsutil.RemoveAll(filepath.Join(dir.DstPath, name)); err != nil {
			stats.EmitInfo(sink, stats.Runtime, 0, stats.Info{Name: name, Desc: err.Error()})
		}
	}

	for _, name := range dir.Files {
		src := filepath.Join(dir.SrcPath, name)
		dst := filepath.Join(dir.DstPath, name)

		changed, err := fsutil.Changed(src, dst)
		if err != nil {
			stats.EmitInfo(sink, stats.Runtime, 0, stats.Info{Name: src, Desc: err.Error()})
			continue
		}
		if !changed {
			continue
		}
		if err := fsutil.CopyFile(src, dst, dir.Config.Archive); err != nil {
			stats.EmitInfo(sink, stats.Runtime, 0, stats.Info{Name: src, Desc: err.Error()})
		}
	}
	return nil
}
