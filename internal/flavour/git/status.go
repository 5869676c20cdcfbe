package git

import (
	"path/filepath"

	"github.com/go-git/go-git/v5"

	"github.com/Henneberg-Systemdesign/devsync/internal/backup/fsutil"
)

// dupStatus copies untracked and modified-but-unstaged working-tree
// entries into their respective distillation subdirectories, preserving
// each file's relative path within the working copy.
func (b *Bound) dupStatus(repo *git.Repository) error {
	if b.tmpl.IgnoreUntracked && b.tmpl.IgnoreUnstaged {
		if err := fsutil.WriteMarker(markerPath(b, subdirUntracked), ".ignored"); err != nil {
			return err
		}
		return fsutil.WriteMarker(markerPath(b, subdirUnstaged), ".ignored")
	}

	wt, err := repo.Worktree()
	if err != nil {
		return writeBothEmpty(b)
	}
	status, err := wt.Status()
	if err != nil {
		return writeBothEmpty(b)
	}

	var untrackedCount, unstagedCount int
	for path, st := range status {
		switch st.Worktree {
		case git.Untracked:
			if b.tmpl.IgnoreUntracked {
				continue
			}
			if err := copyIntoSubdir(b, subdirUntracked, path); err != nil {
				return err
			}
			untrackedCount++
		case git.Modified:
			if b.tmpl.IgnoreUnstaged {
				continue
			}
			if err := copyIntoSubdir(b, subdirUnstaged, path); err != nil {
				return err
			}
			unstagedCount++
		}
	}

	if err := finalizeSubdir(b, subdirUntracked, b.tmpl.IgnoreUntracked, untrackedCount); err != nil {
		return err
	}
	return finalizeSubdir(b, subdirUnstaged, b.tmpl.IgnoreUnstaged, unstagedCount)
}

// writeBothEmpty covers repositories whose worktree or status cannot
// be read (e.g. a bare checkout): there is nothing to distill, so both
// status subdirs collapse to their .empty markers.
func writeBothEmpty(b *Bound) error {
	if err := fsutil.WriteMarker(markerPath(b, subdirUntracked), ".empty"); err != nil {
		return err
	}
	return fsutil.WriteMarker(markerPath(b, subdirUnstaged), ".empty")
}

func finalizeSubdir(b *Bound, name string, ignored bool, count int) error {
	if ignored {
		return fsutil.WriteMarker(markerPath(b, name), ".ignored")
	}
	if count == 0 {
		return fsutil.WriteMarker(markerPath(b, name), ".empty")
	}
	return nil
}

func copyIntoSubdir(b *Bound, subdir, relPath string) error {
	src := filepath.Join(b.dir.SrcPath, relPath)
	dst := filepath.Join(markerPath(b, subdir), relPath)
	return fsutil.CopyFile(src, dst, b.dir.Config.Archive)
}
