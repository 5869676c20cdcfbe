package svn

import (
	"path/filepath"

	"github.com/Henneberg-Systemdesign/devsync/internal/backup/fsutil"
)

const (
	subdirModified    = "modified"
	subdirUnversioned = "unversioned"
)

// resetSubdirs clears both distillation subdirectories (directory or
// marker-file form) so each run starts from a clean slate.
func resetSubdirs(dst string) error {
	for _, name := range []string{subdirModified, subdirUnversioned} {
		if err := fsutil.ResetSubdir(dst, name); err != nil {
			return err
		}
	}
	return nil
}

// dupAll is the working-copy-root strategy: write the modified and
// unversioned file lists gathered by prepareContents into their
// respective target subdirectories, using the same marker-file
// protocol as Git's distillation subdirs for the ignored/empty cases.
// Unversioned directories are not handled here — prepareContents
// already routed them into the child list, so the scanner mirrors them
// under unversioned/ through ordinary recursion.
func (b *Bound) dupAll() error {
	result := b.status
	if result == nil {
		parsed, err := parseStatus(b.dir.SrcPath, isDirOnDisk(b.dir.SrcPath))
		if err != nil {
			return err
		}
		result = &parsed
		if err := resetSubdirs(b.dir.DstPath); err != nil {
			return err
		}
	}

	if err := writeFileList(b, subdirModified, b.tmpl.IgnoreModified,
		result.Modified, len(result.Modified)); err != nil {
		return err
	}
	// unversioned/ is empty only if there are neither loose files nor
	// loose directories; the latter arrive via recursion, after this.
	return writeFileList(b, subdirUnversioned, b.tmpl.IgnoreUnversioned,
		result.UnversionedFiles, len(result.UnversionedFiles)+len(result.UnversionedDirs))
}

func writeFileList(b *Bound, subdir string, ignored bool, rels []string, total int) error {
	target := filepath.Join(b.dir.DstPath, subdir)
	if ignored {
		return fsutil.WriteMarker(target, ".ignored")
	}
	if total == 0 {
		return fsutil.WriteMarker(target, ".empty")
	}
	for _, rel := range rels {
		src := filepath.Join(b.dir.SrcPath, rel)
		dst := filepath.Join(target, rel)
		if err := fsutil.CopyFile(src, dst, b.dir.Config.Archive); err != nil {
			return err
		}
	}
	return nil
}
