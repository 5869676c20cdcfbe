// Package fsutil is the filesystem façade the core operates through:
// directory enumeration with the owned/ignore/reserved-name filters,
// whole-file diffing, copying, and nanosecond-precision timestamp and
// permission preservation.
package fsutil

import (
	"io"
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/Henneberg-Systemdesign/devsync/internal/backup/syncerr"
)

// SessionFile and LogFile are the two reserved base names that are
// never enumerated into a Dir's Files, regardless of other filters.
const (
	SessionFile = ".devsync"
	LogFile     = "devsync.log"
)

// Entries is the classified result of enumerating one directory.
type Entries struct {
	Dirs  []string
	Files []string
}

// List enumerates path's immediate children, applying:
//   - the owned filter (drop entries whose uid differs from the running
//     user's, when owned is true)
//   - the ignore suffix list, matched against each entry's full path
//   - the two reserved names, always dropped from Files
//
// Entries are returned in directory order (Go's ReadDir already sorts
// by name, matching the "ordered sequence" the Dir model expects).
func List(path string, owned bool, ignore func(string) bool) (Entries, error) {
	des, err := os.ReadDir(path)
	if err != nil {
		return Entries{}, syncerr.Wrap(err)
	}

	var out Entries
	for _, de := range des {
		full := filepath.Join(path, de.Name())

		if owned {
			ok, err := ownedByMe(full, de)
			if err != nil {
				return Entries{}, syncerr.Wrap(err)
			}
			if !ok {
				continue
			}
		}

		if ignore != nil && ignore(full) {
			continue
		}

		if de.IsDir() {
			out.Dirs = append(out.Dirs, de.Name())
			continue
		}

		if de.Name() == SessionFile || de.Name() == LogFile {
			continue
		}
		out.Files = append(out.Files, de.Name())
	}
	return out, nil
}

// Extraneous enumerates target's current children unfiltered and
// subtracts (by base name) the source's retained dirs/files, leaving
// only entries present in target but absent from source.
func Extraneous(targetPath string, srcDirs, srcFiles []string) (dirs, files []string, err error) {
	des, rerr := os.ReadDir(targetPath)
	if rerr != nil {
		if os.IsNotExist(rerr) {
			return nil, nil, nil
		}
		return nil, nil, syncerr.Wrap(rerr)
	}

	srcDirSet := toSet(srcDirs)
	srcFileSet := toSet(srcFiles)

	for _, de := range des {
		if de.IsDir() {
			if _, ok := srcDirSet[de.Name()]; !ok {
				dirs = append(dirs, de.Name())
			}
			continue
		}
		if _, ok := srcFileSet[de.Name()]; !ok {
			files = append(files, de.Name())
		}
	}
	return dirs, files, nil
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

func ownedByMe(path string, de os.DirEntry) (bool, error) {
	info, err := de.Info()
	if err != nil {
		return false, err
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return true, nil
	}
	return int(st.Uid) == os.Getuid(), nil
}

// EnsureDir creates path (and parents) if it does not already exist.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return syncerr.Wrap(err)
	}
	return nil
}

// RemoveAll recursively removes path.
func RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return syncerr.Wrap(err)
	}
	return nil
}

// CopyFile copies src to dst, creating parent directories as needed.
// When archive is true, it additionally preserves access/modify
// timestamps (nanosecond precision) and permission bits.
func CopyFile(src, dst string, archive bool) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return syncerr.Wrap(err)
	}

	in, err := os.Open(src)
	if err != nil {
		return syncerr.Wrap(err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return syncerr.Wrap(err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return syncerr.Wrap(err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return syncerr.Wrap(err)
	}
	if err := out.Close(); err != nil {
		return syncerr.Wrap(err)
	}

	if archive {
		if err := PreserveMetadata(src, dst); err != nil {
			return err
		}
	}
	return nil
}

// PreserveMetadata copies src's access/modify timestamps (nanosecond
// precision, via utimensat) and permission bits onto dst.
func PreserveMetadata(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return syncerr.Wrap(err)
	}
	st := info.Sys().(*syscall.Stat_t)

	atime := unix.NsecToTimespec(st.Atim.Nano())
	mtime := unix.NsecToTimespec(st.Mtim.Nano())
	if err := unix.UtimesNanoAt(unix.AT_FDCWD, dst, []unix.Timespec{atime, mtime}, 0); err != nil {
		return syncerr.Wrap(err)
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return syncerr.Wrap(err)
	}
	return nil
}

// Changed implements the whole-file diff rule: target is stale if it is
// missing, its mtime is strictly earlier than source's, or its
// permission bits differ.
func Changed(srcPath, dstPath string) (bool, error) {
	sInfo, err := os.Stat(srcPath)
	if err != nil {
		return false, syncerr.Wrap(err)
	}
	dInfo, err := os.Stat(dstPath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, syncerr.Wrap(err)
	}
	if dInfo.ModTime().Before(sInfo.ModTime()) {
		return true, nil
	}
	if dInfo.Mode().Perm() != sInfo.Mode().Perm() {
		return true, nil
	}
	return false, nil
}

// IsRegularFile reports whether path exists and is a regular file.
func IsRegularFile(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode().IsRegular()
}

// Exists reports whether path exists (following symlinks).
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteMarker creates a zero-byte marker file at path+suffix, per the
// ".ignored"/".empty" marker-file protocol: path is the subdirectory's
// would-be location, suffix encodes why it is absent.
func WriteMarker(path, suffix string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return syncerr.Wrap(err)
	}
	f, err := os.Create(path + suffix)
	if err != nil {
		return syncerr.Wrap(err)
	}
	return f.Close()
}

// ResetSubdir removes any prior state (directory or marker files) for a
// named subdirectory under parent, implementing the idempotent "cleared
// first" half of the marker-file protocol.
func ResetSubdir(parent, name string) error {
	for _, suffix := range []string{"", ".ignored", ".empty"} {
		if err := os.RemoveAll(filepath.Join(parent, name+suffix)); err != nil {
			return syncerr.Wrap(err)
		}
	}
	return nil
}
