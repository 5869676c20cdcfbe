// Package dirjob defines the unit of work passed from the scan controller
// to a bound flavour instance.
package dirjob

import (
	"path/filepath"
	"strings"

	"github.com/Henneberg-Systemdesign/devsync/internal/backup/stats"
)

// SyncMethod describes how a Dir's target should be populated.
type SyncMethod int

const (
	// Duplicate means the target did not exist before this run.
	Duplicate SyncMethod = iota
	// Merge means the target already existed; per-file diffing applies.
	Merge
)

func (m SyncMethod) String() string {
	if m == Merge {
		return "merge"
	}
	return "duplicate"
}

// Config holds run-wide, immutable settings shared by every worker and
// every bound flavour.
type Config struct {
	Jobs    uint8
	Delete  bool
	Archive bool
	Owned   bool
	Ignore  []string
}

// Matches reports whether path ends with any configured ignore suffix.
func (c *Config) Matches(path string) bool {
	for _, suf := range c.Ignore {
		if strings.HasSuffix(path, suf) {
			return true
		}
	}
	return false
}

// Dir is one unit of scan/process work: a source directory paired with
// its corresponding target directory, plus the classification a flavour
// needs to act on it.
//
// A Dir is constructed by the scanner when a path is dequeued from the
// scan channel, handed to exactly one bound flavour via ownership
// transfer, and discarded once that flavour's prepare/dup/merge methods
// return.
type Dir struct {
	SrcPath string
	DstPath string

	// Dirs/Files are the retained child entries of SrcPath, already
	// filtered by the owned/ignore/reserved-name rules.
	Dirs  []string
	Files []string

	// ExDirs/ExFiles are target children absent from the source set;
	// populated only when Config.Delete is set.
	ExDirs  []string
	ExFiles []string

	JobID int

	Config *Config
	Stats  *stats.Stats
}

// New builds a Dir for srcPath, deriving its target path by re-rooting
// srcPath under dstRoot relative to srcRoot.
func New(srcRoot, dstRoot, srcPath string, jobID int, cfg *Config, st *stats.Stats) (*Dir, error) {
	rel, err := filepath.Rel(srcRoot, srcPath)
	if err != nil {
		return nil, err
	}
	dst := dstRoot
	if rel != "." {
		dst = filepath.Join(dstRoot, rel)
	}
	return &Dir{
		SrcPath: srcPath,
		DstPath: dst,
		JobID:   jobID,
		Config:  cfg,
		Stats:   st,
	}, nil
}

// Base returns the final path component of SrcPath.
func (d *Dir) Base() string { return filepath.Base(d.SrcPath) }

// HasDir reports whether name is present in Dirs.
func (d *Dir) HasDir(name string) bool {
	for _, e := range d.Dirs {
		if e == name {
			return true
		}
	}
	return false
}

// HasAllDirs reports whether every name in names is present in Dirs.
func (d *Dir) HasAllDirs(names ...string) bool {
	for _, n := range names {
		if !d.HasDir(n) {
			return false
		}
	}
	return true
}

// HasFile reports whether name is present in Files.
func (d *Dir) HasFile(name string) bool {
	for _, e := range d.Files {
		if e == name {
			return true
		}
	}
	return false
}

// HasFileSuffix reports whether any file in Files ends with suffix.
func (d *Dir) HasFileSuffix(suffix string) bool {
	for _, e := range d.Files {
		if strings.HasSuffix(e, suffix) {
			return true
		}
	}
	return false
}

// HasDirPrefix reports whether any directory in Dirs starts with prefix.
func (d *Dir) HasDirPrefix(prefix string) bool {
	for _, e := range d.Dirs {
		if strings.HasPrefix(e, prefix) {
			return true
		}
	}
	return false
}

// RemoveDirs drops every entry in names from Dirs, in place.
func (d *Dir) RemoveDirs(names ...string) {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	kept := d.Dirs[:0]
	for _, e := range d.Dirs {
		if _, ok := drop[e]; !ok {
			kept = append(kept, e)
		}
	}
	d.Dirs = kept
}
