// Package svn implements the Subversion flavour: at a working-copy
// root it streams `svn status --xml` to distill modified and
// unversioned entries into the target; at any descendant directory it
// rewrites the target path to nest under the root's unversioned/
// subtree before falling back to ordinary mirroring.
package svn

import (
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/dirjob"
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/flavour"
	"github.com/Henneberg-Systemdesign/devsync/internal/flavour/base"
)

// Template is Svn's stateless template.
type Template struct {
	Ignore            bool
	Full              bool
	IgnoreUnversioned bool
	IgnoreModified    bool
}

func New(ignore, full, ignoreUnversioned, ignoreModified bool) *Template {
	return &Template{
		Ignore:            ignore,
		Full:              full,
		IgnoreUnversioned: ignoreUnversioned,
		IgnoreModified:    ignoreModified,
	}
}

func (*Template) Name() string { return "svn" }
func (*Template) Category() flavour.Category { return flavour.Repository }
func (*Template) Probe(dir *dirjob.Dir) bool { return dir.HasDir(".svn") }

// Build determines, independently of how it was reached, whether dir
// is itself a working-copy root (".svn" present directly in it) or a
// descendant carried down via Stay.
func (t *Template) Build(dir *dirjob.Dir) flavour.Bound {
	probed := dir.HasDir(".svn")
	dir.RemoveDirs(".svn")
	return &Bound{tmpl: t, dir: dir, probed: probed}
}

// Bound is Svn's per-Dir instance.
type Bound struct {
	tmpl   *Template
	dir    *dirjob.Dir
	probed bool
	method dirjob.SyncMethod

	// status caches the parsed `svn status --xml` result between the
	// scan-phase Prepare and the process-phase dupAll. Only set for a
	// WC root in distill mode.
	status *statusResult
}

func (*Bound) Name() string { return "svn" }
func (b *Bound) Source() string { return b.dir.SrcPath }
func (*Bound) Category() flavour.Category { return flavour.Repository }
func (b *Bound) Recurse() bool { return !b.Skip() }
func (b *Bound) Skip() bool { return b.tmpl.Ignore }
func (b *Bound) Stay() bool { return !b.tmpl.Full }

func (b *Bound) Prepare() (dirjob.SyncMethod, error) {
	if !b.tmpl.Full {
		if b.probed {
			if err := b.prepareContents(); err != nil {
				return dirjob.Duplicate, err
			}
		} else if err := b.rewriteTargetForDescendant(); err != nil {
			return dirjob.Duplicate, err
		}
	}
	m, err := base.Prepare(b.dir)
	b.method = m
	return m, err
}

// prepareContents runs during the scan phase, before the controller
// walks the child list: `svn status --xml` is parsed once, the result
// cached for dupAll, and the Dir's subdirectories replaced with just
// the unversioned ones so recursion descends only into content svn
// does not version. Versioned subtrees never recurse — the status
// parse already reports modified files at every depth.
func (b *Bound) prepareContents() error {
	result, err := parseStatus(b.dir.SrcPath, isDirOnDisk(b.dir.SrcPath))
	if err != nil {
		return err
	}
	b.status = &result
	if b.tmpl.IgnoreUnversioned {
		b.dir.Dirs = nil
	} else {
		b.dir.Dirs = append([]string(nil), result.UnversionedDirs...)
	}

	// Clear both distillation subdirs now, before any unversioned child
	// is enqueued: descendants repopulate unversioned/ from the scan
	// phase onward, so a process-phase reset would race with them.
	return resetSubdirs(b.dir.DstPath)
}

func (b *Bound) Method() dirjob.SyncMethod { return b.method }

func (b *Bound) Dup() error {
	if b.tmpl.Full || !b.probed {
		return base.Dup(b.dir)
	}
	return b.dupAll()
}

func (b *Bound) Merge() error {
	if b.tmpl.Full || !b.probed {
		return base.Merge(b.dir)
	}
	return b.dupAll()
}
