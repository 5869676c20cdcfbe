// Package buildkind implements the five identically-shaped build-output
// flavours: Cmake, Meson, Ninja, Cargo, Flutter. Each is a marker-file
// probe with a skip-by-default policy, opted into syncing via its own
// `--<name>-sync` flag; once opted in, it behaves exactly like Plain.
package buildkind

import (
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/dirjob"
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/flavour"
	"github.com/Henneberg-Systemdesign/devsync/internal/flavour/base"
)

// ProbeFunc reports whether dir matches one build kind's marker rule.
type ProbeFunc func(dir *dirjob.Dir) bool

// Template is shared by all five build kinds; only the name and probe
// rule differ between them.
type Template struct {
	name  string
	probe ProbeFunc
	sync  bool
}

// New builds a build-kind template. sync mirrors the parsed
// `--<name>-sync` flag: when true, matching directories are mirrored
// like Plain instead of skipped.
func New(name string, probe ProbeFunc, sync bool) *Template {
	return &Template{name: name, probe: probe, sync: sync}
}

func (t *Template) Name() string { return t.name }
func (*Template) Category() flavour.Category { return flavour.Build }
func (t *Template) Probe(dir *dirjob.Dir) bool { return t.probe(dir) }

func (t *Template) Build(dir *dirjob.Dir) flavour.Bound {
	return &Bound{tmpl: t, dir: dir}
}

// Bound is a build kind's per-Dir instance.
type Bound struct {
	tmpl   *Template
	dir    *dirjob.Dir
	method dirjob.SyncMethod
}

func (b *Bound) Name() string { return b.tmpl.name }
func (b *Bound) Source() string { return b.dir.SrcPath }
func (*Bound) Category() flavour.Category { return flavour.Build }
func (b *Bound) Recurse() bool { return !b.Skip() }
func (b *Bound) Skip() bool { return !b.tmpl.sync }
func (*Bound) Stay() bool { return true }

func (b *Bound) Prepare() (dirjob.SyncMethod, error) {
	m, err := base.Prepare(b.dir)
	b.method = m
	return m, err
}

func (b *Bound) Method() dirjob.SyncMethod { return b.method }
func (b *Bound) Dup() error { return base.Dup(b.dir) }
func (b *Bound) Merge() error { return base.Merge(b.dir) }

// The five probe rules, one per build system.

// CMake probes for a regular file CMakeCache.txt.
func CMake(dir *dirjob.Dir) bool { return dir.HasFile("CMakeCache.txt") }

// Meson probes for the co-occurrence of meson-info, meson-logs and
// meson-private among the directory's files.
func Meson(dir *dirjob.Dir) bool {
	return dir.HasFile("meson-info") && dir.HasFile("meson-logs") && dir.HasFile("meson-private")
}

// Ninja probes for a regular file build.ninja.
func Ninja(dir *dirjob.Dir) bool { return dir.HasFile("build.ninja") }

// Cargo probes for a file CACHEDIR.TAG.
func Cargo(dir *dirjob.Dir) bool { return dir.HasFile("CACHEDIR.TAG") }

// Flutter probes for any file ending in .cache.dill.track.dill.
func Flutter(dir *dirjob.Dir) bool { return dir.HasFileSuffix(".cache.dill.track.dill") }
