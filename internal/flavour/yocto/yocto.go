// Package yocto implements the Yocto composite-layout flavour: a
// marker-set probe (bitbake, scripts, meta*) that, once
// matched, mutates the directory's child list to exclude the
// downloads and build-cache subtrees by default.
package yocto

import (
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/dirjob"
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/flavour"
	"github.com/Henneberg-Systemdesign/devsync/internal/flavour/base"
)

var buildDirs = []string{"build", "BUILD", "cache", "sstate-cache", "buildhistory"}

// Template is the Yocto flavour's stateless template, holding the
// parsed --yocto-* options.
type Template struct {
	Ignore        bool
	DownloadsSync bool
	BuildSync     bool
}

func New(ignore, downloadsSync, buildSync bool) *Template {
	return &Template{Ignore: ignore, DownloadsSync: downloadsSync, BuildSync: buildSync}
}

func (*Template) Name() string { return "yocto" }
func (*Template) Category() flavour.Category { return flavour.Special }

func (*Template) Probe(dir *dirjob.Dir) bool {
	return dir.HasDir("bitbake") && dir.HasDir("scripts") && dir.HasDirPrefix("meta")
}

func (t *Template) Build(dir *dirjob.Dir) flavour.Bound {
	if !t.DownloadsSync {
		dir.RemoveDirs("downloads")
	}
	if !t.BuildSync {
		dir.RemoveDirs(buildDirs...)
	}
	return &Bound{tmpl: t, dir: dir}
}

// Bound is Yocto's per-Dir instance.
type Bound struct {
	tmpl   *Template
	dir    *dirjob.Dir
	method dirjob.SyncMethod
}

func (*Bound) Name() string { return "yocto" }
func (b *Bound) Source() string { return b.dir.SrcPath }
func (*Bound) Category() flavour.Category { return flavour.Special }
func (b *Bound) Recurse() bool { return !b.Skip() }
func (b *Bound) Skip() bool { return b.tmpl.Ignore }
func (*Bound) Stay() bool { return true }

func (b *Bound) Prepare() (dirjob.SyncMethod, error) {
	m, err := base.Prepare(b.dir)
	b.method = m
	return m, err
}

func (b *Bound) Method() dirjob.SyncMethod { return b.method }
func (b *Bound) Dup() error { return base.Dup(b.dir) }
func (b *Bound) Merge() error { return base.Merge(b.dir) }
