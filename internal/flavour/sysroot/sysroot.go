// Package sysroot implements the Sysroot composite-layout flavour: a
// quintuple marker probe (bin, etc, lib, usr, var) with no exclusion —
// the whole tree is mirrored once matched, skipped by default.
package sysroot

import (
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/dirjob"
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/flavour"
	"github.com/Henneberg-Systemdesign/devsync/internal/flavour/base"
)

// Template is the Sysroot flavour's stateless template.
type Template struct {
	Sync bool
}

func New(sync bool) *Template { return &Template{Sync: sync} }

func (*Template) Name() string { return "sysroot" }
func (*Template) Category() flavour.Category { return flavour.Special }

func (*Template) Probe(dir *dirjob.Dir) bool {
	return dir.HasAllDirs("bin", "etc", "lib", "usr", "var")
}

func (t *Template) Build(dir *dirjob.Dir) flavour.Bound {
	return &Bound{tmpl: t, dir: dir}
}

// Bound is Sysroot's per-Dir instance.
type Bound struct {
	tmpl   *Template
	dir    *dirjob.Dir
	method dirjob.SyncMethod
}

func (*Bound) Name() string { return "sysroot" }
func (b *Bound) Source() string { return b.dir.SrcPath }
func (*Bound) Category() flavour.Category { return flavour.Special }
func (b *Bound) Recurse() bool { return !b.Skip() }
func (b *Bound) Skip() bool { return !b.tmpl.Sync }
func (*Bound) Stay() bool { return true }

func (b *Bound) Prepare() (dirjob.SyncMethod, error) {
	m, err := base.Prepare(b.dir)
	b.method = m
	return m, err
}

func (b *Bound) Method() dirjob.SyncMethod { return b.method }
func (b *Bound) Dup() error { return base.Dup(b.dir) }
func (b *Bound) Merge() error { return base.Merge(b.dir) }
