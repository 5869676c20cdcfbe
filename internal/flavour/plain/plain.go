// Package plain implements the terminal-fallback flavour: an
// unconditional probe, full recursion, no skip, no stay. Every
// directory the registry can't otherwise classify ends up here.
package plain

import (
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/dirjob"
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/flavour"
	"github.com/Henneberg-Systemdesign/devsync/internal/flavour/base"
)

// Template is the Plain flavour's stateless template. It carries no
// options: Plain has nothing to configure.
type Template struct{}

func New() *Template { return &Template{} }

func (*Template) Name() string { return "plain" }
func (*Template) Category() flavour.Category { return flavour.Plain }
func (*Template) Probe(*dirjob.Dir) bool { return true }

func (t *Template) Build(dir *dirjob.Dir) flavour.Bound {
	return &Bound{dir: dir}
}

// Bound is Plain's per-Dir instance.
type Bound struct {
	dir    *dirjob.Dir
	method dirjob.SyncMethod
}

func (*Bound) Name() string { return "plain" }
func (b *Bound) Source() string { return b.dir.SrcPath }
func (*Bound) Category() flavour.Category { return flavour.Plain }
func (*Bound) Recurse() bool { return true }
func (*Bound) Skip() bool { return false }
func (*Bound) Stay() bool { return false }

func (b *Bound) Prepare() (dirjob.SyncMethod, error) {
	m, err := base.Prepare(b.dir)
	b.method = m
	return m, err
}

func (b *Bound) Method() dirjob.SyncMethod { return b.method }
func (b *Bound) Dup() error { return base.Dup(b.dir) }
func (b *Bound) Merge() error { return base.Merge(b.dir) }
