// Package git implements the Git flavour: by default it distills a
// working copy into four subdirectories capturing exactly what a user
// would lose by not backing up the .git internals — stashes,
// untracked files, unstaged modifications, and (if any local branch
// has unpushed work) a full bare clone. With --git-full it instead
// falls back to mirroring the working tree like Plain.
//
// Repository introspection goes through go-git, not the git CLI.
package git

import (
	"github.com/go-git/go-git/v5"

	"github.com/Henneberg-Systemdesign/devsync/internal/backup/dirjob"
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/flavour"
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/fsutil"
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/syncerr"
	"github.com/Henneberg-Systemdesign/devsync/internal/flavour/base"
)

const (
	subdirStashes   = "stashes"
	subdirUntracked = "untracked"
	subdirUnstaged  = "unstaged"
	subdirRepo      = "repo"
)

// Template is Git's stateless template, holding the parsed --git-*
// options.
type Template struct {
	Ignore          bool
	Full            bool
	IgnoreStashes   bool
	IgnoreUnstaged  bool
	IgnoreUntracked bool
	IgnoreUnpushed  bool
}

func New(ignore, full, ignoreStashes, ignoreUnstaged, ignoreUntracked, ignoreUnpushed bool) *Template {
	return &Template{
		Ignore:          ignore,
		Full:            full,
		IgnoreStashes:   ignoreStashes,
		IgnoreUnstaged:  ignoreUnstaged,
		IgnoreUntracked: ignoreUntracked,
		IgnoreUnpushed:  ignoreUnpushed,
	}
}

func (*Template) Name() string { return "git" }
func (*Template) Category() flavour.Category { return flavour.Repository }
func (*Template) Probe(dir *dirjob.Dir) bool { return dir.HasDir(".git") }

// Build binds dir. The .git directory itself is never mirrored, so it
// is dropped from the child list up front; with --git-full the
// remaining children recurse like Plain's would.
func (t *Template) Build(dir *dirjob.Dir) flavour.Bound {
	dir.RemoveDirs(".git")
	return &Bound{tmpl: t, dir: dir}
}

// Bound is Git's per-Dir instance.
type Bound struct {
	tmpl   *Template
	dir    *dirjob.Dir
	method dirjob.SyncMethod
}

func (*Bound) Name() string { return "git" }
func (b *Bound) Source() string { return b.dir.SrcPath }
func (*Bound) Category() flavour.Category { return flavour.Repository }
func (b *Bound) Recurse() bool { return b.tmpl.Full }
func (b *Bound) Skip() bool { return b.tmpl.Ignore }
func (*Bound) Stay() bool { return false }

func (b *Bound) Prepare() (dirjob.SyncMethod, error) {
	m, err := base.Prepare(b.dir)
	b.method = m
	return m, err
}

func (b *Bound) Method() dirjob.SyncMethod { return b.method }

// Dup and Merge share one strategy, dupAll, unless --git-full is set.
func (b *Bound) Dup() error {
	if b.tmpl.Full {
		return base.Dup(b.dir)
	}
	return b.dupAll()
}

func (b *Bound) Merge() error {
	if b.tmpl.Full {
		return base.Merge(b.dir)
	}
	return b.dupAll()
}

// dupAll clears and repopulates the four distillation subdirectories.
// The target is cleared first so repeated runs are idempotent: a
// subdirectory present from a previous run but now ignored or empty is
// replaced by the corresponding marker file.
func (b *Bound) dupAll() error {
	repo, err := git.PlainOpen(b.dir.SrcPath)
	if err != nil {
		return syncerr.Wrap(err)
	}

	for _, name := range []string{subdirStashes, subdirUntracked, subdirUnstaged, subdirRepo} {
		if err := fsutil.ResetSubdir(b.dir.DstPath, name); err != nil {
			return err
		}
	}

	if err := b.dupStashes(repo); err != nil {
		return err
	}
	if err := b.dupStatus(repo); err != nil {
		return err
	}
	if err := b.dupRepo(repo); err != nil {
		return err
	}
	return nil
}
