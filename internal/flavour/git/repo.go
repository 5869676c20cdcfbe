package git

import (
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/Henneberg-Systemdesign/devsync/internal/backup/fsutil"
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/syncerr"
)

// dupRepo performs a bare local clone into the repo subdirectory iff
// any local branch has no upstream or has diverged from it.
func (b *Bound) dupRepo(repo *git.Repository) error {
	if b.tmpl.IgnoreUnpushed {
		return fsutil.WriteMarker(markerPath(b, subdirRepo), ".ignored")
	}

	needsClone, err := needsBareClone(repo)
	if err != nil {
		return err
	}
	if !needsClone {
		return fsutil.WriteMarker(markerPath(b, subdirRepo), ".empty")
	}

	dst := markerPath(b, subdirRepo)
	_, err = git.PlainClone(dst, true, &git.CloneOptions{
		URL: b.dir.SrcPath,
	})
	if err != nil {
		return syncerr.Wrap(err)
	}
	return nil
}

// needsBareClone is the disjunction, over every local branch, of
// "no upstream configured OR upstream tip != branch tip". It
// short-circuits on the first qualifying branch: a repo with an
// upstream-tracked main but one extra local branch clones the entire
// repository, not just the unpushed ref. Callers wanting finer-grained
// backup use --git-full instead.
func needsBareClone(repo *git.Repository) (bool, error) {
	cfg, err := repo.Config()
	if err != nil {
		return false, syncerr.Wrap(err)
	}

	branches, err := repo.Branches()
	if err != nil {
		return false, syncerr.Wrap(err)
	}
	defer branches.Close()

	needsClone := false
	err = branches.ForEach(func(ref *plumbing.Reference) error {
		short := ref.Name().Short()
		branchCfg, ok := cfg.Branches[short]
		if !ok || branchCfg.Remote == "" || branchCfg.Merge == "" {
			needsClone = true
			return storer.ErrStop
		}

		mergeShort := branchCfg.Merge.Short()
		upstreamName := plumbing.NewRemoteReferenceName(branchCfg.Remote, mergeShort)
		upstream, err := repo.Reference(upstreamName, true)
		if err != nil || upstream.Hash() != ref.Hash() {
			needsClone = true
			return storer.ErrStop
		}
		return nil
	})
	if err != nil && err != storer.ErrStop {
		return false, syncerr.Wrap(err)
	}
	return needsClone, nil
}
