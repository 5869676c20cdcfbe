package git

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/Henneberg-Systemdesign/devsync/internal/backup/fsutil"
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/syncerr"
)

// stashEntry is one line of refs/stash's reflog: a stash commit plus
// the index it held at read time (stash@{0} is the most recent).
type stashEntry struct {
	index int
	hash  plumbing.Hash
	msg   string
}

// dupStashes writes one mail-formatted diff file per stash, named
// "<stash-name>-<oid>", or the stashes.ignored/stashes.empty marker.
//
// go-git has no high-level stash API (stashes aren't a real git object,
// just commits referenced from refs/stash's reflog), so the reflog is
// read directly from .git/logs/refs/stash in git's standard text
// format, and go-git is used from there on to load and diff the
// referenced commits.
func (b *Bound) dupStashes(repo *git.Repository) error {
	if b.tmpl.IgnoreStashes {
		return fsutil.WriteMarker(markerPath(b, subdirStashes), ".ignored")
	}

	entries, err := readStashReflog(b.dir.SrcPath)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fsutil.WriteMarker(markerPath(b, subdirStashes), ".empty")
	}

	dir := markerPath(b, subdirStashes)
	if err := fsutil.EnsureDir(dir); err != nil {
		return err
	}

	for _, e := range entries {
		commit, err := repo.CommitObject(e.hash)
		if err != nil {
			continue
		}
		parent, err := commit.Parent(0)
		if err != nil {
			continue
		}
		patch, err := parent.Patch(commit)
		if err != nil {
			continue
		}

		name := stashName(e.msg)
		fname := fmt.Sprintf("%s-%s", name, e.hash.String())
		mail := formatStashMail(commit, name, patch.String())
		if err := os.WriteFile(filepath.Join(dir, fname), []byte(mail), 0o644); err != nil {
			return syncerr.Wrap(err)
		}
	}
	return nil
}

// readStashReflog parses .git/logs/refs/stash, returning entries
// ordered most-recent-first (stash@{0} first), matching `git stash
// list`'s ordering.
func readStashReflog(repoPath string) ([]stashEntry, error) {
	path := filepath.Join(repoPath, ".git", "logs", "refs", "stash")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, syncerr.Wrap(err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, syncerr.Wrap(err)
	}

	entries := make([]stashEntry, 0, len(lines))
	for i := len(lines) - 1; i >= 0; i-- {
		fields := strings.SplitN(lines[i], "\t", 2)
		if len(fields) != 2 {
			continue
		}
		header := strings.Fields(fields[0])
		if len(header) < 2 {
			continue
		}
		hash := plumbing.NewHash(header[1])
		if hash.IsZero() {
			continue
		}
		entries = append(entries, stashEntry{
			index: len(lines) - 1 - i,
			hash:  hash,
			msg:   fields[1],
		})
	}
	return entries, nil
}

// stashName derives a filesystem-safe stash identifier from the
// reflog message, e.g. "On main: WIP" -> "main-wip".
func stashName(msg string) string {
	msg = strings.TrimPrefix(msg, "WIP on ")
	msg = strings.TrimPrefix(msg, "On ")
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(msg) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = "stash"
	}
	return name
}

func formatStashMail(commit *object.Commit, name, diff string) string {
	sig := commit.Author
	return fmt.Sprintf(
		"From: %s <%s>\nDate: %s\nSubject: [STASH] %s\n\n---\n%s\n",
		sig.Name, sig.Email, sig.When.Format("Mon, 2 Jan 2006 15:04:05 -0700"),
		name, diff,
	)
}

func markerPath(b *Bound, name string) string {
	return filepath.Join(b.dir.DstPath, name)
}
