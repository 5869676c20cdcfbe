package svn

import (
	"bytes"
	"encoding/xml"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Henneberg-Systemdesign/devsync/internal/backup/syncerr"
)

type svnInfoDoc struct {
	Entry struct {
		WCInfo struct {
			WCRootAbspath string `xml:"wcroot-abspath"`
		} `xml:"wc-info"`
	} `xml:"entry"`
}

// wcRoot runs `svn info --xml <path>` and extracts <wcroot-abspath>.
func wcRoot(path string) (string, error) {
	out, err := exec.Command("svn", "info", "--xml", path).Output()
	if err != nil {
		return "", syncerr.Wrap(err)
	}
	var doc svnInfoDoc
	if err := xml.NewDecoder(bytes.NewReader(out)).Decode(&doc); err != nil {
		return "", syncerr.Wrap(err)
	}
	if doc.Entry.WCInfo.WCRootAbspath == "" {
		return "", syncerr.Newf("svn info for %s had no wcroot-abspath", path)
	}
	return doc.Entry.WCInfo.WCRootAbspath, nil
}

// findWCRoot walks upward from path, retrying `svn info --xml`
// against each parent directory until one succeeds — the nearest
// enclosing working copy wins.
func findWCRoot(path string) (string, error) {
	p := path
	for {
		root, err := wcRoot(p)
		if err == nil {
			return root, nil
		}
		parent := filepath.Dir(p)
		if parent == p {
			return "", syncerr.Newf("no svn working-copy root found above %s", path)
		}
		p = parent
	}
}

// rewriteTargetForDescendant relocates b.dir.DstPath so it nests
// under the WC root's unversioned/ subtree: find the WC root, compute
// the relative path from it to the source path, pop that many
// components off the current target path, and re-append
// "unversioned/<rel>".
func (b *Bound) rewriteTargetForDescendant() error {
	root, err := findWCRoot(b.dir.SrcPath)
	if err != nil {
		return err
	}

	rel, err := filepath.Rel(root, b.dir.SrcPath)
	if err != nil {
		return syncerr.Wrap(err)
	}
	if rel == "." {
		return nil
	}

	n := len(strings.Split(rel, string(filepath.Separator)))
	rootTarget := b.dir.DstPath
	for i := 0; i < n; i++ {
		rootTarget = filepath.Dir(rootTarget)
	}

	b.dir.DstPath = filepath.Join(rootTarget, "unversioned", rel)
	return nil
}

func isDirOnDisk(base string) func(string) bool {
	return func(p string) bool {
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		info, err := os.Stat(p)
		return err == nil && info.IsDir()
	}
}
