package svn

import (
	"bytes"
	"encoding/xml"
	"io"
	"os/exec"
	"path/filepath"

	"github.com/Henneberg-Systemdesign/devsync/internal/backup/syncerr"
)

// statusResult is the outcome of parsing `svn status --xml`: the
// modified regular files and the unversioned entries (split by
// directory/file), all relative to the working-copy root's source
// path.
type statusResult struct {
	Modified         []string
	UnversionedFiles []string
	UnversionedDirs  []string
}

// parseStatus invokes `svn status --xml <path>` and pull-parses the
// result via encoding/xml's token-at-a-time Decoder, maintaining a
// (path, reason) pair across <entry path="…"> and <wc-status item="…">
// tokens and routing once both are filled.
//
// isDir reports whether an entry path is a directory on disk, needed
// because the XML payload alone doesn't distinguish files from
// directories for unversioned entries.
func parseStatus(srcPath string, isDir func(path string) bool) (statusResult, error) {
	out, err := exec.Command("svn", "status", "--xml", srcPath).Output()
	if err != nil {
		return statusResult{}, syncerr.Wrap(err)
	}
	result, err := decodeStatus(bytes.NewReader(out), isDir)
	if err != nil {
		return result, err
	}
	result.Modified = relativize(srcPath, result.Modified)
	result.UnversionedFiles = relativize(srcPath, result.UnversionedFiles)
	result.UnversionedDirs = relativize(srcPath, result.UnversionedDirs)
	return result, nil
}

// relativize rebases entry paths against the working copy's source
// path: svn echoes paths the way the status target was spelled on the
// command line, so an absolute source path yields absolute entries.
func relativize(base string, paths []string) []string {
	for i, p := range paths {
		if !filepath.IsAbs(p) {
			continue
		}
		if rel, err := filepath.Rel(base, p); err == nil {
			paths[i] = rel
		}
	}
	return paths
}

func decodeStatus(r io.Reader, isDir func(relPath string) bool) (statusResult, error) {
	var result statusResult

	dec := xml.NewDecoder(r)
	var curPath string
	var curReason string
	haveEntry := false

	flush := func() {
		if !haveEntry {
			return
		}
		switch curReason {
		case "modified":
			// only regular files belong in the modified list; a
			// property-modified directory has nothing to copy
			if isDir == nil || !isDir(curPath) {
				result.Modified = append(result.Modified, curPath)
			}
		case "unversioned":
			if isDir != nil && isDir(curPath) {
				result.UnversionedDirs = append(result.UnversionedDirs, curPath)
			} else {
				result.UnversionedFiles = append(result.UnversionedFiles, curPath)
			}
		}
		curPath, curReason, haveEntry = "", "", false
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return statusResult{}, syncerr.Wrap(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "entry":
				flush()
				for _, attr := range t.Attr {
					if attr.Name.Local == "path" {
						curPath = attr.Value
						haveEntry = true
					}
				}
			case "wc-status":
				for _, attr := range t.Attr {
					if attr.Name.Local == "item" {
						curReason = attr.Value
					}
				}
			}
		case xml.EndElement:
			if t.Name.Local == "entry" {
				flush()
			}
		}
	}
	flush()

	return result, nil
}
