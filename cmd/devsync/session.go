package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Henneberg-Systemdesign/devsync/internal/backup/fsutil"
)

// maybeLoadSession replays a recorded session: when invoked with no
// arguments at all, devsync reads ".devsync" from the current working
// directory (written into the target by a prior run) and splays its
// NUL-joined contents back out as if they had been passed on the
// command line.
func maybeLoadSession(argv []string) (effective []string, loadedFromSession bool) {
	if len(argv) > 1 {
		return argv, false
	}

	raw, ok := readSessionFile(".")
	if !ok {
		return argv, false
	}
	return append(argv[:1:1], raw...), true
}

func readSessionFile(dir string) ([]string, bool) {
	data, err := os.ReadFile(filepath.Join(dir, fsutil.SessionFile))
	if err != nil {
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}
	return strings.Split(string(data), "\x00"), true
}

// persistSession writes argv (excluding argv[0]) into target's session
// file, NUL-joined, after rewriting the first -s/--source and
// -t/--target occurrences to their canonicalized absolute forms so a
// replayed session is independent of the shell's CWD at record time.
func persistSession(rawArgs []string, target string) error {
	out := make([]string, len(rawArgs))
	copy(out, rawArgs)

	rewroteSource, rewroteTarget := false, false
	for i := 0; i < len(out); i++ {
		switch out[i] {
		case "-s", "--source":
			if !rewroteSource && i+1 < len(out) {
				if abs, err := filepath.Abs(out[i+1]); err == nil {
					out[i+1] = abs
				}
				rewroteSource = true
			}
		case "-t", "--target":
			if !rewroteTarget && i+1 < len(out) {
				if abs, err := filepath.Abs(out[i+1]); err == nil {
					out[i+1] = abs
				}
				rewroteTarget = true
			}
		}
	}

	data := strings.Join(out, "\x00")
	return os.WriteFile(filepath.Join(target, fsutil.SessionFile), []byte(data), 0o644)
}
