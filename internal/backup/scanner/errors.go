package scanner

import "github.com/Henneberg-Systemdesign/devsync/internal/backup/syncerr"

func errNoSuchFlavour(name string) error {
	return syncerr.Newf("no registered flavour named %q for carried dir", name)
}

func errNoFlavourMatched(path string) error {
	return syncerr.Newf("no flavour matched %q (Plain should always match)", path)
}
