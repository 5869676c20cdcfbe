package main

import "github.com/spf13/cobra"

// options holds every CLI flag, bound directly via cmd.Flags().
type options struct {
	Source  string
	Target  string
	Delete  bool
	Archive bool
	UI      bool
	Ignore  []string
	Jobs    uint16

	GitIgnore          bool
	GitFull            bool
	GitIgnoreStashes   bool
	GitIgnoreUnstaged  bool
	GitIgnoreUntracked bool
	GitIgnoreUnpushed  bool

	SvnIgnore            bool
	SvnFull              bool
	SvnIgnoreUnversioned bool
	SvnIgnoreModified    bool

	YoctoIgnore        bool
	YoctoDownloadsSync bool
	YoctoBuildSync     bool

	SysrootSync bool

	CmakeSync   bool
	MesonSync   bool
	NinjaSync   bool
	CargoSync   bool
	FlutterSync bool
}

const defaultJobs = 10

func newRootCmd(rawArgs []string, loadedFromSession bool) *cobra.Command {
	opts := &options{Jobs: defaultJobs}

	cmd := &cobra.Command{
		Use:     "devsync",
		Short:   "Flavour-aware parallel directory backup",
		Version: version + " (" + commit + ")",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDevsync(rawArgs, loadedFromSession, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.Source, "source", "s", "", "source directory (required)")
	f.StringVarP(&opts.Target, "target", "t", "", "target directory (required)")
	f.BoolVarP(&opts.Delete, "delete", "d", false, "remove target entries absent from source")
	f.BoolVarP(&opts.Archive, "archive", "a", false, "preserve timestamps and permissions on copy")
	f.BoolVarP(&opts.UI, "ui", "u", false, "enable the terminal progress UI")
	f.StringSliceVarP(&opts.Ignore, "ignore", "i", nil, "comma-separated list of path suffixes to ignore")
	f.Uint16VarP(&opts.Jobs, "jobs", "j", defaultJobs, "number of parallel worker jobs (1-255)")

	f.BoolVar(&opts.GitIgnore, "git-ignore", false, "skip git working copies entirely")
	f.BoolVar(&opts.GitFull, "git-full", false, "mirror git working copies in full instead of distilling them")
	f.BoolVar(&opts.GitIgnoreStashes, "git-ignore-stashes", false, "don't back up stashes")
	f.BoolVar(&opts.GitIgnoreUnstaged, "git-ignore-unstaged", false, "don't back up unstaged modifications")
	f.BoolVar(&opts.GitIgnoreUntracked, "git-ignore-untracked", false, "don't back up untracked files")
	f.BoolVar(&opts.GitIgnoreUnpushed, "git-ignore-unpushed", false, "don't bare-clone repos with unpushed branches")

	f.BoolVar(&opts.SvnIgnore, "svn-ignore", false, "skip svn working copies entirely")
	f.BoolVar(&opts.SvnFull, "svn-full", false, "mirror svn working copies in full instead of distilling them")
	f.BoolVar(&opts.SvnIgnoreUnversioned, "svn-ignore-unversioned", false, "don't back up unversioned entries")
	f.BoolVar(&opts.SvnIgnoreModified, "svn-ignore-modified", false, "don't back up modified entries")

	f.BoolVar(&opts.YoctoIgnore, "yocto-ignore", false, "skip yocto build trees entirely")
	f.BoolVar(&opts.YoctoDownloadsSync, "yocto-downloads-sync", false, "include the downloads subdirectory")
	f.BoolVar(&opts.YoctoBuildSync, "yocto-build-sync", false, "include build-cache subdirectories")

	f.BoolVar(&opts.SysrootSync, "sysroot-sync", false, "mirror sysroot trees instead of skipping them")

	f.BoolVar(&opts.CmakeSync, "cmake-sync", false, "mirror CMake build directories instead of skipping them")
	f.BoolVar(&opts.MesonSync, "meson-sync", false, "mirror Meson build directories instead of skipping them")
	f.BoolVar(&opts.NinjaSync, "ninja-sync", false, "mirror Ninja build directories instead of skipping them")
	f.BoolVar(&opts.CargoSync, "cargo-sync", false, "mirror Cargo build directories instead of skipping them")
	f.BoolVar(&opts.FlutterSync, "flutter-sync", false, "mirror Flutter build directories instead of skipping them")

	return cmd
}
