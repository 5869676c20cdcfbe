// Package scanner implements the scan/process pipeline: the concurrent
// controller that classifies directories, decides on recursion, fans
// work out across a fixed worker pool over channels, and drives
// per-flavour backup strategies.
package scanner

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/Henneberg-Systemdesign/devsync/internal/backup/dirjob"
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/flavour"
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/fsutil"
	"github.com/Henneberg-Systemdesign/devsync/internal/backup/stats"
)

const scanRecvTimeout = 100 * time.Millisecond

// scanMsg is the payload carried on the scan channel: a path to
// classify, and the name of a flavour to reuse without probing if a
// stay()-ing ancestor carried it down.
type scanMsg struct {
	path  string
	carry string
}

// Scanner owns the scan/process channels and the worker pool that
// drains them.
type Scanner struct {
	srcRoot, dstRoot string
	cfg              *dirjob.Config
	stats            *stats.Stats
	registry         *flavour.Registry

	scanSend chan<- scanMsg
	scanRecv <-chan scanMsg
	procSend chan<- flavour.Bound
	procRecv <-chan flavour.Bound
}

// New constructs a Scanner. reg must include a Plain-equivalent
// template whose Probe always succeeds, as the terminal fallback.
func New(srcRoot, dstRoot string, cfg *dirjob.Config, st *stats.Stats, reg *flavour.Registry) *Scanner {
	scanSend, scanRecv := unboundedChan[scanMsg]()
	procSend, procRecv := unboundedChan[flavour.Bound]()
	return &Scanner{
		srcRoot:  srcRoot,
		dstRoot:  dstRoot,
		cfg:      cfg,
		stats:    st,
		registry: reg,
		scanSend: scanSend,
		scanRecv: scanRecv,
		procSend: procSend,
		procRecv: procRecv,
	}
}

// Run seeds the scan channel with the source root and blocks until
// every worker has exhausted both phases.
func (s *Scanner) Run() {
	sink := s.stats.Sender()
	stats.Emit(sink, stats.Todo, 1)

	var wg sync.WaitGroup
	for j := 0; j < int(s.cfg.Jobs); j++ {
		wg.Add(1)
		go s.worker(j, &wg)
	}

	s.scanSend <- scanMsg{path: s.srcRoot}
	wg.Wait()

	close(s.scanSend)
	close(s.procSend)
}

func (s *Scanner) worker(id int, wg *sync.WaitGroup) {
	defer wg.Done()
	sink := s.stats.Sender()

scanPhase:
	for {
		select {
		case msg := <-s.scanRecv:
			if err := s.scan(msg.path, msg.carry, id); err != nil {
				stats.EmitInfo(sink, stats.Error, 1, stats.Info{Name: msg.path, Desc: err.Error()})
			} else {
				stats.Emit(sink, stats.Scanned, 1)
			}
		case <-time.After(scanRecvTimeout):
			if s.stats.ScanDone() {
				break scanPhase
			}
		}
	}

	// The forwarding goroutine behind the unbounded channel may still
	// hold queued items while no receive is ready, so an empty-looking
	// channel is only authoritative once the completion predicate holds.
	for {
		select {
		case bound := <-s.procRecv:
			if err := s.process(bound, id); err != nil {
				stats.EmitInfo(sink, stats.Error, 1, stats.Info{
					Category: bound.Category().String(), Name: bound.Name(), Desc: err.Error(),
				})
			} else {
				stats.Emit(sink, stats.Done, 1)
			}
		case <-time.After(scanRecvTimeout):
			if s.stats.ProcDone() {
				return
			}
		}
	}
}

// scan classifies path, prepares its target, and (if recursion is
// allowed) enqueues its children for scanning before handing the bound
// flavour to the process channel.
func (s *Scanner) scan(path, carry string, jobID int) error {
	dir, err := dirjob.New(s.srcRoot, s.dstRoot, path, jobID, s.cfg, s.stats)
	if err != nil {
		return err
	}

	entries, err := fsutil.List(path, s.cfg.Owned, s.cfg.Matches)
	if err != nil {
		return err
	}
	dir.Dirs, dir.Files = entries.Dirs, entries.Files

	if s.cfg.Delete {
		exDirs, exFiles, err := fsutil.Extraneous(dir.DstPath, dir.Dirs, dir.Files)
		if err != nil {
			return err
		}
		dir.ExDirs, dir.ExFiles = exDirs, exFiles
	}

	var bound flavour.Bound
	if carry != "" {
		tmpl, ok := s.registry.ByName(carry)
		if !ok {
			return errNoSuchFlavour(carry)
		}
		bound = tmpl.Build(dir)
	} else {
		tmpl := s.registry.Classify(dir)
		if tmpl == nil {
			return errNoFlavourMatched(path)
		}
		bound = tmpl.Build(dir)
	}

	sink := s.stats.Sender()

	if bound.Skip() {
		stats.EmitInfo(sink, stats.Log, 0, stats.Info{
			Category: bound.Category().String(), Name: bound.Name(), Desc: "skipped: " + path,
		})
		if s.cfg.Delete && fsutil.Exists(dir.DstPath) {
			if err := fsutil.RemoveAll(dir.DstPath); err != nil {
				return err
			}
		}
		stats.Emit(sink, stats.Skipped, 1)
		return nil
	}

	if _, err := bound.Prepare(); err != nil {
		return err
	}

	if bound.Recurse() {
		for _, exDir := range dir.ExDirs {
			if err := fsutil.RemoveAll(filepath.Join(dir.DstPath, exDir)); err != nil {
				return err
			}
		}

		childCarry := ""
		if bound.Stay() {
			childCarry = bound.Name()
		}
		for _, child := range dir.Dirs {
			stats.Emit(sink, stats.Todo, 1)
			s.scanSend <- scanMsg{path: filepath.Join(path, child), carry: childCarry}
		}
	}

	s.procSend <- bound
	return nil
}

// process runs the flavour's dup or merge strategy, as decided by the
// SyncMethod cached from Prepare.
func (s *Scanner) process(bound flavour.Bound, jobID int) error {
	sink := s.stats.Sender()
	stats.EmitInfo(sink, stats.Job, int64(jobID), stats.Info{
		Category: bound.Category().String(), Name: bound.Name(), Desc: bound.Source(),
	})

	if bound.Method() == dirjob.Merge {
		return bound.Merge()
	}
	return bound.Dup()
}
