// Package stats implements the single-reader event aggregator described
// in the scan controller's design: a multi-producer channel of typed
// events, two monotonic completion flags, and a humanize-formatted
// progress summary.
package stats

import (
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"
)

// Command identifies the kind of a Transport event.
type Command int

const (
	Todo Command = iota
	Scanned
	Done
	Skipped
	Error
	Runtime
	Log
	ScanComplete
	Complete
	Job
)

func (c Command) String() string {
	switch c {
	case Todo:
		return "todo"
	case Scanned:
		return "scanned"
	case Done:
		return "done"
	case Skipped:
		return "skipped"
	case Error:
		return "error"
	case Runtime:
		return "runtime"
	case Log:
		return "log"
	case ScanComplete:
		return "scan_complete"
	case Complete:
		return "complete"
	case Job:
		return "job"
	default:
		return "unknown"
	}
}

// Info carries the extra payload for Runtime, Log and Job events.
type Info struct {
	Category string
	Name     string
	Desc     string
}

// Event is the value sent over the stats channel.
type Event struct {
	Cmd   Command
	Value int64
	Info  *Info
}

// Stats accumulates directory counters and derives the two completion
// predicates the scan controller polls to decide when to stop.
type Stats struct {
	events chan Event

	mu      sync.Mutex
	todo    int64
	scanned int64
	done    int64
	skipped int64
	errs    int64

	doneMu   sync.Mutex
	scanDone bool
	procDone bool
	closed   bool

	// Runtime and Log entries accumulate for UI consumption; bounded by
	// nothing here, the UI layer decides how much of this to render.
	logMu   sync.Mutex
	runtime []Info
	logs    []Info
	jobs    map[int]Info
}

// New creates a Stats with a buffered (1024-event) channel and starts its
// single consumer goroutine. Callers obtain the sender side via Sender
// and must Close once every producer has stopped.
func New() *Stats {
	s := &Stats{
		events: make(chan Event, 1024),
		jobs:   make(map[int]Info),
	}
	go s.consume()
	return s
}

// Sender returns the channel producers emit Events on.
func (s *Stats) Sender() chan<- Event { return s.events }

// Close shuts the consumer goroutine down. Callers must ensure no
// producer sends after Close is called.
func (s *Stats) Close() {
	s.doneMu.Lock()
	s.closed = true
	s.doneMu.Unlock()
	close(s.events)
}

func (s *Stats) consume() {
	for ev := range s.events {
		s.process(ev)
	}
}

func (s *Stats) process(ev Event) {
	s.mu.Lock()
	switch ev.Cmd {
	case Todo:
		s.todo += ev.Value
	case Scanned:
		s.scanned += ev.Value
	case Done:
		s.done += ev.Value
	case Skipped:
		s.skipped += ev.Value
	case Error:
		s.errs += ev.Value
	}
	todo, scanned, done, skipped, errs := s.todo, s.scanned, s.done, s.skipped, s.errs
	s.mu.Unlock()

	switch ev.Cmd {
	case Runtime:
		if ev.Info != nil {
			s.logMu.Lock()
			s.runtime = append(s.runtime, *ev.Info)
			s.logMu.Unlock()
		}
	case Log:
		if ev.Info != nil {
			s.logMu.Lock()
			s.logs = append(s.logs, *ev.Info)
			s.logMu.Unlock()
		}
	case Job:
		if ev.Info != nil {
			s.logMu.Lock()
			s.jobs[int(ev.Value)] = *ev.Info
			s.logMu.Unlock()
		}
	}

	scanComplete := todo > 0 && todo == scanned+errs
	procComplete := todo > 0 && todo == done+errs+skipped

	// Rising edges set the flag and publish the matching event back on
	// the channel so stream-order consumers see them too. The publish is
	// non-blocking and skipped once Close ran: the flags are
	// authoritative, the events advisory.
	s.doneMu.Lock()
	if scanComplete && !s.scanDone {
		s.scanDone = true
		s.publishLocked(Event{Cmd: ScanComplete})
	}
	if procComplete && !s.procDone {
		s.procDone = true
		s.publishLocked(Event{Cmd: Complete})
	}
	s.doneMu.Unlock()
}

func (s *Stats) publishLocked(ev Event) {
	if s.closed {
		return
	}
	select {
	case s.events <- ev:
	default:
	}
}

// ScanDone reports whether the scan phase has completed: todo == scanned + error.
func (s *Stats) ScanDone() bool {
	s.doneMu.Lock()
	defer s.doneMu.Unlock()
	return s.scanDone
}

// ProcDone reports whether the process phase has completed:
// todo == done + error + skipped.
func (s *Stats) ProcDone() bool {
	s.doneMu.Lock()
	defer s.doneMu.Unlock()
	return s.procDone
}

// Snapshot is an immutable copy of the counters, safe to read from any
// goroutine (e.g. the progress bar ticker).
type Snapshot struct {
	Todo, Scanned, Done, Skipped, Error int64
}

func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{s.todo, s.scanned, s.done, s.skipped, s.errs}
}

// Runtime returns a copy of the accumulated Runtime-event list, for the
// UI's scrolling error pane.
func (s *Stats) Runtime() []Info {
	s.logMu.Lock()
	defer s.logMu.Unlock()
	out := make([]Info, len(s.runtime))
	copy(out, s.runtime)
	return out
}

// Jobs returns a copy of the per-worker "currently working on" map fed
// by Job events, keyed by worker id.
func (s *Stats) Jobs() map[int]Info {
	s.logMu.Lock()
	defer s.logMu.Unlock()
	out := make(map[int]Info, len(s.jobs))
	for id, info := range s.jobs {
		out[id] = info
	}
	return out
}

// Logs returns a copy of the accumulated Log-event list.
func (s *Stats) Logs() []Info {
	s.logMu.Lock()
	defer s.logMu.Unlock()
	out := make([]Info, len(s.logs))
	copy(out, s.logs)
	return out
}

// String renders a one-line humanized summary, in the style of the
// scanner/verifier stats lines this is adapted from.
func (snap Snapshot) String() string {
	pct := 0.0
	if snap.Todo > 0 {
		pct = 100 * float64(snap.Done+snap.Error) / float64(snap.Todo)
	}
	return fmt.Sprintf("todo=%s scanned=%s done=%s skipped=%s error=%s (%.1f%%)",
		humanize.Comma(snap.Todo), humanize.Comma(snap.Scanned), humanize.Comma(snap.Done),
		humanize.Comma(snap.Skipped), humanize.Comma(snap.Error), pct)
}

// Emit is a convenience for sending a plain counter event.
func Emit(sink chan<- Event, cmd Command, value int64) {
	sink <- Event{Cmd: cmd, Value: value}
}

// EmitInfo is a convenience for sending an event carrying an Info payload.
func EmitInfo(sink chan<- Event, cmd Command, value int64, info Info) {
	sink <- Event{Cmd: cmd, Value: value, Info: &info}
}
