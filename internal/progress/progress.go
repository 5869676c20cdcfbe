// Package progress renders a live terminal view of a backup run: a
// spinner/counter bar plus a trailing pane of the most recent runtime
// warnings, driven by backup/stats snapshots and Runtime events.
package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/Henneberg-Systemdesign/devsync/internal/backup/stats"
)

const updateInterval = 50 * time.Millisecond

// logPaneSize bounds how many recent runtime warnings scroll through
// the UI; older ones drop out of the pane (Stats.Runtime keeps them all).
const logPaneSize = 5

// Bar wraps progressbar with enabled/disabled handling and a trailing
// runtime-event pane. All methods are no-ops when disabled.
type Bar struct {
	bar   *progressbar.ProgressBar
	seen  int
	shown []string
}

// New creates a progress bar.
// If enabled=false, returns a Bar where all methods are no-ops.
// Use total=-1 for spinner mode, or total>0 for determinate progress.
func New(enabled bool, total int64) *Bar {
	if !enabled {
		return &Bar{}
	}

	opts := []progressbar.Option{
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(updateInterval),
		progressbar.OptionClearOnFinish(),
	}

	if total < 0 {
		// Spinner mode
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetElapsedTime(false),
		)
		return &Bar{bar: progressbar.NewOptions(-1, opts...)}
	}

	// Progress bar mode
	opts = append(opts, progressbar.OptionSetWidth(40))
	return &Bar{bar: progressbar.NewOptions64(total, opts...)}
}

// Set sets the progress bar to a specific value.
func (b *Bar) Set(n uint64) {
	if b.bar != nil {
		_ = b.bar.Set64(int64(n))
	}
}

// SetTotal raises the bar's maximum as the scan phase discovers more
// directories, turning the initial spinner into a determinate gauge.
func (b *Bar) SetTotal(n int64) {
	if b.bar != nil && n > 0 {
		b.bar.ChangeMax64(n)
	}
}

// Describe updates the progress bar description from a counters
// snapshot, the per-worker job map, and any new Runtime-event
// warnings, so a long scan shows what the workers are doing and the
// last few jobs that hit trouble without scrolling the whole terminal.
func (b *Bar) Describe(snap stats.Snapshot, jobs map[int]stats.Info, runtime []stats.Info) {
	if b.bar == nil {
		return
	}
	for _, info := range runtime[b.seen:] {
		b.shown = append(b.shown, fmt.Sprintf("%s: %s", info.Name, info.Desc))
		if len(b.shown) > logPaneSize {
			b.shown = b.shown[len(b.shown)-logPaneSize:]
		}
	}
	b.seen = len(runtime)

	desc := snap.String()
	if job, ok := lowestJob(jobs); ok {
		desc += fmt.Sprintf(" [%s %s]", job.Name, job.Desc)
	}
	for _, line := range b.shown {
		desc += " | " + line
	}
	b.bar.Describe(desc)
}

// lowestJob picks the job of the lowest-numbered worker, giving the
// description a stable anchor instead of flickering between workers.
func lowestJob(jobs map[int]stats.Info) (stats.Info, bool) {
	best := -1
	var out stats.Info
	for id, info := range jobs {
		if best == -1 || id < best {
			best, out = id, info
		}
	}
	return out, best != -1
}

// Finish completes the progress bar and prints a final summary.
func (b *Bar) Finish(snap stats.Snapshot) {
	if b.bar != nil {
		_ = b.bar.Finish()
		fmt.Fprintln(os.Stderr, "✔ "+snap.String())
	}
}
