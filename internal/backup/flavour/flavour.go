// Package flavour defines the closed set of directory-classification
// strategies and the ordered registry that dispatches among them. The
// set of flavours is fixed at compile time: one concrete type per
// flavour satisfies the Template/Bound interfaces, and the registry's
// category ordering decides classification precedence.
package flavour

import (
	"sort"

	"github.com/Henneberg-Systemdesign/devsync/internal/backup/dirjob"
)

// Category governs classification precedence. The registry sorts
// ascending by category so composite flavours (Yocto, a Yocto root
// that also happens to be a Git checkout) win over their constituents.
type Category int

const (
	Unknown    Category = 0
	Special    Category = 1
	Build      Category = 30
	Repository Category = 60
	Plain      Category = 100
)

func (c Category) String() string {
	switch c {
	case Unknown:
		return "unknown"
	case Special:
		return "special"
	case Build:
		return "build"
	case Repository:
		return "repository"
	case Plain:
		return "plain"
	default:
		return "?"
	}
}

// Template is a stateless-with-respect-to-Dir flavour instance created
// at startup from parsed CLI options. Build clones it into a Bound
// instance for a specific Dir.
type Template interface {
	// Name is the flavour's stable identifier, used both for carry/stay
	// propagation and for the per-job UI label.
	Name() string
	// Category governs registry ordering.
	Category() Category
	// Probe reports whether dir matches this flavour's detection rule.
	Probe(dir *dirjob.Dir) bool
	// Build clones the template into a Bound instance holding dir.
	Build(dir *dirjob.Dir) Bound
}

// Bound is a flavour instance with a Dir installed, ready to drive the
// scan and process phases for that one directory.
type Bound interface {
	Name() string
	Category() Category
	// Source is the absolute source path of the bound Dir, carried on
	// Job events so the UI can show what each worker is handling.
	Source() string

	// Recurse reports whether the scanner should enqueue this
	// directory's children for scanning.
	Recurse() bool
	// Skip reports whether this directory should be skipped entirely
	// (no recursion, no copy; extraneous target removed if delete is on).
	Skip() bool
	// Stay reports whether descendants should bypass re-classification
	// and reuse this flavour's Build when dequeued.
	Stay() bool

	// Prepare ensures the target path exists (or is cleared of a
	// conflicting regular file) and returns the SyncMethod for this run.
	Prepare() (dirjob.SyncMethod, error)
	// Method returns the SyncMethod decided by the most recent Prepare.
	Method() dirjob.SyncMethod

	// Dup populates a freshly created target (SyncMethod == Duplicate).
	Dup() error
	// Merge reconciles an existing target (SyncMethod == Merge).
	Merge() error
}

// Registry holds the ordered set of flavour templates and performs
// classification.
type Registry struct {
	templates []Template
	byName    map[string]Template
}

// NewRegistry builds a Registry from templates, stably sorted ascending
// by Category so ties keep registration order (composite flavours are
// expected to register with a lower category than their constituents,
// so registration order only matters among same-category flavours).
func NewRegistry(templates ...Template) *Registry {
	sorted := make([]Template, len(templates))
	copy(sorted, templates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Category() < sorted[j].Category()
	})
	byName := make(map[string]Template, len(sorted))
	for _, t := range sorted {
		byName[t.Name()] = t
	}
	return &Registry{templates: sorted, byName: byName}
}

// Classify returns the first template (in category order) whose Probe
// succeeds for dir. Plain is the terminal fallback and must always be
// registered, since its Probe unconditionally succeeds.
func (r *Registry) Classify(dir *dirjob.Dir) Template {
	for _, t := range r.templates {
		if t.Probe(dir) {
			return t
		}
	}
	return nil
}

// ByName looks up a template by its stable name, used to resolve a
// carried flavour name into the template that should Build a
// descendant's Dir without re-probing.
func (r *Registry) ByName(name string) (Template, bool) {
	t, ok := r.byName[name]
	return t, ok
}
