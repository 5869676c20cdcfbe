package flavour

import (
	"testing"

	"github.com/Henneberg-Systemdesign/devsync/internal/backup/dirjob"
)

// fakeTemplate is a minimal Template/Bound stand-in for registry tests,
// avoiding a dependency on any concrete flavour package.
type fakeTemplate struct {
	name     string
	category Category
	probe    func(*dirjob.Dir) bool
}

func (f *fakeTemplate) Name() string { return f.name }
func (f *fakeTemplate) Category() Category { return f.category }
func (f *fakeTemplate) Probe(dir *dirjob.Dir) bool { return f.probe(dir) }
func (f *fakeTemplate) Build(dir *dirjob.Dir) Bound {
	return &fakeBound{name: f.name, category: f.category}
}

type fakeBound struct {
	name     string
	category Category
}

func (f *fakeBound) Name() string { return f.name }
func (f *fakeBound) Source() string { return "" }
func (f *fakeBound) Category() Category { return f.category }
func (f *fakeBound) Recurse() bool { return true }
func (f *fakeBound) Skip() bool { return false }
func (f *fakeBound) Stay() bool { return false }
func (f *fakeBound) Prepare() (dirjob.SyncMethod, error) { return dirjob.Duplicate, nil }
func (f *fakeBound) Method() dirjob.SyncMethod { return dirjob.Duplicate }
func (f *fakeBound) Dup() error { return nil }
func (f *fakeBound) Merge() error { return nil }

func alwaysTrue(*dirjob.Dir) bool { return true }
func alwaysFalse(*dirjob.Dir) bool { return false }

func TestClassifyPicksFirstCategoryHit(t *testing.T) {
	special := &fakeTemplate{name: "special", category: Special, probe: alwaysTrue}
	plain := &fakeTemplate{name: "plain", category: Plain, probe: alwaysTrue}

	reg := NewRegistry(plain, special)

	got := reg.Classify(&dirjob.Dir{})
	if got.Name() != "special" {
		t.Fatalf("Classify picked %q, want special (lower category wins)", got.Name())
	}
}

func TestClassifyFallsThroughToPlain(t *testing.T) {
	build := &fakeTemplate{name: "build", category: Build, probe: alwaysFalse}
	plain := &fakeTemplate{name: "plain", category: Plain, probe: alwaysTrue}

	reg := NewRegistry(build, plain)

	got := reg.Classify(&dirjob.Dir{})
	if got.Name() != "plain" {
		t.Fatalf("Classify picked %q, want plain fallback", got.Name())
	}
}

func TestClassifyNoMatch(t *testing.T) {
	reg := NewRegistry(&fakeTemplate{name: "x", category: Plain, probe: alwaysFalse})
	if got := reg.Classify(&dirjob.Dir{}); got != nil {
		t.Fatalf("Classify() = %v, want nil", got)
	}
}

func TestByName(t *testing.T) {
	reg := NewRegistry(&fakeTemplate{name: "yocto", category: Special, probe: alwaysFalse})

	tmpl, ok := reg.ByName("yocto")
	if !ok || tmpl.Name() != "yocto" {
		t.Fatalf("ByName(yocto) = %v, %v", tmpl, ok)
	}
	if _, ok := reg.ByName("missing"); ok {
		t.Fatalf("ByName(missing) should report false")
	}
}

func TestCategoryString(t *testing.T) {
	if Special.String() != "special" || Plain.String() != "plain" {
		t.Fatalf("Category.String() mismatch")
	}
}
