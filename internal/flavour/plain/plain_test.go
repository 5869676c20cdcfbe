package plain

import (
	"testing"

	"github.com/Henneberg-Systemdesign/devsync/internal/backup/dirjob"
)

func TestProbeAlwaysMatches(t *testing.T) {
	tmpl := New()
	if !tmpl.Probe(&dirjob.Dir{}) {
		t.Fatalf("Probe() = false, want true (Plain is the terminal fallback)")
	}
}

func TestBoundNeverSkipsOrStays(t *testing.T) {
	tmpl := New()
	bound := tmpl.Build(&dirjob.Dir{})

	if bound.Skip() {
		t.Fatalf("Skip() = true, want false")
	}
	if bound.Stay() {
		t.Fatalf("Stay() = true, want false")
	}
	if !bound.Recurse() {
		t.Fatalf("Recurse() = false, want true")
	}
}
