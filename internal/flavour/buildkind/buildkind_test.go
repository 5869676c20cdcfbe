package buildkind

import (
	"testing"

	"github.com/Henneberg-Systemdesign/devsync/internal/backup/dirjob"
)

func TestProbes(t *testing.T) {
	cases := []struct {
		name  string
		probe ProbeFunc
		dir   *dirjob.Dir
		want  bool
	}{
		{"cmake-hit", CMake, &dirjob.Dir{Files: []string{"CMakeCache.txt"}}, true},
		{"cmake-miss", CMake, &dirjob.Dir{Files: []string{"other"}}, false},
		{"meson-hit", Meson, &dirjob.Dir{Files: []string{"meson-info", "meson-logs", "meson-private"}}, true},
		{"meson-partial", Meson, &dirjob.Dir{Files: []string{"meson-info", "meson-logs"}}, false},
		{"ninja-hit", Ninja, &dirjob.Dir{Files: []string{"build.ninja"}}, true},
		{"cargo-hit", Cargo, &dirjob.Dir{Files: []string{"CACHEDIR.TAG"}}, true},
		{"flutter-hit", Flutter, &dirjob.Dir{Files: []string{"foo.cache.dill.track.dill"}}, true},
		{"flutter-miss", Flutter, &dirjob.Dir{Files: []string{"foo.dill"}}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.probe(tc.dir); got != tc.want {
				t.Errorf("probe = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSkipUnlessSync(t *testing.T) {
	tmpl := New("cmake", CMake, false)
	bound := tmpl.Build(&dirjob.Dir{}).(*Bound)
	if !bound.Skip() {
		t.Fatalf("Skip() = false, want true when sync is off")
	}
	if bound.Recurse() {
		t.Fatalf("Recurse() = true, want false when skipped")
	}

	synced := New("cmake", CMake, true)
	boundSynced := synced.Build(&dirjob.Dir{}).(*Bound)
	if boundSynced.Skip() {
		t.Fatalf("Skip() = true, want false when sync is on")
	}
	if !boundSynced.Recurse() {
		t.Fatalf("Recurse() = false, want true when not skipped")
	}
}

func TestStayAlwaysTrue(t *testing.T) {
	tmpl := New("ninja", Ninja, false)
	bound := tmpl.Build(&dirjob.Dir{}).(*Bound)
	if !bound.Stay() {
		t.Fatalf("Stay() = false, want true")
	}
}
