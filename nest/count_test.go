package nest

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
)

func TestCount(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTree(t, fsys, "/data/root", map[string]string{
		"a.txt":                "alpha",
		"b.txt":                "bravo",
		"a.txt_deadbeef.zip":   "leftover",
		"sub/c.txt":            "charlie",
		"sub/deeper/d.txt":     "delta",
		"sub/deeper/deepest/e": "echo",
		"other/":               "",
	})

	tests := []struct {
		name     string
		maxDepth int
		want     Tally
	}{
		{
			name:     "depth 0",
			maxDepth: 0,
			want:     Tally{Files: 2, Dirs: 1, Skipped: 3, Bytes: 10},
		},
		{
			name:     "depth 1",
			maxDepth: 1,
			want:     Tally{Files: 3, Dirs: 3, Skipped: 2, Bytes: 17},
		},
		{
			name:     "unlimited",
			maxDepth: Unlimited,
			want:     Tally{Files: 5, Dirs: 5, Skipped: 1, Bytes: 26},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Count(context.Background(), fsys, "/data/root", tt.maxDepth)
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Count = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCountMatchesArchiveEvents(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTree(t, fsys, "/data/root", map[string]string{
		"a.txt":          "a",
		"x/y/z/deep.txt": "deep",
		"x/mid.txt":      "mid",
		"w/":             "",
	})

	for _, depth := range []int{0, 1, 2, Unlimited} {
		tally, err := Count(context.Background(), fsys, "/data/root", depth)
		if err != nil {
			t.Fatalf("Count(%d) failed: %v", depth, err)
		}
		completed := 0
		sink := SinkFunc(func(e Event) {
			if e.Phase == PhaseCompleted {
				completed++
			}
		})
		if _, err := Archive(context.Background(), fsys, "/data/root", Options{MaxDepth: depth, Sink: sink}); err != nil {
			t.Fatalf("Archive(%d) failed: %v", depth, err)
		}
		if completed != tally.Items() {
			t.Errorf("depth %d: %d completed events, Count reported %d items", depth, completed, tally.Items())
		}
	}
}

func TestCount_Errors(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTree(t, fsys, "/data/root", map[string]string{"a.txt": "a"})

	if _, err := Count(context.Background(), fsys, "/data/missing", Unlimited); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing root: got %v, want ErrNotFound", err)
	}
	if _, err := Count(context.Background(), fsys, "/data/root/a.txt", Unlimited); !errors.Is(err, ErrNotADirectory) {
		t.Errorf("file root: got %v, want ErrNotADirectory", err)
	}
	if _, err := Count(context.Background(), fsys, "/data/root", -5); !errors.Is(err, ErrInvalidDepth) {
		t.Errorf("bad depth: got %v, want ErrInvalidDepth", err)
	}
}
