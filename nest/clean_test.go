package nest

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/spf13/afero"
)

func TestClean(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTree(t, fsys, "/data/root", exampleTree)
	for _, tok := range []RunToken{"aaaaaaaa", "bbbbbbbb"} {
		if _, err := Archive(context.Background(), fsys, "/data/root", Options{MaxDepth: Unlimited, KeepTemporaries: true, Token: tok}); err != nil {
			t.Fatalf("Archive(%s) failed: %v", tok, err)
		}
	}
	// a root container abandoned by a killed run
	afero.WriteFile(fsys, "/data/root_cccccccc.zip", []byte("partial"), 0o644)
	// a sibling tree's leftovers are not ours
	afero.WriteFile(fsys, "/data/other_cccccccc.zip", []byte("partial"), 0o644)

	removed, err := Clean(fsys, "/data/root", "aaaaaaaa")
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	sort.Strings(removed)
	want := []string{
		"/data/root/a.txt_aaaaaaaa.zip",
		"/data/root/b.txt_aaaaaaaa.zip",
		"/data/root/sub/c.txt_aaaaaaaa.zip",
		"/data/root/sub_aaaaaaaa.zip",
	}
	if !reflect.DeepEqual(removed, want) {
		t.Errorf("removed = %v, want %v", removed, want)
	}

	removed, err = Clean(fsys, "/data/root", "")
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	if len(removed) != 5 {
		t.Errorf("removed %d artifacts, want 5: %v", len(removed), removed)
	}

	got := listFiles(t, fsys, "/data")
	wantLeft := []string{"other_cccccccc.zip", "root.zip", "root/a.txt", "root/b.txt", "root/sub/c.txt"}
	if !reflect.DeepEqual(got, wantLeft) {
		t.Errorf("files left = %v, want %v", got, wantLeft)
	}
}

func TestClean_NotADirectory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	afero.WriteFile(fsys, "/data/file", []byte("x"), 0o644)
	if _, err := Clean(fsys, "/data/file", ""); !errors.Is(err, ErrNotADirectory) {
		t.Errorf("got %v, want ErrNotADirectory", err)
	}
}
