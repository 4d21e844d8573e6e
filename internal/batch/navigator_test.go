package batch

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.tif", "notes.txt", "c.jpeg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.tif"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "c.jpeg"),
	}
	if len(files) != len(want) {
		t.Fatalf("expected %d files, got %d: %v", len(want), len(files), files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestNavigatorWalk(t *testing.T) {
	n := NewNavigator([]string{"a", "b", "c"})

	if n.Current() != "a" {
		t.Errorf("expected start at a, got %q", n.Current())
	}
	if got := n.Next(); got != "b" {
		t.Errorf("Next = %q, want b", got)
	}
	if got := n.Next(); got != "c" {
		t.Errorf("Next = %q, want c", got)
	}
	if got := n.Next(); got != "" {
		t.Errorf("Next past end = %q, want empty", got)
	}
	if n.Current() != "c" {
		t.Errorf("position moved past end: %q", n.Current())
	}
	if got := n.Prev(); got != "b" {
		t.Errorf("Prev = %q, want b", got)
	}

	pos, total := n.Position()
	if pos != 2 || total != 3 {
		t.Errorf("Position = %d/%d, want 2/3", pos, total)
	}
}

func TestNavigatorEmpty(t *testing.T) {
	n := NewNavigator(nil)
	if n.Current() != "" || n.Next() != "" || n.Prev() != "" {
		t.Errorf("empty navigator should return empty paths")
	}
	pos, total := n.Position()
	if pos != 0 || total != 0 {
		t.Errorf("Position = %d/%d, want 0/0", pos, total)
	}
}

func TestNavigatorJumpTo(t *testing.T) {
	n := NewNavigator([]string{"a", "b", "c"})
	if !n.JumpTo("c") {
		t.Fatalf("JumpTo existing path failed")
	}
	if n.Current() != "c" {
		t.Errorf("expected current c, got %q", n.Current())
	}
	if n.JumpTo("missing") {
		t.Errorf("JumpTo unknown path should fail")
	}
}
