package view

import (
	"errors"
	"path/filepath"
	"testing"

	"simlife/src/codec"
	"simlife/src/pattern"
	"simlife/src/universe"
)

func TestConsoleUI_Centre(t *testing.T) {
	c := &ConsoleUI{originX: 100, originY: 100}
	doc := pattern.New()
	doc.State = pattern.NewLiveSet(pattern.Coordinate{10, 20}, pattern.Coordinate{12, 21})
	c.centre(doc)
	if c.originX != 8 || c.originY != 18 {
		t.Errorf("got origin %v, %v, want 8, 18", c.originX, c.originY)
	}

	c.centre(pattern.New())
	if c.originX != 8 || c.originY != 18 {
		t.Errorf("empty pattern must keep the origin, got %v, %v", c.originX, c.originY)
	}
}

func TestConsoleUI_CmdOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glider.rle")
	doc := pattern.New()
	doc.Name = "Glider"
	doc.State = pattern.NewLiveSet(pattern.Coordinate{31, 40}, pattern.Coordinate{32, 41}, pattern.Coordinate{30, 42}, pattern.Coordinate{31, 42}, pattern.Coordinate{32, 42})
	if err := codec.EncodeFile(doc, path); err != nil {
		t.Fatal(err)
	}

	stateCh := make(chan universe.Status, 10)
	u := universe.NewBaseUniverse(nil, stateCh)
	defer u.Close()

	c := &ConsoleUI{u: u, inPath: path}
	if err := c.cmdOpen(nil); err != nil {
		t.Fatal(err)
	}
	if st := <-stateCh; st.Err != nil {
		t.Fatalf("open: %v", st.Err)
	}
	got := u.Document()
	if got.Name != "Glider" || got.State.Len() != 5 {
		t.Errorf("got %q with %d cells", got.Name, got.State.Len())
	}
	if !c.takeRecentre(u.Status()) {
		t.Error("successful open must move the field to the pattern")
	}
	if c.takeRecentre(u.Status()) {
		t.Error("recentre must be taken once")
	}

	c.inPath = filepath.Join(dir, "missing.rle")
	if err := c.cmdOpen(nil); err != nil {
		t.Fatal(err)
	}
	st := <-stateCh
	if !errors.Is(st.Err, pattern.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", st.Err)
	}
	if c.takeRecentre(u.Status()) {
		t.Error("failed open must keep the origin")
	}
	if c.takeRecentre(universe.Status{}) {
		t.Error("failed open must clear the recentre request")
	}
	if u.Document().State.Len() != 5 {
		t.Error("failed open must keep the loaded pattern")
	}
}
