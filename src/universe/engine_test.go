package universe

import (
	"testing"

	"simlife/src/pattern"
)

func newDocument(rule pattern.RuleSet, cells ...pattern.Coordinate) *pattern.Document {
	doc := pattern.New()
	doc.Rule = rule
	doc.State = pattern.NewLiveSet(cells...)
	return doc
}

var (
	glider  = []pattern.Coordinate{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	blinker = []pattern.Coordinate{{0, 0}, {1, 0}, {2, 0}}
	block   = []pattern.Coordinate{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
)

func TestAdvance_Glider(t *testing.T) {
	doc := newDocument(pattern.StandardRule, glider...)
	next := AdvanceN(doc, 4)
	want := doc.State.Translate(1, 1)
	if !next.State.Equal(want) {
		t.Errorf("got %v, want %v", next.State.Sorted(), want.Sorted())
	}
	for i := 1; i < 4; i++ {
		if AdvanceN(doc, i).State.Len() != 5 {
			t.Errorf("generation %d must have 5 cells", i)
		}
	}
}

func TestAdvance_Blinker(t *testing.T) {
	doc := newDocument(pattern.StandardRule, blinker...)
	one := Advance(doc)
	if one.State.Equal(doc.State) {
		t.Error("blinker must change after 1 generation")
	}
	vertical := pattern.NewLiveSet(pattern.Coordinate{1, -1}, pattern.Coordinate{1, 0}, pattern.Coordinate{1, 1})
	if !one.State.Equal(vertical) {
		t.Errorf("got %v", one.State.Sorted())
	}
	if two := Advance(one); !two.State.Equal(doc.State) {
		t.Errorf("blinker must return after 2 generations, got %v", two.State.Sorted())
	}
}

func TestAdvance_StillLife(t *testing.T) {
	doc := newDocument(pattern.StandardRule, block...)
	if next := Advance(doc); !next.State.Equal(doc.State) {
		t.Errorf("got %v", next.State.Sorted())
	}
}

func TestAdvance_Deterministic(t *testing.T) {
	doc := newDocument(pattern.StandardRule, append(append([]pattern.Coordinate{}, glider...),
		pattern.Coordinate{10, 10}, pattern.Coordinate{11, 10}, pattern.Coordinate{12, 10}, pattern.Coordinate{11, 11})...)
	first := AdvanceN(doc, 10)
	for i := 0; i < 5; i++ {
		if !AdvanceN(doc, 10).State.Equal(first.State) {
			t.Fatal("advance must be deterministic")
		}
	}
}

func TestAdvance_DoesNotMutate(t *testing.T) {
	doc := newDocument(pattern.StandardRule, blinker...)
	doc.Name = "blinker"
	doc.Description = []string{"period 2"}
	before := doc.State.Clone()

	next := Advance(doc)
	next.State.Add(100, 100)
	next.Description[0] = "changed"

	if !doc.State.Equal(before) {
		t.Error("input state was modified")
	}
	if doc.Description[0] != "period 2" {
		t.Error("input description was modified")
	}
	if next.Name != "blinker" || next.Rule != doc.Rule {
		t.Error("metadata must be carried to the next generation")
	}
}

func TestAdvance_Rule(t *testing.T) {
	highlife := pattern.RuleSet{Birth: pattern.NewCounts(3, 6), Survival: pattern.NewCounts(2, 3)}
	//six neighbours around (1,1), none of them survives
	cells := []pattern.Coordinate{{0, 0}, {1, 0}, {2, 0}, {0, 2}, {1, 2}, {2, 2}}

	if Advance(newDocument(pattern.StandardRule, cells...)).State.Has(1, 1) {
		t.Error("standard rule must not give birth on 6 neighbours")
	}
	if !Advance(newDocument(highlife, cells...)).State.Has(1, 1) {
		t.Error("highlife must give birth on 6 neighbours")
	}
}

func TestAdvance_Empty(t *testing.T) {
	if next := Advance(pattern.New()); next.State.Len() != 0 {
		t.Errorf("got %v", next.State.Sorted())
	}
}

func TestAdvanceN_Zero(t *testing.T) {
	doc := newDocument(pattern.StandardRule, blinker...)
	c := AdvanceN(doc, 0)
	c.State.Add(5, 5)
	if doc.State.Has(5, 5) {
		t.Error("AdvanceN(0) must return a copy")
	}
}
