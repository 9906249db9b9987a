package universe

import "simlife/src/pattern"

//neighbours are the offsets of the Moore neighbourhood
var neighbours = [8]pattern.Coordinate{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

//Advance calculates the next generation of the document
//the neighbours are counted for the whole set first, then the rule is applied in one pass,
//so the update is synchronous. Only the cells next to a live one are visited,
//a cell without live neighbours has count 0 and never becomes alive, even when 0 is in Birth.
//The returned document owns its state, doc is not modified
func Advance(doc *pattern.Document) *pattern.Document {
	counts := make(map[pattern.Coordinate]int, len(doc.State)*4)
	for c := range doc.State {
		for _, n := range neighbours {
			counts[pattern.Coordinate{X: c.X + n.X, Y: c.Y + n.Y}]++
		}
	}

	next := make(pattern.LiveSet, len(doc.State))
	for c, count := range counts {
		if doc.Rule.Birth.Has(count) {
			next[c] = struct{}{}
		} else if _, alive := doc.State[c]; alive && doc.Rule.Survival.Has(count) {
			next[c] = struct{}{}
		}
	}

	nd := *doc
	nd.State = next
	if doc.Description != nil {
		nd.Description = append([]string(nil), doc.Description...)
	}
	return &nd
}

//AdvanceN calculates n generations, the copy of doc is returned for n <= 0
func AdvanceN(doc *pattern.Document, n int) *pattern.Document {
	if n <= 0 {
		return doc.Clone()
	}
	for i := 0; i < n; i++ {
		doc = Advance(doc)
	}
	return doc
}
