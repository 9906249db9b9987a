package universe

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"simlife/src/codec"
	"simlife/src/pattern"
)

func newTestUniverse(maxSteps int) *BaseUniverse {
	o := DefaultUniverseOptions
	o.Interval = 0
	o.MaxSteps = maxSteps
	return NewBaseUniverse(&o, newStateCh())
}

//waitFor reads the status updates until the mode is reached
func waitFor(t *testing.T, u *BaseUniverse, mode RunningState) Status {
	t.Helper()
	for st := range u.StateCh() {
		if st.RunningMode == mode {
			return st
		}
	}
	t.Fatal("state channel closed")
	return Status{}
}

func TestUniverse_Step(t *testing.T) {
	u := newTestUniverse(0)
	defer u.Close()
	u.Settle(newDocument(pattern.StandardRule, blinker...))

	u.Step()
	st := waitFor(t, u, RunningStateManual)
	if st.IterationNum != 1 || st.LiveCells != 3 {
		t.Errorf("got %+v", st)
	}
	want := pattern.NewLiveSet(pattern.Coordinate{1, -1}, pattern.Coordinate{1, 0}, pattern.Coordinate{1, 1})
	if got := u.Document().State; !got.Equal(want) {
		t.Errorf("got %v", got.Sorted())
	}
}

func TestUniverse_StillLifeFinishes(t *testing.T) {
	u := newTestUniverse(0)
	defer u.Close()
	u.Settle(newDocument(pattern.StandardRule, block...))
	u.Step()
	waitFor(t, u, RunningStateFinished)
}

func TestUniverse_RunMaxSteps(t *testing.T) {
	u := newTestUniverse(3)
	defer u.Close()
	u.Settle(newDocument(pattern.StandardRule, glider...))
	u.Run()
	st := waitFor(t, u, RunningStateFinished)
	if st.IterationNum != 3 {
		t.Errorf("got %d iterations", st.IterationNum)
	}
}

func TestUniverse_RunTwiceStartsOneLoop(t *testing.T) {
	o := DefaultUniverseOptions
	o.Interval = 300 * time.Millisecond
	o.MaxSteps = 0
	u := NewBaseUniverse(&o, newStateCh())
	defer u.Close()
	u.Settle(newDocument(pattern.StandardRule, glider...))

	u.Run()
	u.Run()
	for st := range u.StateCh() {
		if st.RunningMode == RunningStateRun && st.IterationNum == 1 {
			break
		}
	}
	//well inside the first interval, a second loop would have stepped already
	time.Sleep(o.Interval / 3)
	if n := u.Status().IterationNum; n != 1 {
		t.Errorf("got %d iterations, want 1", n)
	}
	u.Stop()
	waitFor(t, u, RunningStateManual)
}

func TestUniverse_SnapshotIsIndependent(t *testing.T) {
	u := newTestUniverse(0)
	defer u.Close()
	doc := newDocument(pattern.StandardRule, glider...)
	u.Settle(doc)
	doc.State.Add(50, 50)

	snap := u.Document()
	if snap.State.Has(50, 50) {
		t.Error("settled document must be copied")
	}
	snap.State.Add(60, 60)
	if u.Document().State.Has(60, 60) {
		t.Error("snapshot must not alias the universe document")
	}

	u.ToggleCell(0, 1)
	if u.Document().State.Has(0, 1) || u.Status().LiveCells != 4 {
		t.Error("toggle must kill the cell")
	}
}

func TestUniverse_OpenSave(t *testing.T) {
	dir := t.TempDir()
	u := newTestUniverse(0)
	defer u.Close()

	u.Open(filepath.Join(dir, "missing.rle"))
	st := waitFor(t, u, RunningStateManual)
	if !errors.Is(st.Err, pattern.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", st.Err)
	}

	u.Save(filepath.Join(dir, "empty.rle"))
	st = waitFor(t, u, RunningStateManual)
	if !errors.Is(st.Err, codec.ErrEmptyPattern) {
		t.Errorf("got %v, want ErrEmptyPattern", st.Err)
	}

	doc := newDocument(pattern.StandardRule, glider...)
	doc.Name = "Glider"
	u.Settle(doc)
	path := filepath.Join(dir, "glider.rle")
	u.Save(path)
	if st = waitFor(t, u, RunningStateManual); st.Err != nil {
		t.Fatal(st.Err)
	}

	u.Clear()
	waitFor(t, u, RunningStateManual)
	if u.Document().State.Len() != 0 {
		t.Error("clear must kill all cells")
	}

	u.Open(path)
	if st = waitFor(t, u, RunningStateManual); st.Err != nil {
		t.Fatal(st.Err)
	}
	got := u.Document()
	if got.Name != "Glider" || !got.State.Equal(doc.State) {
		t.Errorf("got %q %v", got.Name, got.State.Sorted())
	}
}
