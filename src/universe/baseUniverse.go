package universe

import (
	"sync"
	"time"

	"simlife/src/codec"
	"simlife/src/pattern"
)

//Options represents the Universe's configurable options
type Options struct {
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
	Err           error //the last open/save failure, nil if the last command succeeded
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u *BaseUniverse)
	Start()
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefMaxSkippedTicks    = 5
)

const (
	RunningStateManual RunningState = iota
	RunningStateStep
	RunningStateRun
	RunningStateFinished
)

var DefaultUniverseOptions = Options{
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
}

//BaseUniverse runs the pattern document on its own goroutine
//all commands are queued to the control channel and executed one by one,
//the callers get only the snapshots of the document
type BaseUniverse struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	doc struct {
		*pattern.Document
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	controlCh chan func()
	closeCh   chan bool
}

//NewBaseUniverse creates the BaseUniverse instance with an empty document
//stateCh can be nil if nobody listens to the status updates
func NewBaseUniverse(o *Options, stateCh chan Status) *BaseUniverse {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	u := BaseUniverse{
		options:   *o,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		stateCh:   stateCh,
	}
	u.doc.Document = pattern.New()
	go u.mainLoop()
	return &u
}

//Settle replaces the document with the copy of doc and resets all counters
func (u *BaseUniverse) Settle(doc *pattern.Document) {
	u.doc.Lock()
	u.doc.Document = doc.Clone()
	u.doc.Unlock()
	u.state.Lock()
	u.state.IterationNum = 0
	u.state.LiveCells = doc.State.Len()
	u.state.Err = nil
	u.state.Unlock()
	u.refreshView()
}

//Document returns the snapshot of the current document
func (u *BaseUniverse) Document() *pattern.Document {
	u.doc.Lock()
	defer u.doc.Unlock()
	return u.doc.Clone()
}

//Open loads the pattern file, returns immediately
//the Status struct with Err set will be written to the stateCh on failure
func (u *BaseUniverse) Open(path string) {
	u.controlCh <- func() {
		doc, err := codec.DecodeFile(path)
		if err != nil {
			u.fail(err)
			return
		}
		u.Settle(doc)
		u.switchRunningState(RunningStateManual)
	}
}

//Save writes the current document to the RLE file, returns immediately
//the Status struct will be written to the stateCh on finish
func (u *BaseUniverse) Save(path string) {
	u.controlCh <- func() {
		if err := codec.EncodeFile(u.Document(), path); err != nil {
			u.fail(err)
			return
		}
		u.state.Lock()
		u.state.Err = nil
		mode := u.state.RunningMode
		u.state.Unlock()
		u.switchRunningState(mode)
	}
}

//ToggleCell inverses the cell state at point x, y
func (u *BaseUniverse) ToggleCell(x int, y int) {
	u.doc.Lock()
	u.doc.State.Toggle(x, y)
	live := u.doc.State.Len()
	u.doc.Unlock()
	u.state.Lock()
	u.state.LiveCells = live
	u.state.Unlock()
	u.refreshView()
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *BaseUniverse) RegisterViewer(v Viewer) {
	u.views = append(u.views, v)
	v.Register(u)
}

//StateCh returns the channel with the universe's status updates
func (u *BaseUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *BaseUniverse) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status
}

//Options returns current universe configuration represented by Options struct
func (u *BaseUniverse) Options() Options {
	return u.options
}

//Run starts the universe simulation, returns immediately
func (u *BaseUniverse) Run() {
	u.controlCh <- u.run
}

//Stop stops the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (u *BaseUniverse) Stop() {
	u.controlCh <- u.stop
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (u *BaseUniverse) Step() {
	u.controlCh <- u.step
}

//Clear kills all cells and resets all counters, returns immediately
//the Status struct will be written to the stateCh on finish
func (u *BaseUniverse) Clear() {
	u.controlCh <- u.clear
}

//Close stops the main loop, returns immediately
func (u *BaseUniverse) Close() {
	u.closeCh <- true
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *BaseUniverse) mainLoop() {
	var c = false
	for !c {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case c = <-u.closeCh:
		}
	}
}

func (u *BaseUniverse) runningMode() RunningState {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.RunningMode
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *BaseUniverse) switchRunningState(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	st := u.state.Status
	u.state.Unlock()
	if u.stateCh != nil {
		u.stateCh <- st
	}
}

//fail keeps the error in the status and signals it, the running mode is not changed
func (u *BaseUniverse) fail(err error) {
	u.state.Lock()
	u.state.Err = err
	mode := u.state.RunningMode
	u.state.Unlock()
	u.switchRunningState(mode)
	u.refreshView()
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (u *BaseUniverse) run() {
	if u.runningMode() == RunningStateRun {
		return
	}
	//switched here, on the main loop, so the next queued Run sees the running mode
	u.switchRunningState(RunningStateRun)
	go func() {
		skipped := 0
		done := make(chan bool)
		defer close(done)
		for {
			mode := u.runningMode()
			if mode != RunningStateRun && mode != RunningStateStep {
				break
			}
			if skipped > u.options.MaxSkippedTicks {
				u.switchRunningState(RunningStateFinished)
				break
			}
			//skip the tick if the universe is still in the calculation mode
			if mode != RunningStateStep {
				skipped = 0
				u.controlCh <- func() {
					u.step()
					done <- true
				}
				<-done
			} else {
				skipped++
			}
			if u.options.Interval > 0 {
				time.Sleep(u.options.Interval)
			}
		}
	}()
}

//stop stops the universe running cycle
func (u *BaseUniverse) stop() {
	if u.runningMode() == RunningStateRun {
		u.switchRunningState(RunningStateManual)
	}
}

//step calculates the next generation of the document
//the universe is finished when the pattern died, became still or MaxSteps is reached
func (u *BaseUniverse) step() {
	finished := false
	rm := u.runningMode()
	if rm == RunningStateFinished {
		rm = RunningStateManual
	}
	defer func() {
		if finished {
			u.switchRunningState(RunningStateFinished)
		} else {
			u.switchRunningState(rm)
		}
		u.refreshView()
	}()

	u.switchRunningState(RunningStateStep)
	isAlive, changed := u.nextIteration()
	u.state.Lock()
	u.state.IterationNum++
	iter := u.state.IterationNum
	u.state.Unlock()
	if !isAlive || !changed {
		finished = true
	}
	if u.options.MaxSteps != 0 && iter >= u.options.MaxSteps {
		finished = true
	}
}

//nextIteration replaces the document with its next generation
func (u *BaseUniverse) nextIteration() (hasLiveEntities bool, changed bool) {
	u.doc.Lock()
	start := time.Now()
	next := Advance(u.doc.Document)
	changed = !next.State.Equal(u.doc.State)
	u.doc.Document = next
	liveCells := next.State.Len()
	u.doc.Unlock()

	u.state.Lock()
	u.state.LiveCells = liveCells
	u.state.IterationTime = time.Since(start)
	u.state.Unlock()
	return liveCells > 0, changed
}

//clear kills all cells and resets all counters, the pattern metadata is kept
func (u *BaseUniverse) clear() {
	u.doc.Lock()
	u.doc.State = pattern.LiveSet{}
	u.doc.Unlock()

	u.state.Lock()
	u.state.IterationNum = 0
	u.state.LiveCells = 0
	u.state.IterationTime = 0
	u.state.Err = nil
	u.state.Unlock()
	u.switchRunningState(RunningStateManual)
	u.refreshView()
}

//refreshView calls Refresh event for all registered views
func (u *BaseUniverse) refreshView() {
	for _, v := range u.views {
		v.Refresh()
	}
}
