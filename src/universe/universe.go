package universe

import "simlife/src/pattern"

type Universe interface {
	Status() Status
	Options() Options
	Document() *pattern.Document
	StateCh() chan Status
	Settle(doc *pattern.Document)
	Open(path string)
	Save(path string)
	ToggleCell(x int, y int)
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Close()
}
