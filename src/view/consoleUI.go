package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"simlife/src/pattern"
	"simlife/src/universe"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI shows the part of the unbounded plane starting at the origin
//the origin is moved with the arrow keys
type ConsoleUI struct {
	u          universe.Universe
	g          *gocui.Gui
	k          []keyBindings
	liveFiller string
	deadFiller string
	inPath     string
	outPath    string
	originX    int
	originY    int
	recentre   int32 //set by the O key, cleared by the next Refresh
}

var (
	runningStateDescr = map[universe.RunningState]string{
		universe.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		universe.RunningStateStep:     "do the step",
		universe.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		universe.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

//panStep is the number of cells the origin moves on one arrow key press
const panStep = 5

//NewViewTerminal creates the terminal UI, the O key loads the pattern from inPath
//and the W key writes it to outPath
func NewViewTerminal(inPath string, outPath string) *ConsoleUI {

	var err error
	t := ConsoleUI{
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
		inPath:     inPath,
		outPath:    outPath,
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdNextRound, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'o', "O", "Open", t.cmdOpen, ""},
		{'w', "W", "Write", t.cmdWrite, ""},
		{gocui.KeyArrowLeft, "←", "", t.pan(-panStep, 0), ""},
		{gocui.KeyArrowRight, "→", "", t.pan(panStep, 0), ""},
		{gocui.KeyArrowUp, "↑", "", t.pan(0, -panStep), ""},
		{gocui.KeyArrowDown, "↓", "Move", t.pan(0, panStep), ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, "battlefield"},
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

//Register keeps the universe and moves the origin to the pattern's top-left corner
func (t *ConsoleUI) Register(u *universe.BaseUniverse) {
	t.u = u
	t.centre(u.Document())
}

func (t *ConsoleUI) centre(doc *pattern.Document) {
	if b, ok := doc.State.Bounds(); ok {
		t.originX = b.MinX - 2
		t.originY = b.MinY - 2
	}
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

func (t *ConsoleUI) Refresh() {
	doc := t.u.Document()
	t.renderField(doc, t.takeRecentre(t.u.Status()))
	t.renderConfiguration()
	t.renderStatus()
	t.renderInfo(doc)
}

//takeRecentre reports whether the field must be moved to the freshly opened pattern
//a failed open clears the request and keeps the old origin
func (t *ConsoleUI) takeRecentre(s universe.Status) bool {
	if !atomic.CompareAndSwapInt32(&t.recentre, 1, 0) {
		return false
	}
	return s.Err == nil
}

func (t *ConsoleUI) renderField(doc *pattern.Document, recentre bool) {

	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View("battlefield")
		if e != nil {
			return e
		}
		//the origin is only touched on the gui goroutine
		if recentre {
			t.centre(doc)
		}
		v.Clear()
		maxW, maxH := v.Size()

		var b bytes.Buffer
		for i := 0; i < maxH; i++ {
			if i != 0 {
				b.WriteByte('\n')
			}
			for j := 0; j < maxW; j++ {
				if doc.State.Has(t.originX+j, t.originY+i) {
					b.WriteString(t.liveFiller)
				} else {
					b.WriteString(t.deadFiller)
				}
			}
		}
		_, _ = fmt.Fprint(v, b.String())
		return nil
	})
}

func (t *ConsoleUI) renderStatus() {
	s := t.u.Status()
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := g.View("status"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", s.IterationNum))
			_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
			_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
			_, _ = fmt.Fprintln(v, t.renderProp("Origin", "%v, %v", t.originX, t.originY))
			if s.Err != nil {
				_, _ = fmt.Fprintln(v, " "+aurora.Red(s.Err.Error()).String())
			}
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		c := t.u.Options()
		if v, e := g.View("configuration"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Interval))
			_, _ = fmt.Fprintln(v, t.renderProp("Iterations", "%v steps", c.MaxSteps))
			_, _ = fmt.Fprintln(v, t.renderProp("Input", "%v", t.inPath))
			_, _ = fmt.Fprintln(v, t.renderProp("Output", "%v", t.outPath))
		}
		return nil
	})
}

func (t *ConsoleUI) renderInfo(doc *pattern.Document) {
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := g.View("info"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Name", "%v", doc.Name))
			_, _ = fmt.Fprintln(v, t.renderProp("Author", "%v", doc.Author))
			_, _ = fmt.Fprintln(v, t.renderProp("Rule", "%v", doc.Rule))
			for _, d := range doc.Description {
				_, _ = fmt.Fprintln(v, " "+d)
			}
		}
		return nil
	})
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("info")
		_ = g.DeleteView("battlefield")
		return nil

	} else {
		if _, err := t.headerLayout(g, 3, "This is \"The Life\" pattern viewer"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
	}

	paneHeight := (maxY - 5 - 3) / 3
	panes := []struct {
		name  string
		title string
		y1    int
		y2    int
	}{
		{"configuration", "Configuration", 3, 3 + paneHeight},
		{"status", "Status", 3 + paneHeight + 1, 3 + 2*paneHeight},
		{"info", "Pattern", 3 + 2*paneHeight + 1, maxY - 5},
	}
	for _, p := range panes {
		if v, err := g.SetView(p.name, 0, p.y1, leftColumnWidth, p.y2); err != nil {
			if err != gocui.ErrUnknownView || v == nil {
				return err
			}
			v.Title = p.title
			v.Frame = true
			v.Wrap = true
		}
	}

	if v, err := g.SetView("battlefield", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Battle Field"
		v.Frame = true
		t.Refresh()
	}

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			if k.descr != "" {
				b.WriteString(": ")
				b.WriteString(k.descr)
			}
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		if maxX < len(text) {
			panic(fmt.Sprintf("Terminal width is too small: %v", maxX))
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", (maxX-len(text))/2)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.u.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.u.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.u.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.u.Clear()
	return nil
}

func (t *ConsoleUI) cmdOpen(_ *gocui.View) error {
	atomic.StoreInt32(&t.recentre, 1)
	t.u.Open(t.inPath)
	return nil
}

func (t *ConsoleUI) cmdWrite(_ *gocui.View) error {
	t.u.Save(t.outPath)
	return nil
}

func (t *ConsoleUI) pan(dx int, dy int) func(v *gocui.View) error {
	return func(_ *gocui.View) error {
		t.originX += dx
		t.originY += dy
		t.Refresh()
		return nil
	}
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	t.u.ToggleCell(t.originX+cx, t.originY+cy)
	return nil
}
