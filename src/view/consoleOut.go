package view

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"simlife/src/universe"
)

//ConsoleOut prints the simulation progress to the plain terminal
type ConsoleOut struct {
	u         universe.Universe
	w         io.Writer
	startTime time.Time
}

func NewConsoleOut() *ConsoleOut {
	return &ConsoleOut{w: os.Stdout}
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	if st.Err != nil {
		fmt.Fprintln(c.w, aurora.Red("Error: "+st.Err.Error()))
	}
	if st.RunningMode == universe.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last generation": st.IterationNum,
			"Total time":      totalTime,
			"Live cells":      st.LiveCells,
		}
		fmt.Fprintln(c.w, aurora.Bold("\nFinished:"))
		c.printHashData(resultData)
	} else if st.RunningMode == universe.RunningStateRun {
		if st.IterationNum%10 == 0 {
			fmt.Fprintf(c.w, "  Generations done: %v\n", st.IterationNum)
		}
	}
}

func (c *ConsoleOut) Register(u *universe.BaseUniverse) {
	c.u = u
	o := c.u.Options()
	doc := c.u.Document()
	fmt.Fprintln(c.w, aurora.Bold("Running configuration:"))
	fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	fmt.Fprintf(c.w, "  Max generations: %v steps\n", o.MaxSteps)

	fmt.Fprintln(c.w, aurora.Bold("Pattern:"))
	c.printHashData(map[string]interface{}{
		"Name":       doc.Name,
		"Author":     doc.Author,
		"Rule":       doc.Rule,
		"Live cells": doc.State.Len(),
	})
	for _, d := range doc.Description {
		fmt.Fprintf(c.w, "  %v\n", aurora.Cyan(d))
	}
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", aurora.Green(propName), d[propName])
	}
}
