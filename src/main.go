package main

import (
	"fmt"
	"log"
	"os"

	"github.com/integrii/flaggy"
	"github.com/logrusorgru/aurora"

	"simlife/src/codec"
	"simlife/src/pattern"
	"simlife/src/universe"
	"simlife/src/view"
)

var (
	//the universe is settled with the sample when no pattern file is given
	testSample = []pattern.Coordinate{
		{1, 1}, {1, 2},
		{2, 1}, {2, 2},
		{3, 3},
		{4, 2},
		{4, 3},
		{5, 3},
	}
)

type EnvOptions struct {
	interactive bool
	print       bool
	file        string
	out         string
}

func main() {
	eo, uo := initOptions()

	doc, err := loadPattern(eo.file)
	if err != nil {
		log.Fatalln(aurora.Red(err.Error()))
	}

	var stateCh chan universe.Status

	if !eo.interactive {
		stateCh = make(chan universe.Status, 10) //the buffered channel to getting the universe status
	}

	u := universe.NewBaseUniverse(uo, stateCh)
	u.Settle(doc)

	if eo.interactive {
		v := view.NewViewTerminal(reopenPath(eo), eo.out)
		u.RegisterViewer(v)
		v.Start()
		u.Close()
		return
	}

	v := view.NewConsoleOut()
	u.RegisterViewer(v)
	v.Start()
	u.Run()
	for {
		st := <-stateCh
		if st.RunningMode == universe.RunningStateFinished {
			break
		}
	}
	u.Close()

	if err := writePattern(u.Document(), eo); err != nil {
		log.Fatalln(aurora.Red(err.Error()))
	}
}

//loadPattern decodes the pattern file or builds the sample when the path is empty
func loadPattern(path string) (*pattern.Document, error) {
	if path == "" {
		doc := pattern.New()
		doc.Name = "testSample1"
		doc.Description = []string{"the test sample with 3 stable patterns"}
		doc.State = pattern.NewLiveSet(testSample...)
		return doc, nil
	}
	return codec.DecodeFile(path)
}

//reopenPath is the file the O key reloads: the loaded pattern or, for the sample, the last written one
func reopenPath(eo *EnvOptions) string {
	if eo.file != "" {
		return eo.file
	}
	return eo.out
}

func writePattern(doc *pattern.Document, eo *EnvOptions) error {
	if eo.print {
		if err := codec.Encode(doc, os.Stdout); err != nil {
			return err
		}
	}
	if eo.out == "" {
		return nil
	}
	if err := codec.EncodeFile(doc, eo.out); err != nil {
		return err
	}
	fmt.Printf("Pattern written to %v\n", eo.out)
	return nil
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {

	uo = &universe.DefaultUniverseOptions
	eo = &EnvOptions{}
	flaggy.SetName("simlife")
	flaggy.SetDescription("Loads the Life 1.05, Life 1.06, RLE or Plaintext pattern, runs it and writes the result as RLE")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&eo.file, "f", "file", "Pattern file to load (and reload on O key in interactive mode), the built-in sample is used if empty")
	flaggy.String(&eo.out, "o", "out", "RLE file to write the pattern to (on finish, or on W key in interactive mode)")
	flaggy.Bool(&eo.print, "p", "print", "Print the final pattern as RLE to stdout")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps generations")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")

	flaggy.Parse()

	return
}
