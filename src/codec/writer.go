package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"simlife/src/pattern"
)

//ErrEmptyPattern is returned on encoding the document without live cells
//RLE has no representation for the empty bounding box
var ErrEmptyPattern = errors.New("codec: pattern has no live cells")

const (
	//LineWidth is the line length limit of the RLE body
	LineWidth = 70
	lineSep   = "\n"
)

//lineWriter writes the tokens breaking the line before it reaches LineWidth
//the first write error is kept and all subsequent writes are skipped
type lineWriter struct {
	w   io.Writer
	n   int
	err error
}

func (lw *lineWriter) token(t string) {
	if lw.n+len(t) >= LineWidth {
		lw.write(lineSep)
		lw.n = 0
	}
	lw.write(t)
	lw.n += len(t)
}

func (lw *lineWriter) write(s string) {
	if lw.err != nil {
		return
	}
	_, lw.err = io.WriteString(lw.w, s)
}

//Encode writes the document to w in the RLE format
func Encode(doc *pattern.Document, w io.Writer) error {
	b, ok := doc.State.Bounds()
	if !ok {
		return ErrEmptyPattern
	}
	bw := bufio.NewWriter(w)
	if err := encode(doc, b, bw); err != nil {
		return err
	}
	return bw.Flush()
}

//EncodeFile creates the file and writes the document there
//the file isn't created for the empty pattern
func EncodeFile(doc *pattern.Document, path string) (err error) {
	b, ok := doc.State.Bounds()
	if !ok {
		return ErrEmptyPattern
	}
	f, err := os.Create(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %v", pattern.ErrNotFound, err)
		}
		return fmt.Errorf("%w: %v", pattern.ErrUnwritable, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("%w: %v", pattern.ErrUnwritable, cerr)
		}
	}()
	bw := bufio.NewWriter(f)
	if err = encode(doc, b, bw); err == nil {
		err = bw.Flush()
	}
	if err != nil {
		return fmt.Errorf("%w: %v", pattern.ErrUnwritable, err)
	}
	return nil
}

func encode(doc *pattern.Document, b pattern.Bounds, w io.Writer) error {
	lw := &lineWriter{w: w}

	if doc.Name != "" {
		lw.write("#N " + doc.Name + lineSep)
	}
	for _, c := range doc.Description {
		lw.write("#C " + c + lineSep)
	}
	header := "x = " + strconv.Itoa(b.Width()) + ", y = " + strconv.Itoa(b.Height())
	if !doc.Rule.IsStandard() {
		header += ", r = " + doc.Rule.String()
	}
	lw.write(header + lineSep)

	for y := b.MinY; y <= b.MaxY; y++ {
		run := 0
		alive := doc.State.Has(b.MinX, y)
		for x := b.MinX; x <= b.MaxX; x++ {
			if alive == doc.State.Has(x, y) {
				run++
			} else {
				lw.token(runToken(run, alive))
				run = 1
				alive = !alive
			}
		}
		if alive {
			lw.token(runToken(run, alive))
		}
		if y < b.MaxY {
			lw.token("$")
		} else {
			lw.token("!" + lineSep)
		}
	}
	return lw.err
}

func runToken(n int, alive bool) string {
	if alive {
		return strconv.Itoa(n) + "o"
	}
	return strconv.Itoa(n) + "b"
}
