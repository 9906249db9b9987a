package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"simlife/src/pattern"
)

//life105Decoder decodes the Life 1.05 cell blocks
//a block starts at the #P position, every row of the block starts at the same column
type life105Decoder struct {
	doc     *pattern.Document
	cursorX int
	cursorY int
	blockX  int
}

func newLife105Decoder(doc *pattern.Document) *life105Decoder {
	return &life105Decoder{doc: doc}
}

func (d *life105Decoder) Feed(line string) error {
	switch {
	case strings.HasPrefix(line, "#C"), strings.HasPrefix(line, "#D"):
		d.doc.Description = append(d.doc.Description, strings.TrimSpace(line[2:]))
	case strings.HasPrefix(line, "#R"):
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return errors.New("missing rule")
		}
		rule, err := pattern.ParseRule(fields[1])
		if err != nil {
			return err
		}
		d.doc.Rule = rule
	case strings.HasPrefix(line, "#P"):
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return errors.New("missing block position")
		}
		x, err := strconv.Atoi(fields[1])
		if err != nil {
			return err
		}
		y, err := strconv.Atoi(fields[2])
		if err != nil {
			return err
		}
		d.blockX, d.cursorX, d.cursorY = x, x, y
	case strings.HasPrefix(line, "#N"):
		d.doc.Rule = pattern.StandardRule
	case strings.HasPrefix(line, "#"):
		//unknown directive
	default:
		for _, c := range line {
			if c == '*' {
				d.doc.State.Add(d.cursorX, d.cursorY)
			}
			d.cursorX++
		}
		d.cursorY++
		d.cursorX = d.blockX
	}
	return nil
}

//life106Decoder decodes the list of "x y" coordinates
type life106Decoder struct {
	doc *pattern.Document
}

func newLife106Decoder(doc *pattern.Document) *life106Decoder {
	return &life106Decoder{doc: doc}
}

func (d *life106Decoder) Feed(line string) error {
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return fmt.Errorf("expected 2 coordinates, got %d", len(fields))
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return err
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return err
	}
	d.doc.State.Add(x, y)
	return nil
}

//plaintextDecoder decodes the "!Name:" files, O or * is the live cell
type plaintextDecoder struct {
	doc *pattern.Document
	y   int
}

func newPlaintextDecoder(doc *pattern.Document) *plaintextDecoder {
	return &plaintextDecoder{doc: doc}
}

func (d *plaintextDecoder) Feed(line string) error {
	switch {
	case strings.HasPrefix(line, "!Name:"):
		d.doc.Name = strings.TrimSpace(strings.TrimPrefix(line, "!Name:"))
	case line == "!":
		d.doc.Description = append(d.doc.Description, "")
	case strings.HasPrefix(line, "!"):
		d.doc.Description = append(d.doc.Description, strings.TrimSpace(line[1:]))
	default:
		x := 0
		for _, c := range line {
			if c == 'O' || c == '*' {
				d.doc.State.Add(x, d.y)
			}
			x++
		}
		d.y++
	}
	return nil
}

//unknownDecoder skims the metadata while the format is not known yet
//it never touches the cells
type unknownDecoder struct {
	doc *pattern.Document
}

func newUnknownDecoder(doc *pattern.Document) *unknownDecoder {
	return &unknownDecoder{doc: doc}
}

func (d *unknownDecoder) Feed(line string) error {
	switch {
	case strings.HasPrefix(line, "#C"), strings.HasPrefix(line, "#c"):
		d.doc.Description = append(d.doc.Description, strings.TrimSpace(line[2:]))
	case strings.HasPrefix(line, "#N"):
		d.doc.Name = strings.TrimSpace(line[2:])
	case strings.HasPrefix(line, "#O"):
		d.doc.Author = strings.TrimSpace(line[2:])
	case strings.HasPrefix(line, "#P"), strings.HasPrefix(line, "#R"), strings.HasPrefix(line, "#r"):
		//top-left position and rule are known only to the concrete formats
	}
	return nil
}
