package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"simlife/src/pattern"
)

//rleDecoder decodes the "x = W, y = H[, rule = R]" header
//and delegates the rest of the file to the run-length decoder
type rleDecoder struct {
	doc    *pattern.Document
	header bool
	width  int
	height int
	runs   *runLengthDecoder
}

func newRLEDecoder(doc *pattern.Document) *rleDecoder {
	return &rleDecoder{
		doc:  doc,
		runs: newRunLengthDecoder(doc.State),
	}
}

func (d *rleDecoder) Feed(line string) error {
	if !d.header {
		if !strings.HasPrefix(line, "x =") {
			return nil
		}
		d.header = true
		return d.parseHeader(line)
	}
	if strings.HasPrefix(line, "#") {
		return nil
	}
	for _, c := range line {
		if err := d.runs.feed(c); err != nil {
			return err
		}
	}
	return nil
}

func (d *rleDecoder) parseHeader(line string) (err error) {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return errors.New("header must declare x and y")
	}
	if d.width, err = headerInt(fields[0]); err != nil {
		return err
	}
	if d.height, err = headerInt(fields[1]); err != nil {
		return err
	}
	if len(fields) == 2 {
		d.doc.Rule = pattern.StandardRule
		return nil
	}
	_, value, err := headerField(fields[2])
	if err != nil {
		return err
	}
	d.doc.Rule, err = pattern.ParseRule(value)
	return err
}

func headerField(field string) (key string, value string, err error) {
	kv := strings.SplitN(field, "=", 2)
	if len(kv) != 2 {
		return "", "", fmt.Errorf("bad header field %q", field)
	}
	return strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1]), nil
}

func headerInt(field string) (int, error) {
	_, value, err := headerField(field)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

//MaxRunLength is the biggest count of one run, a bigger count fails the decoding
const MaxRunLength = 1 << 20

//runLengthDecoder converts the <count><tag> stream into the cell coordinates
//  b - dead cells, o - alive cells, $ - end of row, ! - end of pattern
//the missing count means 1, the count may be split between the lines
type runLengthDecoder struct {
	state pattern.LiveSet
	x     int
	y     int
	count int
	done  bool
}

func newRunLengthDecoder(state pattern.LiveSet) *runLengthDecoder {
	return &runLengthDecoder{state: state}
}

func (d *runLengthDecoder) feed(c rune) error {
	if d.done {
		return nil
	}
	switch {
	case c >= '0' && c <= '9':
		digit := int(c - '0')
		if d.count > (MaxRunLength-digit)/10 {
			return fmt.Errorf("run length exceeds %d", MaxRunLength)
		}
		d.count = d.count*10 + digit
	case c == 'b':
		d.x += d.run()
	case c == 'o':
		for n := d.run(); n > 0; n-- {
			d.state.Add(d.x, d.y)
			d.x++
		}
	case c == '$':
		d.x = 0
		d.y++
		d.count = 0
	case c == '!':
		d.done = true
	}
	return nil
}

//run returns the pending count and resets it
func (d *runLengthDecoder) run() int {
	n := d.count
	d.count = 0
	if n == 0 {
		return 1
	}
	return n
}
