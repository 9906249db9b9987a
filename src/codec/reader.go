package codec

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"simlife/src/pattern"
)

//Decoder is the line-level state machine of one file format
//every decoder accumulates into the document it was created with
type Decoder interface {
	Feed(line string) error
}

//Format is the pattern file dialect detected from the content
type Format int

const (
	FormatUnknown Format = iota
	FormatLife105
	FormatLife106
	FormatRLE
	FormatPlaintext
)

var formatNames = map[Format]string{
	FormatUnknown:   "unknown",
	FormatLife105:   "Life 1.05",
	FormatLife106:   "Life 1.06",
	FormatRLE:       "RLE",
	FormatPlaintext: "Plaintext",
}

func (f Format) String() string {
	return formatNames[f]
}

//maxLineSize limits a single line of the source
const maxLineSize = 1 << 20

//DecodeError is the fatal decoding failure, it keeps the offending line
type DecodeError struct {
	LineNum int
	Line    string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode line %d %q: %v", e.LineNum, e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

//Reader detects the format of the line stream and routes lines to the matching decoder
//lines are fed to the metadata-only decoder until a format marker is met,
//after that every line goes to the selected decoder
type Reader struct {
	doc     *pattern.Document
	format  Format
	decoder Decoder
	unknown Decoder
	lineNum int
	err     error
}

//NewReader creates the Reader with a fresh empty document
func NewReader() *Reader {
	doc := pattern.New()
	return &Reader{
		doc:     doc,
		unknown: newUnknownDecoder(doc),
	}
}

//Feed consumes one line of the source
//once a line failed to decode, the Reader keeps returning the same error
func (r *Reader) Feed(line string) error {
	if r.err != nil {
		return r.err
	}
	r.lineNum++
	line = strings.TrimSpace(line)

	var err error
	if r.decoder != nil {
		err = r.decoder.Feed(line)
	} else {
		err = r.dispatch(line)
	}
	if err != nil {
		r.err = &DecodeError{LineNum: r.lineNum, Line: line, Err: err}
	}
	return r.err
}

//dispatch checks the line for the format markers
func (r *Reader) dispatch(line string) error {
	switch {
	case strings.HasPrefix(line, "#Life 1.05"):
		r.commit(FormatLife105, newLife105Decoder(r.doc))
	case strings.HasPrefix(line, "#Life 1.06"):
		r.commit(FormatLife106, newLife106Decoder(r.doc))
	case strings.HasPrefix(line, "x ="):
		r.commit(FormatRLE, newRLEDecoder(r.doc))
		return r.decoder.Feed(line)
	case strings.HasPrefix(line, "!Name:"):
		r.commit(FormatPlaintext, newPlaintextDecoder(r.doc))
		return r.decoder.Feed(line)
	default:
		return r.unknown.Feed(line)
	}
	return nil
}

func (r *Reader) commit(f Format, d Decoder) {
	r.format = f
	r.decoder = d
}

//Format returns the detected format, FormatUnknown until a marker line is fed
func (r *Reader) Format() Format {
	return r.format
}

//Size returns the width and height declared by the RLE header
//ok is false for the other formats
func (r *Reader) Size() (width int, height int, ok bool) {
	d, isRLE := r.decoder.(*rleDecoder)
	if !isRLE || !d.header {
		return 0, 0, false
	}
	return d.width, d.height, true
}

//Finalize returns the decoded document
//the partially decoded document is never returned after a failure
func (r *Reader) Finalize() (*pattern.Document, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.doc, nil
}

//Decode reads the whole source line by line
func Decode(src io.Reader) (*pattern.Document, error) {
	r := NewReader()
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	for scanner.Scan() {
		if err := r.Feed(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return r.Finalize()
}

//DecodeFile opens the file and decodes it
//the file which can't be opened is reported as pattern.ErrNotFound
func DecodeFile(path string) (*pattern.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pattern.ErrNotFound, err)
	}
	defer f.Close()
	return Decode(f)
}
