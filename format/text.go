package format

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// TextEncoder writes one line per result, in the file:line:col style
// compilers use. Colour is applied when the output is a terminal.
type TextEncoder struct {
	w       io.Writer
	results []Result
	ok      *color.Color
	bad     *color.Color
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{
		w:   w,
		ok:  color.New(color.FgGreen),
		bad: color.New(color.FgRed, color.Bold),
	}
}

// DisableColor turns colour off regardless of the terminal.
func (e *TextEncoder) DisableColor() *TextEncoder {
	e.ok.DisableColor()
	e.bad.DisableColor()
	return e
}

func (e *TextEncoder) Encode(results []Result) error {
	e.results = results
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	for _, r := range e.results {
		switch {
		case r.Valid():
			fmt.Fprintf(&buf, "%s: %s\n", r.Name, e.ok.Sprint("ok"))
		case r.Position() != "":
			fmt.Fprintf(&buf, "%s:%s\n", r.Name, e.bad.Sprint(r.Err.Error()))
		default:
			fmt.Fprintf(&buf, "%s: %s\n", r.Name, e.bad.Sprint(r.Err.Error()))
		}
	}
	return buf.Bytes(), nil
}
