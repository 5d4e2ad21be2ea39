// Package format renders validation results for people and programs.
package format

import (
	"encoding"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dhamidi/jsonv/validator"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(results []Result) error
}

// Result is the outcome of checking one named input.
type Result struct {
	Name    string
	Err     error
	Elapsed time.Duration
}

func (r Result) Valid() bool {
	return r.Err == nil
}

// SyntaxError returns the syntax error behind r.Err, if there is one.
func (r Result) SyntaxError() (*validator.SyntaxError, bool) {
	var syntaxErr *validator.SyntaxError
	if errors.As(r.Err, &syntaxErr) {
		return syntaxErr, true
	}
	return nil, false
}

// Position is "line:column" for syntax errors and empty otherwise.
func (r Result) Position() string {
	if syntaxErr, ok := r.SyntaxError(); ok {
		return fmt.Sprintf("%d:%d", syntaxErr.Line, syntaxErr.Column)
	}
	return ""
}

// NewEncoder returns the encoder registered under name, writing to w.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "text":
		return NewTextEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "table":
		return NewTableEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}
