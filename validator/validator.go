// Package validator decides whether a byte sequence is a single well-formed
// JSON document. It recognises the grammar without building any value.
package validator

import (
	"fmt"
	"io"
)

// DefaultMaxDepth is the nesting limit used when none is configured.
const DefaultMaxDepth = 10000

type Option func(*Validator)

// WithMaxDepth limits how deeply arrays and objects may nest.
// A value <= 0 restores DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(v *Validator) {
		if n <= 0 {
			n = DefaultMaxDepth
		}
		v.maxDepth = n
	}
}

// WithLaxSeparators accepts missing and trailing commas between array
// elements and object members.
func WithLaxSeparators() Option {
	return func(v *Validator) {
		v.lax = true
	}
}

// Validator holds the configuration for a series of checks.
// It is immutable once built and may be shared between goroutines.
type Validator struct {
	maxDepth int
	lax      bool
}

func New(opts ...Option) *Validator {
	v := &Validator{
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Validator) MaxDepth() int {
	return v.maxDepth
}

func (v *Validator) Lax() bool {
	return v.lax
}

// Valid reports whether data is exactly one JSON value, optionally
// surrounded by whitespace.
func (v *Validator) Valid(data []byte) bool {
	s := v.newScanner(data)
	return s.document()
}

// Check is like Valid but describes the first failure.
// The returned error is always a *SyntaxError.
func (v *Validator) Check(data []byte) error {
	s := v.newScanner(data)
	if s.document() {
		return nil
	}
	return s.err
}

// CheckReader reads r to the end and checks the result.
func (v *Validator) CheckReader(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return v.Check(data)
}

func (v *Validator) newScanner(data []byte) *scanner {
	return &scanner{
		input:    data,
		maxDepth: v.maxDepth,
		lax:      v.lax,
	}
}

var std = New()

// Valid reports whether data is a valid JSON document using the default
// strict configuration.
func Valid(data []byte) bool {
	return std.Valid(data)
}

func ValidString(s string) bool {
	return std.Valid([]byte(s))
}

// Check describes why data is not a valid JSON document, or returns nil.
func Check(data []byte) error {
	return std.Check(data)
}
