// Package grammar holds the EBNF description of JSON and a recognizer
// driven directly by it.
package grammar

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/dhamidi/jsonv/ebnflex"
	"github.com/dhamidi/jsonv/validator"
	"golang.org/x/exp/ebnf"
)

// Start is the production that derives a complete document.
const Start = "Document"

//go:embed json.ebnf
var source []byte

// Source returns the text of the embedded grammar.
func Source() []byte {
	return bytes.Clone(source)
}

// Load parses the embedded grammar.
func Load() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("json.ebnf", bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse json.ebnf: %w", err)
	}
	return g, nil
}

// Verify checks that every production of g is defined, reachable from
// start, and that lexical productions only refer to lexical ones.
func Verify(g ebnf.Grammar, start string) error {
	return ebnf.Verify(g, start)
}

var (
	loadOnce sync.Once
	loaded   ebnf.Grammar
	loadErr  error
)

// JSON returns the embedded grammar, parsed and verified once per process.
// Callers must not modify it.
func JSON() (ebnf.Grammar, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Load()
		if loadErr != nil {
			return
		}
		if err := Verify(loaded, Start); err != nil {
			loaded, loadErr = nil, fmt.Errorf("verify json.ebnf: %w", err)
		}
	})
	return loaded, loadErr
}

// Match reports whether input is a JSON document according to the grammar,
// nesting at most validator.DefaultMaxDepth arrays and objects. It accepts
// the same documents as the strict validator, only slower.
func Match(input []byte) (bool, error) {
	err := Check(input, validator.DefaultMaxDepth)
	var syntaxErr *validator.SyntaxError
	if errors.As(err, &syntaxErr) {
		return false, nil
	}
	return err == nil, err
}

// Check matches input against the grammar, nesting at most maxDepth arrays
// and objects (validator.DefaultMaxDepth when maxDepth <= 0). A mismatch is
// returned as a *validator.SyntaxError located at the first byte no
// production accepted. Its kind is TooDeep, UnexpectedEnd or
// UnexpectedChar; the grammar does not tell finer kinds apart.
func Check(input []byte, maxDepth int) error {
	g, err := JSON()
	if err != nil {
		return err
	}
	if maxDepth <= 0 {
		maxDepth = validator.DefaultMaxDepth
	}

	m := ebnflex.NewMatcher(g)
	m.Limit(maxDepth, "Array", "Object")
	// Value, Array and Element are in progress for every level.
	m.MaxNesting = max(ebnflex.DefaultMaxNesting, 4*maxDepth+64)

	n, ok := m.Match(Start, input)
	if ok && n == len(input) {
		return nil
	}
	if offset, tooDeep := m.LimitExceeded(); tooDeep {
		return validator.NewSyntaxError(input, offset, validator.TooDeep)
	}
	offset := m.Furthest()
	if ok && n > offset {
		offset = n
	}
	if offset >= len(input) {
		return validator.NewSyntaxError(input, len(input), validator.UnexpectedEnd)
	}
	return validator.NewSyntaxError(input, offset, validator.UnexpectedChar)
}

// NewLexer returns a lexer producing the JSON token stream of input.
func NewLexer(input []byte, filename string) (*ebnflex.Lexer, error) {
	g, err := JSON()
	if err != nil {
		return nil, err
	}
	return ebnflex.NewLexer(g, input, filename), nil
}
