package validator

import "fmt"

// Kind classifies the first failure found in a document.
type Kind int

const (
	UnexpectedEnd Kind = iota + 1
	UnexpectedChar
	InvalidLiteral
	InvalidNumber
	ControlChar
	InvalidEscape
	MissingColon
	MissingSeparator
	TrailingSeparator
	TrailingData
	TooDeep
)

var kindNames = map[Kind]string{
	UnexpectedEnd:     "unexpected end of input",
	UnexpectedChar:    "unexpected character",
	InvalidLiteral:    "invalid literal",
	InvalidNumber:     "invalid number",
	ControlChar:       "control character in string",
	InvalidEscape:     "invalid escape sequence",
	MissingColon:      "missing ':' after object key",
	MissingSeparator:  "missing ',' between values",
	TrailingSeparator: "trailing ','",
	TrailingData:      "data after top-level value",
	TooDeep:           "nesting too deep",
}

var kindIdents = map[Kind]string{
	UnexpectedEnd:     "unexpected-end",
	UnexpectedChar:    "unexpected-char",
	InvalidLiteral:    "invalid-literal",
	InvalidNumber:     "invalid-number",
	ControlChar:       "control-char",
	InvalidEscape:     "invalid-escape",
	MissingColon:      "missing-colon",
	MissingSeparator:  "missing-separator",
	TrailingSeparator: "trailing-separator",
	TrailingData:      "trailing-data",
	TooDeep:           "too-deep",
}

// MarshalText encodes k as a stable identifier such as "trailing-separator".
func (k Kind) MarshalText() ([]byte, error) {
	if ident, ok := kindIdents[k]; ok {
		return []byte(ident), nil
	}
	return nil, fmt.Errorf("unknown kind %d", int(k))
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// SyntaxError locates the first byte at which the input stopped being a
// valid document. Line and Column are 1-based; Column counts bytes.
type SyntaxError struct {
	Offset int
	Line   int
	Column int
	Kind   Kind
	Char   byte // offending byte, 0 at end of input
}

func (e *SyntaxError) Error() string {
	if e.Kind == UnexpectedChar || e.Kind == ControlChar {
		return fmt.Sprintf("%d:%d: %s %q", e.Line, e.Column, e.Kind, e.Char)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Kind)
}

// NewSyntaxError describes a failure of the given kind at offset in input.
func NewSyntaxError(input []byte, offset int, kind Kind) *SyntaxError {
	line, col := 1, 1
	for _, ch := range input[:offset] {
		if ch == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	var ch byte
	if offset < len(input) {
		ch = input[offset]
	}
	return &SyntaxError{
		Offset: offset,
		Line:   line,
		Column: col,
		Kind:   kind,
		Char:   ch,
	}
}
