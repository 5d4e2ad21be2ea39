package lsp

import (
	"errors"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/jsonv/validator"
)

// Diagnose validates text and returns at most one diagnostic, covering the
// character at which validation failed. The result is never nil.
func Diagnose(v *validator.Validator, text string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	err := v.Check([]byte(text))
	var syntaxErr *validator.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return diagnostics
	}

	start := positionAt(text, syntaxErr.Offset)
	end := start
	if syntaxErr.Offset < len(text) {
		_, size := utf8.DecodeRuneInString(text[syntaxErr.Offset:])
		end = positionAt(text, syntaxErr.Offset+size)
	}

	severity := protocol.DiagnosticSeverityError
	source := lsName
	return append(diagnostics, protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &severity,
		Source:   &source,
		Message:  syntaxErr.Kind.String(),
	})
}

// positionAt converts a byte offset into an LSP position, whose character
// counts UTF-16 code units.
func positionAt(text string, offset int) protocol.Position {
	if offset > len(text) {
		offset = len(text)
	}
	var line, lineStart int
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	var character int
	for _, r := range text[lineStart:offset] {
		if r >= 0x10000 {
			character += 2
		} else {
			character++
		}
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(character),
	}
}
