// Package ebnflex provides matching and lexical scanning based on EBNF grammars.
package ebnflex

import (
	"fmt"
	"io"
	"os"
	"sort"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// Position represents a location in the input.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token with its position.
type Token struct {
	Kind     string
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

const (
	KindEOF   = "EOF"
	KindError = "ERROR"
)

// Lexer tokenizes input based on an EBNF grammar.
type Lexer struct {
	matcher  *Matcher
	kinds    []string
	input    []byte
	filename string
	pos      int
	line     int
	column   int
}

// NewLexer creates a lexer for the given grammar and input.
// The token kinds are the grammar's TokenProductions.
func NewLexer(grammar ebnf.Grammar, input []byte, filename string) *Lexer {
	m := NewMatcher(grammar)
	m.bind(input)
	return &Lexer{
		matcher:  m,
		kinds:    TokenProductions(grammar),
		input:    input,
		filename: filename,
		pos:      0,
		line:     1,
		column:   1,
	}
}

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	grammar, err := ebnf.Parse(filename, f)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}

	return grammar, nil
}

// TokenProductions returns, sorted by name, the non-lexical productions
// that refer to no other non-lexical production. Those are the leaves of
// the syntactic grammar and make up the token set.
func TokenProductions(grammar ebnf.Grammar) []string {
	var names []string
	for name, prod := range grammar {
		if prod.Expr == nil || !isUpper(name) {
			continue
		}
		if refersToNonLexical(prod.Expr) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func refersToNonLexical(expr ebnf.Expression) bool {
	switch e := expr.(type) {
	case ebnf.Alternative:
		for _, x := range e {
			if refersToNonLexical(x) {
				return true
			}
		}
	case ebnf.Sequence:
		for _, x := range e {
			if refersToNonLexical(x) {
				return true
			}
		}
	case *ebnf.Group:
		return refersToNonLexical(e.Body)
	case *ebnf.Option:
		return refersToNonLexical(e.Body)
	case *ebnf.Repetition:
		return refersToNonLexical(e.Body)
	case *ebnf.Name:
		return isUpper(e.String)
	}
	return false
}

func isUpper(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(ch)
}

// Position returns the current position in the input.
func (l *Lexer) Position() Position {
	return Position{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.column,
	}
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

// NextToken returns the next token from the input: the longest match among
// the token productions, the first name winning a tie.
func (l *Lexer) NextToken() (Token, error) {
	if l.pos >= len(l.input) {
		return Token{Kind: KindEOF, Position: l.Position()}, io.EOF
	}

	startPos := l.Position()
	startOffset := l.pos

	bestKind := ""
	bestLen := 0
	for _, name := range l.kinds {
		n := l.matcher.matchName(name, startOffset)
		if n > bestLen {
			bestLen = n
			bestKind = name
		}
	}

	if bestLen == 0 {
		ch := l.advance()
		return Token{
			Kind:     KindError,
			Literal:  string(ch),
			Position: startPos,
		}, nil
	}

	for i := 0; i < bestLen; i++ {
		l.advance()
	}

	return Token{
		Kind:     bestKind,
		Literal:  string(l.input[startOffset : startOffset+bestLen]),
		Position: startPos,
	}, nil
}

// Tokenize reads all tokens from input, ending with the EOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			tokens = append(tokens, tok)
			break
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
