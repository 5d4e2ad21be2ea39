package ebnflex

import (
	"io"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/exp/ebnf"
)

const listGrammar = `
List       = Open [ Whitespace ] [ Item { Comma [ Whitespace ] Item } ] Close .
Item       = Ident [ Whitespace ] .
Ident      = letter { letter | digit } .
Open       = "(" .
Close      = ")" .
Comma      = "," .
Whitespace = " " { " " } .
letter     = "a" … "z" | "_" .
digit      = "0" … "9" .
`

func parseGrammar(t *testing.T, src string) ebnf.Grammar {
	t.Helper()
	g, err := ebnf.Parse("test.ebnf", strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	return g
}

func TestTokenProductions(t *testing.T) {
	g := parseGrammar(t, listGrammar)
	got := TokenProductions(g)
	want := []string{"Close", "Comma", "Ident", "Open", "Whitespace"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TokenProductions() = %v, want %v", got, want)
	}
}

func TestMatcherMatchAll(t *testing.T) {
	g := parseGrammar(t, listGrammar)

	tests := []struct {
		input string
		want  bool
	}{
		{"()", true},
		{"( )", true},
		{"(a)", true},
		{"(a, b1, c_d)", true},
		{"(a,b)", true},
		{"(a b)", false},
		{"(a,)", false},
		{"(", false},
		{"a", false},
		{"(1a)", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m := NewMatcher(g)
			if got := m.MatchAll("List", []byte(tt.input)); got != tt.want {
				t.Errorf("MatchAll(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatcherPrefix(t *testing.T) {
	g := parseGrammar(t, listGrammar)
	m := NewMatcher(g)

	n, ok := m.Match("Ident", []byte("abc9 rest"))
	if !ok || n != 4 {
		t.Errorf("Match() = %d, %v, want 4, true", n, ok)
	}

	_, ok = m.Match("Ident", []byte("9abc"))
	if ok {
		t.Error("Match() should fail on a leading digit")
	}

	n, ok = m.Match("List", []byte("()()"))
	if !ok || n != 2 {
		t.Errorf("Match() = %d, %v, want 2, true", n, ok)
	}
}

func TestMatcherEmptyMatchIsNotFailure(t *testing.T) {
	g := parseGrammar(t, `
S = A B .
A = { "a" } .
B = "b" .
`)
	m := NewMatcher(g)
	if !m.MatchAll("S", []byte("b")) {
		t.Error("an empty repetition must not fail the sequence")
	}
	if !m.MatchAll("S", []byte("aaab")) {
		t.Error("MatchAll(aaab) = false")
	}
}

func TestMatcherLeftRecursion(t *testing.T) {
	g := parseGrammar(t, `
E = E "+" "x" | "x" .
`)
	m := NewMatcher(g)
	n, ok := m.Match("E", []byte("x+x"))
	if !ok || n != 1 {
		t.Errorf("Match() = %d, %v, want 1, true", n, ok)
	}
}

func TestMatcherMaxNesting(t *testing.T) {
	g := parseGrammar(t, `
N = "(" [ N ] ")" .
`)
	input := []byte(strings.Repeat("(", 50) + strings.Repeat(")", 50))

	m := NewMatcher(g)
	if !m.MatchAll("N", input) {
		t.Fatal("MatchAll() = false with default nesting")
	}

	m = NewMatcher(g)
	m.MaxNesting = 10
	if m.MatchAll("N", input) {
		t.Error("MatchAll() = true beyond MaxNesting")
	}
}

func TestMatcherLimit(t *testing.T) {
	g := parseGrammar(t, `
Value = Group | Atom .
Group = "(" { Value } ")" .
Atom  = "x" .
`)

	tests := []struct {
		input    string
		ok       bool
		exceeded int
	}{
		{"x", true, -1},
		{"(x)", true, -1},
		{"((x)(x))", true, -1},
		{"(((x)))", false, 2},
		{"((x)((x)))", false, 5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m := NewMatcher(g)
			m.Limit(2, "Group")
			if got := m.MatchAll("Value", []byte(tt.input)); got != tt.ok {
				t.Errorf("MatchAll() = %v, want %v", got, tt.ok)
			}
			offset, exceeded := m.LimitExceeded()
			if exceeded != (tt.exceeded >= 0) || (exceeded && offset != tt.exceeded) {
				t.Errorf("LimitExceeded() = %d, %v, want %d", offset, exceeded, tt.exceeded)
			}
		})
	}
}

func TestMatcherFurthest(t *testing.T) {
	g := parseGrammar(t, listGrammar)
	m := NewMatcher(g)

	tests := []struct {
		input    string
		furthest int
	}{
		{"(a, b;)", 5},
		{"(a, ", 4},
		{"", 0},
	}

	for _, tt := range tests {
		if m.MatchAll("List", []byte(tt.input)) {
			t.Errorf("MatchAll(%q) = true", tt.input)
		}
		if got := m.Furthest(); got != tt.furthest {
			t.Errorf("Furthest() after %q = %d, want %d", tt.input, got, tt.furthest)
		}
	}
}

func TestMatcherRangeRunes(t *testing.T) {
	g := parseGrammar(t, `
Text = { ch } .
ch   = " " … "\U0010FFFF" .
`)
	m := NewMatcher(g)
	input := []byte("héllo ✓")
	if !m.MatchAll("Text", input) {
		t.Error("multi-byte runes should match a rune range")
	}
	if m.MatchAll("Text", []byte("a\tb")) {
		t.Error("tab is below the range")
	}
}

func TestLexerTokenize(t *testing.T) {
	g := parseGrammar(t, listGrammar)
	lexer := NewLexer(g, []byte("(ab,\n c)"), "list.txt")

	tokens, err := lexer.Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	want := []struct {
		kind    string
		literal string
		line    int
		column  int
	}{
		{"Open", "(", 1, 1},
		{"Ident", "ab", 1, 2},
		{"Comma", ",", 1, 4},
		{KindError, "\n", 1, 5},
		{"Whitespace", " ", 2, 1},
		{"Ident", "c", 2, 2},
		{"Close", ")", 2, 3},
		{KindEOF, "", 2, 4},
	}

	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, w := range want {
		tok := tokens[i]
		if tok.Kind != w.kind || tok.Literal != w.literal {
			t.Errorf("token %d = %s %q, want %s %q", i, tok.Kind, tok.Literal, w.kind, w.literal)
		}
		if tok.Position.Line != w.line || tok.Position.Column != w.column {
			t.Errorf("token %d at %d:%d, want %d:%d", i, tok.Position.Line, tok.Position.Column, w.line, w.column)
		}
	}
}

func TestLexerEOF(t *testing.T) {
	g := parseGrammar(t, listGrammar)
	lexer := NewLexer(g, nil, "")

	tok, err := lexer.NextToken()
	if err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
	if tok.Kind != KindEOF {
		t.Errorf("Kind = %q, want %q", tok.Kind, KindEOF)
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Filename: "a.json", Line: 3, Column: 7}
	if got := p.String(); got != "a.json:3:7" {
		t.Errorf("String() = %q", got)
	}
	p.Filename = ""
	if got := p.String(); got != "3:7" {
		t.Errorf("String() = %q", got)
	}
}
