package ebnflex

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// DefaultMaxNesting bounds how many production references may be active at
// once during a match.
const DefaultMaxNesting = 1 << 16

const noMatch = -1

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

// Matcher matches input against the productions of a grammar.
//
// Matching follows PEG rules: an alternative yields its longest matching
// branch, repetitions are greedy and never backtrack, options always
// succeed. Results are memoized per production and offset.
type Matcher struct {
	grammar    ebnf.Grammar
	input      []byte
	memo       map[memoKey]int  // match length, noMatch if none
	visiting   map[memoKey]bool // cycle detection
	nesting    int
	MaxNesting int

	limited  map[string]bool
	limit    int
	active   int
	exceeded int // offset of the first production refused by the limit, -1 if none
	furthest int
}

func NewMatcher(grammar ebnf.Grammar) *Matcher {
	return &Matcher{
		grammar:    grammar,
		MaxNesting: DefaultMaxNesting,
		exceeded:   -1,
	}
}

// Limit allows at most n matches of the named productions to be in
// progress at once, such as the arrays and objects enclosing a value.
// A production counts once the first element of its sequence has matched,
// so merely trying an alternative is never refused.
//
// Results stay memoized per offset, so limits are exact only for grammars
// in which the nesting at an offset does not depend on how it was reached.
func (m *Matcher) Limit(n int, names ...string) {
	m.limit = n
	m.limited = make(map[string]bool, len(names))
	for _, name := range names {
		m.limited[name] = true
	}
}

// LimitExceeded returns the offset of the first production refused by
// Limit during the last match.
func (m *Matcher) LimitExceeded() (int, bool) {
	return m.exceeded, m.exceeded >= 0
}

// Furthest returns the largest offset at which the last match tried to
// read a terminal. After a failed match it locates the first byte that no
// production could accept.
func (m *Matcher) Furthest() int {
	return m.furthest
}

// Match returns the length of the prefix of input derived from the
// production named start, and whether there was a match at all.
func (m *Matcher) Match(start string, input []byte) (int, bool) {
	m.bind(input)
	n := m.matchName(start, 0)
	if n == noMatch {
		return 0, false
	}
	return n, true
}

// MatchAll reports whether the production named start derives all of input.
func (m *Matcher) MatchAll(start string, input []byte) bool {
	n, ok := m.Match(start, input)
	return ok && n == len(input)
}

func (m *Matcher) bind(input []byte) {
	m.input = input
	m.memo = make(map[memoKey]int)
	m.visiting = make(map[memoKey]bool)
	m.nesting = 0
	m.active = 0
	m.exceeded = -1
	m.furthest = 0
}

func (m *Matcher) matchExpr(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case nil:
		return 0

	case *ebnf.Token:
		m.reach(offset)
		if bytes.HasPrefix(m.input[offset:], []byte(e.String)) {
			return len(e.String)
		}
		return noMatch

	case *ebnf.Range:
		m.reach(offset)
		return m.matchRange(e, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := m.matchExpr(item, offset+total)
			if n == noMatch {
				return noMatch
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := noMatch
		for _, alt := range e {
			if n := m.matchExpr(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := m.matchExpr(e.Body, offset+total)
			if n <= 0 {
				break
			}
			total += n
		}
		return total

	case *ebnf.Option:
		if n := m.matchExpr(e.Body, offset); n != noMatch {
			return n
		}
		return 0

	case *ebnf.Group:
		return m.matchExpr(e.Body, offset)

	case *ebnf.Name:
		return m.matchName(e.String, offset)

	default:
		return noMatch
	}
}

// matchName matches a named production with memoization and cycle detection.
func (m *Matcher) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}

	if result, ok := m.memo[key]; ok {
		return result
	}

	// Left recursion: the production is already being matched here.
	if m.visiting[key] {
		return noMatch
	}

	prod, ok := m.grammar[name]
	if !ok || prod.Expr == nil {
		m.memo[key] = noMatch
		return noMatch
	}

	if m.nesting >= m.MaxNesting {
		return noMatch
	}

	if m.limited[name] {
		if m.active >= m.limit {
			if m.exceeded < 0 && m.starts(prod.Expr, offset) {
				m.exceeded = offset
			}
			return noMatch
		}
		m.active++
		defer func() { m.active-- }()
	}

	m.nesting++
	m.visiting[key] = true

	result := m.matchExpr(prod.Expr, offset)

	delete(m.visiting, key)
	m.nesting--

	m.memo[key] = result
	return result
}

// starts reports whether the first element of expr matches at offset.
func (m *Matcher) starts(expr ebnf.Expression, offset int) bool {
	if seq, ok := expr.(ebnf.Sequence); ok && len(seq) > 0 {
		expr = seq[0]
	}
	return m.matchExpr(expr, offset) > 0
}

func (m *Matcher) reach(offset int) {
	if offset > m.furthest {
		m.furthest = offset
	}
}

// matchRange matches a single rune in a character range (e.g., "a"…"z").
// Bytes that are not valid UTF-8 are treated as U+FFFD.
func (m *Matcher) matchRange(r *ebnf.Range, offset int) int {
	if offset >= len(m.input) {
		return noMatch
	}
	begin, _ := utf8.DecodeRuneInString(r.Begin.String)
	end, _ := utf8.DecodeRuneInString(r.End.String)
	ch, size := utf8.DecodeRune(m.input[offset:])
	if ch >= begin && ch <= end {
		return size
	}
	return noMatch
}
