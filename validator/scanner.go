package validator

// scanner carries the state of one check. Its cursor only moves forward;
// a production that fails leaves it wherever the failure was found and the
// whole check stops.
type scanner struct {
	input    []byte
	pos      int
	depth    int
	maxDepth int
	lax      bool
	err      *SyntaxError
}

func (s *scanner) peek() byte {
	if s.pos >= len(s.input) {
		return 0
	}
	return s.input[s.pos]
}

func (s *scanner) peekN(n int) byte {
	if s.pos+n >= len(s.input) {
		return 0
	}
	return s.input[s.pos+n]
}

func (s *scanner) fail(kind Kind) bool {
	return s.failAt(s.pos, kind)
}

// failAt records the first failure only.
func (s *scanner) failAt(offset int, kind Kind) bool {
	if s.err == nil {
		s.err = NewSyntaxError(s.input, offset, kind)
	}
	return false
}

func (s *scanner) skipWhitespace() {
	for s.pos < len(s.input) {
		switch s.input[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		default:
			return
		}
	}
}

func (s *scanner) document() bool {
	s.skipWhitespace()
	if !s.value() {
		return false
	}
	s.skipWhitespace()
	if s.pos < len(s.input) {
		return s.fail(TrailingData)
	}
	return true
}

func (s *scanner) value() bool {
	if s.pos >= len(s.input) {
		return s.fail(UnexpectedEnd)
	}
	switch s.input[s.pos] {
	case 't':
		return s.literal("true")
	case 'f':
		return s.literal("false")
	case 'n':
		return s.literal("null")
	case '"':
		return s.string()
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return s.number()
	case '[':
		return s.array()
	case '{':
		return s.object()
	}
	return s.fail(UnexpectedChar)
}

func (s *scanner) literal(word string) bool {
	if len(s.input)-s.pos < len(word) || string(s.input[s.pos:s.pos+len(word)]) != word {
		return s.fail(InvalidLiteral)
	}
	s.pos += len(word)
	return true
}

// number matches -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
func (s *scanner) number() bool {
	if s.peek() == '-' {
		s.pos++
	}
	switch ch := s.peek(); {
	case ch == '0':
		s.pos++
	case ch >= '1' && ch <= '9':
		s.pos++
		s.digits()
	default:
		return s.fail(InvalidNumber)
	}

	if s.peek() == '.' {
		s.pos++
		if s.digits() == 0 {
			return s.fail(InvalidNumber)
		}
	}

	if ch := s.peek(); ch == 'e' || ch == 'E' {
		s.pos++
		if ch := s.peek(); ch == '+' || ch == '-' {
			s.pos++
		}
		if s.digits() == 0 {
			return s.fail(InvalidNumber)
		}
	}
	return true
}

func (s *scanner) digits() int {
	start := s.pos
	for s.pos < len(s.input) && isDigit(s.input[s.pos]) {
		s.pos++
	}
	return s.pos - start
}

func (s *scanner) string() bool {
	s.pos++
	for s.pos < len(s.input) {
		ch := s.input[s.pos]
		switch {
		case ch == '"':
			s.pos++
			return true
		case ch == '\\':
			if !s.escape() {
				return false
			}
		case ch < 0x20:
			return s.fail(ControlChar)
		default:
			s.pos++
		}
	}
	return s.fail(UnexpectedEnd)
}

func (s *scanner) escape() bool {
	switch s.peekN(1) {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		s.pos += 2
		return true
	case 'u':
		if len(s.input)-s.pos < 6 {
			return s.fail(InvalidEscape)
		}
		for i := 2; i < 6; i++ {
			if !isHexDigit(s.input[s.pos+i]) {
				return s.fail(InvalidEscape)
			}
		}
		s.pos += 6
		return true
	}
	return s.fail(InvalidEscape)
}

func (s *scanner) enter() bool {
	s.depth++
	if s.depth > s.maxDepth {
		return s.fail(TooDeep)
	}
	return true
}

func (s *scanner) leave() bool {
	s.depth--
	return true
}

func (s *scanner) array() bool {
	if !s.enter() {
		return false
	}
	s.pos++
	s.skipWhitespace()
	if s.peek() == ']' {
		s.pos++
		return s.leave()
	}
	for {
		if !s.value() {
			return false
		}
		s.skipWhitespace()
		done, ok := s.next(']')
		if !ok {
			return false
		}
		if done {
			return s.leave()
		}
	}
}

func (s *scanner) object() bool {
	if !s.enter() {
		return false
	}
	s.pos++
	s.skipWhitespace()
	if s.peek() == '}' {
		s.pos++
		return s.leave()
	}
	for {
		if !s.member() {
			return false
		}
		s.skipWhitespace()
		done, ok := s.next('}')
		if !ok {
			return false
		}
		if done {
			return s.leave()
		}
	}
}

func (s *scanner) member() bool {
	if s.pos >= len(s.input) {
		return s.fail(UnexpectedEnd)
	}
	if s.input[s.pos] != '"' {
		return s.fail(UnexpectedChar)
	}
	if !s.string() {
		return false
	}
	s.skipWhitespace()
	if s.pos >= len(s.input) {
		return s.fail(UnexpectedEnd)
	}
	if s.input[s.pos] != ':' {
		return s.fail(MissingColon)
	}
	s.pos++
	s.skipWhitespace()
	return s.value()
}

// next consumes what follows an element: the closing delimiter, or a
// separator and the whitespace after it. done is set once the closing
// delimiter has been consumed.
func (s *scanner) next(closing byte) (done, ok bool) {
	if s.pos >= len(s.input) {
		return false, s.fail(UnexpectedEnd)
	}
	switch ch := s.input[s.pos]; {
	case ch == closing:
		s.pos++
		return true, true
	case ch == ',':
		comma := s.pos
		s.pos++
		s.skipWhitespace()
		if s.peek() == closing {
			if !s.lax {
				return false, s.failAt(comma, TrailingSeparator)
			}
			s.pos++
			return true, true
		}
		return false, true
	case s.lax:
		return false, true
	}
	return false, s.fail(MissingSeparator)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
