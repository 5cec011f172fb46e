package engine

// Structure tracks container nesting for drivers whose underlying decoder does
// not distinguish object keys from string values.
type Structure struct {
	stack []frame
}

// Open records a '{' or '['.
func (s *Structure) Open(object bool) {
	if object {
		s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
		return
	}
	s.stack = append(s.stack, frame{kind: kindArray})
}

// Close records a '}' or ']'; the closed container is a value of its parent.
func (s *Structure) Close() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.Value()
}

// String classifies a string token as a key or a value and advances the state.
func (s *Structure) String(v string) Token {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && top.expectingKey {
			top.expectingKey = false
			return Token{Kind: KindKey, String: v}
		}
	}
	s.Value()
	return Token{Kind: KindString, String: v}
}

// Value records that a scalar value was consumed.
func (s *Structure) Value() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}
