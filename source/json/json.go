// Package json tokenizes JSON input with encoding/json. It is the default driver.
package json

import (
	"bytes"
	"encoding/json"
	"io"

	eng "github.com/reoring/jsonassert/internal/engine"
)

type jsonSource struct {
	dec        *json.Decoder
	st         eng.Structure
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
// Numbers are kept as their literal text.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	var t eng.Token
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.st.Open(true)
			t.Kind = eng.KindBeginObject
		case '}':
			s.st.Close()
			t.Kind = eng.KindEndObject
		case '[':
			s.st.Open(false)
			t.Kind = eng.KindBeginArray
		case ']':
			s.st.Close()
			t.Kind = eng.KindEndArray
		}
	case string:
		t = s.st.String(v)
	case bool:
		s.st.Value()
		t = eng.Token{Kind: eng.KindBool, Bool: v}
	case json.Number:
		s.st.Value()
		t = eng.Token{Kind: eng.KindNumber, Number: string(v)}
	default:
		s.st.Value()
		t.Kind = eng.KindNull
	}
	t.Offset = s.lastOffset
	return t, nil
}

func (s *jsonSource) Location() int64 { return s.lastOffset }
