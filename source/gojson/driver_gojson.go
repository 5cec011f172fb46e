// Package gojson provides a jsonassert.JSONDriver backed by goccy/go-json.
package gojson

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

	jsonassert "github.com/reoring/jsonassert"
	eng "github.com/reoring/jsonassert/internal/engine"
)

// Driver returns a jsonassert.JSONDriver backed by goccy/go-json.
func Driver() jsonassert.JSONDriver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) NewReader(r io.Reader) jsonassert.Source {
	return jsonassert.SourceFromEngine(NewReader(r))
}
func (driverGoJSON) NewBytes(b []byte) jsonassert.Source {
	return jsonassert.SourceFromEngine(NewBytes(b))
}
func (driverGoJSON) Name() string { return "go-json" }

type source struct {
	dec *j.Decoder
	st  eng.Structure
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
// go-json's tokenizer skips separators without checking them, so the input is
// read fully and validated first.
func NewReader(r io.Reader) eng.TokenSource {
	b, err := io.ReadAll(r)
	if err != nil {
		return errSource{err: err}
	}
	return NewBytes(b)
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource {
	if !j.Valid(b) {
		return errSource{err: syntaxError(b)}
	}
	dec := j.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return &source{dec: dec}
}

// syntaxError recovers a descriptive error for input rejected by Valid.
func syntaxError(b []byte) error {
	var v any
	if err := j.Unmarshal(b, &v); err != nil {
		return err
	}
	return ErrInvalidJSON
}

// ErrInvalidJSON is returned for input that is not a single valid JSON value.
var ErrInvalidJSON = errors.New("gojson: invalid JSON input")

type errSource struct{ err error }

func (e errSource) NextToken() (eng.Token, error) { return eng.Token{}, e.err }
func (e errSource) Location() int64               { return -1 }

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.st.Open(true)
			return eng.Token{Kind: eng.KindBeginObject, Offset: -1}, nil
		case '}':
			s.st.Close()
			return eng.Token{Kind: eng.KindEndObject, Offset: -1}, nil
		case '[':
			s.st.Open(false)
			return eng.Token{Kind: eng.KindBeginArray, Offset: -1}, nil
		case ']':
			s.st.Close()
			return eng.Token{Kind: eng.KindEndArray, Offset: -1}, nil
		}
	case string:
		t := s.st.String(v)
		t.Offset = -1
		return t, nil
	case bool:
		s.st.Value()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: -1}, nil
	case j.Number:
		s.st.Value()
		return eng.Token{Kind: eng.KindNumber, Number: strings.Clone(string(v)), Offset: -1}, nil
	case float64:
		// UseNumber is set, but keep a textual fallback.
		s.st.Value()
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: -1}, nil
	}
	s.st.Value()
	return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
}

func (s *source) Location() int64 { return -1 }
