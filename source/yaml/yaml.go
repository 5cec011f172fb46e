// Package yamlsrc exposes YAML documents as jsonassert sources so fixtures
// written in YAML can be asserted with the same API as JSON text. Only the
// first document of a stream is used. Mapping keys keep their order.
package yamlsrc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"

	"gopkg.in/yaml.v3"

	jsonassert "github.com/reoring/jsonassert"
	eng "github.com/reoring/jsonassert/internal/engine"
)

// ErrEmptyDocument is returned when the stream holds no YAML document.
var ErrEmptyDocument = errors.New("yamlsrc: empty document")

// NewBytes wraps YAML bytes as a jsonassert.Source.
func NewBytes(b []byte) jsonassert.Source { return NewReader(bytes.NewReader(b)) }

// NewReader wraps a YAML stream as a jsonassert.Source.
func NewReader(r io.Reader) jsonassert.Source {
	toks, err := Tokens(r)
	if err != nil {
		return jsonassert.SourceFromEngine(errSource{err: err})
	}
	return jsonassert.SourceFromEngine(eng.NewSliceSource(toks))
}

// Tokens converts the first YAML document of r into engine tokens.
func Tokens(r io.Reader) ([]eng.Token, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, err
	}
	w := &walker{}
	if err := w.walk(&doc); err != nil {
		return nil, err
	}
	return w.toks, nil
}

type walker struct {
	toks  []eng.Token
	depth int
}

func (w *walker) emit(t eng.Token) {
	t.Offset = -1
	w.toks = append(w.toks, t)
}

func (w *walker) walk(n *yaml.Node) error {
	w.depth++
	defer func() { w.depth-- }()
	if w.depth > 10000 {
		return errors.New("yamlsrc: nesting too deep (alias cycle?)")
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return ErrEmptyDocument
		}
		return w.walk(n.Content[0])
	case yaml.AliasNode:
		return w.walk(n.Alias)
	case yaml.MappingNode:
		w.emit(eng.Token{Kind: eng.KindBeginObject})
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind == yaml.AliasNode {
				k = k.Alias
			}
			if k.Kind != yaml.ScalarNode {
				return fmt.Errorf("yamlsrc: line %d: mapping key must be a scalar", k.Line)
			}
			w.emit(eng.Token{Kind: eng.KindKey, String: k.Value})
			if err := w.walk(n.Content[i+1]); err != nil {
				return err
			}
		}
		w.emit(eng.Token{Kind: eng.KindEndObject})
	case yaml.SequenceNode:
		w.emit(eng.Token{Kind: eng.KindBeginArray})
		for _, c := range n.Content {
			if err := w.walk(c); err != nil {
				return err
			}
		}
		w.emit(eng.Token{Kind: eng.KindEndArray})
	case yaml.ScalarNode:
		return w.scalar(n)
	default:
		return fmt.Errorf("yamlsrc: line %d: unsupported node kind %d", n.Line, n.Kind)
	}
	return nil
}

func (w *walker) scalar(n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		w.emit(eng.Token{Kind: eng.KindNull})
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return err
		}
		w.emit(eng.Token{Kind: eng.KindBool, Bool: b})
	case "!!int":
		lit, err := intLiteral(n)
		if err != nil {
			return err
		}
		w.emit(eng.Token{Kind: eng.KindNumber, Number: lit})
	case "!!float":
		lit, err := floatLiteral(n)
		if err != nil {
			return err
		}
		w.emit(eng.Token{Kind: eng.KindNumber, Number: lit})
	default:
		w.emit(eng.Token{Kind: eng.KindString, String: n.Value})
	}
	return nil
}

// intLiteral keeps JSON-compatible literals verbatim and rewrites YAML-only
// spellings (0x1F, 0o17, +5, 1_000) as plain decimal integers.
func intLiteral(n *yaml.Node) (string, error) {
	if json.Valid([]byte(n.Value)) {
		return n.Value, nil
	}
	z, ok := new(big.Int).SetString(n.Value, 0)
	if !ok {
		return "", fmt.Errorf("yamlsrc: line %d: invalid integer %q", n.Line, n.Value)
	}
	return z.String(), nil
}

func floatLiteral(n *yaml.Node) (string, error) {
	if json.Valid([]byte(n.Value)) {
		return n.Value, nil
	}
	var f float64
	if err := n.Decode(&f); err != nil {
		return "", err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("yamlsrc: line %d: %s is not representable as a JSON number", n.Line, n.Value)
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}

type errSource struct{ err error }

func (e errSource) NextToken() (eng.Token, error) { return eng.Token{}, e.err }
func (e errSource) Location() int64               { return -1 }
