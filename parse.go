package jsonassert

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	eng "github.com/reoring/jsonassert/internal/engine"
)

// Parse consumes one JSON value from src and returns it as a tree. Input after
// the value is rejected. Errors are returned as Issues.
func Parse(src Source, opts ...Option) (*Node, error) {
	n, _, err := parseSource(src, buildConfig(opts))
	return n, err
}

// ParseJSON parses JSON text with the configured driver.
func ParseJSON(b []byte, opts ...Option) (*Node, error) {
	n, _, err := parseText(b, buildConfig(opts))
	return n, err
}

// parseSource decodes a tree and also returns the non-fatal issues reported by
// enforcement (duplicate keys under Warn).
func parseSource(src Source, cfg Config) (*Node, Issues, error) {
	if src == nil {
		return nil, nil, singleIssue(CodeParseError, "nil source")
	}
	var warnings Issues
	ts := eng.WrapWithEnforcement(engineTokenSource(src), eng.EnforceOptions{
		OnDuplicate: toEngineDup(cfg.Strictness.OnDuplicateKey),
		MaxDepth:    cfg.MaxDepth,
		MaxBytes:    cfg.MaxBytes,
		IssueSink: func(si eng.SimpleIssue) {
			warnings = append(warnings, Issue{Path: si.Path, Code: si.Code, Message: si.Message, Index: -1, Offset: -1})
		},
	})
	d := &treeDecoder{ts: ts, onDuplicate: cfg.Strictness.OnDuplicateKey}
	tok, err := d.next()
	if err != nil {
		return nil, warnings, toIssues(err, ts)
	}
	n, err := d.value(tok)
	if err != nil {
		return nil, warnings, toIssues(err, ts)
	}
	if _, err := ts.NextToken(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = fmt.Errorf("%w: trailing data after top-level value", eng.ErrUnexpectedToken)
		}
		return nil, warnings, toIssues(err, ts)
	}
	return n, warnings, nil
}

type treeDecoder struct {
	ts          eng.TokenSource
	onDuplicate Severity
}

// next reads a token; running out of input inside a value is an error.
func (d *treeDecoder) next() (eng.Token, error) {
	tok, err := d.ts.NextToken()
	if errors.Is(err, io.EOF) {
		return eng.Token{}, io.ErrUnexpectedEOF
	}
	return tok, err
}

func (d *treeDecoder) value(tok eng.Token) (*Node, error) {
	switch tok.Kind {
	case eng.KindNull:
		return nullNode, nil
	case eng.KindBool:
		return NewBool(tok.Bool), nil
	case eng.KindString:
		return NewString(tok.String), nil
	case eng.KindNumber:
		return NewNumber(tok.Number)
	case eng.KindBeginArray:
		return d.array()
	case eng.KindBeginObject:
		return d.object()
	}
	return nil, fmt.Errorf("%w: %s", eng.ErrUnexpectedToken, tok.Kind)
}

func (d *treeDecoder) array() (*Node, error) {
	n := &Node{kind: KindArray, elems: []*Node{}}
	for {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == eng.KindEndArray {
			return n, nil
		}
		v, err := d.value(tok)
		if err != nil {
			return nil, err
		}
		n.elems = append(n.elems, v)
	}
}

func (d *treeDecoder) object() (*Node, error) {
	n := &Node{kind: KindObject, fields: []Field{}, index: map[string]int{}}
	for {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == eng.KindEndObject {
			return n, nil
		}
		if tok.Kind != eng.KindKey {
			return nil, fmt.Errorf("%w: %s where a key was expected", eng.ErrUnexpectedToken, tok.Kind)
		}
		vt, err := d.next()
		if err != nil {
			return nil, err
		}
		v, err := d.value(vt)
		if err != nil {
			return nil, err
		}
		if i, dup := n.index[tok.String]; dup {
			// enforcement already rejected duplicates under Error; keep the last value
			n.fields[i].Value = v
			continue
		}
		n.index[tok.String] = len(n.fields)
		n.fields = append(n.fields, Field{Name: tok.String, Value: v})
	}
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Ignore:
		return eng.DupIgnore
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupError
	}
}

func toIssues(err error, ts eng.TokenSource) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message, Cause: err, Index: -1, Offset: ts.Location()})
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Path: "/", Message: err.Error(), Cause: err, Index: -1, Offset: ts.Location()})
}

func singleIssue(code, msg string) Issues {
	return Issues{{Path: "/", Code: code, Message: msg, Index: -1, Offset: -1}}
}

// parseText is the entry used by the facade for string and byte input.
func parseText(b []byte, cfg Config) (*Node, Issues, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil, singleIssue(CodeParseError, "empty input")
	}
	return parseSource(cfg.driver().NewBytes(b), cfg)
}
