package contentstream

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/tsawler/bionic/core"
)

// Operation is one operator with the operands written before it.
//
// Inline images are reported as a single "BI" operation whose operands are
// the image dictionary (abbreviated keys kept as written) and the raw image
// data as a core.String.
type Operation struct {
	Operator string
	Operands []core.Object
}

// Parser splits a content stream into operations. A Parser is single use
// and not safe for concurrent use.
type Parser struct {
	s scanner
}

// NewParser returns a parser over data
func NewParser(data []byte) *Parser {
	return &Parser{s: scanner{data: data}}
}

// Parse returns every operation in stream order. Operands left over at the
// end of the stream are dropped.
func (p *Parser) Parse() ([]Operation, error) {
	var ops []Operation
	var operands []core.Object

	for {
		p.s.skipSpace()
		if p.s.done() {
			return ops, nil
		}
		start := p.s.pos

		word := p.s.keyword()
		switch word {
		case "":
			obj, err := p.s.object()
			if err != nil {
				return nil, fmt.Errorf("at position %d: %w", start, err)
			}
			operands = append(operands, obj)
			continue
		case "true", "false", "null":
			operands = append(operands, constant(word))
			continue
		case "BI":
			op, err := p.s.inlineImage()
			if err != nil {
				return nil, fmt.Errorf("at position %d: %w", start, err)
			}
			ops = append(ops, op)
		default:
			ops = append(ops, Operation{Operator: word, Operands: operands})
		}
		operands = nil
	}
}

// scanner reads PDF tokens from a byte slice
type scanner struct {
	data []byte
	pos  int
}

func (s *scanner) done() bool { return s.pos >= len(s.data) }

func (s *scanner) peek(off int) byte {
	if s.pos+off >= len(s.data) {
		return 0
	}
	return s.data[s.pos+off]
}

// skipSpace moves past whitespace and % comments
func (s *scanner) skipSpace() {
	for !s.done() {
		switch c := s.data[s.pos]; {
		case isWhitespace(c):
			s.pos++
		case c == '%':
			for !s.done() && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
		default:
			return
		}
	}
}

// regular returns the run of regular characters at the current position
func (s *scanner) regular() []byte {
	start := s.pos
	for !s.done() && !isWhitespace(s.data[s.pos]) && !isDelimiter(s.data[s.pos]) {
		s.pos++
	}
	return s.data[start:s.pos]
}

// keyword reads an operator or bare word, or returns "" without moving
// when the next token is an operand
func (s *scanner) keyword() string {
	c := s.peek(0)
	if !isLetter(c) && c != '\'' && c != '"' {
		return ""
	}
	return string(s.regular())
}

// object reads one operand
func (s *scanner) object() (core.Object, error) {
	s.skipSpace()
	if s.done() {
		return nil, fmt.Errorf("unexpected end of stream")
	}

	c := s.data[s.pos]
	switch {
	case c == '/':
		s.pos++
		return core.Name(unescapeName(s.regular())), nil
	case c == '(':
		return s.literal()
	case c == '<' && s.peek(1) == '<':
		return s.dict()
	case c == '<':
		return s.hex()
	case c == '[':
		return s.array()
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		return number(s.regular()), nil
	case isLetter(c):
		// bare words only appear as values in inline image dictionaries
		return constant(string(s.regular())), nil
	}
	return nil, fmt.Errorf("unexpected character %q", c)
}

func constant(word string) core.Object {
	switch word {
	case "true":
		return core.Bool(true)
	case "false":
		return core.Bool(false)
	case "null":
		return core.Null{}
	}
	return core.Name(word)
}

// number parses an integer or real. Malformed numbers such as "--1" or
// "1.2.3" read as zero, as most viewers do.
func number(tok []byte) core.Object {
	if bytes.IndexByte(tok, '.') < 0 {
		if v, err := strconv.ParseInt(string(tok), 10, 64); err == nil {
			return core.Int(v)
		}
	}
	v, err := strconv.ParseFloat(string(tok), 64)
	if err != nil {
		return core.Int(0)
	}
	return core.Real(v)
}

var escapes = map[byte]byte{
	'n': '\n', 'r': '\r', 't': '\t', 'b': '\b', 'f': '\f',
	'(': '(', ')': ')', '\\': '\\',
}

// literal reads a (string) with balanced parentheses and escapes
func (s *scanner) literal() (core.Object, error) {
	s.pos++ // (
	var out []byte
	depth := 1

	for !s.done() {
		c := s.data[s.pos]
		s.pos++
		switch c {
		case '(':
			depth++
		case ')':
			if depth--; depth == 0 {
				return core.String(out), nil
			}
		case '\\':
			if s.done() {
				continue
			}
			e := s.data[s.pos]
			s.pos++
			switch {
			case escapes[e] != 0:
				out = append(out, escapes[e])
			case e >= '0' && e <= '7':
				v := int(e - '0')
				for i := 0; i < 2 && s.peek(0) >= '0' && s.peek(0) <= '7'; i++ {
					v = v*8 + int(s.data[s.pos]-'0')
					s.pos++
				}
				out = append(out, byte(v))
			case e == '\r':
				if s.peek(0) == '\n' {
					s.pos++
				}
			case e == '\n':
			default:
				out = append(out, e)
			}
			continue
		}
		out = append(out, c)
	}
	return nil, fmt.Errorf("unclosed string")
}

// hex reads a <hex string>; an odd final digit is padded with zero
func (s *scanner) hex() (core.Object, error) {
	s.pos++ // <
	var out []byte
	var hi byte
	half := false

	for !s.done() {
		c := s.data[s.pos]
		s.pos++
		if c == '>' {
			if half {
				out = append(out, hi<<4)
			}
			return core.String(out), nil
		}
		if isWhitespace(c) {
			continue
		}
		v, ok := hexValue(c)
		if !ok {
			return nil, fmt.Errorf("invalid hex digit %q", c)
		}
		if half {
			out = append(out, hi<<4|v)
		} else {
			hi = v
		}
		half = !half
	}
	return nil, fmt.Errorf("unclosed hex string")
}

func (s *scanner) array() (core.Object, error) {
	s.pos++ // [
	arr := core.Array{}
	for {
		s.skipSpace()
		if s.done() {
			return nil, fmt.Errorf("unclosed array")
		}
		if s.data[s.pos] == ']' {
			s.pos++
			return arr, nil
		}
		obj, err := s.object()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

func (s *scanner) dict() (core.Object, error) {
	s.pos += 2 // <<
	dict := core.Dict{}
	for {
		s.skipSpace()
		if s.done() {
			return nil, fmt.Errorf("unclosed dictionary")
		}
		if s.data[s.pos] == '>' && s.peek(1) == '>' {
			s.pos += 2
			return dict, nil
		}
		key, err := s.object()
		if err != nil {
			return nil, err
		}
		name, ok := key.(core.Name)
		if !ok {
			return nil, fmt.Errorf("dictionary key is %T, not a name", key)
		}
		value, err := s.object()
		if err != nil {
			return nil, err
		}
		dict[string(name)] = value
	}
}

// inlineImage reads from after BI to after the EI that closes the image
func (s *scanner) inlineImage() (Operation, error) {
	dict := core.Dict{}
	for {
		s.skipSpace()
		if s.done() {
			return Operation{}, fmt.Errorf("inline image missing ID")
		}
		if isLetter(s.peek(0)) {
			if word := s.keyword(); word == "ID" {
				break
			} else {
				return Operation{}, fmt.Errorf("inline image key %q is not a name", word)
			}
		}
		key, err := s.object()
		if err != nil {
			return Operation{}, fmt.Errorf("inline image key: %w", err)
		}
		name, ok := key.(core.Name)
		if !ok {
			return Operation{}, fmt.Errorf("inline image key is %T", key)
		}
		value, err := s.object()
		if err != nil {
			return Operation{}, fmt.Errorf("inline image value for /%s: %w", name, err)
		}
		dict[string(name)] = value
	}

	// one whitespace byte separates ID from the data
	if isWhitespace(s.peek(0)) {
		s.pos++
	}

	start := s.pos
	for i := start; i+1 < len(s.data); i++ {
		if s.data[i] != 'E' || s.data[i+1] != 'I' {
			continue
		}
		before := i == start || isWhitespace(s.data[i-1])
		after := i+2 == len(s.data) || isWhitespace(s.data[i+2])
		if !before || !after {
			continue
		}

		end := i
		if end > start && isWhitespace(s.data[end-1]) {
			end--
		}
		s.pos = i + 2
		return Operation{
			Operator: "BI",
			Operands: []core.Object{dict, core.String(s.data[start:end])},
		}, nil
	}
	return Operation{}, fmt.Errorf("inline image at %d missing EI", start)
}

// unescapeName resolves #xx sequences in a name
func unescapeName(raw []byte) string {
	if bytes.IndexByte(raw, '#') < 0 {
		return string(raw)
	}
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '#' && i+2 < len(raw) {
			hi, ok1 := hexValue(raw[i+1])
			lo, ok2 := hexValue(raw[i+2])
			if ok1 && ok2 {
				out = append(out, hi<<4|lo)
				i += 2
				continue
			}
		}
		out = append(out, raw[i])
	}
	return string(out)
}

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
