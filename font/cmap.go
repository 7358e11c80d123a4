package font

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/bionic/contentstream"
	"github.com/tsawler/bionic/core"
)

// CMap maps character codes to text, as read from a /ToUnicode stream
type CMap struct {
	spaces []codespace
	chars  map[code]string
	ranges []bfrange
	maxLen int
}

// code is a character code of n bytes
type code struct {
	n int
	v uint32
}

type codespace struct {
	lo, hi []byte
}

func (cs codespace) matches(data []byte) bool {
	if len(data) < len(cs.lo) {
		return false
	}
	for i := range cs.lo {
		if data[i] < cs.lo[i] || data[i] > cs.hi[i] {
			return false
		}
	}
	return true
}

// bfrange maps lo..hi either onto consecutive text starting at dst or
// onto one entry of list each
type bfrange struct {
	n      int
	lo, hi uint32
	dst    []rune
	list   []string
}

func (r bfrange) lookup(c code) (string, bool) {
	if c.n != r.n || c.v < r.lo || c.v > r.hi {
		return "", false
	}
	off := c.v - r.lo
	if r.list != nil {
		if int(off) >= len(r.list) {
			return "", false
		}
		return r.list[off], true
	}
	if len(r.dst) == 0 {
		return "", false
	}
	out := append([]rune(nil), r.dst...)
	out[len(out)-1] += rune(off)
	return string(out), true
}

// ParseToUnicodeCMap decodes stream and reads the CMap in it
func ParseToUnicodeCMap(stream *core.Stream) (*CMap, error) {
	data, err := stream.Decoded()
	if err != nil {
		return nil, fmt.Errorf("failed to decode ToUnicode stream: %w", err)
	}
	return ParseCMap(data)
}

// ParseCMap reads the codespace ranges and bfchar/bfrange sections of a
// CMap program. Other CMap operators are ignored.
func ParseCMap(data []byte) (*CMap, error) {
	ops, err := contentstream.NewParser(data).Parse()
	if err != nil {
		return nil, fmt.Errorf("malformed CMap: %w", err)
	}

	cm := &CMap{chars: make(map[code]string)}
	for _, op := range ops {
		switch op.Operator {
		case "endcodespacerange":
			for i := 0; i+1 < len(op.Operands); i += 2 {
				lo, ok1 := op.Operands[i].(core.String)
				hi, ok2 := op.Operands[i+1].(core.String)
				if ok1 && ok2 && len(lo) == len(hi) && len(lo) > 0 {
					cm.spaces = append(cm.spaces, codespace{lo: []byte(lo), hi: []byte(hi)})
				}
			}
		case "endbfchar":
			for i := 0; i+1 < len(op.Operands); i += 2 {
				src, ok := op.Operands[i].(core.String)
				if !ok || len(src) == 0 || len(src) > 4 {
					continue
				}
				if text, ok := destination(op.Operands[i+1]); ok {
					cm.add(toCode([]byte(src)), text)
				}
			}
		case "endbfrange":
			for i := 0; i+2 < len(op.Operands); i += 3 {
				cm.addRange(op.Operands[i], op.Operands[i+1], op.Operands[i+2])
			}
		}
	}

	if len(cm.chars) == 0 && len(cm.ranges) == 0 {
		return nil, fmt.Errorf("CMap has no mappings")
	}
	return cm, nil
}

func (cm *CMap) add(c code, text string) {
	cm.chars[c] = text
	cm.maxLen = max(cm.maxLen, c.n)
}

func (cm *CMap) addRange(loObj, hiObj, dstObj core.Object) {
	lo, ok1 := loObj.(core.String)
	hi, ok2 := hiObj.(core.String)
	if !ok1 || !ok2 || len(lo) != len(hi) || len(lo) == 0 || len(lo) > 4 {
		return
	}
	r := bfrange{n: len(lo), lo: toCode([]byte(lo)).v, hi: toCode([]byte(hi)).v}
	if r.hi < r.lo {
		return
	}

	switch dst := dstObj.(type) {
	case core.String:
		r.dst = []rune(DecodeUTF16BE([]byte(dst)))
	case core.Array:
		for _, item := range dst {
			text, _ := destination(item)
			r.list = append(r.list, text)
		}
	default:
		return
	}
	cm.ranges = append(cm.ranges, r)
	cm.maxLen = max(cm.maxLen, r.n)
}

// destination reads the target of a mapping: UTF-16BE text or a glyph name
func destination(obj core.Object) (string, bool) {
	switch v := obj.(type) {
	case core.String:
		return DecodeUTF16BE([]byte(v)), true
	case core.Name:
		if r, ok := GlyphToUnicode(string(v)); ok {
			return string(r), true
		}
	}
	return "", false
}

func toCode(b []byte) code {
	c := code{n: len(b)}
	for _, x := range b {
		c.v = c.v<<8 | uint32(x)
	}
	return c
}

// lookup returns the text for a code
func (cm *CMap) lookup(c code) (string, bool) {
	if text, ok := cm.chars[c]; ok {
		return text, true
	}
	for _, r := range cm.ranges {
		if text, ok := r.lookup(c); ok {
			return text, true
		}
	}
	return "", false
}

// codeLength returns how many bytes the code at the start of data takes.
// Without codespace ranges the longest mapped code wins.
func (cm *CMap) codeLength(data []byte) int {
	if len(cm.spaces) > 0 {
		shortest := 4
		for _, cs := range cm.spaces {
			if cs.matches(data) {
				return len(cs.lo)
			}
			shortest = min(shortest, len(cs.lo))
		}
		return min(shortest, len(data))
	}
	for n := min(cm.maxLen, len(data)); n > 1; n-- {
		if _, ok := cm.lookup(toCode(data[:n])); ok {
			return n
		}
	}
	return 1
}

// LookupString decodes a shown string. Unmapped codes stand for the rune
// with the same value.
func (cm *CMap) LookupString(data []byte) string {
	if cm == nil {
		return string(data)
	}

	var sb strings.Builder
	for i := 0; i < len(data); {
		n := cm.codeLength(data[i:])
		c := toCode(data[i : i+n])
		i += n

		if text, ok := cm.lookup(c); ok {
			sb.WriteString(text)
		} else if r := rune(c.v); utf8.ValidRune(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
