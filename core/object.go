package core

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Object is any PDF object.
type Object interface {
	String() string
}

// Null is the PDF null object.
type Null struct{}

func (Null) String() string { return "null" }

// Bool is a PDF boolean.
type Bool bool

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// Int is a PDF integer.
type Int int64

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Real is a PDF real number.
type Real float64

func (r Real) String() string { return strconv.FormatFloat(float64(r), 'f', -1, 64) }

// String holds the bytes of a PDF string, literal or hexadecimal, after
// escapes are resolved.
type String string

func (s String) String() string { return string(s) }

// Name is a PDF name without its leading slash.
type Name string

func (n Name) String() string { return "/" + string(n) }

// Array is a PDF array.
type Array []Object

func (a Array) String() string {
	parts := make([]string, len(a))
	for i, obj := range a {
		parts[i] = str(obj)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Get returns element i, or nil when i is out of range.
func (a Array) Get(i int) Object {
	if i < 0 || i >= len(a) {
		return nil
	}
	return a[i]
}

// GetName returns element i when it is a name.
func (a Array) GetName(i int) (Name, bool) {
	n, ok := a.Get(i).(Name)
	return n, ok
}

// GetInt returns element i when it is an integer.
func (a Array) GetInt(i int) (Int, bool) {
	n, ok := a.Get(i).(Int)
	return n, ok
}

// Dict is a PDF dictionary keyed by name without the slash.
type Dict map[string]Object

// String prints the entries in key order.
func (d Dict) String() string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("<<")
	for _, k := range keys {
		fmt.Fprintf(&sb, "/%s %s ", k, str(d[k]))
	}
	sb.WriteString(">>")
	return sb.String()
}

// Get returns the value for key, or nil.
func (d Dict) Get(key string) Object { return d[key] }

// Has reports whether key is present.
func (d Dict) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// GetName returns the value for key when it is a name.
func (d Dict) GetName(key string) (Name, bool) {
	v, ok := d[key].(Name)
	return v, ok
}

// GetInt returns the value for key when it is an integer.
func (d Dict) GetInt(key string) (Int, bool) {
	v, ok := d[key].(Int)
	return v, ok
}

// GetNumber returns the value for key when it is an integer or a real.
func (d Dict) GetNumber(key string) (float64, bool) {
	return Number(d[key])
}

// GetBool returns the value for key when it is a boolean.
func (d Dict) GetBool(key string) (Bool, bool) {
	v, ok := d[key].(Bool)
	return v, ok
}

// GetString returns the value for key when it is a string.
func (d Dict) GetString(key string) (String, bool) {
	v, ok := d[key].(String)
	return v, ok
}

// GetArray returns the value for key when it is an array.
func (d Dict) GetArray(key string) (Array, bool) {
	v, ok := d[key].(Array)
	return v, ok
}

// GetDict returns the value for key when it is a dictionary.
func (d Dict) GetDict(key string) (Dict, bool) {
	v, ok := d[key].(Dict)
	return v, ok
}

// GetIndirectRef returns the value for key when it is a reference.
func (d Dict) GetIndirectRef(key string) (IndirectRef, bool) {
	v, ok := d[key].(IndirectRef)
	return v, ok
}

// IndirectRef names an indirect object.
type IndirectRef struct {
	Number     int
	Generation int
}

func (r IndirectRef) String() string {
	return fmt.Sprintf("%d %d R", r.Number, r.Generation)
}

// Stream is a stream object. Data is the encoded payload.
type Stream struct {
	Dict    Dict
	Data    []byte
	decoded []byte
}

func (s *Stream) String() string {
	return fmt.Sprintf("stream %s (%d bytes)", s.Dict, len(s.Data))
}

// Decoded is Decode with the result kept for later calls.
func (s *Stream) Decoded() ([]byte, error) {
	if s.decoded != nil {
		return s.decoded, nil
	}
	data, err := s.Decode()
	if err != nil {
		return nil, err
	}
	s.decoded = data
	return data, nil
}

// Number converts an Int or Real to float64.
func Number(obj Object) (float64, bool) {
	switch v := obj.(type) {
	case Int:
		return float64(v), true
	case Real:
		return float64(v), true
	}
	return 0, false
}

func str(obj Object) string {
	if obj == nil {
		return "null"
	}
	return obj.String()
}
