package filters

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	pdffilter "github.com/pdfcpu/pdfcpu/pkg/filter"
)

// Params holds the integer entries of a /DecodeParms dictionary. Booleans
// are stored as 0 or 1.
type Params map[string]int

// Int returns the parameter named key, or def when it is missing.
func (p Params) Int(key string, def int) int {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// ErrUnsupported is returned for filters that cannot be decoded.
var ErrUnsupported = errors.New("unsupported filter")

var abbreviations = map[string]string{
	"Fl":  "FlateDecode",
	"AHx": "ASCIIHexDecode",
	"A85": "ASCII85Decode",
	"LZW": "LZWDecode",
	"RL":  "RunLengthDecode",
	"CCF": "CCITTFaxDecode",
	"DCT": "DCTDecode",
}

// Canonical expands an abbreviated filter name.
func Canonical(name string) string {
	if full, ok := abbreviations[name]; ok {
		return full
	}
	return name
}

// Passthrough reports whether data under the filter is left encoded for
// the image writer.
func Passthrough(name string) bool {
	switch Canonical(name) {
	case "DCTDecode", "JPXDecode":
		return true
	}
	return false
}

// Decode applies one filter to data.
func Decode(name string, data []byte, params Params) ([]byte, error) {
	name = Canonical(name)
	switch name {
	case "DCTDecode", "JPXDecode":
		return data, nil
	case "CCITTFaxDecode":
		return ccittDecode(data, params)
	case "JBIG2Decode", "Crypt":
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}

	f, err := pdffilter.NewFilter(name, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupported, name, err)
	}
	r, err := f.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}
