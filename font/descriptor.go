package font

import (
	"fmt"

	"github.com/tsawler/bionic/core"
)

// Font descriptor flag bits
const (
	FlagFixedPitch  = 1 << 0
	FlagSerif       = 1 << 1
	FlagSymbolic    = 1 << 2
	FlagScript      = 1 << 3
	FlagNonsymbolic = 1 << 5
	FlagItalic      = 1 << 6
	FlagAllCap      = 1 << 16
	FlagSmallCap    = 1 << 17
	FlagForceBold   = 1 << 18
)

// FontDescriptor holds the metrics and style of a font. Glyph space
// values are in thousandths of an em.
type FontDescriptor struct {
	FontName     string
	Flags        int
	FontBBox     [4]float64
	ItalicAngle  float64
	Ascent       float64
	Descent      float64
	CapHeight    float64
	MissingWidth float64
	FontWeight   float64

	// FontFile2 is the embedded TrueType program, if any
	FontFile2 *core.Stream
}

// HasFlag reports whether the descriptor carries the given flag bit.
// A nil descriptor has no flags.
func (fd *FontDescriptor) HasFlag(flag int) bool {
	return fd != nil && fd.Flags&flag != 0
}

// parseDescriptor reads the /FontDescriptor of a font or CIDFont
// dictionary. It returns nil without error when there is none.
func parseDescriptor(dict core.Dict, resolve Resolver) (*FontDescriptor, error) {
	obj, err := deref(dict.Get("FontDescriptor"), resolve)
	if err != nil || obj == nil {
		return nil, err
	}
	fd, ok := obj.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("font descriptor is %T, not a dictionary", obj)
	}

	num := func(key string) float64 {
		v, _ := deref(fd.Get(key), resolve)
		n, _ := core.Number(v)
		return n
	}

	d := &FontDescriptor{
		Flags:        int(num("Flags")),
		ItalicAngle:  num("ItalicAngle"),
		Ascent:       num("Ascent"),
		Descent:      num("Descent"),
		CapHeight:    num("CapHeight"),
		MissingWidth: num("MissingWidth"),
		FontWeight:   num("FontWeight"),
	}
	if name, ok := fd.GetName("FontName"); ok {
		d.FontName = string(name)
	}

	if box, _ := deref(fd.Get("FontBBox"), resolve); box != nil {
		if arr, ok := box.(core.Array); ok && len(arr) == 4 {
			for i, v := range arr {
				d.FontBBox[i], _ = core.Number(v)
			}
		}
	}
	if s, _ := deref(fd.Get("FontFile2"), resolve); s != nil {
		d.FontFile2, _ = s.(*core.Stream)
	}
	return d, nil
}

// deref follows a reference, chains included. A nil resolver leaves
// references unresolved and reports them.
func deref(obj core.Object, resolve Resolver) (core.Object, error) {
	for i := 0; i < 32; i++ {
		ref, ok := obj.(core.IndirectRef)
		if !ok {
			if _, null := obj.(core.Null); null {
				return nil, nil
			}
			return obj, nil
		}
		if resolve == nil {
			return nil, fmt.Errorf("unresolved reference %d %d R", ref.Number, ref.Generation)
		}
		var err error
		if obj, err = resolve(ref); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("reference chain too long")
}
