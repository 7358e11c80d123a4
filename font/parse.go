package font

import (
	"fmt"

	"github.com/tsawler/bionic/core"
)

// Parse builds a Font from a font dictionary. Simple fonts (Type1,
// MMType1, TrueType, Type3) and composite Type0 fonts are read in full;
// other subtypes keep Helvetica metrics under their own name so their
// text can still be measured. A ToUnicode CMap that cannot be read is
// ignored.
func Parse(dict core.Dict, resolve Resolver) (*Font, error) {
	subtype := nameOf(dict, "Subtype")
	if subtype == "" {
		return nil, fmt.Errorf("font dictionary has no /Subtype")
	}
	base := nameOf(dict, "BaseFont")
	if base == "" {
		base = nameOf(dict, "Name")
	}

	f := NewFont(nameOf(dict, "Name"), base, subtype)
	var err error
	switch subtype {
	case "Type0":
		err = f.loadComposite(dict, resolve)
	case "Type1", "MMType1", "TrueType", "Type3":
		err = f.loadSimple(dict, resolve)
	}
	if err != nil {
		return nil, fmt.Errorf("%s font %s: %w", subtype, base, err)
	}

	if obj, _ := deref(dict.Get("ToUnicode"), resolve); obj != nil {
		if stream, ok := obj.(*core.Stream); ok {
			f.ToUnicodeCMap, _ = ParseToUnicodeCMap(stream)
		}
	}
	return f, nil
}

func nameOf(dict core.Dict, key string) string {
	switch v := dict.Get(key).(type) {
	case core.Name:
		return string(v)
	case core.String:
		return string(v)
	}
	return ""
}

// loadSimple reads the encoding, descriptor and widths of a single-byte font
func (f *Font) loadSimple(dict core.Dict, resolve Resolver) error {
	base := "WinAnsiEncoding"
	if f.Subtype == "Type1" || f.Subtype == "MMType1" {
		base = "StandardEncoding"
	}
	if err := f.loadEncoding(dict, base, resolve); err != nil {
		return fmt.Errorf("failed to parse encoding: %w", err)
	}

	// A broken descriptor costs style flags only
	f.Descriptor, _ = parseDescriptor(dict, resolve)
	if d := f.Descriptor; d != nil && d.MissingWidth > 0 {
		f.defaultWidth = d.MissingWidth
	}

	scale := 1.0
	if f.Subtype == "Type3" {
		scale = type3Scale(dict, resolve)
	}
	hasWidths, err := f.loadWidths(dict, scale, resolve)
	if err != nil {
		return fmt.Errorf("failed to parse widths: %w", err)
	}
	if hasWidths {
		// codes outside /Widths take /MissingWidth
		f.metrics = nil
	}
	f.loadProgram(!hasWidths)
	return nil
}

// loadEncoding reads /Encoding: a name, or a dictionary with an optional
// /BaseEncoding and /Differences
func (f *Font) loadEncoding(dict core.Dict, base string, resolve Resolver) error {
	f.Encoding = base
	obj, err := deref(dict.Get("Encoding"), resolve)
	if err != nil {
		return err
	}

	switch v := obj.(type) {
	case nil:
	case core.Name:
		f.Encoding = string(v)
	case core.Dict:
		if name, ok := v.GetName("BaseEncoding"); ok {
			f.Encoding = string(name)
		}
		diffs, err := deref(v.Get("Differences"), resolve)
		if err != nil {
			return err
		}
		if arr, ok := diffs.(core.Array); ok {
			glyphs, err := differences(arr)
			if err != nil {
				return err
			}
			f.enc = NewCustomEncodingFromGlyphs(GetEncoding(f.Encoding), glyphs)
			return nil
		}
	default:
		return fmt.Errorf("invalid encoding type: %T", obj)
	}
	f.enc = GetEncoding(f.Encoding)
	return nil
}

// differences reads [code name1 name2 ... code name1 ...]
func differences(arr core.Array) (map[byte]string, error) {
	out := make(map[byte]string)
	code := 0
	for _, item := range arr {
		switch v := item.(type) {
		case core.Int:
			code = int(v)
		case core.Name:
			if code >= 0 && code < 256 {
				out[byte(code)] = string(v)
			}
			code++
		default:
			return nil, fmt.Errorf("invalid differences entry: %T", item)
		}
	}
	return out, nil
}

// loadWidths reads /FirstChar and /Widths. It reports whether there were any.
func (f *Font) loadWidths(dict core.Dict, scale float64, resolve Resolver) (bool, error) {
	obj, err := deref(dict.Get("Widths"), resolve)
	if err != nil || obj == nil {
		return false, err
	}
	arr, ok := obj.(core.Array)
	if !ok {
		return false, fmt.Errorf("widths is %T, not an array", obj)
	}

	first := 0
	if n, ok := dict.GetInt("FirstChar"); ok {
		first = int(n)
	}
	for i, item := range arr {
		item, _ = deref(item, resolve)
		w, ok := core.Number(item)
		if !ok {
			return false, fmt.Errorf("invalid width at index %d: %T", i, item)
		}
		f.widths[first+i] = w * scale
	}
	return len(arr) > 0, nil
}

// type3Scale converts Type3 glyph space widths to thousandths of an em
func type3Scale(dict core.Dict, resolve Resolver) float64 {
	obj, _ := deref(dict.Get("FontMatrix"), resolve)
	if m, ok := obj.(core.Array); ok && len(m) == 6 {
		if a, ok := core.Number(m[0]); ok && a != 0 {
			return a * 1000
		}
	}
	return 1
}

// loadProgram decodes an embedded TrueType program. When useMetrics is
// set its advance widths replace the standard metrics.
func (f *Font) loadProgram(useMetrics bool) {
	d := f.Descriptor
	if d == nil || d.FontFile2 == nil {
		return
	}
	data, err := d.FontFile2.Decoded()
	if err != nil {
		return
	}
	f.Program = data
	if useMetrics {
		f.program, _ = parseProgram(data)
	}
}

// loadComposite reads a Type0 font and its descendant CIDFont
func (f *Font) loadComposite(dict core.Dict, resolve Resolver) error {
	f.composite = true
	f.defaultWidth = 1000
	f.Encoding = "Identity-H"

	enc, err := deref(dict.Get("Encoding"), resolve)
	if err != nil {
		return err
	}
	switch v := enc.(type) {
	case core.Name:
		f.Encoding = string(v)
	case *core.Stream:
		if name, ok := v.Dict.GetName("CMapName"); ok {
			f.Encoding = string(name)
		}
	}

	obj, err := deref(dict.Get("DescendantFonts"), resolve)
	if err != nil {
		return err
	}
	kids, ok := obj.(core.Array)
	if !ok || len(kids) == 0 {
		return fmt.Errorf("missing /DescendantFonts")
	}
	obj, err = deref(kids[0], resolve)
	if err != nil {
		return err
	}
	cid, ok := obj.(core.Dict)
	if !ok {
		return fmt.Errorf("descendant font is %T, not a dictionary", obj)
	}

	f.Descriptor, _ = parseDescriptor(cid, resolve)
	if dw, ok := cid.GetNumber("DW"); ok {
		f.defaultWidth = dw
	}
	if err := f.loadCIDWidths(cid, resolve); err != nil {
		return fmt.Errorf("failed to parse /W: %w", err)
	}
	f.loadProgram(false)
	return nil
}

// loadCIDWidths reads a /W array of "c [w1 w2 ...]" and "cfirst clast w"
// entries
func (f *Font) loadCIDWidths(cid core.Dict, resolve Resolver) error {
	obj, err := deref(cid.Get("W"), resolve)
	if err != nil || obj == nil {
		return err
	}
	arr, ok := obj.(core.Array)
	if !ok {
		return fmt.Errorf("/W is %T, not an array", obj)
	}

	for i := 0; i < len(arr); {
		start, ok := arr[i].(core.Int)
		if !ok || i+1 >= len(arr) {
			return fmt.Errorf("invalid entry at index %d", i)
		}
		next, _ := deref(arr[i+1], resolve)
		if list, ok := next.(core.Array); ok {
			for j, item := range list {
				if w, ok := core.Number(item); ok {
					f.widths[int(start)+j] = w
				}
			}
			i += 2
			continue
		}

		end, ok := next.(core.Int)
		if !ok || i+2 >= len(arr) {
			return fmt.Errorf("invalid range at index %d", i)
		}
		w, ok := core.Number(arr[i+2])
		if !ok {
			return fmt.Errorf("invalid range width at index %d", i)
		}
		if end-start > 0xFFFF {
			return fmt.Errorf("range %d-%d too large", start, end)
		}
		for c := start; c <= end; c++ {
			f.widths[int(c)] = w
		}
		i += 3
	}
	return nil
}
