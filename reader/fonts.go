package reader

import (
	"fmt"
	"sort"

	"github.com/tsawler/bionic/core"
	"github.com/tsawler/bionic/font"
)

// fontCache parses every font dictionary once. Indirect fonts are keyed by
// object number so pages sharing a font share the parsed value.
type fontCache struct {
	r      *Reader
	byObj  map[int]*font.Font
	failed map[int]error
	order  []*font.Font // first use
}

func newFontCache(r *Reader) *fontCache {
	return &fontCache{
		r:      r,
		byObj:  make(map[int]*font.Font),
		failed: make(map[int]error),
	}
}

// load returns the font for one entry of a /Font resource dictionary
func (c *fontCache) load(obj core.Object) (*font.Font, error) {
	ref, indirect := obj.(core.IndirectRef)
	if indirect {
		if f, ok := c.byObj[ref.Number]; ok {
			return f, nil
		}
		if err, ok := c.failed[ref.Number]; ok {
			return nil, err
		}
	}

	f, err := c.parse(obj)
	if err != nil {
		if indirect {
			c.failed[ref.Number] = err
		}
		return nil, err
	}

	if indirect {
		c.byObj[ref.Number] = f
	}
	c.order = append(c.order, f)
	return f, nil
}

func (c *fontCache) parse(obj core.Object) (*font.Font, error) {
	resolved, err := c.r.Resolve(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve font: %w", err)
	}
	dict, ok := resolved.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("font is %T, not a dictionary", resolved)
	}
	return font.Parse(dict, c.r.ResolveReference)
}

// resourceFonts parses the /Font dictionary of a resource dictionary.
// Fonts that fail to parse are left out; text shown with them falls back
// to Helvetica metrics.
func (c *fontCache) resourceFonts(resources core.Dict) map[string]*font.Font {
	fonts := make(map[string]*font.Font)
	if resources == nil {
		return fonts
	}

	obj, err := c.r.Resolve(resources.Get("Font"))
	if err != nil {
		return fonts
	}
	dict, ok := obj.(core.Dict)
	if !ok {
		return fonts
	}

	for _, name := range sortedKeys(dict) {
		if f, err := c.load(dict[name]); err == nil {
			fonts[name] = f
		}
	}
	return fonts
}

// Fonts returns every font used by the pages of the document, including
// fonts of form XObjects, in order of first use.
func (r *Reader) Fonts() ([]*font.Font, error) {
	count, err := r.PageCount()
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	for i := 0; i < count; i++ {
		page, err := r.GetPage(i)
		if err != nil {
			return nil, err
		}
		resources, err := page.Resources()
		if err != nil {
			continue
		}
		r.walkFonts(resources, seen, 0)
	}

	return r.fonts.order, nil
}

// walkFonts loads the fonts of a resource dictionary and of the form
// XObjects it names. seen holds the forms already visited.
func (r *Reader) walkFonts(resources core.Dict, seen map[int]bool, depth int) {
	if depth > maxFormDepth {
		return
	}
	r.fonts.resourceFonts(resources)

	xobjects, ok := r.resolveDict(resources.Get("XObject"))
	if !ok {
		return
	}
	for _, name := range sortedKeys(xobjects) {
		ref, ok := xobjects[name].(core.IndirectRef)
		if !ok || seen[ref.Number] {
			continue
		}
		seen[ref.Number] = true

		form, ok := r.formXObject(ref)
		if !ok {
			continue
		}
		if res, ok := r.resolveDict(form.Dict.Get("Resources")); ok {
			r.walkFonts(res, seen, depth+1)
		}
	}
}

// resolveDict resolves obj and reports whether it is a dictionary
func (r *Reader) resolveDict(obj core.Object) (core.Dict, bool) {
	if obj == nil {
		return nil, false
	}
	resolved, err := r.Resolve(obj)
	if err != nil {
		return nil, false
	}
	dict, ok := resolved.(core.Dict)
	return dict, ok
}

func sortedKeys(d core.Dict) []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
