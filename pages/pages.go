package pages

import (
	"fmt"

	"github.com/tsawler/bionic/core"
	"github.com/tsawler/bionic/model"
)

// ObjectResolver resolves indirect references
type ObjectResolver interface {
	Resolve(obj core.Object) (core.Object, error)
	ResolveReference(ref core.IndirectRef) (core.Object, error)
}

// maxTreeDepth bounds nesting of Pages nodes
const maxTreeDepth = 64

var inheritable = []string{"Resources", "MediaBox", "CropBox", "Rotate"}

// Catalog is the document catalog
type Catalog struct {
	dict     core.Dict
	resolver ObjectResolver
}

// NewCatalog wraps a catalog dictionary
func NewCatalog(dict core.Dict, resolver ObjectResolver) *Catalog {
	return &Catalog{dict: dict, resolver: resolver}
}

// Pages returns the root of the page tree
func (c *Catalog) Pages() (core.Dict, error) {
	obj := c.dict.Get("Pages")
	if obj == nil {
		return nil, fmt.Errorf("catalog missing /Pages entry")
	}
	return resolveDict(c.resolver, obj, "/Pages")
}

// PageTree flattens a page tree on first use
type PageTree struct {
	root     core.Dict
	resolver ObjectResolver
	pages    []*Page
	err      error
	walked   bool
}

// NewPageTree creates a tree from its root Pages dictionary
func NewPageTree(root core.Dict, resolver ObjectResolver) *PageTree {
	return &PageTree{root: root, resolver: resolver}
}

// Count returns the number of leaves found by walking the tree. /Count
// entries are not trusted.
func (t *PageTree) Count() (int, error) {
	all, err := t.Pages()
	return len(all), err
}

// GetPage returns page index (0-based)
func (t *PageTree) GetPage(index int) (*Page, error) {
	all, err := t.Pages()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(all) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(all))
	}
	return all[index], nil
}

// Pages returns every page in document order
func (t *PageTree) Pages() ([]*Page, error) {
	if !t.walked {
		t.walked = true
		w := walker{resolver: t.resolver, seen: make(map[int]bool)}
		if err := w.node(t.root, nil, 0); err != nil {
			t.err = fmt.Errorf("failed to traverse page tree: %w", err)
		} else {
			t.pages = w.pages
		}
	}
	return t.pages, t.err
}

type walker struct {
	resolver ObjectResolver
	seen     map[int]bool // Pages nodes reached by reference
	pages    []*Page
}

// node visits one tree node. inherited holds the attributes of the
// ancestors, nearest first.
func (w *walker) node(node, inherited core.Dict, depth int) error {
	if depth > maxTreeDepth {
		return fmt.Errorf("page tree nested too deeply")
	}

	kind, _ := node.GetName("Type")
	if kind == "" && node.Has("Kids") {
		kind = "Pages"
	}
	if kind != "Pages" {
		w.pages = append(w.pages, &Page{dict: node, inherited: inherited, resolver: w.resolver})
		return nil
	}

	attrs := make(core.Dict, len(inheritable))
	for k, v := range inherited {
		attrs[k] = v
	}
	for _, key := range inheritable {
		if v := node.Get(key); v != nil {
			attrs[key] = v
		}
	}

	kids, err := w.resolver.Resolve(node.Get("Kids"))
	if err != nil {
		return fmt.Errorf("failed to resolve /Kids: %w", err)
	}
	list, ok := kids.(core.Array)
	if !ok {
		return fmt.Errorf("invalid /Kids type: %T", kids)
	}

	for i, kid := range list {
		if ref, ok := kid.(core.IndirectRef); ok {
			if w.seen[ref.Number] {
				return fmt.Errorf("page tree cycle at object %d", ref.Number)
			}
			w.seen[ref.Number] = true
		}
		dict, err := resolveDict(w.resolver, kid, fmt.Sprintf("kid %d", i))
		if err != nil {
			return err
		}
		if err := w.node(dict, attrs, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Page is one leaf of the page tree
type Page struct {
	dict      core.Dict
	inherited core.Dict
	resolver  ObjectResolver
}

// Dict returns the page dictionary itself
func (p *Page) Dict() core.Dict {
	return p.dict
}

// attr returns an entry of the page or, for inheritable keys, of its
// nearest ancestor
func (p *Page) attr(key string) core.Object {
	if v := p.dict.Get(key); v != nil {
		return v
	}
	return p.inherited.Get(key)
}

// MediaBox returns the media box normalized so that X0 <= X1 and Y0 <= Y1
func (p *Page) MediaBox() (model.Rect, error) {
	return p.box("MediaBox")
}

// CropBox returns the crop box, or the media box when there is none
func (p *Page) CropBox() (model.Rect, error) {
	if p.attr("CropBox") == nil {
		return p.MediaBox()
	}
	return p.box("CropBox")
}

func (p *Page) box(key string) (model.Rect, error) {
	obj := p.attr(key)
	if obj == nil {
		return model.Rect{}, fmt.Errorf("%s not found", key)
	}
	resolved, err := p.resolver.Resolve(obj)
	if err != nil {
		return model.Rect{}, fmt.Errorf("failed to resolve %s: %w", key, err)
	}
	arr, ok := resolved.(core.Array)
	if !ok || len(arr) != 4 {
		return model.Rect{}, fmt.Errorf("invalid %s: %v", key, resolved)
	}

	var v [4]float64
	for i, elem := range arr {
		elem, _ = p.resolver.Resolve(elem)
		n, ok := core.Number(elem)
		if !ok {
			return model.Rect{}, fmt.Errorf("invalid %s element %d: %T", key, i, elem)
		}
		v[i] = n
	}
	return model.Rect{
		X0: min(v[0], v[2]), Y0: min(v[1], v[3]),
		X1: max(v[0], v[2]), Y1: max(v[1], v[3]),
	}, nil
}

// Resources returns the resource dictionary in effect for the page
func (p *Page) Resources() (core.Dict, error) {
	obj := p.attr("Resources")
	if obj == nil {
		return nil, fmt.Errorf("resources not found")
	}
	return resolveDict(p.resolver, obj, "/Resources")
}

// Rotate returns /Rotate normalized to 0, 90, 180 or 270
func (p *Page) Rotate() int {
	obj, _ := p.resolver.Resolve(p.attr("Rotate"))
	n, ok := obj.(core.Int)
	if !ok {
		return 0
	}
	r := (int(n)%360 + 360) % 360
	return r - r%90
}

// ContentData decodes every content stream of the page and joins them
// with newlines so operators never run together. A page without
// /Contents has no content.
func (p *Page) ContentData() ([]byte, error) {
	obj := p.dict.Get("Contents")
	if obj == nil {
		return nil, nil
	}
	resolved, err := p.resolver.Resolve(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve Contents: %w", err)
	}

	var parts []core.Object
	switch v := resolved.(type) {
	case *core.Stream:
		parts = []core.Object{v}
	case core.Array:
		parts = v
	default:
		return nil, fmt.Errorf("invalid Contents type: %T", resolved)
	}

	var data []byte
	for i, part := range parts {
		part, err = p.resolver.Resolve(part)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve contents[%d]: %w", i, err)
		}
		stream, ok := part.(*core.Stream)
		if !ok {
			continue
		}
		decoded, err := stream.Decode()
		if err != nil {
			return nil, fmt.Errorf("failed to decode content stream %d: %w", i, err)
		}
		data = append(data, decoded...)
		data = append(data, '\n')
	}
	return data, nil
}

func resolveDict(r ObjectResolver, obj core.Object, what string) (core.Dict, error) {
	resolved, err := r.Resolve(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", what, err)
	}
	dict, ok := resolved.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("invalid %s type: %T", what, resolved)
	}
	return dict, nil
}
