package reader

import (
	"github.com/tsawler/bionic/contentstream"
	"github.com/tsawler/bionic/core"
	"github.com/tsawler/bionic/font"
	"github.com/tsawler/bionic/graphicsstate"
	"github.com/tsawler/bionic/model"
)

// maxFormDepth bounds the nesting of form XObjects
const maxFormDepth = 8

// contentScope holds the resources reachable from one page's content,
// keyed by the names used in the flattened operation stream. Resources of
// a form XObject are prefixed with the form's path ("Fm1/F1").
type contentScope struct {
	fonts  map[string]*font.Font
	spaces map[string]graphicsstate.ColorSpace
	images map[string]model.ImageRef
}

func newContentScope() *contentScope {
	return &contentScope{
		fonts:  make(map[string]*font.Font),
		spaces: make(map[string]graphicsstate.ColorSpace),
		images: make(map[string]model.ImageRef),
	}
}

// colorSpace is the graphicsstate.ColorSpaceResolver of the scope
func (s *contentScope) colorSpace(name string) (graphicsstate.ColorSpace, bool) {
	cs, ok := s.spaces[name]
	return cs, ok
}

// flatten registers the resources of one content stream level in scope and
// returns its operations with every form XObject inlined as
// "q <Matrix> cm ... Q". Operands naming fonts, color spaces and images
// are renamed to their scoped names.
func (r *Reader) flatten(ops []contentstream.Operation, resources core.Dict, prefix string, scope *contentScope, depth int) []contentstream.Operation {
	for name, f := range r.fonts.resourceFonts(resources) {
		scope.fonts[prefix+name] = f
	}
	spaces, _ := r.resolveDict(resources.Get("ColorSpace"))
	for name, obj := range spaces {
		scope.spaces[prefix+name] = r.colorSpace(obj)
	}
	xobjects, _ := r.resolveDict(resources.Get("XObject"))

	out := make([]contentstream.Operation, 0, len(ops))
	for _, op := range ops {
		switch op.Operator {
		case "Tf":
			op = renamed(op, prefix)
		case "CS", "cs":
			if name, ok := operandName(op); ok && spaces.Has(name) {
				op = renamed(op, prefix)
			}

		case "Do":
			name, ok := operandName(op)
			if !ok {
				continue
			}
			ref, ok := xobjects[name].(core.IndirectRef)
			if !ok {
				continue
			}

			if form, ok := r.formXObject(ref); ok {
				if depth >= maxFormDepth {
					continue
				}
				out = append(out, r.inlineForm(form, resources, prefix, prefix+name+"/", scope, depth+1)...)
				continue
			}

			if img, ok := r.imageRef(ref, prefix+name); ok {
				scope.images[img.Name] = img
				op = renamed(op, prefix)
			}
		}
		out = append(out, op)
	}
	return out
}

// inlineForm returns the operations of a form XObject wrapped in a saved
// graphics state with the form matrix applied. A form without /Resources
// uses those of the content that paints it.
func (r *Reader) inlineForm(form *core.Stream, parent core.Dict, parentPrefix, prefix string, scope *contentScope, depth int) []contentstream.Operation {
	data, err := form.Decoded()
	if err != nil {
		return nil
	}
	ops, err := contentstream.NewParser(data).Parse()
	if err != nil {
		return nil
	}

	resources, ok := r.resolveDict(form.Dict.Get("Resources"))
	if !ok {
		resources, prefix = parent, parentPrefix
	}

	out := []contentstream.Operation{{Operator: "q"}}
	if matrix, ok := form.Dict.GetArray("Matrix"); ok && len(matrix) == 6 {
		out = append(out, contentstream.Operation{Operator: "cm", Operands: matrix})
	}
	out = append(out, r.flatten(ops, resources, prefix, scope, depth)...)
	return append(out, contentstream.Operation{Operator: "Q"})
}

// formXObject resolves ref to a form XObject stream
func (r *Reader) formXObject(ref core.IndirectRef) (*core.Stream, bool) {
	obj, err := r.ResolveReference(ref)
	if err != nil {
		return nil, false
	}
	stream, ok := obj.(*core.Stream)
	if !ok {
		return nil, false
	}
	subtype, _ := stream.Dict.GetName("Subtype")
	return stream, subtype == "Form"
}

// imageRef describes the image XObject behind ref
func (r *Reader) imageRef(ref core.IndirectRef, name string) (model.ImageRef, bool) {
	obj, err := r.ResolveReference(ref)
	if err != nil {
		return model.ImageRef{}, false
	}
	stream, ok := obj.(*core.Stream)
	if !ok {
		return model.ImageRef{}, false
	}
	if subtype, _ := stream.Dict.GetName("Subtype"); subtype != "Image" {
		return model.ImageRef{}, false
	}

	w, _ := stream.Dict.GetInt("Width")
	h, _ := stream.Dict.GetInt("Height")
	return model.ImageRef{Name: name, ObjNum: ref.Number, Width: int(w), Height: int(h)}, true
}

// colorSpace maps a color space resource to its family and component count
func (r *Reader) colorSpace(obj core.Object) graphicsstate.ColorSpace {
	resolved, err := r.Resolve(obj)
	if err != nil {
		return graphicsstate.DeviceGray
	}

	switch v := resolved.(type) {
	case core.Name:
		return graphicsstate.LookupColorSpace(string(v), 1)
	case core.Array:
		if len(v) == 0 {
			return graphicsstate.DeviceGray
		}
		family, _ := v.GetName(0)
		switch family {
		case "ICCBased":
			return iccSpace(r.iccComponents(v))
		case "Separation":
			return graphicsstate.LookupColorSpace("Separation", 1)
		case "DeviceN":
			n := 1
			if len(v) > 1 {
				if names, err := r.Resolve(v[1]); err == nil {
					if arr, ok := names.(core.Array); ok {
						n = len(arr)
					}
				}
			}
			return graphicsstate.LookupColorSpace("DeviceN", n)
		case "Indexed", "I":
			return graphicsstate.LookupColorSpace("Indexed", 1)
		default:
			return graphicsstate.LookupColorSpace(string(family), 1)
		}
	}
	return graphicsstate.DeviceGray
}

// iccComponents returns /N of an ICCBased color space array
func (r *Reader) iccComponents(arr core.Array) int {
	if len(arr) < 2 {
		return 0
	}
	obj, err := r.Resolve(arr[1])
	if err != nil {
		return 0
	}
	stream, ok := obj.(*core.Stream)
	if !ok {
		return 0
	}
	n, _ := stream.Dict.GetInt("N")
	return int(n)
}

// iccSpace approximates an ICC profile by the device space with the same
// number of components
func iccSpace(n int) graphicsstate.ColorSpace {
	switch n {
	case 3:
		return graphicsstate.DeviceRGB
	case 4:
		return graphicsstate.DeviceCMYK
	default:
		return graphicsstate.DeviceGray
	}
}

func operandName(op contentstream.Operation) (string, bool) {
	if len(op.Operands) == 0 {
		return "", false
	}
	name, ok := op.Operands[0].(core.Name)
	return string(name), ok
}

// renamed returns op with its first name operand prefixed
func renamed(op contentstream.Operation, prefix string) contentstream.Operation {
	name, ok := operandName(op)
	if !ok || prefix == "" {
		return op
	}
	operands := make([]core.Object, len(op.Operands))
	copy(operands, op.Operands)
	operands[0] = core.Name(prefix + name)
	return contentstream.Operation{Operator: op.Operator, Operands: operands}
}
