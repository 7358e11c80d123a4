package reader

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/tsawler/bionic/core"
)

// convert turns a pdfcpu object into the core model. References stay
// references; the Reader resolves them on demand. Stream data is kept
// encoded and strings carry their raw bytes.
func convert(o types.Object) core.Object {
	switch v := o.(type) {
	case nil:
		return core.Null{}
	case types.Boolean:
		return core.Bool(v)
	case types.Integer:
		return core.Int(v)
	case types.Float:
		return core.Real(v)
	case types.Name:
		return core.Name(v)
	case types.StringLiteral:
		b, err := types.Unescape(string(v))
		if err != nil {
			return core.String(v)
		}
		return core.String(b)
	case types.HexLiteral:
		b, err := v.Bytes()
		if err != nil {
			return core.String("")
		}
		return core.String(b)
	case types.IndirectRef:
		return core.IndirectRef{Number: v.ObjectNumber.Value(), Generation: v.GenerationNumber.Value()}
	case *types.IndirectRef:
		if v == nil {
			return core.Null{}
		}
		return convert(*v)
	case types.Array:
		arr := make(core.Array, len(v))
		for i, elem := range v {
			arr[i] = convert(elem)
		}
		return arr
	case types.Dict:
		return convertDict(v)
	case types.StreamDict:
		return &core.Stream{Dict: convertDict(v.Dict), Data: v.Raw}
	case *types.StreamDict:
		if v == nil {
			return core.Null{}
		}
		return convert(*v)
	default:
		return core.Null{}
	}
}

func convertDict(d types.Dict) core.Dict {
	dict := make(core.Dict, len(d))
	for k, v := range d {
		dict[k] = convert(v)
	}
	return dict
}
