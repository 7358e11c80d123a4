package graphicsstate

import (
	"strings"

	"github.com/tsawler/bionic/contentstream"
	"github.com/tsawler/bionic/core"
	"github.com/tsawler/bionic/model"
)

// deviceColorOperators maps the device color operators to their space.
// Upper case operators set the stroke color.
var deviceColorOperators = map[string]ColorSpace{
	"G": DeviceGray, "g": DeviceGray,
	"RG": DeviceRGB, "rg": DeviceRGB,
	"K": DeviceCMYK, "k": DeviceCMYK,
}

// textParameters maps the single-operand text state operators to the field
// they set
var textParameters = map[string]func(*TextState, float64){
	"Tc": func(t *TextState, v float64) { t.CharSpacing = v },
	"Tw": func(t *TextState, v float64) { t.WordSpacing = v },
	"Tz": func(t *TextState, v float64) { t.HorizontalScaling = v },
	"TL": func(t *TextState, v float64) { t.Leading = v },
	"Ts": func(t *TextState, v float64) { t.Rise = v },
	"Tr": func(t *TextState, v float64) { t.RenderingMode = int(v) },
}

// ColorSpaceResolver maps a color space resource name to its space
type ColorSpaceResolver func(name string) (ColorSpace, bool)

// Apply updates the state for the general graphics state, color and text
// state operators and reports whether op was one of them. Malformed
// operands are ignored. Text showing, path and XObject operators are left
// to the caller.
func (gs *GraphicsState) Apply(op contentstream.Operation, spaces ColorSpaceResolver) (bool, error) {
	operands := op.Operands

	if set, ok := textParameters[op.Operator]; ok {
		if v, ok := operandFloat(operands, 0, 1); ok {
			set(&gs.Text, v)
		}
		return true, nil
	}
	if space, ok := deviceColorOperators[op.Operator]; ok {
		stroke := strings.ToUpper(op.Operator) == op.Operator
		if comps := floats(operands); len(comps) == space.Components {
			gs.setSpace(stroke, space)
			gs.setColor(stroke, comps)
		}
		return true, nil
	}

	switch op.Operator {
	case "q":
		gs.Save()
	case "Q":
		return true, gs.Restore()
	case "cm":
		if len(operands) == 6 {
			gs.Transform(OperandsToMatrix(operands))
		}
	case "w":
		if w, ok := operandFloat(operands, 0, 1); ok {
			gs.LineWidth = w
		}

	case "CS", "cs":
		name, ok := singleName(operands)
		if !ok {
			break
		}
		space := LookupColorSpace(name, 1)
		if spaces != nil {
			if resolved, found := spaces(name); found {
				space = resolved
			}
		}
		gs.setSpace(op.Operator == "CS", space)
	case "SC", "SCN":
		gs.setColor(true, floats(operands))
	case "sc", "scn":
		gs.setColor(false, floats(operands))

	case "BT":
		gs.BeginText()
	case "ET":
	case "Tm":
		if len(operands) == 6 {
			gs.SetTextMatrix(OperandsToMatrix(operands))
		}
	case "Td", "TD":
		if len(operands) != 2 {
			break
		}
		tx, _ := ToFloat(operands[0])
		ty, _ := ToFloat(operands[1])
		if op.Operator == "TD" {
			gs.TranslateTextSetLeading(tx, ty)
		} else {
			gs.TranslateText(tx, ty)
		}
	case "T*":
		gs.NextLine()

	default:
		return false, nil
	}

	return true, nil
}

func singleName(operands []core.Object) (string, bool) {
	if len(operands) != 1 {
		return "", false
	}
	name, ok := operands[0].(core.Name)
	return string(name), ok
}

// ToFloat converts a numeric operand
func ToFloat(obj core.Object) (float64, bool) {
	switch v := obj.(type) {
	case core.Int:
		return float64(v), true
	case core.Real:
		return float64(v), true
	default:
		return 0, false
	}
}

// OperandsToMatrix builds a matrix from six numeric operands
func OperandsToMatrix(operands []core.Object) model.Matrix {
	if len(operands) != 6 {
		return model.Identity()
	}

	var m model.Matrix
	for i, op := range operands {
		m[i], _ = ToFloat(op)
	}
	return m
}

// operandFloat returns operand i when exactly n operands were given
func operandFloat(operands []core.Object, i, n int) (float64, bool) {
	if len(operands) != n {
		return 0, false
	}
	return ToFloat(operands[i])
}

// floats returns the leading numeric operands, stopping at a pattern name
func floats(operands []core.Object) []float64 {
	out := make([]float64, 0, len(operands))
	for _, o := range operands {
		f, ok := ToFloat(o)
		if !ok {
			break
		}
		out = append(out, f)
	}
	return out
}
