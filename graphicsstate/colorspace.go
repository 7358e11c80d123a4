package graphicsstate

// ColorSpace is the family of a color space and its component count.
// Named spaces from a page's resources are resolved to their family by
// the caller.
type ColorSpace struct {
	Family     string
	Components int
}

var (
	DeviceGray = ColorSpace{"DeviceGray", 1}
	DeviceRGB  = ColorSpace{"DeviceRGB", 3}
	DeviceCMYK = ColorSpace{"DeviceCMYK", 4}
	Pattern    = ColorSpace{"Pattern", 0}
)

// LookupColorSpace returns the space for a family name. Unknown names map
// to DeviceGray.
func LookupColorSpace(family string, components int) ColorSpace {
	switch family {
	case "DeviceGray", "G", "CalGray":
		return DeviceGray
	case "DeviceRGB", "RGB", "CalRGB", "Lab":
		return DeviceRGB
	case "DeviceCMYK", "CMYK":
		return DeviceCMYK
	case "Pattern":
		return Pattern
	case "ICCBased", "Separation", "DeviceN", "Indexed":
		return ColorSpace{family, components}
	default:
		return DeviceGray
	}
}

// toRGB converts color components of this space. The second result is
// false when the space cannot be approximated (patterns, indexed lookups).
func (cs ColorSpace) toRGB(comps []float64) ([3]float64, bool) {
	switch cs.Family {
	case "Separation", "DeviceN":
		if len(comps) == 0 {
			return [3]float64{}, false
		}
		// Tint 1 is full colorant; approximate with darkness.
		g := 1 - comps[0]
		return [3]float64{g, g, g}, true
	case "Pattern", "Indexed":
		return [3]float64{}, false
	}

	switch len(comps) {
	case 1:
		return [3]float64{comps[0], comps[0], comps[0]}, true
	case 3:
		return [3]float64{comps[0], comps[1], comps[2]}, true
	case 4:
		r, g, b := cmykToRGB(comps[0], comps[1], comps[2], comps[3])
		return [3]float64{r, g, b}, true
	default:
		return [3]float64{}, false
	}
}

// cmykToRGB converts CMYK to RGB (approximate conversion)
func cmykToRGB(c, m, y, k float64) (r, g, b float64) {
	r = (1 - c) * (1 - k)
	g = (1 - m) * (1 - k)
	b = (1 - y) * (1 - k)
	return
}
