package reader

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"

	"github.com/tsawler/bionic/core"
	"github.com/tsawler/bionic/internal/filters"
	"github.com/tsawler/bionic/model"
)

// Image is an image of the document encoded for output
type Image struct {
	Data   []byte
	Format string // "jpg" or "png"
	Width  int
	Height int
}

// Image returns the image behind ref. JPEG data without a soft mask is
// passed through; everything else is decoded and re-encoded as PNG with
// the soft mask, if any, as alpha.
func (r *Reader) Image(ref model.ImageRef) (*Image, error) {
	stream, err := r.imageStream(ref)
	if err != nil {
		return nil, err
	}

	filter := lastFilter(stream)
	if filter == "JPXDecode" {
		return nil, fmt.Errorf("image %s: JPXDecode images are not supported", ref.Name)
	}

	data, err := stream.Decode()
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", ref.Name, err)
	}

	mask, _ := r.softMask(stream.Dict)
	isJPEG := filter == "DCTDecode"

	if isJPEG && mask == nil {
		cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("image %s: %w", ref.Name, err)
		}
		return &Image{Data: data, Format: "jpg", Width: cfg.Width, Height: cfg.Height}, nil
	}

	var img image.Image
	if isJPEG {
		img, err = jpeg.Decode(bytes.NewReader(data))
	} else {
		img, err = r.raster(stream, data).Image()
	}
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", ref.Name, err)
	}
	if mask != nil {
		img = applySoftMask(img, mask)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("image %s: failed to encode PNG: %w", ref.Name, err)
	}
	b := img.Bounds()
	return &Image{Data: buf.Bytes(), Format: "png", Width: b.Dx(), Height: b.Dy()}, nil
}

// imageStream returns the stream of an image XObject or a recorded inline
// image
func (r *Reader) imageStream(ref model.ImageRef) (*core.Stream, error) {
	if ref.ObjNum == 0 {
		stream, ok := r.inline[ref.Name]
		if !ok {
			return nil, fmt.Errorf("unknown inline image %q", ref.Name)
		}
		return stream, nil
	}

	obj, err := r.GetObject(ref.ObjNum)
	if err != nil {
		return nil, err
	}
	stream, ok := obj.(*core.Stream)
	if !ok {
		return nil, fmt.Errorf("image object %d is %T, not a stream", ref.ObjNum, obj)
	}
	return stream, nil
}

// softMask decodes the /SMask of an image dictionary as a gray image
func (r *Reader) softMask(dict core.Dict) (*image.Gray, error) {
	obj := dict.Get("SMask")
	if obj == nil {
		return nil, nil
	}
	resolved, err := r.Resolve(obj)
	if err != nil {
		return nil, err
	}
	stream, ok := resolved.(*core.Stream)
	if !ok {
		return nil, nil
	}
	data, err := stream.Decode()
	if err != nil {
		return nil, err
	}

	m := r.raster(stream, data)
	m.Space = "DeviceGray"
	return m.Gray()
}

// applySoftMask returns img with alpha taken from mask, scaled to the
// image size by nearest neighbour
func applySoftMask(img image.Image, mask *image.Gray) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)

	mb := mask.Bounds()
	for y := 0; y < b.Dy(); y++ {
		my := y * mb.Dy() / b.Dy()
		for x := 0; x < b.Dx(); x++ {
			mx := x * mb.Dx() / b.Dx()
			out.Pix[y*out.Stride+x*4+3] = mask.GrayAt(mb.Min.X+mx, mb.Min.Y+my).Y
		}
	}
	return out
}

// raster describes decoded sample data by its image dictionary
func (r *Reader) raster(stream *core.Stream, data []byte) *Raster {
	dict := stream.Dict
	img := &Raster{Bits: 8, Space: "DeviceGray", Data: data}

	if w, ok := dict.GetInt("Width"); ok {
		img.Width = int(w)
	}
	if h, ok := dict.GetInt("Height"); ok {
		img.Height = int(h)
	}
	if bpc, ok := dict.GetInt("BitsPerComponent"); ok {
		img.Bits = int(bpc)
	}

	if mask, _ := dict.GetBool("ImageMask"); mask {
		img.Bits = 1
		img.Stencil = true
	} else if cs := dict.Get("ColorSpace"); cs != nil {
		r.rasterSpace(img, cs)
	}

	// CCITT output is one bit per pixel whatever the dictionary says
	if lastFilter(stream) == "CCITTFaxDecode" {
		img.Bits = 1
	}

	if decode, ok := dict.GetArray("Decode"); ok && len(decode) >= 2 {
		lo, _ := core.Number(decode[0])
		hi, _ := core.Number(decode[1])
		img.Invert = lo > hi
	}
	return img
}

// rasterSpace sets the color space of img, including the palette of an
// indexed space
func (r *Reader) rasterSpace(img *Raster, obj core.Object) {
	resolved, err := r.Resolve(obj)
	if err != nil {
		return
	}

	switch v := resolved.(type) {
	case core.Name:
		img.Space = deviceName(string(v))
	case core.Array:
		family, _ := v.GetName(0)
		switch family {
		case "ICCBased":
			img.Space = iccSpace(r.iccComponents(v)).Family
		case "Indexed", "I":
			if len(v) < 4 {
				return
			}
			img.Space = "Indexed"
			img.PaletteBase = r.colorSpace(v[1]).Family
			img.Palette = r.lookupTable(v[3])
		case "Separation", "DeviceN":
			img.Space = "Separation"
		default:
			img.Space = deviceName(string(family))
		}
	}
}

// lookupTable returns the palette bytes of an indexed color space
func (r *Reader) lookupTable(obj core.Object) []byte {
	resolved, err := r.Resolve(obj)
	if err != nil {
		return nil
	}
	switch v := resolved.(type) {
	case core.String:
		return []byte(v)
	case *core.Stream:
		data, err := v.Decode()
		if err != nil {
			return nil
		}
		return data
	}
	return nil
}

// deviceName expands abbreviated color space names of inline images
func deviceName(name string) string {
	switch name {
	case "G":
		return "DeviceGray"
	case "RGB":
		return "DeviceRGB"
	case "CMYK":
		return "DeviceCMYK"
	default:
		return name
	}
}

// inlineKeys maps the abbreviated keys of inline image dictionaries
var inlineKeys = map[string]string{
	"W":   "Width",
	"H":   "Height",
	"BPC": "BitsPerComponent",
	"CS":  "ColorSpace",
	"F":   "Filter",
	"DP":  "DecodeParms",
	"IM":  "ImageMask",
	"D":   "Decode",
	"I":   "Interpolate",
}

// expandInlineDict returns an inline image dictionary with full key names
func expandInlineDict(d core.Dict) core.Dict {
	out := make(core.Dict, len(d))
	for k, v := range d {
		if full, ok := inlineKeys[k]; ok {
			k = full
		}
		out[k] = v
	}
	return out
}

// inlineInt reads an integer entry of an inline image dictionary by its
// abbreviated or full key
func inlineInt(d core.Dict, short, long string) int {
	if v, ok := d.GetInt(short); ok {
		return int(v)
	}
	v, _ := d.GetInt(long)
	return int(v)
}

// lastFilter returns the full name of the last filter of a stream
func lastFilter(stream *core.Stream) string {
	names := stream.Filters()
	if len(names) == 0 {
		return ""
	}
	return filters.Canonical(names[len(names)-1])
}

// Raster is decoded sample data with what is needed to turn it into
// pixels. Rows are padded to whole bytes.
type Raster struct {
	Width, Height int
	Bits          int    // bits per component: 1, 2, 4, 8 or 16
	Space         string // DeviceGray, DeviceRGB, DeviceCMYK, Indexed, ...
	Data          []byte

	// Indexed images: base space of the palette and its entries
	PaletteBase string
	Palette     []byte

	// Invert is set by a /Decode array of [1 0]
	Invert bool

	// Stencil masks paint black where a sample is 0
	Stencil bool
}

// components returns the samples per pixel of the color space
func (img *Raster) components() int {
	switch img.Space {
	case "DeviceRGB", "CalRGB", "Lab":
		return 3
	case "DeviceCMYK":
		return 4
	}
	return 1
}

// rows checks the geometry and returns the row length in bytes
func (img *Raster) rows(comps int) (int, error) {
	if img.Width <= 0 || img.Height <= 0 {
		return 0, fmt.Errorf("invalid image size %dx%d", img.Width, img.Height)
	}
	switch img.Bits {
	case 1, 2, 4, 8, 16:
	default:
		return 0, fmt.Errorf("unsupported bits per component: %d", img.Bits)
	}
	stride := (img.Width*comps*img.Bits + 7) / 8
	if need := stride * img.Height; len(img.Data) < need {
		return 0, fmt.Errorf("insufficient data: got %d, expected %d", len(img.Data), need)
	}
	return stride, nil
}

// sample returns sample i of a row as its raw value
func (img *Raster) sample(row []byte, i int) int {
	switch img.Bits {
	case 8:
		return int(row[i])
	case 16:
		return int(row[2*i])<<8 | int(row[2*i+1])
	}
	bit := i * img.Bits
	shift := 8 - img.Bits - bit%8
	return int(row[bit/8]>>shift) & (1<<img.Bits - 1)
}

// level scales sample i of a row to 0..255, honoring Invert
func (img *Raster) level(row []byte, i int) uint8 {
	v := uint8(img.sample(row, i) * 255 / (1<<img.Bits - 1))
	if img.Invert {
		v = 255 - v
	}
	return v
}

// Gray returns the first component of every pixel as a gray image
func (img *Raster) Gray() (*image.Gray, error) {
	comps := img.components()
	stride, err := img.rows(comps)
	if err != nil {
		return nil, err
	}
	out := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		row := img.Data[y*stride:]
		for x := 0; x < img.Width; x++ {
			out.Pix[y*out.Stride+x] = img.level(row, x*comps)
		}
	}
	return out, nil
}

// Image converts the samples to an image.Image
func (img *Raster) Image() (image.Image, error) {
	if img.Stencil {
		return img.stencil()
	}
	if img.Space == "Indexed" {
		return img.indexed()
	}

	comps := img.components()
	if comps == 1 {
		return img.Gray()
	}
	stride, err := img.rows(comps)
	if err != nil {
		return nil, err
	}

	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		row := img.Data[y*stride:]
		for x := 0; x < img.Width; x++ {
			i := x * comps
			var c color.RGBA
			if comps == 4 {
				r, g, b := color.CMYKToRGB(img.level(row, i), img.level(row, i+1), img.level(row, i+2), img.level(row, i+3))
				c = color.RGBA{r, g, b, 255}
			} else {
				c = color.RGBA{img.level(row, i), img.level(row, i+1), img.level(row, i+2), 255}
			}
			out.SetRGBA(x, y, c)
		}
	}
	return out, nil
}

// indexed looks every sample up in the palette. Indices past the end of
// the palette paint black.
func (img *Raster) indexed() (*image.RGBA, error) {
	stride, err := img.rows(1)
	if err != nil {
		return nil, err
	}

	comps := 3
	switch img.PaletteBase {
	case "DeviceGray":
		comps = 1
	case "DeviceCMYK":
		comps = 4
	}

	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		row := img.Data[y*stride:]
		for x := 0; x < img.Width; x++ {
			c := color.RGBA{A: 255}
			if off := img.sample(row, x) * comps; off+comps <= len(img.Palette) {
				p := img.Palette[off : off+comps]
				switch comps {
				case 1:
					c = color.RGBA{p[0], p[0], p[0], 255}
				case 3:
					c = color.RGBA{p[0], p[1], p[2], 255}
				case 4:
					r, g, b := color.CMYKToRGB(p[0], p[1], p[2], p[3])
					c = color.RGBA{r, g, b, 255}
				}
			}
			out.SetRGBA(x, y, c)
		}
	}
	return out, nil
}

// stencil paints black where a sample is 0 and leaves the rest
// transparent
func (img *Raster) stencil() (*image.NRGBA, error) {
	stride, err := img.rows(1)
	if err != nil {
		return nil, err
	}
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		row := img.Data[y*stride:]
		for x := 0; x < img.Width; x++ {
			if (img.sample(row, x) == 0) != img.Invert {
				out.Pix[y*out.Stride+x*4+3] = 255
			}
		}
	}
	return out, nil
}
