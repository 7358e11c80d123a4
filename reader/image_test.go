package reader

import (
	"image"
	"image/color"
	"testing"

	"github.com/tsawler/bionic/core"
)

func TestRaster_Image(t *testing.T) {
	tests := []struct {
		name string
		img  Raster
		x, y int
		want color.RGBA
	}{
		{"gray 8", Raster{Width: 2, Height: 2, Bits: 8, Space: "DeviceGray", Data: []byte{0, 128, 64, 255}},
			1, 1, color.RGBA{255, 255, 255, 255}},
		{"gray 1", Raster{Width: 8, Height: 1, Bits: 1, Space: "DeviceGray", Data: []byte{0xAA}},
			0, 0, color.RGBA{255, 255, 255, 255}},
		{"gray 1 dark bit", Raster{Width: 8, Height: 1, Bits: 1, Space: "DeviceGray", Data: []byte{0xAA}},
			1, 0, color.RGBA{0, 0, 0, 255}},
		{"gray 4", Raster{Width: 2, Height: 1, Bits: 4, Space: "DeviceGray", Data: []byte{0x0F}},
			1, 0, color.RGBA{255, 255, 255, 255}},
		{"gray inverted", Raster{Width: 1, Height: 1, Bits: 8, Space: "DeviceGray", Data: []byte{0}, Invert: true},
			0, 0, color.RGBA{255, 255, 255, 255}},
		{"rgb", Raster{Width: 2, Height: 1, Bits: 8, Space: "DeviceRGB", Data: []byte{255, 0, 0, 0, 255, 0}},
			1, 0, color.RGBA{0, 255, 0, 255}},
		{"rgb 16", Raster{Width: 1, Height: 1, Bits: 16, Space: "DeviceRGB", Data: []byte{0xff, 0xff, 0, 0, 0, 0}},
			0, 0, color.RGBA{255, 0, 0, 255}},
		{"cmyk", Raster{Width: 1, Height: 1, Bits: 8, Space: "DeviceCMYK", Data: []byte{0, 255, 255, 0}},
			0, 0, color.RGBA{255, 0, 0, 255}},
		{"indexed 2 bit", Raster{Width: 4, Height: 1, Bits: 2, Space: "Indexed", PaletteBase: "DeviceRGB",
			Palette: []byte{0, 0, 0, 10, 20, 30}, Data: []byte{0x40}},
			0, 0, color.RGBA{10, 20, 30, 255}},
		{"indexed past palette", Raster{Width: 1, Height: 1, Bits: 8, Space: "Indexed", PaletteBase: "DeviceGray",
			Palette: []byte{200}, Data: []byte{5}},
			0, 0, color.RGBA{0, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := tt.img.Image()
			if err != nil {
				t.Fatalf("Image failed: %v", err)
			}
			got := color.RGBAModel.Convert(img.At(tt.x, tt.y)).(color.RGBA)
			if got != tt.want {
				t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRaster_Stencil(t *testing.T) {
	img, err := (&Raster{Width: 2, Height: 1, Bits: 1, Data: []byte{0x40}, Stencil: true}).Image()
	if err != nil {
		t.Fatal(err)
	}
	nrgba := img.(*image.NRGBA)
	if a := nrgba.NRGBAAt(0, 0).A; a != 255 {
		t.Errorf("a 0 sample should paint, alpha = %d", a)
	}
	if a := nrgba.NRGBAAt(1, 0).A; a != 0 {
		t.Errorf("a 1 sample should stay clear, alpha = %d", a)
	}
}

func TestRaster_Errors(t *testing.T) {
	tests := []struct {
		name string
		img  Raster
	}{
		{"zero size", Raster{Width: 0, Height: 1, Bits: 8}},
		{"short gray", Raster{Width: 4, Height: 4, Bits: 8, Space: "DeviceGray", Data: []byte{1}}},
		{"short rgb", Raster{Width: 2, Height: 2, Bits: 8, Space: "DeviceRGB", Data: make([]byte, 11)}},
		{"short cmyk", Raster{Width: 2, Height: 2, Bits: 8, Space: "DeviceCMYK", Data: make([]byte, 15)}},
		{"odd bit depth", Raster{Width: 1, Height: 1, Bits: 3, Space: "DeviceGray", Data: []byte{0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.img.Image(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRaster_GrayTakesFirstComponent(t *testing.T) {
	g, err := (&Raster{Width: 1, Height: 1, Bits: 8, Space: "DeviceRGB", Data: []byte{40, 50, 60}}).Gray()
	if err != nil {
		t.Fatal(err)
	}
	if v := g.GrayAt(0, 0).Y; v != 40 {
		t.Errorf("gray = %d, want 40", v)
	}
}

func TestApplySoftMask(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	mask := image.NewGray(image.Rect(0, 0, 1, 1))
	mask.Pix[0] = 77

	out := applySoftMask(src, mask)
	for _, p := range []image.Point{{0, 0}, {1, 1}} {
		if a := out.NRGBAAt(p.X, p.Y).A; a != 77 {
			t.Errorf("alpha at %v = %d, want 77", p, a)
		}
	}
}

func TestExpandInlineDict(t *testing.T) {
	d := expandInlineDict(core.Dict{"W": core.Int(4), "CS": core.Name("RGB"), "Custom": core.Int(1)})
	if w, _ := d.GetInt("Width"); w != 4 {
		t.Errorf("Width = %v", d.Get("Width"))
	}
	if cs, _ := d.GetName("ColorSpace"); deviceName(string(cs)) != "DeviceRGB" {
		t.Errorf("ColorSpace = %v", d.Get("ColorSpace"))
	}
	if !d.Has("Custom") || d.Has("W") {
		t.Error("unknown keys should pass through and short keys should be replaced")
	}
	if inlineInt(core.Dict{"H": core.Int(9)}, "H", "Height") != 9 || inlineInt(core.Dict{"Height": core.Int(3)}, "H", "Height") != 3 {
		t.Error("inlineInt should accept both key forms")
	}
}
