// Package raster holds the in-memory pixel grids shared by the codec and
// every transform. Both grids are single contiguous slices addressed
// row-major from the top-left corner; row order on disk is the codec's
// concern.
package raster

import (
	"image"
	"image/color"
)

// Pixel is one 24-bit color sample. There is no alpha channel.
type Pixel struct {
	R, G, B uint8
}

// Gray is an 8-bit intensity grid.
//
// Pix may be longer than Width*Height when it carries the raw pixel block
// of a file (row padding); per-pixel operations run over all of Pix, while
// spatial operations only address y*Width+x.
type Gray struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewGray allocates a zeroed w×h grid.
func NewGray(w, h int) *Gray {
	return &Gray{Width: w, Height: h, Pix: make([]uint8, w*h)}
}

// At returns the intensity at (x, y). Out-of-range reads return 0.
func (g *Gray) At(x, y int) uint8 {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return 0
	}
	return g.Pix[y*g.Width+x]
}

// Set writes the intensity at (x, y). Out-of-range writes are ignored.
func (g *Gray) Set(x, y int, v uint8) {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return
	}
	g.Pix[y*g.Width+x] = v
}

// Clone returns a deep copy.
func (g *Gray) Clone() *Gray {
	pix := make([]uint8, len(g.Pix))
	copy(pix, g.Pix)
	return &Gray{Width: g.Width, Height: g.Height, Pix: pix}
}

// ToImage copies the addressable grid into an *image.Gray.
func (g *Gray) ToImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+g.Width], g.Pix[y*g.Width:(y+1)*g.Width])
	}
	return img
}

// RGB is a 24-bit color grid.
type RGB struct {
	Width  int
	Height int
	Pix    []Pixel
}

// NewRGB allocates a zeroed (black) w×h grid.
func NewRGB(w, h int) *RGB {
	return &RGB{Width: w, Height: h, Pix: make([]Pixel, w*h)}
}

// At returns the pixel at (x, y). Out-of-range reads return black.
func (c *RGB) At(x, y int) Pixel {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return Pixel{}
	}
	return c.Pix[y*c.Width+x]
}

// Set writes the pixel at (x, y). Out-of-range writes are ignored.
func (c *RGB) Set(x, y int, p Pixel) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	c.Pix[y*c.Width+x] = p
}

// Fill sets every pixel to p.
func (c *RGB) Fill(p Pixel) {
	for i := range c.Pix {
		c.Pix[i] = p
	}
}

// Clone returns a deep copy.
func (c *RGB) Clone() *RGB {
	pix := make([]Pixel, len(c.Pix))
	copy(pix, c.Pix)
	return &RGB{Width: c.Width, Height: c.Height, Pix: pix}
}

// ToImage copies the grid into an opaque *image.NRGBA.
func (c *RGB) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < c.Width; x++ {
			p := c.Pix[y*c.Width+x]
			i := x * 4
			row[i+0] = p.R
			row[i+1] = p.G
			row[i+2] = p.B
			row[i+3] = 0xff
		}
	}
	return img
}

// RGBFromImage converts any image.Image into an RGB grid, dropping alpha.
func RGBFromImage(img image.Image) *RGB {
	b := img.Bounds()
	out := NewRGB(b.Dx(), b.Dy())
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			out.Pix[y*out.Width+x] = Pixel{R: c.R, G: c.G, B: c.B}
		}
	}
	return out
}

// Clamp255 clamps v into the byte range.
func Clamp255(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}
