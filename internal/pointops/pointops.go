// Package pointops implements per-pixel transforms with no spatial
// dependency. Every function mutates its buffer in place and cannot fail.
package pointops

import "github.com/AnyUserName/bmpfx-cli/internal/raster"

// NegativeGray inverts every byte of the pixel block.
func NegativeGray(g *raster.Gray) {
	for i, v := range g.Pix {
		g.Pix[i] = 255 - v
	}
}

// NegativeRGB inverts every channel.
func NegativeRGB(c *raster.RGB) {
	for i, p := range c.Pix {
		c.Pix[i] = raster.Pixel{R: 255 - p.R, G: 255 - p.G, B: 255 - p.B}
	}
}

// BrightnessGray adds delta to every byte, clamping to [0, 255].
func BrightnessGray(g *raster.Gray, delta int) {
	lut := brightnessLUT(delta)
	for i, v := range g.Pix {
		g.Pix[i] = lut[v]
	}
}

// BrightnessRGB adds delta to every channel, clamping to [0, 255].
func BrightnessRGB(c *raster.RGB, delta int) {
	lut := brightnessLUT(delta)
	for i, p := range c.Pix {
		c.Pix[i] = raster.Pixel{R: lut[p.R], G: lut[p.G], B: lut[p.B]}
	}
}

// brightnessLUT maps every byte v to clamp(v+delta, 0, 255). delta is
// saturated first so v+delta cannot overflow.
func brightnessLUT(delta int) [256]uint8 {
	delta = max(-255, min(delta, 255))
	var lut [256]uint8
	for v := range lut {
		lut[v] = raster.Clamp255(v + delta)
	}
	return lut
}

// Threshold maps every byte to 255 when it is >= t and to 0 otherwise.
func Threshold(g *raster.Gray, t int) {
	for i, v := range g.Pix {
		if int(v) >= t {
			g.Pix[i] = 255
		} else {
			g.Pix[i] = 0
		}
	}
}

// Grayscale replaces each pixel with the truncated mean of its channels.
// This is a plain average, not the weighted luma the equalizer uses.
func Grayscale(c *raster.RGB) {
	for i, p := range c.Pix {
		m := uint8((int(p.R) + int(p.G) + int(p.B)) / 3)
		c.Pix[i] = raster.Pixel{R: m, G: m, B: m}
	}
}
