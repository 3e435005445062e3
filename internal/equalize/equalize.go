// Package equalize performs histogram equalization. Grayscale buffers are
// equalized on their raw intensities; color buffers are equalized on the
// luminance channel of a YUV transform so hue is preserved.
package equalize

import (
	"math"

	"github.com/AnyUserName/bmpfx-cli/internal/raster"
)

// Histogram counts occurrences of each byte value.
func Histogram(values []uint8) [256]uint32 {
	var h [256]uint32
	for _, v := range values {
		h[v]++
	}
	return h
}

// CDF returns the running sum of h.
func CDF(h [256]uint32) [256]uint32 {
	var c [256]uint32
	c[0] = h[0]
	for i := 1; i < 256; i++ {
		c[i] = c[i-1] + h[i]
	}
	return c
}

// Mapping turns a CDF into an intensity lookup table. It returns false
// when every counted value sits in one bin (or nothing was counted): the
// normalization divisor N-cdfMin is then zero and no remap is defined.
func Mapping(cdf [256]uint32) ([256]uint8, bool) {
	var lut [256]uint8

	var cdfMin uint32
	for _, c := range cdf {
		if c > 0 {
			cdfMin = c
			break
		}
	}
	n := cdf[255]
	if n == cdfMin {
		return lut, false
	}

	span := float64(n - cdfMin)
	for i, c := range cdf {
		if c > 0 {
			lut[i] = uint8(math.Round(float64(c-cdfMin) / span * 255))
		}
	}
	return lut, true
}

// Gray equalizes every byte of the pixel block in place. A single-level
// image is left unchanged.
func Gray(g *raster.Gray) {
	lut, ok := Mapping(CDF(Histogram(g.Pix)))
	if !ok {
		return
	}
	for i, v := range g.Pix {
		g.Pix[i] = lut[v]
	}
}

// RGB equalizes the luminance of img in place, keeping chrominance. An
// image whose rounded luminance has a single level is left unchanged.
func RGB(img *raster.RGB) {
	yuv := make([]YUV, len(img.Pix))
	lum := make([]uint8, len(img.Pix))
	for i, p := range img.Pix {
		yuv[i] = ToYUV(p)
		lum[i] = clampRound(yuv[i].Y)
	}

	lut, ok := Mapping(CDF(Histogram(lum)))
	if !ok {
		return
	}
	for i := range yuv {
		c := yuv[i]
		c.Y = float64(lut[lum[i]])
		img.Pix[i] = FromYUV(c)
	}
}

// Luminance returns the rounded BT.601 luma of every pixel, the values RGB
// equalizes over.
func Luminance(img *raster.RGB) []uint8 {
	lum := make([]uint8, len(img.Pix))
	for i, p := range img.Pix {
		lum[i] = clampRound(ToYUV(p).Y)
	}
	return lum
}
