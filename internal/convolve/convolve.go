// Package convolve applies square kernels to raster buffers.
//
// Both entry points are two-pass: every output value is computed from an
// untouched snapshot of the input, so no pixel ever sees an already
// filtered neighbour. Only pixels at least Half() away from every edge are
// written; the border ring keeps its original values.
package convolve

import (
	"math"

	"github.com/AnyUserName/bmpfx-cli/internal/raster"
)

// ApplyRGB convolves each channel of img with k in place. Taps that fall
// outside the buffer contribute nothing.
func ApplyRGB(img *raster.RGB, k Kernel) {
	if !k.valid() {
		return
	}
	w, h, half := img.Width, img.Height, k.Half()
	if w <= 2*half || h <= 2*half {
		return
	}

	src := make([]raster.Pixel, w*h)
	copy(src, img.Pix)

	for y := half; y < h-half; y++ {
		for x := half; x < w-half; x++ {
			var r, g, b float64
			for ky := -half; ky <= half; ky++ {
				sy := y + ky
				if sy < 0 || sy >= h {
					continue
				}
				for kx := -half; kx <= half; kx++ {
					sx := x + kx
					if sx < 0 || sx >= w {
						continue
					}
					wt := k.At(ky+half, kx+half)
					p := src[sy*w+sx]
					r += float64(p.R) * wt
					g += float64(p.G) * wt
					b += float64(p.B) * wt
				}
			}
			img.Pix[y*w+x] = raster.Pixel{R: toByte(r), G: toByte(g), B: toByte(b)}
		}
	}
}

// ApplyGray convolves the addressable w×h grid of img with k in place.
func ApplyGray(img *raster.Gray, k Kernel) {
	if !k.valid() {
		return
	}
	w, h, half := img.Width, img.Height, k.Half()
	if w <= 2*half || h <= 2*half {
		return
	}

	src := make([]uint8, w*h)
	copy(src, img.Pix[:w*h])

	for y := half; y < h-half; y++ {
		for x := half; x < w-half; x++ {
			var sum float64
			for ky := -half; ky <= half; ky++ {
				row := src[(y+ky)*w:]
				for kx := -half; kx <= half; kx++ {
					sum += float64(row[x+kx]) * k.At(ky+half, kx+half)
				}
			}
			img.Pix[y*w+x] = toByte(sum)
		}
	}
}

// toByte clamps v to [0, 255] and rounds to the nearest integer.
func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
