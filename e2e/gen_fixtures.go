//go:build ignore

// gen_fixtures creates small BMP images for the E2E smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
	"github.com/AnyUserName/bmpfx-cli/internal/raster"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(filepath.Join(dir, "cards"), 0o755)

	// Banner (24-bit, 400x224)
	write(filepath.Join(dir, "banner.bmp"), bmp.NewColor(raster.RGBFromImage(gradient(400, 224))))

	// Cards (24-bit, 200x152 each)
	for i := 1; i <= 3; i++ {
		name := fmt.Sprintf("card-%d.bmp", i)
		write(filepath.Join(dir, "cards", name), bmp.NewColor(solidWithBorder(200, 152, uint8(i*60))))
	}

	// Grayscale ramp (8-bit, 256x64)
	write(filepath.Join(dir, "ramp.bmp"), bmp.NewGray(ramp(256, 64)))

	// Low-contrast grayscale (8-bit, 100x100), a candidate for equalize.
	write(filepath.Join(dir, "dim.bmp"), bmp.NewGray(narrow(100, 100, 96, 128)))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 6 fixtures in %s\n", dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func solidWithBorder(w, h int, base uint8) *raster.RGB {
	img := raster.NewRGB(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := raster.Pixel{R: base, G: base + 40, B: base + 80}
			if x < 4 || x >= w-4 || y < 4 || y >= h-4 {
				p = raster.Pixel{R: 255, G: 255, B: 255}
			}
			img.Set(x, y, p)
		}
	}
	return img
}

func ramp(w, h int) *raster.Gray {
	g := raster.NewGray(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, uint8(x*255/(w-1)))
		}
	}
	return g
}

func narrow(w, h int, lo, hi int) *raster.Gray {
	g := raster.NewGray(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, uint8(lo+(x+y)%(hi-lo+1)))
		}
	}
	return g
}

func write(path string, img *bmp.Image) {
	if err := bmp.Save(img, path); err != nil {
		panic(err)
	}
}
