package pointops

import (
	"math"
	"testing"

	"github.com/AnyUserName/bmpfx-cli/internal/raster"
	"github.com/disintegration/imaging"
)

func makeRGB(w, h int) *raster.RGB {
	img := raster.NewRGB(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, raster.Pixel{
				R: uint8((x * 251) % 256),
				G: uint8((y * 179) % 256),
				B: uint8(((x + y) * 113) % 256),
			})
		}
	}
	return img
}

func makeGray(w, h int) *raster.Gray {
	g := raster.NewGray(w, h)
	for i := range g.Pix {
		g.Pix[i] = uint8(i)
	}
	return g
}

func TestNegative_SelfInverse(t *testing.T) {
	img := makeRGB(16, 16)
	orig := img.Clone()
	NegativeRGB(img)
	NegativeRGB(img)
	for i := range img.Pix {
		if img.Pix[i] != orig.Pix[i] {
			t.Fatalf("pixel %d: got %+v, want %+v", i, img.Pix[i], orig.Pix[i])
		}
	}

	g := makeGray(16, 16)
	NegativeGray(g)
	if g.Pix[0] != 255 || g.Pix[255] != 0 || g.Pix[100] != 155 {
		t.Errorf("gray negative: got %d %d %d", g.Pix[0], g.Pix[255], g.Pix[100])
	}
	NegativeGray(g)
	for i, v := range g.Pix {
		if v != uint8(i) {
			t.Fatalf("gray pixel %d: got %d after double negative", i, v)
		}
	}
}

func TestNegative_MatchesImaging(t *testing.T) {
	img := makeRGB(9, 7)
	want := imaging.Invert(img.ToImage())
	NegativeRGB(img)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := want.NRGBAAt(x, y)
			if got := img.At(x, y); got != (raster.Pixel{R: c.R, G: c.G, B: c.B}) {
				t.Fatalf("(%d,%d): got %+v, imaging %+v", x, y, got, c)
			}
		}
	}
}

func TestBrightness_Clamp(t *testing.T) {
	img := makeRGB(8, 8)
	BrightnessRGB(img, 300)
	for i, p := range img.Pix {
		if p != (raster.Pixel{R: 255, G: 255, B: 255}) {
			t.Fatalf("delta=300 pixel %d: got %+v", i, p)
		}
	}

	img = makeRGB(8, 8)
	BrightnessRGB(img, -300)
	for i, p := range img.Pix {
		if p != (raster.Pixel{}) {
			t.Fatalf("delta=-300 pixel %d: got %+v", i, p)
		}
	}

	g := makeGray(16, 16)
	BrightnessGray(g, 10)
	if g.Pix[0] != 10 || g.Pix[250] != 255 || g.Pix[245] != 255 || g.Pix[244] != 254 {
		t.Errorf("gray +10: got %d %d %d %d", g.Pix[0], g.Pix[250], g.Pix[245], g.Pix[244])
	}
	BrightnessGray(g, -300)
	for i, v := range g.Pix {
		if v != 0 {
			t.Fatalf("gray -300 pixel %d: got %d", i, v)
		}
	}

	// Deltas near the int limits still saturate toward their own sign.
	for _, tc := range []struct {
		delta int
		want  uint8
	}{
		{math.MaxInt, 255},
		{math.MinInt, 0},
	} {
		g := raster.NewGray(2, 1)
		copy(g.Pix, []uint8{10, 250})
		BrightnessGray(g, tc.delta)
		if g.Pix[0] != tc.want || g.Pix[1] != tc.want {
			t.Errorf("gray delta=%d: got %v, want %d", tc.delta, g.Pix, tc.want)
		}
		c := raster.NewRGB(1, 1)
		c.Set(0, 0, raster.Pixel{R: 10, G: 128, B: 250})
		BrightnessRGB(c, tc.delta)
		if got := c.At(0, 0); got != (raster.Pixel{R: tc.want, G: tc.want, B: tc.want}) {
			t.Errorf("rgb delta=%d: got %+v", tc.delta, got)
		}
	}
}

func TestThreshold_InclusiveBoundary(t *testing.T) {
	g := raster.NewGray(4, 1)
	copy(g.Pix, []uint8{0, 127, 128, 255})
	Threshold(g, 128)
	want := []uint8{0, 0, 255, 255}
	for i := range want {
		if g.Pix[i] != want[i] {
			t.Errorf("pixel %d: got %d, want %d", i, g.Pix[i], want[i])
		}
	}
}

func TestGrayscale_TruncatingMean(t *testing.T) {
	img := raster.NewRGB(2, 1)
	img.Set(0, 0, raster.Pixel{R: 10, G: 20, B: 32}) // 62/3 = 20.67 -> 20
	img.Set(1, 0, raster.Pixel{R: 255, G: 255, B: 254})
	Grayscale(img)
	if got := img.At(0, 0); got != (raster.Pixel{R: 20, G: 20, B: 20}) {
		t.Errorf("(0,0): got %+v", got)
	}
	if got := img.At(1, 0); got != (raster.Pixel{R: 254, G: 254, B: 254}) {
		t.Errorf("(1,0): got %+v", got)
	}
}

func TestGrayscaleThenNegative_SolidGray(t *testing.T) {
	img := raster.NewRGB(4, 4)
	img.Fill(raster.Pixel{R: 128, G: 128, B: 128})
	Grayscale(img)
	NegativeRGB(img)
	for i, p := range img.Pix {
		if p != (raster.Pixel{R: 127, G: 127, B: 127}) {
			t.Fatalf("pixel %d: got %+v", i, p)
		}
	}
}
