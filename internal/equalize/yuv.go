package equalize

import (
	"math"

	"github.com/AnyUserName/bmpfx-cli/internal/raster"
)

// YUV is a luminance/chrominance triple.
type YUV struct {
	Y, U, V float64
}

// ToYUV converts a pixel using BT.601 analog coefficients.
func ToYUV(p raster.Pixel) YUV {
	r, g, b := float64(p.R), float64(p.G), float64(p.B)
	return YUV{
		Y: 0.299*r + 0.587*g + 0.114*b,
		U: -0.14713*r - 0.28886*g + 0.436*b,
		V: 0.615*r - 0.51499*g - 0.10001*b,
	}
}

// FromYUV converts back, rounding and clamping each channel.
func FromYUV(c YUV) raster.Pixel {
	return raster.Pixel{
		R: clampRound(c.Y + 1.13983*c.V),
		G: clampRound(c.Y - 0.39465*c.U - 0.58060*c.V),
		B: clampRound(c.Y + 2.03211*c.U),
	}
}

func clampRound(v float64) uint8 {
	return raster.Clamp255(int(math.Round(v)))
}
