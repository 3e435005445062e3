package bmp

import (
	"encoding/binary"

	"github.com/AnyUserName/bmpfx-cli/internal/raster"
)

// defaultResolution is 72 DPI in pixels per meter.
const defaultResolution = 2835

// NewColor wraps buf in freshly built 24-bit headers. Rows are written
// without padding, so buf.Width*3 should be a multiple of 4 for the
// output to be readable by other decoders.
func NewColor(buf *raster.RGB) *Image {
	dataSize := uint32(buf.Width * buf.Height * 3)
	return &Image{Color: &ColorImage{
		Meta: ColorMeta{
			File: FileHeader{
				Type:   TypeBM,
				Size:   headersLen + dataSize,
				Offset: headersLen,
			},
			Info: InfoHeader{
				Size:        infoHeaderLen,
				Width:       int32(buf.Width),
				Height:      int32(buf.Height),
				Planes:      1,
				Bits:        24,
				ImageSize:   dataSize,
				XResolution: defaultResolution,
				YResolution: defaultResolution,
			},
		},
		Buf: buf,
	}}
}

// NewGray wraps buf in a freshly built 8-bit header with an identity gray
// palette. buf.Pix is used as the raw pixel block as-is.
func NewGray(buf *raster.Gray) *Image {
	var m GrayMeta
	m.Width = uint32(buf.Width)
	m.Height = uint32(buf.Height)
	m.Depth = 8
	m.DataSize = uint32(len(buf.Pix))

	le := binary.LittleEndian
	h := m.Header[:]
	le.PutUint16(h[0:], TypeBM)
	le.PutUint32(h[2:], headersLen+paletteLen+m.DataSize)
	le.PutUint32(h[10:], headersLen+paletteLen)
	le.PutUint32(h[14:], infoHeaderLen)
	le.PutUint32(h[offWidth:], m.Width)
	le.PutUint32(h[offHeight:], m.Height)
	le.PutUint16(h[26:], 1)
	le.PutUint16(h[offDepth:], 8)
	le.PutUint32(h[offDataSize:], m.DataSize)
	le.PutUint32(h[38:], defaultResolution)
	le.PutUint32(h[42:], defaultResolution)
	le.PutUint32(h[46:], 256)

	for i := 0; i < 256; i++ {
		m.Palette[i*4+0] = uint8(i)
		m.Palette[i*4+1] = uint8(i)
		m.Palette[i*4+2] = uint8(i)
	}

	return &Image{Gray: &GrayImage{Meta: m, Buf: buf}}
}
