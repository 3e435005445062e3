// Package bmp reads and writes the two BMP layouts bmpfx works on: 8-bit
// grayscale with a 256-entry palette, and uncompressed 24-bit color.
//
// Header bytes are preserved so that a load followed by a save reproduces
// the source file byte for byte.
package bmp

import (
	"errors"

	"github.com/AnyUserName/bmpfx-cli/internal/raster"
)

// Error kinds. Every error returned by this package wraps exactly one.
var (
	// ErrIO covers files that cannot be opened or created and failed writes.
	ErrIO = errors.New("bmp: i/o error")
	// ErrFormat covers bad signatures, unsupported depths and truncated data.
	ErrFormat = errors.New("bmp: format error")
)

const (
	// TypeBM is the "BM" signature read as a little-endian uint16.
	TypeBM = 0x4D42

	fileHeaderLen = 14
	infoHeaderLen = 40
	headersLen    = fileHeaderLen + infoHeaderLen // 54
	paletteLen    = 256 * 4

	// Fixed offsets into the 54-byte header used by the 8-bit path.
	offWidth    = 18
	offHeight   = 22
	offDepth    = 28
	offDataSize = 34

	// maxUnsizedPixelBytes caps the 24-bit pixel block when Decode is not
	// told the input size.
	maxUnsizedPixelBytes = 1 << 30
)

// FileHeader is the 14-byte BITMAPFILEHEADER at byte 0.
type FileHeader struct {
	Type      uint16 // must be TypeBM
	Size      uint32 // whole file, in bytes
	Reserved1 uint16
	Reserved2 uint16
	Offset    uint32 // start of the pixel array
}

// InfoHeader is the 40-byte BITMAPINFOHEADER at byte 14.
type InfoHeader struct {
	Size            uint32
	Width           int32
	Height          int32
	Planes          uint16
	Bits            uint16
	Compression     uint32
	ImageSize       uint32
	XResolution     int32 // pixels per meter
	YResolution     int32
	Colors          uint32
	ImportantColors uint32
}

// GrayMeta is the opaque header and palette of an 8-bit file plus the
// fields extracted from it.
type GrayMeta struct {
	Header   [headersLen]byte
	Palette  [paletteLen]byte
	Width    uint32
	Height   uint32
	Depth    uint32
	DataSize uint32
}

// ColorMeta is the parsed header pair of a 24-bit file. Gap holds whatever
// sits between the 40-byte info header and the pixel array (larger info
// header versions, an unused palette) so it can be written back.
type ColorMeta struct {
	File FileHeader
	Info InfoHeader
	Gap  []byte
}

// GrayImage is a loaded 8-bit file.
type GrayImage struct {
	Meta GrayMeta
	Buf  *raster.Gray
}

// ColorImage is a loaded 24-bit file.
type ColorImage struct {
	Meta ColorMeta
	Buf  *raster.RGB
}

// Kind tells which variant an Image holds.
type Kind int

const (
	KindNone Kind = iota
	KindGray
	KindColor
)

func (k Kind) String() string {
	switch k {
	case KindGray:
		return "grayscale"
	case KindColor:
		return "color"
	default:
		return "none"
	}
}

// Image is a loaded BMP: exactly one of Gray and Color is set.
type Image struct {
	Gray  *GrayImage
	Color *ColorImage
}

// Kind reports which variant img holds.
func (img *Image) Kind() Kind {
	switch {
	case img == nil:
		return KindNone
	case img.Gray != nil:
		return KindGray
	case img.Color != nil:
		return KindColor
	default:
		return KindNone
	}
}

// Info is the summary shown to users.
type Info struct {
	Width    int
	Height   int
	BitDepth int
	DataSize int // raw pixel bytes on disk
}

// Describe returns the image dimensions and depth.
func (img *Image) Describe() Info {
	switch img.Kind() {
	case KindGray:
		m := img.Gray.Meta
		return Info{
			Width:    int(m.Width),
			Height:   int(m.Height),
			BitDepth: int(m.Depth),
			DataSize: int(m.DataSize),
		}
	case KindColor:
		b := img.Color.Buf
		return Info{
			Width:    b.Width,
			Height:   b.Height,
			BitDepth: int(img.Color.Meta.Info.Bits),
			DataSize: b.Width * b.Height * 3,
		}
	default:
		return Info{}
	}
}
