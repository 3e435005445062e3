package bmp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AnyUserName/bmpfx-cli/internal/raster"
)

// Load opens path and decodes it, trying the 8-bit layout first and the
// 24-bit layout second. On failure no image is returned.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrIO, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", ErrIO, path, err)
	}

	img, err := Decode(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w", path, err)
	}
	return img, nil
}

// LoadGray loads path as an 8-bit grayscale file only.
func LoadGray(path string) (*GrayImage, error) {
	f, size, err := openSized(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeGray(io.NewSectionReader(f, 0, size), size)
}

// LoadColor loads path as a 24-bit color file only.
func LoadColor(path string) (*ColorImage, error) {
	f, size, err := openSized(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeColor(f, size)
}

func openSized(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: open %s: %w", ErrIO, path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("%w: stat %s: %w", ErrIO, path, err)
	}
	return f, info.Size(), nil
}

// Decode reads a BMP of the given total size from r. A negative size
// disables the up-front truncation checks.
func Decode(r io.ReaderAt, size int64) (*Image, error) {
	g, gerr := DecodeGray(io.NewSectionReader(r, 0, sizeOrMax(size)), size)
	if gerr == nil {
		return &Image{Gray: g}, nil
	}
	if errors.Is(gerr, ErrIO) {
		return nil, gerr
	}

	c, cerr := DecodeColor(r, size)
	if cerr == nil {
		return &Image{Color: c}, nil
	}
	if errors.Is(cerr, ErrIO) {
		return nil, cerr
	}
	return nil, fmt.Errorf("not 8-bit (%w); not 24-bit (%w)", gerr, cerr)
}

// DecodeGray reads the 8-bit layout: a 54-byte header, a 1024-byte palette
// and DataSize raw pixel bytes, in that order. The header signature is not
// checked and pixel rows are kept in file order.
func DecodeGray(r io.Reader, size int64) (*GrayImage, error) {
	var m GrayMeta
	if _, err := io.ReadFull(r, m.Header[:]); err != nil {
		return nil, readErr("header", err)
	}
	if _, err := io.ReadFull(r, m.Palette[:]); err != nil {
		return nil, readErr("color table", err)
	}

	le := binary.LittleEndian
	m.Width = le.Uint32(m.Header[offWidth:])
	m.Height = le.Uint32(m.Header[offHeight:])
	// Read as 4 bytes: the low half of the compression field rides along,
	// so RLE-compressed 8-bit files are rejected here too.
	m.Depth = le.Uint32(m.Header[offDepth:])
	m.DataSize = le.Uint32(m.Header[offDataSize:])

	if m.Depth != 8 {
		return nil, fmt.Errorf("%w: bit depth %d is not 8", ErrFormat, m.Depth)
	}
	if m.DataSize == 0 && m.Width > 0 && m.Height > 0 {
		return nil, fmt.Errorf("%w: biSizeImage is 0; 8-bit files must declare their pixel data size",
			ErrFormat)
	}
	if uint64(m.DataSize) < uint64(m.Width)*uint64(m.Height) {
		return nil, fmt.Errorf("%w: pixel data size %d smaller than %dx%d",
			ErrFormat, m.DataSize, m.Width, m.Height)
	}
	if size >= 0 && int64(headersLen+paletteLen)+int64(m.DataSize) > size {
		return nil, fmt.Errorf("%w: truncated pixel data (%d bytes declared)", ErrFormat, m.DataSize)
	}

	pix := make([]uint8, m.DataSize)
	if _, err := io.ReadFull(r, pix); err != nil {
		return nil, readErr("pixel data", err)
	}

	return &GrayImage{
		Meta: m,
		Buf:  &raster.Gray{Width: int(m.Width), Height: int(m.Height), Pix: pix},
	}, nil
}

// DecodeColor reads the 24-bit layout. Rows are stored bottom-to-top with
// pixels in blue, green, red order; the returned buffer is top-down RGB.
func DecodeColor(r io.ReaderAt, size int64) (*ColorImage, error) {
	var m ColorMeta
	if err := binary.Read(io.NewSectionReader(r, 0, fileHeaderLen), binary.LittleEndian, &m.File); err != nil {
		return nil, readErr("file header", err)
	}
	if m.File.Type != TypeBM {
		return nil, fmt.Errorf("%w: signature %#04x is not BM", ErrFormat, m.File.Type)
	}
	if err := binary.Read(io.NewSectionReader(r, fileHeaderLen, infoHeaderLen), binary.LittleEndian, &m.Info); err != nil {
		return nil, readErr("info header", err)
	}

	info := m.Info
	switch {
	case info.Bits != 24:
		return nil, fmt.Errorf("%w: bit depth %d is not 24", ErrFormat, info.Bits)
	case info.Compression != 0:
		return nil, fmt.Errorf("%w: compression %d not supported", ErrFormat, info.Compression)
	case info.Width <= 0 || info.Height <= 0:
		return nil, fmt.Errorf("%w: unsupported dimensions %dx%d", ErrFormat, info.Width, info.Height)
	case m.File.Offset < headersLen:
		return nil, fmt.Errorf("%w: pixel offset %d overlaps headers", ErrFormat, m.File.Offset)
	}

	w, h := int(info.Width), int(info.Height)
	// Both dimensions fit in 31 bits, so the product cannot wrap in uint64.
	base := uint64(m.File.Offset)
	total := uint64(w) * uint64(h) * 3
	switch {
	case size >= 0 && (base > uint64(size) || total > uint64(size)-base):
		return nil, fmt.Errorf("%w: truncated pixel data (%d bytes at offset %d, file is %d)",
			ErrFormat, total, base, size)
	case size < 0 && total > maxUnsizedPixelBytes:
		return nil, fmt.Errorf("%w: %dx%d pixel data too large for a stream of unknown size",
			ErrFormat, w, h)
	}

	if gap := base - headersLen; gap > 0 {
		m.Gap = make([]byte, gap)
		if err := readAt(r, m.Gap, headersLen); err != nil {
			return nil, readErr("header gap", err)
		}
	}

	raw := make([]byte, total)
	if err := readAt(r, raw, int64(base)); err != nil {
		return nil, readErr("pixel data", err)
	}

	buf := raster.NewRGB(w, h)
	rowLen := w * 3
	for y := 0; y < h; y++ {
		src := raw[(h-1-y)*rowLen:]
		dst := buf.Pix[y*w : (y+1)*w]
		for x := range dst {
			i := x * 3
			dst[x] = raster.Pixel{B: src[i], G: src[i+1], R: src[i+2]}
		}
	}

	return &ColorImage{Meta: m, Buf: buf}, nil
}

// readErr classifies a failed read: running out of bytes is a format
// problem, anything else is an i/o problem.
func readErr(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated %s", ErrFormat, what)
	}
	return fmt.Errorf("%w: read %s: %w", ErrIO, what, err)
}

// readAt fills p from off. A full read is success even if the reader also
// reported io.EOF.
func readAt(r io.ReaderAt, p []byte, off int64) error {
	n, err := r.ReadAt(p, off)
	if n == len(p) {
		return nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func sizeOrMax(size int64) int64 {
	if size < 0 {
		return 1<<63 - 1
	}
	return size
}
