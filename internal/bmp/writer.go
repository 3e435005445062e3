package bmp

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Save writes img to path. The file is created (or truncated) in place;
// a failed write may leave a partial file behind.
func Save(img *Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrIO, path, err)
	}

	bw := bufio.NewWriter(f)
	if err := Encode(bw, img); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrIO, path, err)
	}
	return nil
}

// Encode serializes img in the same layout it was loaded from.
func Encode(w io.Writer, img *Image) error {
	switch img.Kind() {
	case KindGray:
		return EncodeGray(w, img.Gray)
	case KindColor:
		return EncodeColor(w, img.Color)
	default:
		return fmt.Errorf("%w: no image to encode", ErrFormat)
	}
}

// EncodeGray writes the preserved header and palette followed by the pixel
// bytes, unchanged in order.
func EncodeGray(w io.Writer, g *GrayImage) error {
	for _, chunk := range [][]byte{g.Meta.Header[:], g.Meta.Palette[:], g.Buf.Pix} {
		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("%w: write: %w", ErrIO, err)
		}
	}
	return nil
}

// EncodeColor writes both headers, the preserved gap, then the pixel rows
// bottom-to-top in blue, green, red order.
func EncodeColor(w io.Writer, c *ColorImage) error {
	buf := c.Buf
	info := c.Meta.Info
	info.Width = int32(buf.Width)
	info.Height = int32(buf.Height)
	info.Bits = 24

	if err := binary.Write(w, binary.LittleEndian, &c.Meta.File); err != nil {
		return fmt.Errorf("%w: write file header: %w", ErrIO, err)
	}
	if err := binary.Write(w, binary.LittleEndian, &info); err != nil {
		return fmt.Errorf("%w: write info header: %w", ErrIO, err)
	}
	if len(c.Meta.Gap) > 0 {
		if _, err := w.Write(c.Meta.Gap); err != nil {
			return fmt.Errorf("%w: write header gap: %w", ErrIO, err)
		}
	}

	row := make([]byte, buf.Width*3)
	for y := buf.Height - 1; y >= 0; y-- {
		src := buf.Pix[y*buf.Width : (y+1)*buf.Width]
		for x, p := range src {
			i := x * 3
			row[i+0] = p.B
			row[i+1] = p.G
			row[i+2] = p.R
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("%w: write pixel row %d: %w", ErrIO, y, err)
		}
	}
	return nil
}
