package bmp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/bmpfx-cli/internal/raster"
	xbmp "golang.org/x/image/bmp"
)

// gradientRGB builds a deterministic w×h color buffer.
func gradientRGB(w, h int) *raster.RGB {
	buf := raster.NewRGB(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.Set(x, y, raster.Pixel{
				R: uint8(x * 251 % 256),
				G: uint8(y * 179 % 256),
				B: uint8((x + y) * 113 % 256),
			})
		}
	}
	return buf
}

func gradientGray(w, h int) *raster.Gray {
	buf := raster.NewGray(w, h)
	for i := range buf.Pix {
		buf.Pix[i] = uint8(i * 37 % 256)
	}
	return buf
}

func encodeBytes(t *testing.T, img *Image) []byte {
	t.Helper()
	var b bytes.Buffer
	if err := Encode(&b, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return b.Bytes()
}

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.bmp")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestColorRoundtripByteExact(t *testing.T) {
	src := encodeBytes(t, NewColor(gradientRGB(8, 5)))
	in := writeFile(t, src)

	img, err := Load(in)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if img.Kind() != KindColor {
		t.Fatalf("kind: got %v, want color", img.Kind())
	}

	out := filepath.Join(t.TempDir(), "out.bmp")
	if err := Save(img, out); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("round trip differs: %d bytes in, %d bytes out", len(src), len(got))
	}
}

func TestColorRoundtripKeepsGap(t *testing.T) {
	img := NewColor(gradientRGB(4, 3))
	gap := []byte{0xde, 0xad, 0xbe, 0xef, 1, 2, 3, 4}
	img.Color.Meta.Gap = gap
	img.Color.Meta.File.Offset += uint32(len(gap))
	img.Color.Meta.File.Size += uint32(len(gap))
	src := encodeBytes(t, img)

	got, err := Decode(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(got.Color.Meta.Gap, gap) {
		t.Errorf("gap: got %x, want %x", got.Color.Meta.Gap, gap)
	}
	if !bytes.Equal(encodeBytes(t, got), src) {
		t.Error("round trip with gap differs")
	}
}

func TestColorFlipAndChannelOrder(t *testing.T) {
	// 4x2: bottom row on disk is written first.
	var b bytes.Buffer
	fh := FileHeader{Type: TypeBM, Size: 54 + 24, Offset: 54}
	ih := InfoHeader{Size: 40, Width: 4, Height: 2, Planes: 1, Bits: 24, ImageSize: 24}
	binary.Write(&b, binary.LittleEndian, fh)
	binary.Write(&b, binary.LittleEndian, ih)
	// Disk row 0 = image row 1 (bottom): pixel (0,1) stored as B=1,G=2,R=3.
	b.Write([]byte{1, 2, 3})
	b.Write(make([]byte, 9))
	// Disk row 1 = image row 0 (top): pixel (0,0) stored as B=10,G=20,R=30.
	b.Write([]byte{10, 20, 30})
	b.Write(make([]byte, 9))

	c, err := DecodeColor(bytes.NewReader(b.Bytes()), int64(b.Len()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := c.Buf.At(0, 0); got != (raster.Pixel{R: 30, G: 20, B: 10}) {
		t.Errorf("top-left: got %+v", got)
	}
	if got := c.Buf.At(0, 1); got != (raster.Pixel{R: 3, G: 2, B: 1}) {
		t.Errorf("bottom-left: got %+v", got)
	}
}

func TestColorMatchesReferenceDecoder(t *testing.T) {
	src := encodeBytes(t, NewColor(gradientRGB(12, 7)))

	ours, err := Decode(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	ref, err := xbmp.Decode(bytes.NewReader(src))
	if err != nil {
		t.Fatalf("x/image/bmp decode: %v", err)
	}
	want := raster.RGBFromImage(ref)
	for i := range want.Pix {
		if ours.Color.Buf.Pix[i] != want.Pix[i] {
			t.Fatalf("pixel %d: got %+v, reference %+v", i, ours.Color.Buf.Pix[i], want.Pix[i])
		}
	}
}

func TestGrayRoundtripByteExact(t *testing.T) {
	src := encodeBytes(t, NewGray(gradientGray(8, 6)))
	in := writeFile(t, src)

	img, err := Load(in)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if img.Kind() != KindGray {
		t.Fatalf("kind: got %v, want grayscale", img.Kind())
	}
	info := img.Describe()
	if info.Width != 8 || info.Height != 6 || info.BitDepth != 8 || info.DataSize != 48 {
		t.Errorf("describe: got %+v", info)
	}

	out := filepath.Join(t.TempDir(), "out.bmp")
	if err := Save(img, out); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _ := os.ReadFile(out)
	if !bytes.Equal(got, src) {
		t.Fatal("8-bit round trip differs")
	}
}

// The 8-bit buffer keeps rows in file order, which for a conventional
// bottom-up file is vertically mirrored relative to a standard decoder.
func TestGrayKeepsFileRowOrder(t *testing.T) {
	buf := gradientGray(4, 3)
	src := encodeBytes(t, NewGray(buf))

	g, err := DecodeGray(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	ref, err := xbmp.Decode(bytes.NewReader(src))
	if err != nil {
		t.Fatalf("x/image/bmp decode: %v", err)
	}
	pal, ok := ref.(*image.Paletted)
	if !ok {
		t.Fatalf("reference decoder returned %T", ref)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if got, want := g.Buf.At(x, y), pal.ColorIndexAt(x, 2-y); got != want {
				t.Errorf("(%d,%d): got %d, reference mirrored %d", x, y, got, want)
			}
		}
	}
}

func TestGrayRejectsOtherDepthsThenColorLoads(t *testing.T) {
	src := encodeBytes(t, NewColor(gradientRGB(4, 4)))
	if _, err := DecodeGray(bytes.NewReader(src), int64(len(src))); !errors.Is(err, ErrFormat) {
		t.Errorf("DecodeGray on 24-bit: got %v, want ErrFormat", err)
	}
	img, err := Decode(bytes.NewReader(src), int64(len(src)))
	if err != nil || img.Kind() != KindColor {
		t.Fatalf("fallback: kind=%v err=%v", img.Kind(), err)
	}
}

func TestColorRejects(t *testing.T) {
	good := encodeBytes(t, NewColor(gradientRGB(4, 4)))

	cases := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"bad signature", func(b []byte) []byte { b[0] = 'X'; return b }},
		{"16-bit", func(b []byte) []byte { binary.LittleEndian.PutUint16(b[28:], 16); return b }},
		{"compressed", func(b []byte) []byte { binary.LittleEndian.PutUint32(b[30:], 1); return b }},
		{"top-down", func(b []byte) []byte { binary.LittleEndian.PutUint32(b[22:], uint32(0xFFFFFFFC)); return b }},
		{"truncated pixels", func(b []byte) []byte { return b[:len(b)-5] }},
		{"truncated header", func(b []byte) []byte { return b[:20] }},
		{"huge dimensions", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[18:], 0x7fffffff)
			binary.LittleEndian.PutUint32(b[22:], 0x7fffffff)
			return b[:headersLen]
		}},
		{"offset past end", func(b []byte) []byte { binary.LittleEndian.PutUint32(b[10:], 1<<20); return b }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := tc.mutate(append([]byte(nil), good...))
			img, err := Decode(bytes.NewReader(data), int64(len(data)))
			if !errors.Is(err, ErrFormat) {
				t.Errorf("got %v, want ErrFormat", err)
			}
			if img != nil {
				t.Error("partial image returned on failure")
			}
		})
	}
}

func TestLoadHugeDimensions(t *testing.T) {
	data := encodeBytes(t, NewColor(gradientRGB(4, 4)))[:headersLen]
	binary.LittleEndian.PutUint32(data[18:], 0x7fffffff)
	binary.LittleEndian.PutUint32(data[22:], 0x7fffffff)

	img, err := Load(writeFile(t, data))
	if !errors.Is(err, ErrFormat) || img != nil {
		t.Errorf("got %v, want ErrFormat", err)
	}
	// Without a known size the block is capped instead of checked.
	if _, err := DecodeColor(bytes.NewReader(data), -1); !errors.Is(err, ErrFormat) {
		t.Errorf("unsized: got %v, want ErrFormat", err)
	}
}

func TestGrayZeroDataSize(t *testing.T) {
	data := encodeBytes(t, NewGray(gradientGray(8, 8)))
	binary.LittleEndian.PutUint32(data[34:], 0)
	_, err := DecodeGray(bytes.NewReader(data), int64(len(data)))
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("got %v, want ErrFormat", err)
	}
	if !strings.Contains(err.Error(), "biSizeImage is 0") {
		t.Errorf("error does not name the zero size field: %v", err)
	}
}

func TestGrayTruncatedPixelData(t *testing.T) {
	src := encodeBytes(t, NewGray(gradientGray(8, 8)))
	data := src[:len(src)-10]
	if _, err := DecodeGray(bytes.NewReader(data), -1); !errors.Is(err, ErrFormat) {
		t.Errorf("got %v, want ErrFormat", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	img, err := Load(filepath.Join(t.TempDir(), "nope.bmp"))
	if !errors.Is(err, ErrIO) {
		t.Errorf("got %v, want ErrIO", err)
	}
	if img != nil {
		t.Error("image returned for missing file")
	}
}

func TestSaveUnwritablePath(t *testing.T) {
	img := NewColor(gradientRGB(4, 4))
	err := Save(img, filepath.Join(t.TempDir(), "missing-dir", "out.bmp"))
	if !errors.Is(err, ErrIO) {
		t.Errorf("got %v, want ErrIO", err)
	}
}

func BenchmarkDecodeColor(b *testing.B) {
	var buf bytes.Buffer
	if err := Encode(&buf, NewColor(gradientRGB(640, 480))); err != nil {
		b.Fatal(err)
	}
	data := buf.Bytes()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeColor(bytes.NewReader(data), int64(len(data))); err != nil {
			b.Fatal(err)
		}
	}
}
