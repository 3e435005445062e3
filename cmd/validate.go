package cmd

import (
	"bytes"
	"fmt"
	"image"
	"os"

	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
	"github.com/spf13/cobra"
	xbmp "golang.org/x/image/bmp"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.bmp>...",
	Short: "Check that BMP files decode correctly and round-trip byte for byte",
	Long: `Loads each file with the bmpfx codec, re-encodes it and compares the
result against the original bytes. Files are also decoded with
golang.org/x/image/bmp and every pixel is compared.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		errs := validateBMP(data)
		if len(errs) == 0 {
			fmt.Printf("  ✓ %s\n", path)
			continue
		}
		failed++
		fmt.Printf("  ✗ %s has %d error(s):\n", path, len(errs))
		for _, e := range errs {
			fmt.Printf("    • %s\n", e)
		}
	}
	if failed > 0 {
		return fmt.Errorf("validation failed for %d of %d files", failed, len(args))
	}
	return nil
}

// validateBMP returns a description of every check data fails.
func validateBMP(data []byte) []string {
	img, err := bmp.Decode(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return []string{fmt.Sprintf("decode: %v", err)}
	}
	logVerbose("decoded %s image", img.Kind())

	var errs []string

	// Round trip.
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		errs = append(errs, fmt.Sprintf("encode: %v", err))
	} else if !bytes.Equal(buf.Bytes(), data) {
		errs = append(errs, fmt.Sprintf("round trip differs: %d bytes in, %d bytes out (first difference at %d)",
			len(data), buf.Len(), firstDiff(data, buf.Bytes())))
	}

	// Reference decoder.
	ref, err := xbmp.Decode(bytes.NewReader(data))
	if err != nil {
		logVerbose("reference decoder: %v", err)
		return append(errs, fmt.Sprintf("reference decoder rejected file: %v", err))
	}
	if n := comparePixels(img, ref); n > 0 {
		errs = append(errs, fmt.Sprintf("%d pixels differ from the reference decoder", n))
	}
	return errs
}

// comparePixels counts pixels where img disagrees with ref. Grayscale
// buffers keep file row order, so their rows are compared mirrored.
func comparePixels(img *bmp.Image, ref image.Image) int {
	b := ref.Bounds()
	diff := 0
	switch img.Kind() {
	case bmp.KindColor:
		buf := img.Color.Buf
		if b.Dx() != buf.Width || b.Dy() != buf.Height {
			return buf.Width * buf.Height
		}
		for y := 0; y < buf.Height; y++ {
			for x := 0; x < buf.Width; x++ {
				r, g, bl, _ := ref.At(b.Min.X+x, b.Min.Y+y).RGBA()
				p := buf.At(x, y)
				if uint8(r>>8) != p.R || uint8(g>>8) != p.G || uint8(bl>>8) != p.B {
					diff++
				}
			}
		}
	case bmp.KindGray:
		buf := img.Gray.Buf
		pal, ok := ref.(*image.Paletted)
		if !ok || b.Dx() != buf.Width || b.Dy() != buf.Height {
			return buf.Width * buf.Height
		}
		for y := 0; y < buf.Height; y++ {
			for x := 0; x < buf.Width; x++ {
				if pal.ColorIndexAt(b.Min.X+x, b.Min.Y+buf.Height-1-y) != buf.At(x, y) {
					diff++
				}
			}
		}
	}
	return diff
}

func firstDiff(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
