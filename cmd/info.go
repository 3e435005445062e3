package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
	"github.com/AnyUserName/bmpfx-cli/internal/hasher"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.bmp>",
	Short: "Print dimensions, bit depth and checksum of a BMP",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(_ *cobra.Command, args []string) error {
	img, err := bmp.Load(args[0])
	if err != nil {
		return err
	}
	sum, err := hasher.ImageHash(img, 16)
	if err != nil {
		return fmt.Errorf("hash: %w", err)
	}
	printInfo(os.Stdout, img.Describe(), img.Kind(), sum)
	return nil
}

func printInfo(w io.Writer, info bmp.Info, kind bmp.Kind, sum string) {
	fmt.Fprintln(w, "Image Info:")
	fmt.Fprintf(w, "Width: %d\n", info.Width)
	fmt.Fprintf(w, "Height: %d\n", info.Height)
	fmt.Fprintf(w, "Color Depth: %d\n", info.BitDepth)
	fmt.Fprintf(w, "Data Size: %d\n", info.DataSize)
	fmt.Fprintf(w, "Kind: %s\n", kind)
	if sum != "" {
		fmt.Fprintf(w, "xxHash64: %s\n", sum)
	}
}
