package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "bmpfx",
	Short: "Load, filter and save uncompressed BMP images",
	Long: `bmpfx reads and writes 8-bit grayscale and 24-bit color BMP files and
applies pixel filters to them: negative, brightness, threshold, grayscale,
3x3 convolutions (box blur, gaussian blur, sharpen, outline, emboss) and
histogram equalization.

Filters are given as a chain, e.g. --filter "grayscale,brightness=-20,sharpen",
or by preset name.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"bmpfx %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[bmpfx] "+format+"\n", args...)
	}
}
