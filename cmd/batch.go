package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"time"

	"github.com/AnyUserName/bmpfx-cli/internal/manifest"
	"github.com/AnyUserName/bmpfx-cli/internal/pipeline"
	"github.com/AnyUserName/bmpfx-cli/internal/session"
	"github.com/spf13/cobra"
)

var (
	batchOutDir  string
	batchFilter  string
	batchPreset  string
	batchWorkers int
)

var batchCmd = &cobra.Command{
	Use:   "batch <input_dir>",
	Short: "Apply a filter chain to every BMP in a directory",
	Long: `Scans the input directory for .bmp files, applies the filter chain to
each one in parallel and mirrors the results into the output directory.

A manifest (bmpfx.manifest.json) with per-file dimensions, sizes and
xxHash64 checksums is written next to the outputs.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "./bmpfx_out", "output directory")
	batchCmd.Flags().StringVarP(&batchFilter, "filter", "f", "", "filter chain")
	batchCmd.Flags().StringVarP(&batchPreset, "preset", "p", "", "named preset")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	// Resolve absolute paths.
	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(batchOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	steps, presetName, err := resolveChain(batchFilter, batchPreset)
	if err != nil {
		return err
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("chain:   %s", session.FormatChain(steps))

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	p := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Steps:     steps,
		Preset:    presetName,
		Workers:   batchWorkers,
		Verbose:   verbose,
	})

	m, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	manifestPath := filepath.Join(absOutput, manifest.FileName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printBatchReport(m, time.Since(start))
	return nil
}

func printBatchReport(m *manifest.Manifest, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("  bmpfx batch complete")
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Chain:       %s\n", m.Chain)
	if m.Preset != "" {
		fmt.Printf("  Preset:      %s\n", m.Preset)
	}
	fmt.Printf("  Files:       %d (%d grayscale, %d color)\n", s.Processed, s.Grayscale, s.Color)
	if s.Failed > 0 {
		fmt.Printf("  Failed:      %d\n", s.Failed)
	}
	fmt.Printf("  Input size:  %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(s.TotalOutputBytes))
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:     %d\n", m.BuildInfo.Workers)
	}
	fmt.Println()

	// Top 10 largest images.
	type fileSize struct {
		key string
		e   manifest.Entry
	}
	var items []fileSize
	for key, e := range m.Files {
		if !e.Failed() {
			items = append(items, fileSize{key, e})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].e.InputSize != items[j].e.InputSize {
			return items[i].e.InputSize > items[j].e.InputSize
		}
		return items[i].key < items[j].key
	})
	n := len(items)
	if n > 10 {
		n = 10
	}
	if n > 0 {
		fmt.Printf("  Top %d largest:\n", n)
		for _, it := range items[:n] {
			fmt.Printf("    %-40s %5dx%-5d %-9s %8s  %s\n",
				truncKey(it.key, 40), it.e.Width, it.e.Height, it.e.Kind,
				formatBytes(it.e.OutputSize), it.e.OutputHash)
		}
		fmt.Println()
	}

	data, _ := json.Marshal(m)
	fmt.Printf("  Manifest:    %s (%s)\n", manifest.FileName, formatBytes(int64(len(data))))
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
