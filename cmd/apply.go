package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AnyUserName/bmpfx-cli/internal/preset"
	"github.com/AnyUserName/bmpfx-cli/internal/session"
	"github.com/spf13/cobra"
)

var (
	applyFilter string
	applyPreset string
)

var applyCmd = &cobra.Command{
	Use:   "apply <input.bmp> <output.bmp>",
	Short: "Apply a filter chain to one image",
	Long: `Loads an 8-bit or 24-bit BMP, runs the filter chain over it and saves
the result. The output keeps the input's headers, palette and bit depth.`,
	Args: cobra.ExactArgs(2),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&applyFilter, "filter", "f", "", "filter chain, e.g. \"negative,brightness=20\"")
	applyCmd.Flags().StringVarP(&applyPreset, "preset", "p", "", "named preset ("+strings.Join(preset.Names(), ", ")+")")
	rootCmd.AddCommand(applyCmd)
}

func runApply(_ *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	start := time.Now()

	steps, _, err := resolveChain(applyFilter, applyPreset)
	if err != nil {
		return err
	}

	s := session.New(nil)
	if err := s.Load(in); err != nil {
		return err
	}
	logVerbose("loaded %s (%s)", in, s.Kind())

	if err := s.ApplyChain(steps); err != nil {
		return err
	}
	if err := s.Save(out); err != nil {
		return err
	}

	fmt.Printf("  %s -> %s  [%s]  %s\n", in, out, session.FormatChain(steps),
		time.Since(start).Round(time.Millisecond))
	return nil
}

// resolveChain turns --filter / --preset into steps. It returns the preset
// name when one was used.
func resolveChain(filter, presetName string) ([]session.Step, string, error) {
	switch {
	case filter != "" && presetName != "":
		return nil, "", errors.New("use either --filter or --preset, not both")
	case presetName != "":
		p, ok := preset.Get(presetName)
		if !ok {
			return nil, "", fmt.Errorf("unknown preset %q (have: %s)", presetName, strings.Join(preset.Names(), ", "))
		}
		steps, err := p.Steps()
		if err != nil {
			return nil, "", fmt.Errorf("preset %s: %w", p.Name, err)
		}
		logVerbose("preset:  %s (%s)", p.Name, p.Chain)
		return steps, p.Name, nil
	case filter != "":
		steps, err := session.ParseChain(filter)
		return steps, "", err
	default:
		return nil, "", errors.New("no filters given: pass --filter or --preset")
	}
}
