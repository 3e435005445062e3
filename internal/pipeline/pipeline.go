// Package pipeline applies one filter chain to every BMP under a directory.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/AnyUserName/bmpfx-cli/internal/manifest"
	"github.com/AnyUserName/bmpfx-cli/internal/session"
)

// Config holds all parameters for a batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Steps     []session.Step
	Preset    string // recorded in the manifest when the chain came from a preset
	Workers   int
	Verbose   bool
}

// Pipeline orchestrates batch processing.
type Pipeline struct {
	cfg      Config
	registry *session.Registry
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Pipeline{
		cfg:      cfg,
		registry: session.NewRegistry(),
	}
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[bmpfx] "+format+"\n", args...)
	}
}

// Run processes every source and returns the manifest. Files that fail are
// recorded in the manifest with their error; Run itself fails only when
// nothing succeeded or ctx was canceled.
func (p *Pipeline) Run(ctx context.Context) (*manifest.Manifest, error) {
	if len(p.cfg.Steps) == 0 {
		return nil, errors.New("empty filter chain")
	}
	for _, st := range p.cfg.Steps {
		if p.registry.Get(st.ID) == nil {
			return nil, fmt.Errorf("%w: %q", session.ErrUnknownFilter, st.ID)
		}
	}
	p.logf("%s", p.registry.String())

	// Step 1: Scan for images.
	sources, err := ScanBMP(p.cfg.InputDir, p.nestedOutputDir())
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no .bmp files found in %s", p.cfg.InputDir)
	}
	p.logf("found %d images", len(sources))

	// Step 2: Process images in parallel. Each image stays on one goroutine.
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

schedule:
	for i, src := range sources {
		select {
		case <-ctx.Done():
			break schedule
		case sem <- struct{}{}: // acquire
		}

		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			defer func() { <-sem }() // release

			p.logf("processing: %s", s.RelPath)
			results[idx] = processImage(s, p.cfg, p.registry)
			if results[idx].err == nil {
				p.logf("done: %s (%s %dx%d)", s.RelPath,
					results[idx].entry.Kind, results[idx].entry.Width, results[idx].entry.Height)
			}
		}(i, src)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch interrupted: %w", err)
	}

	// Step 3: Collect results into the manifest.
	m := manifest.New(session.FormatChain(p.cfg.Steps))
	m.Preset = p.cfg.Preset

	var failed int
	for _, r := range results {
		m.Files[r.key] = r.entry
		if r.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "[bmpfx] error: %v\n", r.err)
		}
	}

	// Report errors but don't fail the entire batch for partial failures.
	if failed > 0 {
		if failed == len(sources) {
			return nil, fmt.Errorf("all %d images failed to process", failed)
		}
		fmt.Fprintf(os.Stderr, "[bmpfx] warning: %d of %d images had errors\n",
			failed, len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{Workers: p.cfg.Workers}
	m.ComputeStats()
	return m, nil
}

// nestedOutputDir returns the output directory when it sits inside the
// input directory, so earlier outputs are not picked up as inputs.
func (p *Pipeline) nestedOutputDir() string {
	rel, err := filepath.Rel(p.cfg.InputDir, p.cfg.OutputDir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.Join(p.cfg.InputDir, rel)
}
