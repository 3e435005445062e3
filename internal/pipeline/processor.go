package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/bmpfx-cli/internal/hasher"
	"github.com/AnyUserName/bmpfx-cli/internal/manifest"
	"github.com/AnyUserName/bmpfx-cli/internal/session"
)

// hashLen is the number of hex characters recorded per hash.
const hashLen = 16

// processResult holds the result of processing a single source file.
type processResult struct {
	key   string
	entry manifest.Entry
	err   error
}

// processImage handles a single source file: load, filter, save, hash.
// The session and its image never leave the calling goroutine.
func processImage(src Source, cfg Config, registry *session.Registry) processResult {
	result := processResult{key: src.RelPath}
	result.entry.InputSize = src.Size

	fail := func(err error) processResult {
		result.err = err
		result.entry.Error = err.Error()
		return result
	}

	f, err := os.Open(src.AbsPath)
	if err != nil {
		return fail(fmt.Errorf("open %s: %w", src.RelPath, err))
	}
	inHash, err := hasher.ContentHashReader(f, hashLen)
	f.Close()
	if err != nil {
		return fail(fmt.Errorf("hash %s: %w", src.RelPath, err))
	}
	result.entry.InputHash = inHash

	s := session.New(registry)
	defer s.Close()

	if err := s.Load(src.AbsPath); err != nil {
		return fail(err)
	}
	info, _ := s.Describe()
	result.entry.Kind = s.Kind().String()
	result.entry.Width = info.Width
	result.entry.Height = info.Height
	result.entry.BitDepth = info.BitDepth

	if err := s.ApplyChain(cfg.Steps); err != nil {
		return fail(fmt.Errorf("filter %s: %w", src.RelPath, err))
	}

	outPath := filepath.Join(cfg.OutputDir, filepath.FromSlash(src.RelPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fail(fmt.Errorf("mkdir for %s: %w", src.RelPath, err))
	}
	if err := s.Save(outPath); err != nil {
		return fail(err)
	}

	outHash, err := hasher.ImageHash(s.Image(), hashLen)
	if err != nil {
		return fail(fmt.Errorf("hash output %s: %w", src.RelPath, err))
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return fail(fmt.Errorf("stat %s: %w", outPath, err))
	}

	result.entry.OutputHash = outHash
	result.entry.OutputSize = st.Size()
	result.entry.Path = src.RelPath
	return result
}
