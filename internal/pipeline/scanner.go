package pipeline

import (
	"os"
	"path/filepath"
	"strings"
)

// Source represents a discovered BMP file.
type Source struct {
	// AbsPath is the path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the input directory, slash separated.
	RelPath string
	// Size is the file size in bytes.
	Size int64
}

// ScanBMP walks the input directory and returns every .bmp file, in
// lexical order. Hidden directories are skipped, as is skipDir when it is
// non-empty and lies inside inputDir.
func ScanBMP(inputDir, skipDir string) ([]Source, error) {
	var sources []Source
	if skipDir != "" {
		skipDir = filepath.Clean(skipDir)
	}

	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != inputDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			if path != inputDir && skipDir != "" && filepath.Clean(path) == skipDir {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.EqualFold(filepath.Ext(path), ".bmp") {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}

		sources = append(sources, Source{
			AbsPath: path,
			RelPath: filepath.ToSlash(relPath),
			Size:    info.Size(),
		})
		return nil
	})

	return sources, err
}
