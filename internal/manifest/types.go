package manifest

// Manifest is the top-level output of a bmpfx batch run.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Chain       string           `json:"chain"`
	Preset      string           `json:"preset,omitempty"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Files       map[string]Entry `json:"files"` // keyed by input path relative to the batch root
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures run-time parameters for diagnostics.
type BuildInfo struct {
	Workers int `json:"workers"`
}

// Entry describes one processed input file.
type Entry struct {
	Kind       string `json:"kind"` // "grayscale" or "color"
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	BitDepth   int    `json:"bit_depth"`
	InputSize  int64  `json:"input_size"`
	OutputSize int64  `json:"output_size"`
	InputHash  string `json:"input_hash,omitempty"`  // first 16 hex chars of xxhash64
	OutputHash string `json:"output_hash,omitempty"` // first 16 hex chars of xxhash64
	Path       string `json:"path,omitempty"`        // output, relative to the output dir
	Error      string `json:"error,omitempty"`
}

// Failed reports whether the entry records an error.
func (e Entry) Failed() bool { return e.Error != "" }

// Stats aggregates run metrics.
type Stats struct {
	TotalFiles       int   `json:"total_files"`
	Processed        int   `json:"processed"`
	Failed           int   `json:"failed"`
	Grayscale        int   `json:"grayscale"`
	Color            int   `json:"color"`
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1
