package preset

import (
	"sort"

	"github.com/AnyUserName/bmpfx-cli/internal/session"
)

// Preset is a named filter chain.
type Preset struct {
	Name        string
	Description string
	Chain       string // session.ParseChain syntax
}

// Built-in presets.
var presets = map[string]Preset{
	"soften": {
		Name:        "soften",
		Description: "gaussian blur",
		Chain:       "gaussian-blur",
	},
	"crisp": {
		Name:        "crisp",
		Description: "sharpen",
		Chain:       "sharpen",
	},
	"contrast": {
		Name:        "contrast",
		Description: "histogram equalization",
		Chain:       "equalize",
	},
	"relief": {
		Name:        "relief",
		Description: "emboss after a contrast stretch",
		Chain:       "equalize,emboss",
	},
	"sketch": {
		Name:        "sketch",
		Description: "dark outlines on white",
		Chain:       "gaussian-blur,outline,negative",
	},
}

// Get returns a preset by name.
func Get(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// Names lists the built-in presets in sorted order.
func Names() []string {
	out := make([]string, 0, len(presets))
	for n := range presets {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Steps parses the preset's chain.
func (p Preset) Steps() ([]session.Step, error) {
	return session.ParseChain(p.Chain)
}
