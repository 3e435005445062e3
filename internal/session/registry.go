package session

import (
	"fmt"
	"strings"

	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
	"github.com/AnyUserName/bmpfx-cli/internal/convolve"
	"github.com/AnyUserName/bmpfx-cli/internal/equalize"
	"github.com/AnyUserName/bmpfx-cli/internal/pointops"
	"github.com/AnyUserName/bmpfx-cli/internal/raster"
)

// Filter is one selectable transform. A nil Gray or Color func means the
// filter does not support that image kind.
type Filter struct {
	ID          string
	Description string

	Gray  func(g *raster.Gray, value int)
	Color func(c *raster.RGB, value int)

	// GrayValue and ColorValue mark the variants that read Params.Value.
	GrayValue  bool
	ColorValue bool
}

// Supports reports whether f can run on images of kind k.
func (f *Filter) Supports(k bmp.Kind) bool {
	switch k {
	case bmp.KindGray:
		return f.Gray != nil
	case bmp.KindColor:
		return f.Color != nil
	default:
		return false
	}
}

// NeedsValue reports whether running f on kind k requires Params.Value.
func (f *Filter) NeedsValue(k bmp.Kind) bool {
	if k == bmp.KindGray {
		return f.GrayValue
	}
	return f.ColorValue
}

// Apply runs f on img.
func (f *Filter) Apply(img *bmp.Image, p Params) error {
	k := img.Kind()
	if !f.Supports(k) {
		return fmt.Errorf("%w: %s on %s image", ErrUnsupportedFilter, f.ID, k)
	}
	if f.NeedsValue(k) && !p.HasValue {
		return fmt.Errorf("%w: %s", ErrMissingValue, f.ID)
	}
	switch k {
	case bmp.KindGray:
		f.Gray(img.Gray.Buf, p.Value)
	case bmp.KindColor:
		f.Color(img.Color.Buf, p.Value)
	}
	return nil
}

// menuOrder is the presentation order used by the shell and help text.
var menuOrder = []string{
	"negative", "brightness", "bw", "box-blur", "gaussian-blur",
	"sharpen", "outline", "emboss", "equalize", "threshold", "grayscale",
}

// Registry holds every known filter by ID.
type Registry struct {
	filters map[string]*Filter
}

// NewRegistry creates a registry with the built-in filters.
func NewRegistry() *Registry {
	r := &Registry{filters: make(map[string]*Filter)}

	all := []*Filter{
		{
			ID:          "negative",
			Description: "invert every channel",
			Gray:        func(g *raster.Gray, _ int) { pointops.NegativeGray(g) },
			Color:       func(c *raster.RGB, _ int) { pointops.NegativeRGB(c) },
		},
		{
			ID:          "brightness",
			Description: "add a delta to every channel (value: -255..255)",
			Gray:        pointops.BrightnessGray,
			Color:       pointops.BrightnessRGB,
			GrayValue:   true,
			ColorValue:  true,
		},
		{
			ID:          "threshold",
			Description: "binarize at a threshold (value: 0..255), grayscale only",
			Gray:        pointops.Threshold,
			GrayValue:   true,
		},
		{
			ID:          "grayscale",
			Description: "average the three channels, color only",
			Color:       func(c *raster.RGB, _ int) { pointops.Grayscale(c) },
		},
		{
			ID:          "bw",
			Description: "black and white: threshold for grayscale, grayscale for color",
			Gray:        pointops.Threshold,
			Color:       func(c *raster.RGB, _ int) { pointops.Grayscale(c) },
			GrayValue:   true,
		},
		{
			ID:          "equalize",
			Description: "histogram equalization (luminance only for color)",
			Gray:        func(g *raster.Gray, _ int) { equalize.Gray(g) },
			Color:       func(c *raster.RGB, _ int) { equalize.RGB(c) },
		},
	}
	for _, name := range convolve.Names() {
		k, _ := convolve.Named(name)
		all = append(all, &Filter{
			ID:          name,
			Description: "3x3 " + strings.ReplaceAll(name, "-", " ") + " kernel",
			Gray:        func(g *raster.Gray, _ int) { convolve.ApplyGray(g, k) },
			Color:       func(c *raster.RGB, _ int) { convolve.ApplyRGB(c, k) },
		})
	}

	for _, f := range all {
		r.filters[f.ID] = f
	}
	return r
}

// Get returns the filter with the given ID, or nil.
func (r *Registry) Get(id string) *Filter {
	return r.filters[strings.ToLower(strings.TrimSpace(id))]
}

// List returns all filters in menu order.
func (r *Registry) List() []*Filter {
	out := make([]*Filter, 0, len(r.filters))
	for _, id := range menuOrder {
		if f, ok := r.filters[id]; ok {
			out = append(out, f)
		}
	}
	return out
}

// menuCovered maps a filter ID to the menu entry that already runs it.
// Covered filters stay reachable through Get but are left out of For.
var menuCovered = map[string]string{
	"threshold": "bw",
	"grayscale": "bw",
}

// For returns the menu entries usable on images of kind k, in menu order.
// A filter is omitted when the entry covering it supports k too.
func (r *Registry) For(k bmp.Kind) []*Filter {
	var out []*Filter
	for _, f := range r.List() {
		if !f.Supports(k) {
			continue
		}
		if by, ok := r.filters[menuCovered[f.ID]]; ok && by.Supports(k) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// String returns a summary of registered filters.
func (r *Registry) String() string {
	ids := make([]string, 0, len(r.filters))
	for _, f := range r.List() {
		ids = append(ids, f.ID)
	}
	return fmt.Sprintf("filters: %s", strings.Join(ids, ", "))
}
