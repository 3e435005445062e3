// Package session holds at most one loaded image and dispatches filters
// to it. A Session is owned by a single caller; it is not safe for
// concurrent use.
package session

import (
	"errors"
	"fmt"

	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
)

var (
	ErrNoImage           = errors.New("no image loaded")
	ErrUnknownFilter     = errors.New("unknown filter")
	ErrUnsupportedFilter = errors.New("filter not supported for this image")
	ErrMissingValue      = errors.New("filter needs a value")
)

// Params carries the numeric argument of brightness and threshold.
type Params struct {
	Value    int
	HasValue bool
}

// WithValue returns Params holding v.
func WithValue(v int) Params {
	return Params{Value: v, HasValue: true}
}

// Session is the single-image workspace driven by the CLI.
type Session struct {
	img      *bmp.Image
	path     string
	registry *Registry
}

// New creates an empty session. A nil registry gets the built-in filters.
func New(r *Registry) *Session {
	if r == nil {
		r = NewRegistry()
	}
	return &Session{registry: r}
}

// Registry returns the filters this session dispatches to.
func (s *Session) Registry() *Registry { return s.registry }

// Load replaces the current image with the one at path. On failure the
// previous image, if any, stays loaded.
func (s *Session) Load(path string) error {
	img, err := bmp.Load(path)
	if err != nil {
		return err
	}
	s.img = img
	s.path = path
	return nil
}

// Save writes the current image to path.
func (s *Session) Save(path string) error {
	if s.img == nil {
		return ErrNoImage
	}
	return bmp.Save(s.img, path)
}

// Apply runs the filter id on the current image.
func (s *Session) Apply(id string, p Params) error {
	if s.img == nil {
		return ErrNoImage
	}
	f := s.registry.Get(id)
	if f == nil {
		return fmt.Errorf("%w: %q", ErrUnknownFilter, id)
	}
	return f.Apply(s.img, p)
}

// ApplyChain runs steps in order, stopping at the first failure. Steps
// are validated up front so a bad chain leaves the image untouched.
func (s *Session) ApplyChain(steps []Step) error {
	if s.img == nil {
		return ErrNoImage
	}
	k := s.img.Kind()
	for _, st := range steps {
		f := s.registry.Get(st.ID)
		if f == nil {
			return fmt.Errorf("%w: %q", ErrUnknownFilter, st.ID)
		}
		if !f.Supports(k) {
			return fmt.Errorf("%w: %s on %s image", ErrUnsupportedFilter, f.ID, k)
		}
		if f.NeedsValue(k) && !st.Params.HasValue {
			return fmt.Errorf("%w: %s", ErrMissingValue, f.ID)
		}
	}
	for _, st := range steps {
		if err := s.Apply(st.ID, st.Params); err != nil {
			return fmt.Errorf("%s: %w", st, err)
		}
	}
	return nil
}

// Describe returns the dimensions and depth of the current image.
func (s *Session) Describe() (bmp.Info, error) {
	if s.img == nil {
		return bmp.Info{}, ErrNoImage
	}
	return s.img.Describe(), nil
}

// Kind reports which image variant is loaded.
func (s *Session) Kind() bmp.Kind { return s.img.Kind() }

// Image returns the loaded image, or nil.
func (s *Session) Image() *bmp.Image { return s.img }

// Path returns the path the current image was loaded from.
func (s *Session) Path() string { return s.path }

// Close discards the current image.
func (s *Session) Close() {
	s.img = nil
	s.path = ""
}
