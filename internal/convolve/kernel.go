package convolve

import (
	"errors"
	"fmt"
	"sort"
)

// ErrKernelShape is returned for kernels that are not square with an odd side.
var ErrKernelShape = errors.New("convolve: kernel must be square with an odd side")

// Kernel is a square weight matrix with an odd side length. The zero
// Kernel is invalid and applying it is a no-op.
type Kernel struct {
	side    int
	weights []float64 // row-major, side*side
}

// NewKernel builds a kernel from rows of weights.
func NewKernel(rows [][]float64) (Kernel, error) {
	n := len(rows)
	if n == 0 || n%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: side %d", ErrKernelShape, n)
	}
	w := make([]float64, 0, n*n)
	for i, r := range rows {
		if len(r) != n {
			return Kernel{}, fmt.Errorf("%w: row %d has %d weights, want %d", ErrKernelShape, i, len(r), n)
		}
		w = append(w, r...)
	}
	return Kernel{side: n, weights: w}, nil
}

func mustKernel(rows [][]float64) Kernel {
	k, err := NewKernel(rows)
	if err != nil {
		panic(err)
	}
	return k
}

// Side returns the side length, 2*Half()+1.
func (k Kernel) Side() int { return k.side }

// Half returns the kernel radius.
func (k Kernel) Half() int { return k.side / 2 }

// At returns the weight at row r, column c.
func (k Kernel) At(r, c int) float64 { return k.weights[r*k.side+c] }

func (k Kernel) valid() bool { return k.side%2 == 1 && len(k.weights) == k.side*k.side }

// Named 3×3 kernels. The weights are used exactly as written.
var (
	BoxBlur = mustKernel([][]float64{
		{1.0 / 9, 1.0 / 9, 1.0 / 9},
		{1.0 / 9, 1.0 / 9, 1.0 / 9},
		{1.0 / 9, 1.0 / 9, 1.0 / 9},
	})
	GaussianBlur = mustKernel([][]float64{
		{1.0 / 16, 2.0 / 16, 1.0 / 16},
		{2.0 / 16, 4.0 / 16, 2.0 / 16},
		{1.0 / 16, 2.0 / 16, 1.0 / 16},
	})
	Sharpen = mustKernel([][]float64{
		{0, -1, 0},
		{-1, 5, -1},
		{0, -1, 0},
	})
	Outline = mustKernel([][]float64{
		{-1, -1, -1},
		{-1, 8, -1},
		{-1, -1, -1},
	})
	Emboss = mustKernel([][]float64{
		{-1, 1, 1},
		{-2, -1, 0},
		{0, 1, 2},
	})
)

var catalog = map[string]Kernel{
	"box-blur":      BoxBlur,
	"gaussian-blur": GaussianBlur,
	"sharpen":       Sharpen,
	"outline":       Outline,
	"emboss":        Emboss,
}

// Named looks up a catalog kernel by name.
func Named(name string) (Kernel, bool) {
	k, ok := catalog[name]
	return k, ok
}

// Names lists the catalog in sorted order.
func Names() []string {
	out := make([]string, 0, len(catalog))
	for n := range catalog {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
