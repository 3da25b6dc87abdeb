package grid

import (
	"math"
)

// Region is a half-open rectangle of cells, [Y0, Y1) x [X0, X1).
type Region struct {
	Y0, Y1, X0, X1 int
}

// Interior returns the region of an ny x nx grid which excludes lo cells at
// the low edge of each axis and hi cells at the high edge. The solver's
// frozen border is Interior(ny, nx, 5, 4), i.e. [5, n-4).
func Interior(ny, nx, lo, hi int) Region {
	return Region{Y0: lo, Y1: ny - hi, X0: lo, X1: nx - hi}
}

// Empty returns true if the region contains no cells.
func (r Region) Empty() bool { return r.Y1 <= r.Y0 || r.X1 <= r.X0 }

// Contains returns true if (y, x) is inside the region.
func (r Region) Contains(y, x int) bool {
	return y >= r.Y0 && y < r.Y1 && x >= r.X0 && x < r.X1
}

// Cells returns the number of cells in the region.
func (r Region) Cells() int {
	if r.Empty() {
		return 0
	}
	return (r.Y1 - r.Y0) * (r.X1 - r.X0)
}

// Arange returns the values start, start + step, ... which are strictly
// less than stop. Values are computed as start + i*step rather than by
// accumulation, and the count is ceil((stop - start) / step), matching
// numpy.arange.
func Arange(start, stop, step float64) []float64 {
	if step <= 0 || !(stop > start) {
		return []float64{}
	}
	n := int(math.Ceil((stop - start) / step))
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = start + float64(i)*step
	}
	return xs
}

// ArangeTrimmed is Arange with its final sample removed. Older runs of the
// solver generated their time axis this way, so it is kept for reproducing
// them.
func ArangeTrimmed(start, stop, step float64) []float64 {
	xs := Arange(start, stop, step)
	if len(xs) == 0 {
		return xs
	}
	return xs[:len(xs)-1]
}
