/*package mat contains the small amount of dense linear algebra needed to
derive finite-difference coefficients: LU decomposition with scaled partial
pivoting and the corresponding solves.
*/
package mat

import (
	"fmt"
	"math"
)

// Matrix is a row-major Height x Width matrix.
type Matrix struct {
	Vals          []float64
	Width, Height int
}

// LUFactors holds the in-place LU decomposition of a square matrix along with
// its row permutation.
type LUFactors struct {
	lu    Matrix
	pivot []int
	d     float64
}

// NewMatrix wraps vals as a width x height matrix.
func NewMatrix(vals []float64, width, height int) *Matrix {
	if width <= 0 {
		panic("width must be positive.")
	} else if height <= 0 {
		panic("height must be positive.")
	} else if width*height != len(vals) {
		panic("height * width must equal len(vals).")
	}

	return &Matrix{Vals: vals, Width: width, Height: height}
}

// At returns the element in row i and column j.
func (m *Matrix) At(i, j int) float64 { return m.Vals[i*m.Width+j] }

// Set sets the element in row i and column j.
func (m *Matrix) Set(i, j int, v float64) { m.Vals[i*m.Width+j] = v }

// NewLUFactors allocates space for the factors of an n x n matrix.
func NewLUFactors(n int) *LUFactors {
	luf := new(LUFactors)

	luf.lu.Vals, luf.lu.Width, luf.lu.Height = make([]float64, n*n), n, n
	luf.pivot = make([]int, n)
	luf.d = 1

	return luf
}

// LU factors m. It returns an error if m is non-square or singular.
func (m *Matrix) LU() (*LUFactors, error) {
	if m.Width != m.Height {
		return nil, fmt.Errorf("Cannot factor a non-square %d x %d matrix.",
			m.Height, m.Width)
	}

	lu := NewLUFactors(m.Width)
	if err := m.LUFactorsAt(lu); err != nil {
		return nil, err
	}
	return lu, nil
}

// LUFactorsAt factors m into luf, which must have the same dimensions.
func (m *Matrix) LUFactorsAt(luf *LUFactors) error {
	if luf.lu.Width != m.Width || luf.lu.Height != m.Height {
		panic("luf has different dimensions than m.")
	}

	n := m.Width
	scale := make([]float64, n)
	lu := luf.lu.Vals
	luf.d = 1
	copy(lu, m.Vals)

	// Implicit scaling: remember the largest element of each row.
	for i := 0; i < n; i++ {
		max := 0.0
		for j := 0; j < n; j++ {
			if tmp := math.Abs(lu[i*n+j]); tmp > max {
				max = tmp
			}
		}
		if max == 0 {
			return fmt.Errorf("Matrix is singular: row %d is zero.", i)
		}
		scale[i] = 1 / max
	}

	for k := 0; k < n; k++ {
		max, maxi := 0.0, k
		for i := k; i < n; i++ {
			if tmp := scale[i] * math.Abs(lu[i*n+k]); tmp > max {
				max, maxi = tmp, i
			}
		}

		if k != maxi {
			for j := 0; j < n; j++ {
				lu[k*n+j], lu[maxi*n+j] = lu[maxi*n+j], lu[k*n+j]
			}
			luf.d = -luf.d
			scale[maxi] = scale[k]
		}
		luf.pivot[k] = maxi

		if lu[k*n+k] == 0 {
			return fmt.Errorf("Matrix is singular: zero pivot in column %d.", k)
		}

		for i := k + 1; i < n; i++ {
			lu[i*n+k] /= lu[k*n+k]
			tmp := lu[i*n+k]
			for j := k + 1; j < n; j++ {
				lu[i*n+j] -= tmp * lu[k*n+j]
			}
		}
	}
	return nil
}

// SolveVector solves M * xs = bs for xs.
//
// bs and xs may point to the same physical memory.
func (luf *LUFactors) SolveVector(bs, xs []float64) {
	n := luf.lu.Width
	if n != len(bs) {
		panic("len(bs) != luf.Width")
	} else if n != len(xs) {
		panic("len(xs) != luf.Width")
	}

	copy(xs, bs)
	lu := luf.lu.Vals

	// Solve L * y = b, undoing the row swaps as we go.
	for i := 0; i < n; i++ {
		piv := luf.pivot[i]
		sum := xs[piv]
		xs[piv] = xs[i]
		for j := 0; j < i; j++ {
			sum -= lu[i*n+j] * xs[j]
		}
		xs[i] = sum
	}

	// Solve U * x = y.
	for i := n - 1; i >= 0; i-- {
		sum := xs[i]
		for j := i + 1; j < n; j++ {
			sum -= lu[i*n+j] * xs[j]
		}
		xs[i] = sum / lu[i*n+i]
	}
}

// Determinant returns the determinant of the factored matrix.
func (luf *LUFactors) Determinant() float64 {
	d := luf.d
	n := luf.lu.Width
	for i := 0; i < n; i++ {
		d *= luf.lu.Vals[i*n+i]
	}
	return d
}
