/*package stencil computes coefficients for staggered-grid first derivatives
and the time step restrictions they imply.

A staggered derivative of even order N with coefficients b_1 ... b_{N/2}
approximates

    df/dx (x + dx/2) ~= 1/dx * sum_k b_k * (f(x + k dx) - f(x - (k-1) dx))

so the fourth order stencil is the familiar 9/8, -1/24 pair.
*/
package stencil

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/phil-mansfield/fdwave/mat"
)

// MaxOrder is the highest order whose stencil fits inside the solver's
// default frozen border.
const MaxOrder = 8

// exact holds the rational coefficients for the orders used in practice, so
// that they do not pick up rounding error from the linear solve.
var exact = map[int][]float64{
	2: {1},
	4: {9.0 / 8.0, -1.0 / 24.0},
	6: {75.0 / 64.0, -25.0 / 384.0, 3.0 / 640.0},
	8: {1225.0 / 1024.0, -245.0 / 3072.0, 49.0 / 5120.0, -5.0 / 7168.0},
}

// Stencil is a staggered first derivative operator of a given order.
type Stencil struct {
	Order int
	B     []float64
}

// New returns the stencil of the given order.
func New(order int) (*Stencil, error) {
	b, err := Coefficients(order)
	if err != nil {
		return nil, err
	}
	return &Stencil{Order: order, B: b}, nil
}

// Reach is the number of cells the stencil extends on its far side.
func (s *Stencil) Reach() int { return len(s.B) }

// Scaled returns the coefficients divided by the grid spacing h.
func (s *Stencil) Scaled(h float64) []float64 {
	out := make([]float64, len(s.B))
	for i, b := range s.B {
		out[i] = b / h
	}
	return out
}

// Coefficients returns b_1 ... b_{order/2} for the staggered first
// derivative of the given even order.
func Coefficients(order int) ([]float64, error) {
	if b, ok := exact[order]; ok {
		out := make([]float64, len(b))
		copy(out, b)
		return out, nil
	}
	return Taylor(order)
}

// Taylor solves for the coefficients of an order-N staggered stencil by
// matching Taylor expansions:
//
//     sum_k b_k (2k-1)           = 1
//     sum_k b_k (2k-1)^(2j-1)    = 0,   j = 2 ... N/2
func Taylor(order int) ([]float64, error) {
	if order < 2 || order%2 != 0 {
		return nil, fmt.Errorf(
			"Stencil order must be a positive multiple of 2, but is %d.", order,
		)
	}

	n := order / 2
	M := mat.NewMatrix(make([]float64, n*n), n, n)
	for j := 1; j <= n; j++ {
		for k := 1; k <= n; k++ {
			M.Set(j-1, k-1, math.Pow(float64(2*k-1), float64(2*j-1)))
		}
	}

	luf, err := M.LU()
	if err != nil {
		return nil, fmt.Errorf("Could not solve for order %d stencil: %s",
			order, err.Error())
	}

	c := make([]float64, n)
	c[0] = 1
	b := make([]float64, n)
	luf.SolveVector(c, b)
	return b, nil
}

// LeapfrogCFLLimit returns the largest stable Courant number for second
// order leapfrog time stepping combined with a spatial stencil b, in dims
// spatial dimensions. The amplification factor is sampled over wave numbers
// theta in [0, 2 pi) with a step of 0.01.
func LeapfrogCFLLimit(b []float64, dims int) float64 {
	sum := 0.0
	for _, bk := range b {
		sum += math.Abs(bk)
	}

	max := math.Inf(-1)
	for i := 0; 0.01*float64(i) < 2*math.Pi; i++ {
		z := cmplx.Exp(complex(0, -0.01*float64(i)))
		f := -1i * (cmplx.Pow(z, 2.5) - cmplx.Pow(z, 1.5))
		if r := real(f) / (2 * sum); r > max {
			max = r
		}
	}

	return max / math.Sqrt(float64(dims))
}
