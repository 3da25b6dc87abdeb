/*package grid provides the dense two dimensional grids that every field and
material parameter of a simulation is stored in, along with the handful of
array utilities the solver needs.

Grids are row-major: the cell (y, x) lives at Vals[x + y*NX].
*/
package grid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Grid is a fixed-shape NY x NX grid of float64 values.
type Grid struct {
	Vals   []float64
	NY, NX int
}

// New returns a zero-filled grid with the given shape.
func New(ny, nx int) *Grid {
	if ny <= 0 {
		panic("ny must be positive.")
	} else if nx <= 0 {
		panic("nx must be positive.")
	}
	return &Grid{Vals: make([]float64, ny*nx), NY: ny, NX: nx}
}

// Full returns a grid with every cell set to v.
func Full(ny, nx int, v float64) *Grid {
	g := New(ny, nx)
	for i := range g.Vals {
		g.Vals[i] = v
	}
	return g
}

// FromVals wraps vals as an ny x nx grid. vals is not copied.
func FromVals(vals []float64, ny, nx int) (*Grid, error) {
	if ny <= 0 || nx <= 0 {
		return nil, fmt.Errorf("Grid shape %d x %d is not positive.", ny, nx)
	} else if ny*nx != len(vals) {
		return nil, fmt.Errorf(
			"Grid shape %d x %d needs %d values, but %d were given.",
			ny, nx, ny*nx, len(vals),
		)
	}
	return &Grid{Vals: vals, NY: ny, NX: nx}, nil
}

// Idx returns the index into Vals of the cell (y, x).
func (g *Grid) Idx(y, x int) int { return x + y*g.NX }

// Contains returns true if (y, x) is a cell of the grid.
func (g *Grid) Contains(y, x int) bool {
	return y >= 0 && y < g.NY && x >= 0 && x < g.NX
}

// At returns the value at (y, x). Out-of-range coordinates panic.
func (g *Grid) At(y, x int) float64 {
	if !g.Contains(y, x) {
		panic(fmt.Sprintf("(%d, %d) is outside a %d x %d grid.",
			y, x, g.NY, g.NX))
	}
	return g.Vals[g.Idx(y, x)]
}

// AtCheck returns the value at (y, x) and true, or false if (y, x) lies
// outside the grid.
func (g *Grid) AtCheck(y, x int) (float64, bool) {
	if !g.Contains(y, x) {
		return 0, false
	}
	return g.Vals[g.Idx(y, x)], true
}

// Set sets the value at (y, x).
func (g *Grid) Set(y, x int, v float64) {
	if !g.Contains(y, x) {
		panic(fmt.Sprintf("(%d, %d) is outside a %d x %d grid.",
			y, x, g.NY, g.NX))
	}
	g.Vals[g.Idx(y, x)] = v
}

// Add adds v to the value at (y, x).
func (g *Grid) Add(y, x int, v float64) {
	if !g.Contains(y, x) {
		panic(fmt.Sprintf("(%d, %d) is outside a %d x %d grid.",
			y, x, g.NY, g.NX))
	}
	g.Vals[g.Idx(y, x)] += v
}

// SameShape returns true if g and h have identical dimensions.
func (g *Grid) SameShape(h *Grid) bool { return g.NY == h.NY && g.NX == h.NX }

// Copy returns a deep copy of g.
func (g *Grid) Copy() *Grid {
	h := &Grid{Vals: make([]float64, len(g.Vals)), NY: g.NY, NX: g.NX}
	copy(h.Vals, g.Vals)
	return h
}

// Scale multiplies every cell by c in place and returns g.
func (g *Grid) Scale(c float64) *Grid {
	floats.Scale(c, g.Vals)
	return g
}

// Offset adds c to every cell in place and returns g.
func (g *Grid) Offset(c float64) *Grid {
	floats.AddConst(c, g.Vals)
	return g
}

// Mul multiplies g elementwise by h in place.
func (g *Grid) Mul(h *Grid) error {
	if !g.SameShape(h) {
		return fmt.Errorf("Cannot multiply a %d x %d grid by a %d x %d grid.",
			g.NY, g.NX, h.NY, h.NX)
	}
	floats.Mul(g.Vals, h.Vals)
	return nil
}

// Product returns the elementwise product of all the given grids as a new
// grid. At least one grid is required.
func Product(gs ...*Grid) (*Grid, error) {
	if len(gs) == 0 {
		return nil, fmt.Errorf("Product requires at least one grid.")
	}
	out := gs[0].Copy()
	for _, g := range gs[1:] {
		if err := out.Mul(g); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Min returns the smallest value in g.
func (g *Grid) Min() float64 { return floats.Min(g.Vals) }

// Max returns the largest value in g.
func (g *Grid) Max() float64 { return floats.Max(g.Vals) }

// Equal returns true if g and h have the same shape and bit-identical values.
func (g *Grid) Equal(h *Grid) bool {
	return g.SameShape(h) && floats.Equal(g.Vals, h.Vals)
}
