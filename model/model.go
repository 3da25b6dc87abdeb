/*package model builds the time-invariant material grids of a simulation:
P-wave velocity and density.
*/
package model

import (
	"fmt"
	"strings"

	"github.com/aquilax/go-perlin"

	"github.com/phil-mansfield/fdwave/grid"
)

// Kind identifies how a material grid is generated.
type Kind int

const (
	Uniform Kind = iota
	Layered
	Perlin
	Table
	EndKind
)

var kindNames = []string{"Uniform", "Layered", "Perlin", "Table"}

func (k Kind) String() string {
	if k < 0 || k >= EndKind {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// KindFromString returns the Kind with the given (case-insensitive) name.
func KindFromString(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k := Kind(0); k < EndKind; k++ {
		if strings.ToLower(k.String()) == s {
			return k, true
		}
	}
	return EndKind, false
}

// Reference values for a homogeneous crustal rock.
const (
	ReferenceVelocity = 3000.0
	ReferenceDensity  = 2.2
)

// NewUniform returns an ny x nx grid with value v everywhere.
func NewUniform(ny, nx int, v float64) *grid.Grid { return grid.Full(ny, nx, v) }

// NewLayered returns a grid which is top in rows [0, row) and bottom in rows
// [row, ny).
func NewLayered(ny, nx int, top, bottom float64, row int) *grid.Grid {
	g := grid.New(ny, nx)
	for y := 0; y < ny; y++ {
		v := bottom
		if y < row {
			v = top
		}
		for x := 0; x < nx; x++ {
			g.Vals[g.Idx(y, x)] = v
		}
	}
	return g
}

// PerlinParams controls a noise-perturbed grid.
type PerlinParams struct {
	// Background is the mean value and Amplitude the relative perturbation,
	// so values lie roughly in Background * (1 +/- Amplitude).
	Background, Amplitude float64
	// Scale is the noise frequency in cycles per cell.
	Scale float64
	Seed  int64
}

// NewPerlin returns a grid filled with Perlin noise around a background
// value.
func NewPerlin(ny, nx int, p PerlinParams) *grid.Grid {
	noise := perlin.NewPerlin(2, 2, 3, p.Seed)
	g := grid.New(ny, nx)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			n := noise.Noise2D(float64(x)*p.Scale, float64(y)*p.Scale)
			g.Vals[g.Idx(y, x)] = p.Background * (1 + p.Amplitude*n)
		}
	}
	return g
}

// Lame returns the first Lame parameter, rho * v^2, of each cell.
func Lame(rho, v *grid.Grid) (*grid.Grid, error) {
	l, err := grid.Product(rho, v, v)
	if err != nil {
		return nil, fmt.Errorf("Could not compute Lame parameter: %s", err.Error())
	}
	return l, nil
}

// CheckPositive returns an error naming the first cell of g which is not a
// strictly positive finite number.
func CheckPositive(name string, g *grid.Grid) error {
	for i, v := range g.Vals {
		if !(v > 0) || v > 1e300 {
			return fmt.Errorf(
				"%s must be positive and finite, but cell (%d, %d) is %g.",
				name, i/g.NX, i%g.NX, v,
			)
		}
	}
	return nil
}
