package fdtd

import (
	"fmt"

	"github.com/phil-mansfield/fdwave/grid"
	"github.com/phil-mansfield/fdwave/model"
)

// Medium contains the material grids of a run. They are not modified by the
// solver.
type Medium struct {
	Velocity, Density, Lame *grid.Grid
}

// NewMedium checks that velocity and density are aligned and computes the
// Lame parameter.
func NewMedium(velocity, density *grid.Grid) (*Medium, error) {
	if !velocity.SameShape(density) {
		return nil, fmt.Errorf(
			"Velocity grid is %d x %d, but density grid is %d x %d.",
			velocity.NY, velocity.NX, density.NY, density.NX,
		)
	}
	l, err := model.Lame(density, velocity)
	if err != nil {
		return nil, err
	}
	return &Medium{Velocity: velocity, Density: density, Lame: l}, nil
}

// NY returns the number of rows in the medium.
func (m *Medium) NY() int { return m.Velocity.NY }

// NX returns the number of columns in the medium.
func (m *Medium) NX() int { return m.Velocity.NX }

// Fields are the wave fields advanced by the solver.
type Fields struct {
	Vx, Vy, P *grid.Grid
}

// NewFields returns zeroed fields of size ny x nx.
func NewFields(ny, nx int) *Fields {
	return &Fields{Vx: grid.New(ny, nx), Vy: grid.New(ny, nx), P: grid.New(ny, nx)}
}
