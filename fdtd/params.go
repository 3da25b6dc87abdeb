/*package fdtd implements a two dimensional acoustic finite-difference
time-domain solver on a staggered grid.

Velocities and pressure are offset by half a cell and half a time step and
advanced with a leapfrog scheme: second order in time and, by default, fourth
order in space.
*/
package fdtd

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/fdwave/grid"
	"github.com/phil-mansfield/fdwave/stencil"
)

// Physical holds the inputs from which the discretization is derived.
type Physical struct {
	// PointsPerWavelength is the number of grid points per dominant
	// wavelength.
	PointsPerWavelength float64
	// CFL is the Courant number. It must lie in (0, 1) for the scheme to be
	// stable, but this is not enforced here.
	CFL    float64
	NX, NY int
	// T is the total propagation time in seconds.
	T float64
	// F0 is the dominant source frequency in Hz.
	F0 float64
	// TrimTimeAxis drops the last sample of the time axis, reproducing runs
	// made before the time axis followed numpy.arange.
	TrimTimeAxis bool
}

// Discretization is the set of grid and time step parameters of a run. It is
// computed once and never changes.
type Discretization struct {
	Cmin, Cmax float64
	Fmax       float64
	Dx, Dy, Dt float64
	// LambdaMin is the shortest wavelength that must be resolved.
	LambdaMin float64
	Nt        int
}

// GridSpacing returns the spatial step needed to resolve the maximum
// frequency, 2 f0, with ppw points per wavelength at velocity cmin.
func GridSpacing(cmin, f0, ppw float64) float64 {
	return cmin / (2 * f0 * ppw)
}

// TimeStep returns the time step for a Courant number of cfl.
func TimeStep(dx, cmax, cfl float64) float64 {
	return dx / cmax * cfl
}

// TimeAxis returns the sample times of a run of length T.
func TimeAxis(T, dt float64, trim bool) []float64 {
	if trim {
		return grid.ArangeTrimmed(0, T, dt)
	}
	return grid.Arange(0, T, dt)
}

// Derive computes the discretization of a run over the given velocity model.
// Bad inputs are not rejected: they show up as non-finite values, which
// Check reports.
func Derive(phys *Physical, velocity *grid.Grid) Discretization {
	d := Discretization{}
	d.Cmin, d.Cmax = velocity.Min(), velocity.Max()
	d.Fmax = 2 * phys.F0
	d.Dx = GridSpacing(d.Cmin, phys.F0, phys.PointsPerWavelength)
	d.Dy = d.Dx
	d.Dt = TimeStep(d.Dx, d.Cmax, phys.CFL)
	d.LambdaMin = d.Cmin / d.Fmax
	if d.Dt > 0 && !math.IsInf(d.Dt, 0) {
		d.Nt = len(TimeAxis(phys.T, d.Dt, phys.TrimTimeAxis))
	}
	return d
}

// PointsPerWavelength returns the number of grid points per minimum
// wavelength actually achieved.
func (d *Discretization) PointsPerWavelength() float64 {
	return d.LambdaMin / d.Dx
}

// Check returns a description of every parameter which makes the run
// unstable or meaningless. An empty result means the run is sound.
func (d *Discretization) Check(phys *Physical, st *stencil.Stencil) []string {
	problems := []string{}
	positive := func(name string, x float64) {
		if !(x > 0) || math.IsInf(x, 0) {
			problems = append(problems,
				fmt.Sprintf("%s must be positive and finite, but is %g.", name, x))
		}
	}

	positive("Minimum velocity", d.Cmin)
	positive("Maximum velocity", d.Cmax)
	positive("Source frequency", phys.F0)
	positive("Grid spacing", d.Dx)
	positive("Time step", d.Dt)

	if !(phys.CFL > 0 && phys.CFL < 1) {
		problems = append(problems,
			fmt.Sprintf("CFL must be in range (0, 1), but is %g.", phys.CFL))
	} else if limit := stencil.LeapfrogCFLLimit(st.B, 2); phys.CFL > limit {
		problems = append(problems, fmt.Sprintf(
			"CFL of %g exceeds the stability limit of %.4f for order %d.",
			phys.CFL, limit, st.Order,
		))
	}

	if d.Nt == 0 {
		problems = append(problems, "Run has no time steps.")
	}

	return problems
}
