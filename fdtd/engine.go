package fdtd

import (
	"fmt"

	"github.com/phil-mansfield/fdwave/grid"
	"github.com/phil-mansfield/fdwave/stencil"
)

// Border widths of the frozen region at the low and high edge of each axis.
// Cells outside [BorderLow, n - BorderHigh) are never updated.
const (
	BorderLow  = 5
	BorderHigh = 4
)

// Cell is a grid location.
type Cell struct {
	Y, X int
}

// Config describes everything about a run other than the medium and the
// discretization.
type Config struct {
	// Stencil is the spatial derivative operator. Fourth order if nil.
	Stencil *stencil.Stencil
	// Region is the set of cells updated by the stencil. If nil, the default
	// frozen border is used.
	Region *grid.Region

	Source Cell
	// Signal holds one source sample per time step. Its length sets the
	// number of steps.
	Signal []float64

	// Receiver, if non-nil, records the pressure at a single cell after each
	// step.
	Receiver *Cell
}

// Engine advances the wave fields through time.
type Engine struct {
	med    *Medium
	f      *Fields
	disc   Discretization
	st     *stencil.Stencil
	region grid.Region

	// Scaled derivative coefficients for each axis.
	cx, cy []float64

	src    Cell
	signal []float64

	rec   *Cell
	trace []float64

	step int

	// Progress, if non-nil, is called after every ProgressEvery steps.
	Progress      func(n, nt int)
	ProgressEvery int
}

// NewEngine sets up a run. It returns an error if the source or receiver lies
// outside the grid or if the update region leaves no room for the stencil.
func NewEngine(med *Medium, disc Discretization, con *Config) (*Engine, error) {
	ny, nx := med.NY(), med.NX()

	st := con.Stencil
	if st == nil {
		var err error
		if st, err = stencil.New(4); err != nil {
			panic("Impossible")
		}
	}

	region := grid.Interior(ny, nx, BorderLow, BorderHigh)
	if con.Region != nil {
		region = *con.Region
	}
	if err := checkRegion(region, ny, nx, st.Reach()); err != nil {
		return nil, err
	}

	if !med.Density.Contains(con.Source.Y, con.Source.X) {
		return nil, fmt.Errorf(
			"Source position (%d, %d) is outside the %d x %d grid.",
			con.Source.Y, con.Source.X, ny, nx,
		)
	}
	if con.Receiver != nil &&
		!med.Density.Contains(con.Receiver.Y, con.Receiver.X) {
		return nil, fmt.Errorf(
			"Receiver position (%d, %d) is outside the %d x %d grid.",
			con.Receiver.Y, con.Receiver.X, ny, nx,
		)
	}

	e := &Engine{
		med: med, f: NewFields(ny, nx), disc: disc, st: st, region: region,
		cx: st.Scaled(disc.Dx), cy: st.Scaled(disc.Dy),
		src: con.Source, signal: con.Signal,
		rec: con.Receiver,
	}
	if e.rec != nil {
		e.trace = make([]float64, 0, len(e.signal))
	}
	return e, nil
}

// checkRegion makes sure that every stencil read from inside the region stays
// inside the grid. Empty regions are allowed: they make the run a no-op.
func checkRegion(r grid.Region, ny, nx, reach int) error {
	if r.Empty() {
		return nil
	}
	if r.Y0 < reach || r.X0 < reach || r.Y1 > ny-reach || r.X1 > nx-reach {
		return fmt.Errorf(
			"Update region [%d, %d) x [%d, %d) of a %d x %d grid leaves no "+
				"room for a stencil which reaches %d cells.",
			r.Y0, r.Y1, r.X0, r.X1, ny, nx, reach,
		)
	}
	return nil
}

// Fields returns the current wave fields.
func (e *Engine) Fields() *Fields { return e.f }

// Region returns the set of cells updated by the stencil.
func (e *Engine) Region() grid.Region { return e.region }

// Steps returns the number of steps which have been taken.
func (e *Engine) Steps() int { return e.step }

// Nt returns the total number of steps in the run.
func (e *Engine) Nt() int { return len(e.signal) }

// Trace returns the pressure recorded at the receiver so far, or nil if
// there is no receiver.
func (e *Engine) Trace() []float64 { return e.trace }

// Step advances the fields by one time step: the velocities are updated from
// the pressure gradient, the source sample is added to the pressure and then
// the pressure is updated from the velocity divergence. It returns false once
// every source sample has been used.
func (e *Engine) Step() bool {
	if e.step >= len(e.signal) {
		return false
	}

	e.updateVelocity()
	e.f.P.Add(e.src.Y, e.src.X, e.signal[e.step])
	e.updatePressure()

	if e.rec != nil {
		e.trace = append(e.trace, e.f.P.At(e.rec.Y, e.rec.X))
	}

	e.step++
	return true
}

// Run takes every remaining step and returns the final pressure field.
func (e *Engine) Run() *grid.Grid {
	nt := len(e.signal)
	for e.Step() {
		if e.Progress != nil && e.ProgressEvery > 0 &&
			(e.step%e.ProgressEvery == 0 || e.step == nt) {
			e.Progress(e.step, nt)
		}
	}
	return e.f.P
}

// updateVelocity applies the forward staggered derivative of the pressure:
// vx[i] -= dt/rho * sum_k cx_k (p[x+k] - p[x-k+1]), and likewise for vy.
func (e *Engine) updateVelocity() {
	r := e.region
	if r.Empty() {
		return
	}

	nx, dt := e.f.P.NX, e.disc.Dt
	p, vx, vy := e.f.P.Vals, e.f.Vx.Vals, e.f.Vy.Vals
	rho := e.med.Density.Vals

	for y := r.Y0; y < r.Y1; y++ {
		for x := r.X0; x < r.X1; x++ {
			i := x + y*nx

			px, py := 0.0, 0.0
			for k := 1; k <= len(e.cx); k++ {
				px += e.cx[k-1] * (p[i+k] - p[i-k+1])
				py += e.cy[k-1] * (p[i+k*nx] - p[i-(k-1)*nx])
			}

			vx[i] -= dt / rho[i] * px
			vy[i] -= dt / rho[i] * py
		}
	}
}

// updatePressure applies the backward staggered divergence of the velocity:
// p[i] -= lambda dt (sum_k cx_k (vx[x+k-1] - vx[x-k]) + sum_k cy_k (...)).
func (e *Engine) updatePressure() {
	r := e.region
	if r.Empty() {
		return
	}

	nx, dt := e.f.P.NX, e.disc.Dt
	p, vx, vy := e.f.P.Vals, e.f.Vx.Vals, e.f.Vy.Vals
	lame := e.med.Lame.Vals

	for y := r.Y0; y < r.Y1; y++ {
		for x := r.X0; x < r.X1; x++ {
			i := x + y*nx

			vxx, vyy := 0.0, 0.0
			for k := 1; k <= len(e.cx); k++ {
				vxx += e.cx[k-1] * (vx[i+k-1] - vx[i-k])
				vyy += e.cy[k-1] * (vy[i+(k-1)*nx] - vy[i-k*nx])
			}

			p[i] -= lame[i] * dt * (vxx + vyy)
		}
	}
}
