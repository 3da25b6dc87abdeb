package io

import (
	"fmt"
	"math"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/fdwave/fdtd"
	"github.com/phil-mansfield/fdwave/model"
	"github.com/phil-mansfield/fdwave/render"
)

const (
	ExampleRunFile = `[Simulation]

#######################
# Required Parameters #
#######################

# Number of grid points along each axis.
NX = 200
NY = 200

# Propagation time in seconds.
T = 1

# Grid spacing is chosen so that the shortest wavelength, cmin / (2 * F0), is
# sampled by PointsPerWavelength cells.
PointsPerWavelength = 20

# Courant number. The time step is dx / cmax * CFL. The fourth order scheme
# is unstable above roughly 0.606 in two dimensions.
CFL = 0.5

#######################
# Optional Parameters #
#######################

# Spatial order of the staggered derivative. Must be one of [2 | 4 | 6 | 8].
# Order = 4

# Drop the last sample of the time axis. Older runs did this.
# TrimTimeAxis = false

# Refuse to run if any of the parameters look unstable or unphysical, rather
# than logging a warning.
# Strict = false

[Source]

# Peak frequency of the Ricker wavelet in Hz, and its amplitude.
F0 = 5
Q0 = 1

# Grid cell which the source is injected into.
X = 100
Y = 100

[Model]

# Kind must be one of [ Uniform | Layered | Perlin | Table ].
Kind = Uniform

# Velocity in m/s and density in g/cm^3. For Layered models Velocity is the
# velocity above LayerRow, and for Perlin models it is the background.
Velocity = 3000
Density = 2.2

#######################
# Optional Parameters #
#######################

# Layered models: velocity at and below LayerRow.
# BottomVelocity = 4000
# LayerRow = 100

# Perlin models: fractional amplitude of the noise, the number of noise
# periods per cell and the seed.
# PerlinAmplitude = 0.1
# PerlinScale = 0.05
# PerlinSeed = 1

# Table models: whitespace separated text files with NY rows and NX columns.
# DensityFile is optional and Density is used if it is not given.
# VelocityFile = path/to/velocity.txt
# DensityFile = path/to/density.txt

[Receiver]

# The receiver records the pressure at a single cell after every step. It is
# disabled unless both X and Y are set.
# X = 130
# Y = 100

# Two column text file of times and pressures.
# Output = trace.txt
# Matplotlib plot of the trace.
# Plot = trace.png
# Print the trace to the console.
# ASCII = false

[Output]

# The final pressure field. The format is taken from the extension, which must
# be one of [ .bmp | .png | .jpg ].
Image = out.bmp

#######################
# Optional Parameters #
#######################

# Colormap must be one of [ Gray | Viridis | Inferno | Magma | Plasma |
# Turbo | RdBu ].
# Colormap = Gray

# Binary dump of the final pressure and velocity fields.
# Snapshot = out.grid

# Matplotlib plot of the source wavelet and its spectrum.
# SourcePlot = source.png

# Number of steps between progress messages. Zero turns them off.
# ProgressEvery = 50

# Output files which are useful for profiling and debugging.
# ProfileFile = prof.out
# LogFile = log.out`
)

type SimulationConfig struct {
	// Required
	NX, NY                      int
	T, PointsPerWavelength, CFL float64

	// Optional
	Order int
	TrimTimeAxis, Strict bool
}

func (con *SimulationConfig) ValidNX() bool { return con.NX > 0 }
func (con *SimulationConfig) ValidNY() bool { return con.NY > 0 }
func (con *SimulationConfig) ValidT() bool  { return positive(con.T) }
func (con *SimulationConfig) ValidPointsPerWavelength() bool {
	return positive(con.PointsPerWavelength)
}
func (con *SimulationConfig) ValidCFL() bool {
	return con.CFL > 0 && con.CFL < 1
}
func (con *SimulationConfig) ValidOrder() bool {
	return con.Order > 0 && con.Order%2 == 0 && con.Order <= 8
}

type SourceConfig struct {
	F0, Q0 float64
	X, Y   int
}

func (con *SourceConfig) ValidF0() bool { return positive(con.F0) }
func (con *SourceConfig) ValidQ0() bool {
	return !math.IsNaN(con.Q0) && !math.IsInf(con.Q0, 0)
}

type ModelConfig struct {
	// Required
	Kind              string
	Velocity, Density float64

	// Optional
	BottomVelocity            float64
	LayerRow                  int
	PerlinAmplitude           float64
	PerlinScale               float64
	PerlinSeed                int64
	VelocityFile, DensityFile string
}

func (con *ModelConfig) ValidKind() bool {
	_, ok := model.KindFromString(con.Kind)
	return ok
}
func (con *ModelConfig) ValidVelocity() bool { return positive(con.Velocity) }
func (con *ModelConfig) ValidDensity() bool  { return positive(con.Density) }
func (con *ModelConfig) ValidBottomVelocity() bool {
	return positive(con.BottomVelocity)
}
func (con *ModelConfig) ValidPerlinAmplitude() bool {
	return con.PerlinAmplitude >= 0 && con.PerlinAmplitude < 1
}
func (con *ModelConfig) ValidPerlinScale() bool {
	return positive(con.PerlinScale)
}
func (con *ModelConfig) ValidVelocityFile() bool { return con.VelocityFile != "" }
func (con *ModelConfig) ValidDensityFile() bool  { return con.DensityFile != "" }

type ReceiverConfig struct {
	X, Y         int
	Output, Plot string
	ASCII        bool
}

// ValidPosition returns true if the receiver is enabled.
func (con *ReceiverConfig) ValidPosition() bool {
	return con.X >= 0 && con.Y >= 0
}
func (con *ReceiverConfig) ValidOutput() bool { return con.Output != "" }
func (con *ReceiverConfig) ValidPlot() bool   { return con.Plot != "" }

type OutputConfig struct {
	// Required
	Image string

	// Optional
	Colormap, Snapshot, SourcePlot string
	ProgressEvery                  int
	LogFile, ProfileFile           string
}

func (con *OutputConfig) ValidImage() bool { return con.Image != "" }
func (con *OutputConfig) ValidColormap() bool {
	_, err := render.ColormapFromString(con.Colormap)
	return err == nil
}
func (con *OutputConfig) ValidSnapshot() bool      { return con.Snapshot != "" }
func (con *OutputConfig) ValidSourcePlot() bool    { return con.SourcePlot != "" }
func (con *OutputConfig) ValidProgressEvery() bool { return con.ProgressEvery >= 0 }
func (con *OutputConfig) ValidLogFile() bool       { return con.LogFile != "" }
func (con *OutputConfig) ValidProfileFile() bool   { return con.ProfileFile != "" }

type RunWrapper struct {
	Simulation SimulationConfig
	Source     SourceConfig
	Model      ModelConfig
	Receiver   ReceiverConfig
	Output     OutputConfig
}

// DefaultRunWrapper returns the reference run: a 200 x 200 grid of a uniform
// 3000 m/s medium, excited at its center by a 5 Hz Ricker wavelet for one
// second.
func DefaultRunWrapper() *RunWrapper {
	wrap := &RunWrapper{}

	sim := &wrap.Simulation
	sim.NX, sim.NY = 200, 200
	sim.T = 1
	sim.PointsPerWavelength = 20
	sim.CFL = 0.5
	sim.Order = 4

	src := &wrap.Source
	src.F0, src.Q0 = 5, 1
	src.X, src.Y = 100, 100

	mod := &wrap.Model
	mod.Kind = "Uniform"
	mod.Velocity = model.ReferenceVelocity
	mod.Density = model.ReferenceDensity
	mod.BottomVelocity = 4000
	mod.LayerRow = -1
	mod.PerlinAmplitude = 0.1
	mod.PerlinScale = 0.05
	mod.PerlinSeed = 1

	wrap.Receiver.X, wrap.Receiver.Y = -1, -1

	out := &wrap.Output
	out.Image = "out.bmp"
	out.Colormap = "Gray"
	out.ProgressEvery = 50

	return wrap
}

// ReadRunConfig reads a run configuration file on top of the default run and
// checks it.
func ReadRunConfig(fname string) (*RunWrapper, error) {
	wrap := DefaultRunWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.Check(); err != nil {
		return nil, fmt.Errorf("Config file '%s': %s", fname, err.Error())
	}
	return wrap, nil
}

// ReadRunString is ReadRunConfig for a configuration held in memory.
func ReadRunString(str string) (*RunWrapper, error) {
	wrap := DefaultRunWrapper()
	if err := gcfg.ReadStringInto(wrap, str); err != nil {
		return nil, err
	}
	if err := wrap.Check(); err != nil {
		return nil, err
	}
	return wrap, nil
}

// Check returns an error describing the first invalid value in the
// configuration. It only checks values in isolation: stability and the
// position of the source relative to the grid border are checked by
// fdtd.Discretization.Check and fdtd.NewEngine.
func (wrap *RunWrapper) Check() error {
	sim, src := &wrap.Simulation, &wrap.Source
	mod, rec, out := &wrap.Model, &wrap.Receiver, &wrap.Output

	switch {
	case !sim.ValidNX():
		return fmt.Errorf("Invalid/non-existent 'NX' value, %d.", sim.NX)
	case !sim.ValidNY():
		return fmt.Errorf("Invalid/non-existent 'NY' value, %d.", sim.NY)
	case !sim.ValidT():
		return fmt.Errorf("Invalid/non-existent 'T' value, %g.", sim.T)
	case !sim.ValidPointsPerWavelength():
		return fmt.Errorf(
			"Invalid/non-existent 'PointsPerWavelength' value, %g.",
			sim.PointsPerWavelength,
		)
	case !sim.ValidCFL():
		return fmt.Errorf(
			"'CFL' must be in the range (0, 1), but is %g.", sim.CFL,
		)
	case !sim.ValidOrder():
		return fmt.Errorf(
			"'Order' must be one of [2 | 4 | 6 | 8], but is %d.", sim.Order,
		)
	case !src.ValidF0():
		return fmt.Errorf("Invalid/non-existent 'F0' value, %g.", src.F0)
	case !src.ValidQ0():
		return fmt.Errorf("Invalid 'Q0' value, %g.", src.Q0)
	case src.X < 0 || src.X >= sim.NX || src.Y < 0 || src.Y >= sim.NY:
		return fmt.Errorf(
			"Source position (X = %d, Y = %d) is outside the %d x %d grid.",
			src.X, src.Y, sim.NX, sim.NY,
		)
	case !mod.ValidKind():
		return fmt.Errorf(
			"Model 'Kind' is '%s', but must be one of "+
				"[ Uniform | Layered | Perlin | Table ].", mod.Kind,
		)
	case !mod.ValidVelocity() && mod.kind() != model.Table:
		return fmt.Errorf("Invalid/non-existent 'Velocity' value, %g.",
			mod.Velocity)
	case !mod.ValidDensity() && !mod.ValidDensityFile():
		return fmt.Errorf("Invalid/non-existent 'Density' value, %g.",
			mod.Density)
	case !out.ValidImage():
		return fmt.Errorf("Invalid/non-existent 'Image' value.")
	case !out.ValidColormap():
		_, err := render.ColormapFromString(out.Colormap)
		return err
	case !out.ValidProgressEvery():
		return fmt.Errorf("'ProgressEvery' must be non-negative, but is %d.",
			out.ProgressEvery)
	case (rec.ValidOutput() || rec.ValidPlot() || rec.ASCII) &&
		!rec.ValidPosition():
		return fmt.Errorf("Receiver output is requested, but the receiver " +
			"'X' and 'Y' values are not set.")
	case rec.ValidPosition() && (rec.X >= sim.NX || rec.Y >= sim.NY):
		return fmt.Errorf(
			"Receiver position (X = %d, Y = %d) is outside the %d x %d grid.",
			rec.X, rec.Y, sim.NX, sim.NY,
		)
	}

	switch mod.kind() {
	case model.Layered:
		if !mod.ValidBottomVelocity() {
			return fmt.Errorf("Invalid 'BottomVelocity' value, %g.",
				mod.BottomVelocity)
		}
	case model.Perlin:
		if !mod.ValidPerlinAmplitude() {
			return fmt.Errorf(
				"'PerlinAmplitude' must be in the range [0, 1), but is %g.",
				mod.PerlinAmplitude,
			)
		} else if !mod.ValidPerlinScale() {
			return fmt.Errorf("Invalid 'PerlinScale' value, %g.",
				mod.PerlinScale)
		}
	case model.Table:
		if !mod.ValidVelocityFile() {
			return fmt.Errorf("Table models need a 'VelocityFile' value.")
		}
	}

	return nil
}

func (con *ModelConfig) kind() model.Kind {
	k, _ := model.KindFromString(con.Kind)
	return k
}

// Physical returns the physical parameters of the run.
func (wrap *RunWrapper) Physical() *fdtd.Physical {
	sim := &wrap.Simulation
	return &fdtd.Physical{
		PointsPerWavelength: sim.PointsPerWavelength,
		CFL:                 sim.CFL,
		NX:                  sim.NX,
		NY:                  sim.NY,
		T:                   sim.T,
		F0:                  wrap.Source.F0,
		TrimTimeAxis:        sim.TrimTimeAxis,
	}
}

// Medium builds the velocity and density models described by the [Model]
// section.
func (wrap *RunWrapper) Medium() (*fdtd.Medium, error) {
	ny, nx := wrap.Simulation.NY, wrap.Simulation.NX
	mod := &wrap.Model

	k, ok := model.KindFromString(mod.Kind)
	if !ok {
		return nil, fmt.Errorf("Model 'Kind' '%s' is not recognized.", mod.Kind)
	}

	var err error
	rho := model.NewUniform(ny, nx, mod.Density)
	if mod.ValidDensityFile() {
		if rho, err = ReadGridTable(mod.DensityFile, ny, nx); err != nil {
			return nil, err
		} else if err = model.CheckPositive("density", rho); err != nil {
			return nil, err
		}
	}

	switch k {
	case model.Uniform:
		return fdtd.NewMedium(model.NewUniform(ny, nx, mod.Velocity), rho)
	case model.Layered:
		row := mod.LayerRow
		if row < 0 {
			row = ny / 2
		}
		v := model.NewLayered(ny, nx, mod.Velocity, mod.BottomVelocity, row)
		return fdtd.NewMedium(v, rho)
	case model.Perlin:
		v := model.NewPerlin(ny, nx, model.PerlinParams{
			Background: mod.Velocity,
			Amplitude:  mod.PerlinAmplitude,
			Scale:      mod.PerlinScale,
			Seed:       mod.PerlinSeed,
		})
		return fdtd.NewMedium(v, rho)
	case model.Table:
		v, err := ReadGridTable(mod.VelocityFile, ny, nx)
		if err != nil {
			return nil, err
		} else if err = model.CheckPositive("velocity", v); err != nil {
			return nil, err
		}
		return fdtd.NewMedium(v, rho)
	}
	panic("Impossible")
}

// Colormap returns the colormap named in the [Output] section.
func (wrap *RunWrapper) Colormap() render.Colormap {
	cm, err := render.ColormapFromString(wrap.Output.Colormap)
	if err != nil {
		panic(err.Error())
	}
	return cm
}

// ReceiverCell returns the receiver cell, or nil if there is no receiver.
func (wrap *RunWrapper) ReceiverCell() *fdtd.Cell {
	rec := &wrap.Receiver
	if !rec.ValidPosition() {
		return nil
	}
	return &fdtd.Cell{Y: rec.Y, X: rec.X}
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}
