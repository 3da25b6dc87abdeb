package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/phil-mansfield/fdwave/fdtd"
	"github.com/phil-mansfield/fdwave/io"
	"github.com/phil-mansfield/fdwave/plot"
	"github.com/phil-mansfield/fdwave/render"
	"github.com/phil-mansfield/fdwave/source"
	"github.com/phil-mansfield/fdwave/stencil"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	var (
		run, exampleConfig string
		logFile, profFile  string
	)
	vars := map[string]*string{
		"Run":           &run,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&run, "Run", "", "Configuration file for [Run] mode.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. The only accepted argument is 'Run'.",
	)
	flag.StringVar(
		&logFile, "Log", "", "Log file. Overrides the 'LogFile' value.",
	)
	flag.StringVar(
		&profFile, "PProf", "",
		"CPU profile file. Overrides the 'ProfileFile' value.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Run":
		wrap, err := io.ReadRunConfig(run)
		if err != nil {
			log.Fatal(err.Error())
		}
		if logFile != "" {
			wrap.Output.LogFile = logFile
		}
		if profFile != "" {
			wrap.Output.ProfileFile = profFile
		}

		fg := setupIO(&wrap.Output)
		runMain(wrap)
		fg.Close()

	case "ExampleConfig":
		switch exampleConfig {
		case "Run":
			fmt.Println(io.ExampleRunFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. The only recognized " +
					"argument is 'Run'.",
			)
		}
	default:
		panic("Impossible")
	}
}

func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but fdwave "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// setupIO redirects the log and starts the CPU profile requested by con.
func setupIO(con *io.OutputConfig) *FileGroup {
	var err error
	fg := new(FileGroup)

	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(fg.log)
	}

	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		err = pprof.StartCPUProfile(fg.prof)
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	return fg
}

func runMain(wrap *io.RunWrapper) {
	sim, src := &wrap.Simulation, &wrap.Source
	rec, out := &wrap.Receiver, &wrap.Output

	phys := wrap.Physical()
	med, err := wrap.Medium()
	if err != nil {
		log.Fatal(err.Error())
	}
	st, err := stencil.New(sim.Order)
	if err != nil {
		log.Fatal(err.Error())
	}
	disc := fdtd.Derive(phys, med.Velocity)

	echoParameters(phys, &disc, st)

	for _, problem := range disc.Check(phys, st) {
		if sim.Strict {
			log.Fatal(problem)
		}
		log.Printf("Warning: %s", problem)
	}
	if disc.Nt == 0 {
		log.Fatal("The run has no time steps.")
	}

	ts := fdtd.TimeAxis(phys.T, disc.Dt, phys.TrimTimeAxis)
	sig := source.RickerSignal(ts, phys.F0, src.Q0)

	e, err := fdtd.NewEngine(med, disc, &fdtd.Config{
		Stencil:  st,
		Source:   fdtd.Cell{Y: src.Y, X: src.X},
		Signal:   sig,
		Receiver: wrap.ReceiverCell(),
	})
	if err != nil {
		log.Fatal(err.Error())
	}
	e.ProgressEvery = out.ProgressEvery
	e.Progress = func(n, nt int) { log.Printf("Step %d of %d", n, nt) }

	t0 := time.Now()
	p := e.Run()
	log.Printf("Took %d steps in %.3g s.", e.Steps(), time.Since(t0).Seconds())

	if err := render.Write(out.Image, p, wrap.Colormap()); err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("Wrote pressure field to '%s'.", out.Image)

	if out.ValidSnapshot() {
		if err := io.WriteSnapshotFile(out.Snapshot, e, disc); err != nil {
			log.Fatal(err.Error())
		}
	}

	plotted := false
	if out.ValidSourcePlot() {
		if err := plot.PlotSource(out.SourcePlot, ts, sig, phys.F0); err != nil {
			log.Fatal(err.Error())
		}
		plotted = true
	}

	if trace := e.Trace(); trace != nil {
		if rec.ValidOutput() {
			writeTrace(rec.Output, ts, trace)
		}
		if rec.ValidPlot() {
			err := plot.PlotTrace(rec.Plot, ts, trace, rec.Y, rec.X)
			if err != nil {
				log.Fatal(err.Error())
			}
			plotted = true
		}
		if rec.ASCII {
			fmt.Println(plot.ASCII(
				trace, fmt.Sprintf("Pressure at (y, x) = (%d, %d)", rec.Y, rec.X),
			))
		}
	}

	if plotted {
		plot.Execute()
	}
}

func echoParameters(
	phys *fdtd.Physical, disc *fdtd.Discretization, st *stencil.Stencil,
) {
	log.Printf("Model size: x = %g m, y = %g m",
		float64(phys.NX)*disc.Dx, float64(phys.NY)*disc.Dy)
	log.Printf("Grid: %d x %d cells, dx = %g m, dy = %g m",
		phys.NY, phys.NX, disc.Dx, disc.Dy)
	log.Printf("Velocity: min = %g m/s, max = %g m/s", disc.Cmin, disc.Cmax)
	log.Printf("Time step: dt = %g s, %d steps", disc.Dt, disc.Nt)
	log.Printf("Points per minimum wavelength: %g", disc.PointsPerWavelength())
	log.Printf("Spatial order %d, CFL = %g (limit %.3g)",
		st.Order, phys.CFL, stencil.LeapfrogCFLLimit(st.B, 2))
}

func writeTrace(fname string, ts, trace []float64) {
	f, err := os.Create(fname)
	if err != nil {
		log.Fatal(err.Error())
	}
	if err := io.WriteTrace(f, ts, trace); err != nil {
		log.Fatal(err.Error())
	}
	if err := f.Close(); err != nil {
		log.Fatal(err.Error())
	}
}
