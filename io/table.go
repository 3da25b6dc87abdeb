package io

import (
	"fmt"
	"io"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/fdwave/grid"
)

// ReadGridTable reads a whitespace separated text file with ny rows and nx
// columns into a grid. Row y of the file becomes row y of the grid.
func ReadGridTable(fname string, ny, nx int) (*grid.Grid, error) {
	colIdxs := make([]int, nx)
	for i := range colIdxs {
		colIdxs[i] = i
	}

	cols, err := table.ReadTable(fname, colIdxs, nil)
	if err != nil {
		return nil, err
	}
	if len(cols) != nx {
		return nil, fmt.Errorf(
			"Table '%s' has %d columns, but the grid needs %d.",
			fname, len(cols), nx,
		)
	}

	g := grid.New(ny, nx)
	for x, col := range cols {
		if len(col) != ny {
			return nil, fmt.Errorf(
				"Table '%s' has %d rows, but the grid needs %d.",
				fname, len(col), ny,
			)
		}
		for y, v := range col {
			g.Vals[g.Idx(y, x)] = v
		}
	}
	return g, nil
}

// WriteGridTable writes g in the format read by ReadGridTable.
func WriteGridTable(w io.Writer, g *grid.Grid) error {
	for y := 0; y < g.NY; y++ {
		for x := 0; x < g.NX; x++ {
			sep := " "
			if x == g.NX-1 {
				sep = "\n"
			}
			if _, err := fmt.Fprintf(w, "%.10g%s", g.At(y, x), sep); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteTrace writes a seismogram as two columns: time and pressure.
func WriteTrace(w io.Writer, ts, vals []float64) error {
	if len(ts) != len(vals) {
		return fmt.Errorf(
			"Trace has %d times but %d values.", len(ts), len(vals),
		)
	}
	for i := range ts {
		if _, err := fmt.Fprintf(w, "%.10g %.10g\n", ts[i], vals[i]); err != nil {
			return err
		}
	}
	return nil
}

// ReadTrace reads a seismogram written by WriteTrace.
func ReadTrace(fname string) (ts, vals []float64, err error) {
	cols, err := table.ReadTable(fname, []int{0, 1}, nil)
	if err != nil {
		return nil, nil, err
	}
	return cols[0], cols[1], nil
}
