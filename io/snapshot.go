package io

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/phil-mansfield/fdwave/fdtd"
	"github.com/phil-mansfield/fdwave/grid"
)

var end = binary.LittleEndian

// FieldFlag identifies the field stored in a snapshot block.
type FieldFlag int64

const (
	Pressure FieldFlag = iota
	VelocityX
	VelocityY
	EndField
)

// SnapshotHeader describes a dump of the wave fields at a single step.
type SnapshotHeader struct {
	Type TypeInfo
	Grid GridInfo
}

type TypeInfo struct {
	Endianness int64
	HeaderSize int64
	Fields     int64
}

type GridInfo struct {
	NY, NX     int64
	Step       int64
	Dx, Dy, Dt float64
}

// NewSnapshotHeader fills in a header for an ny x nx snapshot taken after
// step steps.
func NewSnapshotHeader(ny, nx, step int, disc fdtd.Discretization) *SnapshotHeader {
	hd := &SnapshotHeader{}
	hd.Type.Endianness = -1
	hd.Type.HeaderSize = int64(binary.Size(hd))
	hd.Type.Fields = int64(EndField)

	hd.Grid.NY, hd.Grid.NX = int64(ny), int64(nx)
	hd.Grid.Step = int64(step)
	hd.Grid.Dx, hd.Grid.Dy, hd.Grid.Dt = disc.Dx, disc.Dy, disc.Dt
	return hd
}

// WriteSnapshot writes the header followed by the pressure, x velocity and
// y velocity grids.
func WriteSnapshot(wr io.Writer, hd *SnapshotHeader, f *fdtd.Fields) error {
	if err := binary.Write(wr, end, hd); err != nil {
		return err
	}
	for _, g := range []*grid.Grid{f.P, f.Vx, f.Vy} {
		if int64(g.NY) != hd.Grid.NY || int64(g.NX) != hd.Grid.NX {
			return fmt.Errorf(
				"Snapshot header is for a %d x %d grid, but a field is %d x %d.",
				hd.Grid.NY, hd.Grid.NX, g.NY, g.NX,
			)
		}
		if err := binary.Write(wr, end, g.Vals); err != nil {
			return err
		}
	}
	return nil
}

// WriteSnapshotFile writes the engine's current fields to fname.
func WriteSnapshotFile(fname string, e *fdtd.Engine, disc fdtd.Discretization) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	fs := e.Fields()
	hd := NewSnapshotHeader(fs.P.NY, fs.P.NX, e.Steps(), disc)
	if err := WriteSnapshot(f, hd, fs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadSnapshot reads a snapshot written by WriteSnapshot.
func ReadSnapshot(rd io.Reader) (*SnapshotHeader, *fdtd.Fields, error) {
	hd := &SnapshotHeader{}
	if err := binary.Read(rd, end, hd); err != nil {
		return nil, nil, err
	}

	if hd.Type.Endianness != -1 {
		return nil, nil, fmt.Errorf(
			"Unrecognized endianness flag, %d.", hd.Type.Endianness,
		)
	} else if hd.Type.HeaderSize != int64(binary.Size(hd)) {
		return nil, nil, fmt.Errorf(
			"Expected SnapshotHeader size of %d, found %d.",
			binary.Size(hd), hd.Type.HeaderSize,
		)
	} else if hd.Type.Fields != int64(EndField) {
		return nil, nil, fmt.Errorf(
			"Expected %d fields, found %d.", EndField, hd.Type.Fields,
		)
	} else if hd.Grid.NY <= 0 || hd.Grid.NX <= 0 {
		return nil, nil, fmt.Errorf(
			"Snapshot grid shape %d x %d is not positive.",
			hd.Grid.NY, hd.Grid.NX,
		)
	}

	fs := fdtd.NewFields(int(hd.Grid.NY), int(hd.Grid.NX))
	for _, g := range []*grid.Grid{fs.P, fs.Vx, fs.Vy} {
		if err := binary.Read(rd, end, g.Vals); err != nil {
			return nil, nil, err
		}
	}
	return hd, fs, nil
}
