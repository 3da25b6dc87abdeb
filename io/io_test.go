package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/fdwave/fdtd"
	"github.com/phil-mansfield/fdwave/grid"
	"github.com/phil-mansfield/fdwave/model"
)

func writeFile(t *testing.T, name, text string) string {
	fname := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fname, []byte(text), 0644))
	return fname
}

func TestExampleRunFile(t *testing.T) {
	wrap, err := ReadRunConfig(writeFile(t, "run.ini", ExampleRunFile))
	require.NoError(t, err)
	assert.Equal(t, DefaultRunWrapper(), wrap)

	phys := wrap.Physical()
	assert.Equal(t, 200, phys.NX)
	assert.Equal(t, 200, phys.NY)
	assert.Equal(t, 20.0, phys.PointsPerWavelength)
	assert.Equal(t, 0.5, phys.CFL)
	assert.Equal(t, 5.0, phys.F0)
	assert.Nil(t, wrap.ReceiverCell())
	assert.Equal(t, "gray", wrap.Colormap().Name)
}

func TestReadRunString(t *testing.T) {
	wrap, err := ReadRunString(`
[Simulation]
NX = 60
NY = 40
Order = 8

[Source]
X = 30
Y = 20

[Model]
Kind = layered
LayerRow = 25

[Receiver]
X = 35
Y = 20
Output = trace.txt

[Output]
Colormap = Viridis`)
	require.NoError(t, err)

	assert.Equal(t, 8, wrap.Simulation.Order)
	assert.Equal(t, 1.0, wrap.Simulation.T, "unset values keep their defaults")
	assert.Equal(t, &fdtd.Cell{Y: 20, X: 35}, wrap.ReceiverCell())

	med, err := wrap.Medium()
	require.NoError(t, err)
	assert.Equal(t, 40, med.NY())
	assert.Equal(t, 60, med.NX())
	assert.Equal(t, model.ReferenceVelocity, med.Velocity.At(24, 0))
	assert.Equal(t, 4000.0, med.Velocity.At(25, 0))
}

func TestCheck(t *testing.T) {
	table := []string{
		"[Simulation]\nNX = 0",
		"[Simulation]\nCFL = 1.5",
		"[Simulation]\nOrder = 3",
		"[Simulation]\nT = -1",
		"[Source]\nF0 = 0",
		"[Source]\nX = 200",
		"[Model]\nKind = Sphere",
		"[Model]\nVelocity = -3000",
		"[Model]\nKind = Table",
		"[Model]\nKind = Perlin\nPerlinAmplitude = 2",
		"[Output]\nImage =",
		"[Output]\nColormap = Rainbow",
		"[Receiver]\nOutput = trace.txt",
		"[Receiver]\nX = 10\nY = 300",
	}

	for i, text := range table {
		if _, err := ReadRunString(text); err == nil {
			t.Errorf("%d) Expected an error for %q", i, text)
		}
	}

	_, err := ReadRunString("[Simulation]\nNotAKey = 1")
	assert.Error(t, err, "unknown keys must be rejected")
}

func TestPerlinMedium(t *testing.T) {
	wrap, err := ReadRunString(`
[Simulation]
NX = 30
NY = 20
[Source]
X = 10
Y = 10
[Model]
Kind = Perlin
PerlinAmplitude = 0.2`)
	require.NoError(t, err)

	med, err := wrap.Medium()
	require.NoError(t, err)
	assert.True(t, med.Velocity.Min() >= 0.6*model.ReferenceVelocity)
	assert.True(t, med.Velocity.Max() <= 1.4*model.ReferenceVelocity)
	assert.NotEqual(t, med.Velocity.Min(), med.Velocity.Max())
}

func TestGridTable(t *testing.T) {
	g, _ := grid.FromVals([]float64{
		1500, 1600, 1700,
		2000, 2100, 2200,
	}, 2, 3)

	buf := &bytes.Buffer{}
	require.NoError(t, WriteGridTable(buf, g))
	fname := writeFile(t, "v.txt", buf.String())

	h, err := ReadGridTable(fname, 2, 3)
	require.NoError(t, err)
	assert.True(t, g.Equal(h))

	_, err = ReadGridTable(fname, 3, 3)
	assert.Error(t, err, "too few rows")

	wrap, err := ReadRunString(strings.Join([]string{
		"[Simulation]", "NX = 3", "NY = 2",
		"[Source]", "X = 1", "Y = 1",
		"[Model]", "Kind = Table", "VelocityFile = " + fname,
	}, "\n"))
	require.NoError(t, err)
	med, err := wrap.Medium()
	require.NoError(t, err)
	assert.Equal(t, 2200.0, med.Velocity.At(1, 2))
	assert.Equal(t, model.ReferenceDensity, med.Density.At(1, 2))

	wrap.Model.VelocityFile = writeFile(t, "zero.txt", "1500 0 1700\n1 2 3\n")
	_, err = wrap.Medium()
	assert.Error(t, err, "velocities must be positive")
}

func TestTrace(t *testing.T) {
	ts := []float64{0, 0.0025, 0.005}
	vals := []float64{0, -1.5e-7, 3.25}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteTrace(buf, ts, vals))
	fname := writeFile(t, "trace.txt", buf.String())

	rts, rvals, err := ReadTrace(fname)
	require.NoError(t, err)
	assert.Equal(t, ts, rts)
	assert.Equal(t, vals, rvals)

	assert.Error(t, WriteTrace(buf, ts, vals[:2]))
}

func TestSnapshot(t *testing.T) {
	fs := fdtd.NewFields(3, 4)
	fs.P.Set(1, 2, 7)
	fs.Vx.Set(0, 3, -1)
	fs.Vy.Set(2, 0, 0.5)
	disc := fdtd.Discretization{Dx: 15, Dy: 15, Dt: 0.0025}

	buf := &bytes.Buffer{}
	hd := NewSnapshotHeader(3, 4, 12, disc)
	require.NoError(t, WriteSnapshot(buf, hd, fs))
	assert.Equal(t, 72+3*12*8, buf.Len())

	rhd, rfs, err := ReadSnapshot(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, hd, rhd)
	assert.True(t, fs.P.Equal(rfs.P))
	assert.True(t, fs.Vx.Equal(rfs.Vx))
	assert.True(t, fs.Vy.Equal(rfs.Vy))

	bad := NewSnapshotHeader(4, 4, 0, disc)
	assert.Error(t, WriteSnapshot(&bytes.Buffer{}, bad, fs))

	_, _, err = ReadSnapshot(bytes.NewReader(buf.Bytes()[:40]))
	assert.Error(t, err)
}
