package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/phil-mansfield/fdwave/grid"
)

func field() *grid.Grid {
	g, _ := grid.FromVals([]float64{
		-2, 0, 1,
		3, 8, 0.5,
	}, 2, 3)
	return g
}

func TestNormalize(t *testing.T) {
	vals, err := Normalize(field())
	require.NoError(t, err)

	assert.Equal(t, uint8(0), vals[0], "minimum")
	assert.Equal(t, uint8(MaxIntensity), vals[4], "maximum")
	// 254 * (0 - -2) / 10 = 50.8
	assert.Equal(t, uint8(51), vals[1])
	// 254 * 3 / 10 = 76.2
	assert.Equal(t, uint8(76), vals[2])

	_, err = Normalize(grid.New(4, 4))
	assert.Equal(t, ErrUniformField, err)
	_, err = Image(grid.Full(4, 4, 3), Colormap{})
	assert.Equal(t, ErrUniformField, err)
}

func TestImageOrientation(t *testing.T) {
	img, err := Image(field(), Colormap{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	gray := func(x, y int) uint8 {
		return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
	}
	// Grid row 0 is the bottom scanline.
	assert.Equal(t, uint8(0), gray(0, 1))
	assert.Equal(t, uint8(MaxIntensity), gray(1, 0))
}

func TestColormaps(t *testing.T) {
	for _, name := range Colormaps() {
		cm, err := ColormapFromString(name)
		require.NoError(t, err, name)

		img, err := Image(field(), cm)
		require.NoError(t, err, name)
		if name != "gray" {
			p, ok := img.(*image.Paletted)
			require.True(t, ok, name)
			assert.Equal(t, MaxIntensity+1, len(p.Palette))
			assert.Equal(t, uint8(MaxIntensity), p.ColorIndexAt(1, 0))
		}
	}

	_, err := ColormapFromString("rainbow")
	assert.Error(t, err)

	cm, err := ColormapFromString(" Viridis ")
	require.NoError(t, err)
	assert.Equal(t, "viridis", cm.Name)
}

func TestWriteBMP(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "out.bmp")
	require.NoError(t, Write(fname, field(), Colormap{}))

	f, err := os.Open(fname)
	require.NoError(t, err)
	defer f.Close()

	img, err := bmp.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	want, _ := Normalize(field())
	g := field()
	for y := 0; y < g.NY; y++ {
		for x := 0; x < g.NX; x++ {
			got := color.GrayModel.Convert(img.At(x, g.NY-1-y)).(color.Gray).Y
			if got != want[g.Idx(y, x)] {
				t.Errorf("(%d, %d): expected %d, got %d",
					y, x, want[g.Idx(y, x)], got)
			}
		}
	}
}

func TestWritePNG(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "out.png")
	cm, _ := ColormapFromString("inferno")
	require.NoError(t, Write(fname, field(), cm))

	f, err := os.Open(fname)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())

	assert.Error(t, Save(filepath.Join(t.TempDir(), "out.gif"), img))
}
