/*package render turns a pressure snapshot into an image.

Values are mapped linearly onto the intensities [0, 254] and the image is
flipped vertically, so that row 0 of the grid is the bottom scanline.
*/
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/mazznoer/colorgrad"
	"golang.org/x/image/bmp"

	"github.com/phil-mansfield/fdwave/grid"
)

// MaxIntensity is the intensity assigned to the largest value in a field.
const MaxIntensity = 254

// ErrUniformField is returned when a field has no range to normalize over.
var ErrUniformField = errors.New("field is uniform and cannot be normalized")

// Intensity maps v from [mi, ma] onto [0, MaxIntensity].
func Intensity(v, mi, ma float64) uint8 {
	return uint8(math.Round(MaxIntensity * (v - mi) / (ma - mi)))
}

// Normalize returns the intensity of every cell of p, in the same row-major
// order as p.Vals.
func Normalize(p *grid.Grid) ([]uint8, error) {
	mi, ma := p.Min(), p.Max()
	if !(ma > mi) {
		return nil, ErrUniformField
	}

	out := make([]uint8, len(p.Vals))
	for i, v := range p.Vals {
		out[i] = Intensity(v, mi, ma)
	}
	return out, nil
}

// Colormap maps intensities to colors. The zero value is grayscale.
type Colormap struct {
	Name    string
	palette color.Palette
}

var gradients = map[string]func() colorgrad.Gradient{
	"viridis": colorgrad.Viridis,
	"inferno": colorgrad.Inferno,
	"magma":   colorgrad.Magma,
	"plasma":  colorgrad.Plasma,
	"turbo":   colorgrad.Turbo,
	"rdbu":    colorgrad.RdBu,
}

// Colormaps returns the names accepted by ColormapFromString.
func Colormaps() []string {
	names := []string{"gray"}
	for name := range gradients {
		names = append(names, name)
	}
	sort.Strings(names[1:])
	return names
}

// ColormapFromString returns the (case-insensitive) named colormap.
func ColormapFromString(name string) (Colormap, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == "gray" || key == "grey" {
		return Colormap{Name: "gray"}, nil
	}

	grad, ok := gradients[key]
	if !ok {
		return Colormap{}, fmt.Errorf(
			"Colormap '%s' is not recognized. Must be one of [%s].",
			name, strings.Join(Colormaps(), " | "),
		)
	}
	return Colormap{Name: key, palette: grad().Colors(MaxIntensity + 1)}, nil
}

// Image renders p. Grid row y becomes image row NY - 1 - y.
func Image(p *grid.Grid, cm Colormap) (image.Image, error) {
	vals, err := Normalize(p)
	if err != nil {
		return nil, err
	}

	rect := image.Rect(0, 0, p.NX, p.NY)
	if cm.palette == nil {
		img := image.NewGray(rect)
		for y := 0; y < p.NY; y++ {
			for x := 0; x < p.NX; x++ {
				img.SetGray(x, p.NY-1-y, color.Gray{Y: vals[p.Idx(y, x)]})
			}
		}
		return img, nil
	}

	img := image.NewPaletted(rect, cm.palette)
	for y := 0; y < p.NY; y++ {
		for x := 0; x < p.NX; x++ {
			img.SetColorIndex(x, p.NY-1-y, vals[p.Idx(y, x)])
		}
	}
	return img, nil
}

// Save writes img to fname, choosing the format from the file extension:
// .bmp, .png, .jpg or .jpeg.
func Save(fname string, img image.Image) error {
	var enc imgio.Encoder
	switch ext := strings.ToLower(filepath.Ext(fname)); ext {
	case ".bmp":
		enc = bmp.Encode
	case ".png":
		enc = imgio.PNGEncoder()
	case ".jpg", ".jpeg":
		enc = imgio.JPEGEncoder(95)
	default:
		return fmt.Errorf(
			"Cannot write '%s': extension '%s' must be one of "+
				"[.bmp | .png | .jpg].", fname, ext,
		)
	}
	return imgio.Save(fname, img, enc)
}

// Write renders p with the given colormap and saves it to fname.
func Write(fname string, p *grid.Grid, cm Colormap) error {
	img, err := Image(p, cm)
	if err != nil {
		return err
	}
	return Save(fname, img)
}
