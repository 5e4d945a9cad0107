// Package render draws flow fields to PNG files for visual inspection:
// a magnitude heatmap and a sparse vector (quiver) plot.
package render

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/flowscale/internal/flow"
)

// magnitudeGrid adapts a flow.Field to plotter.GridXYZ, exposing the
// per-cell displacement magnitude. Row 0 of the field is the top of the
// image, so the y coordinate is flipped for plotting.
type magnitudeGrid struct {
	f *flow.Field
}

func (g magnitudeGrid) Dims() (c, r int) { return g.f.Width, g.f.Height }
func (g magnitudeGrid) X(c int) float64  { return float64(c) }
func (g magnitudeGrid) Y(r int) float64  { return float64(g.f.Height - 1 - r) }

func (g magnitudeGrid) Z(c, r int) float64 {
	return math.Hypot(float64(g.f.U(c, r)), float64(g.f.V(c, r)))
}

// Heatmap renders the displacement magnitude of f as a PNG heatmap.
func Heatmap(f *flow.Field, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("flow magnitude %dx%d (%s)", f.Width, f.Height, f.Format)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	hm := plotter.NewHeatMap(magnitudeGrid{f}, palette.Heat(64, 1))
	p.Add(hm)

	if err := p.Save(8*vg.Inch, 8*vg.Inch*vg.Length(f.Height)/vg.Length(f.Width), path); err != nil {
		return fmt.Errorf("saving heatmap %s: %w", path, err)
	}
	return nil
}

// vectorGrid adapts a flow.Field to plotter.FieldXY, subsampling by
// stride so large fields stay legible. Dims rounds up so the trailing
// rows and columns of a field the stride does not divide are still
// plotted, and the y flip is anchored to the field height so the quiver
// origin lines up with the heatmap's.
type vectorGrid struct {
	f      *flow.Field
	stride int
}

func (g vectorGrid) Dims() (c, r int) {
	return (g.f.Width + g.stride - 1) / g.stride, (g.f.Height + g.stride - 1) / g.stride
}

func (g vectorGrid) X(c int) float64 { return float64(c * g.stride) }
func (g vectorGrid) Y(r int) float64 { return float64(g.f.Height - 1 - r*g.stride) }

func (g vectorGrid) Vector(c, r int) plotter.XY {
	x := c * g.stride
	y := r * g.stride
	// v is negated because image rows grow downward while the plot's y
	// axis grows upward.
	return plotter.XY{X: float64(g.f.U(x, y)), Y: -float64(g.f.V(x, y))}
}

// Quiver renders every stride-th motion vector of f as an arrow plot.
// stride values below 1 are treated as 1; a stride larger than the field
// still plots the top-left vector of each strided block.
func Quiver(f *flow.Field, path string, stride int) error {
	if stride < 1 {
		stride = 1
	}
	if f.Width == 0 || f.Height == 0 {
		return fmt.Errorf("no vectors to plot in a %dx%d field", f.Width, f.Height)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("flow vectors %dx%d stride %d", f.Width, f.Height, stride)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	p.Add(plotter.NewField(vectorGrid{f: f, stride: stride}))

	if err := p.Save(8*vg.Inch, 8*vg.Inch*vg.Length(f.Height)/vg.Length(f.Width), path); err != nil {
		return fmt.Errorf("saving quiver plot %s: %w", path, err)
	}
	return nil
}
