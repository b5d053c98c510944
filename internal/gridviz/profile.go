// Package gridviz renders grid and solver diagnostics to PNG (via
// gonum.org/v1/plot) and to standalone HTML (via go-echarts), grounded on
// the teacher's internal/lidar/monitor plotting helpers.
package gridviz

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/seismocore/internal/coreerrs"
	"github.com/banshee-data/seismocore/internal/gridcore"
)

// depthSliceGrid adapts a fixed-iz slice of a gridcore.Grid to gonum/plot's
// plotter.GridXYZ interface for heat-map rendering.
type depthSliceGrid struct {
	g  *gridcore.Grid
	iz int
}

func (d depthSliceGrid) Dims() (c, r int) { return d.g.Desc.Nx, d.g.Desc.Ny }

func (d depthSliceGrid) X(c int) float64 { return d.g.Desc.OrigX + float64(c)*d.g.Desc.Dx }

func (d depthSliceGrid) Y(r int) float64 { return d.g.Desc.OrigY + float64(r)*d.g.Desc.Dy }

func (d depthSliceGrid) Z(c, r int) float64 {
	v := d.g.ValueAt(c, r, d.iz)
	if v <= gridcore.NoValue {
		return 0
	}
	return v
}

// SaveDepthSliceHeatmap renders the grid's depth slice at virtual index iz
// as a PNG heatmap at path.
func SaveDepthSliceHeatmap(g *gridcore.Grid, iz int, title, path string) error {
	p := plot.New()
	p.Title.Text = title

	hm := plotter.NewHeatMap(depthSliceGrid{g: g, iz: iz}, palette.Heat(64, 1))
	p.Add(hm)
	p.X.Label.Text = "x (km)"
	p.Y.Label.Text = "y (km)"

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return &coreerrs.IoError{Path: path, Op: "save depth-slice heatmap", Err: err}
	}
	return nil
}

// SaveSourceProfile renders a 1D radial travel-time profile away from the
// source, as recorded by the eikonal solver's SourceProfile diagnostic.
func SaveSourceProfile(radii, times []float64, title, path string) error {
	if len(radii) != len(times) {
		return &coreerrs.ConfigError{Field: "radii/times", Value: fmt.Sprintf("%d/%d", len(radii), len(times)), Reason: "slice lengths must match"}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "radius (km)"
	p.Y.Label.Text = "travel time (s)"

	pts := make(plotter.XYs, len(radii))
	for i := range radii {
		pts[i] = plotter.XY{X: radii[i], Y: times[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return &coreerrs.ConfigError{Field: "radii/times", Value: nil, Reason: "could not build profile line: " + err.Error()}
	}
	line.Width = vg.Points(1.5)
	p.Add(line)

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return &coreerrs.IoError{Path: path, Op: "save source profile", Err: err}
	}
	return nil
}
