package gridviz

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/seismocore/internal/coreerrs"
	"github.com/banshee-data/seismocore/internal/gridcore"
)

// gridVisualMapColors is the viridis-style ramp used by the teacher's
// LiDAR scatter dashboards, reused here for grid-value shading.
var gridVisualMapColors = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// SaveDepthSliceHTML renders a grid's depth slice at virtual index iz as a
// standalone interactive HTML scatter plot, stride-decimated so large grids
// stay browser-friendly.
func SaveDepthSliceHTML(g *gridcore.Grid, iz int, stride int, title, path string) error {
	if stride < 1 {
		stride = 1
	}
	d := &g.Desc

	data := make([]opts.ScatterData, 0, (d.Nx/stride+1)*(d.Ny/stride+1))
	for ix := 0; ix < d.Nx; ix += stride {
		for iy := 0; iy < d.Ny; iy += stride {
			v := g.ValueAt(ix, iy, iz)
			if v <= gridcore.NoValue {
				continue
			}
			x := d.OrigX + float64(ix)*d.Dx
			y := d.OrigY + float64(iy)*d.Dy
			data = append(data, opts.ScatterData{Value: []interface{}{x, y, v}})
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("iz=%d points=%d stride=%d", iz, len(data), stride)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Y", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			InRange:    &opts.VisualMapInRange{Color: gridVisualMapColors},
		}),
	)
	scatter.AddSeries("grid", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		return &coreerrs.IoError{Path: path, Op: "render depth-slice HTML", Err: err}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &coreerrs.IoError{Path: path, Op: "write depth-slice HTML", Err: err}
	}
	return nil
}
