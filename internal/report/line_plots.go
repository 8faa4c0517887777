package report

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/user/bl_analyzer_go/internal/analysis"
)

// ErrNothingToPlot is returned when every series of a figure is empty after
// dropping points that a logarithmic axis cannot show.
var ErrNothingToPlot = errors.New("no plottable points")

var (
	dataColor    = color.RGBA{R: 31, G: 119, B: 180, A: 180} // tab:blue, slightly transparent
	viscousColor = color.Black
	logLawColor  = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	dashes       = []vg.Length{vg.Points(6), vg.Points(3)}
)

// Figure is one rendered comparison. Dropped counts the data points left out
// because they cannot be drawn on a logarithmic axis.
type Figure struct {
	Name    string
	Title   string
	Plot    *plot.Plot
	Dropped int
}

// axes says which axes of a figure are logarithmic.
type axes struct {
	logX, logY bool
}

// toXYs pairs xs and ys, skipping points that are not finite or that would
// be non-positive on a logarithmic axis.
func toXYs(xs, ys []float64, ax axes) (plotter.XYs, int) {
	pts := make(plotter.XYs, 0, len(xs))
	dropped := 0
	for i := range xs {
		x, y := xs[i], ys[i]
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) ||
			(ax.logX && x <= 0) || (ax.logY && y <= 0) {
			dropped++
			continue
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	return pts, dropped
}

func newFigurePlot(title, xLabel, yLabel string, ax axes) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	if ax.logX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if ax.logY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.XOffs = -vg.Points(10)
	return p
}

// addScatter adds the data series and returns the number of dropped points.
func addScatter(p *plot.Plot, label string, xs, ys []float64, ax axes) (bool, int, error) {
	pts, dropped := toXYs(xs, ys, ax)
	if len(pts) == 0 {
		return false, dropped, nil
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return false, dropped, fmt.Errorf("failed to create scatter for %s: %w", label, err)
	}
	s.GlyphStyle.Color = dataColor
	s.GlyphStyle.Radius = vg.Points(1.5)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)
	p.Legend.Add(label, s)
	return true, dropped, nil
}

func addDashedLine(p *plot.Plot, label string, xs, ys []float64, c color.Color, ax axes) (bool, error) {
	pts, _ := toXYs(xs, ys, ax)
	if len(pts) == 0 {
		return false, nil
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return false, fmt.Errorf("failed to create line for %s: %w", label, err)
	}
	line.Color = c
	line.Width = vg.Points(1.5)
	line.Dashes = dashes
	p.Add(line)
	p.Legend.Add(label, line)
	return true, nil
}

// padLogAxis widens a degenerate logarithmic range by a decade, since the
// default padding of one unit can cross zero.
func padLogAxis(a *plot.Axis) {
	if a.Min == a.Max && a.Min > 0 {
		a.Min /= 10
		a.Max *= 10
	}
}

// addLawOfWall draws both parts of the law of the wall.
func addLawOfWall(p *plot.Plot, law analysis.LawOfWall, viscousLabel string, ax axes) (int, error) {
	n := 0
	ok, err := addDashedLine(p, viscousLabel, law.Viscous.X, law.Viscous.Y, viscousColor, ax)
	if err != nil {
		return n, err
	}
	if ok {
		n++
	}
	ok, err = addDashedLine(p, "Log layer", law.LogLayer.X, law.LogLayer.Y, logLawColor, ax)
	if err != nil {
		return n, err
	}
	if ok {
		n++
	}
	return n, nil
}

func variantTitle(base string, withData bool) string {
	if withData {
		return base + " - CFD + theory"
	}
	return base + " - theory"
}

func figureName(base string, withData bool) string {
	if withData {
		return base + "_data"
	}
	return base + "_theory"
}

// CreateVelocityPlusPlot draws U+ against y+ on a logarithmic y+ axis, with
// the viscous sublayer and log-law curves, and the CFD points when withData is set.
func CreateVelocityPlusPlot(res *analysis.AnalysisResults, withData bool) (*Figure, error) {
	if res == nil {
		return nil, errors.New("no analysis results to plot")
	}
	ax := axes{logX: true}
	fig := &Figure{
		Name:  figureName("velocity_plus", withData),
		Title: variantTitle("Dimensionless velocity profile (U+ vs y+)", withData),
	}
	fig.Plot = newFigurePlot(fig.Title, "y+", "U+", ax)

	series := 0
	if withData {
		ok, dropped, err := addScatter(fig.Plot, "CFD (OpenFOAM)", res.Dimensionless.YPlus, res.Dimensionless.UPlus, ax)
		if err != nil {
			return nil, err
		}
		fig.Dropped = dropped
		if ok {
			series++
		}
	}
	n, err := addLawOfWall(fig.Plot, res.TheoryPlus, "Viscous sublayer U+ = y+", ax)
	if err != nil {
		return nil, err
	}
	if series+n == 0 {
		return nil, fmt.Errorf("%s: %w", fig.Name, ErrNothingToPlot)
	}
	padLogAxis(&fig.Plot.X)
	return fig, nil
}

// CreateVelocityPhysicalPlot draws Ux against y on linear axes with the
// law of the wall rescaled to physical units.
func CreateVelocityPhysicalPlot(res *analysis.AnalysisResults, withData bool) (*Figure, error) {
	if res == nil {
		return nil, errors.New("no analysis results to plot")
	}
	ax := axes{}
	fig := &Figure{
		Name:  figureName("velocity_physical", withData),
		Title: variantTitle("Velocity profile Ux(y)", withData),
	}
	fig.Plot = newFigurePlot(fig.Title, "y [m]", "Ux [m/s]", ax)

	series := 0
	if withData {
		ok, dropped, err := addScatter(fig.Plot, "CFD (OpenFOAM)", res.Profile.Y, res.Profile.U, ax)
		if err != nil {
			return nil, err
		}
		fig.Dropped = dropped
		if ok {
			series++
		}
	}
	n, err := addLawOfWall(fig.Plot, res.TheoryPhysical, "Viscous sublayer", ax)
	if err != nil {
		return nil, err
	}
	if series+n == 0 {
		return nil, fmt.Errorf("%s: %w", fig.Name, ErrNothingToPlot)
	}
	return fig, nil
}
