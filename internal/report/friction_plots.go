package report

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/user/bl_analyzer_go/internal/analysis"
)

// CreateFrictionPlot draws the local skin-friction coefficient against the
// local Reynolds number on log-log axes, with the 0.059 Re_x^-0.2 correlation.
// Rows at or upstream of the leading edge (Re_x <= 0) are dropped.
func CreateFrictionPlot(res *analysis.AnalysisResults, withData bool) (*Figure, error) {
	if res == nil {
		return nil, errors.New("no analysis results to plot")
	}
	ax := axes{logX: true, logY: true}
	fig := &Figure{
		Name:  figureName("friction", withData),
		Title: variantTitle("Skin-friction coefficient", withData),
	}
	fig.Plot = newFigurePlot(fig.Title, "Re_x", "c_f", ax)
	lf := res.Friction

	series := 0
	if withData {
		pts, dropped := toXYs(lf.ReynoldsX, lf.Cf, ax)
		fig.Dropped = dropped
		if len(pts) > 0 {
			line, scatter, err := plotter.NewLinePoints(pts)
			if err != nil {
				return nil, fmt.Errorf("failed to create friction data line: %w", err)
			}
			line.Color = dataColor
			line.Width = vg.Points(1)
			scatter.GlyphStyle.Color = dataColor
			scatter.GlyphStyle.Radius = vg.Points(1.5)
			fig.Plot.Add(line, scatter)
			fig.Plot.Legend.Add("CFD (OpenFOAM)", line, scatter)
			series++
		}
	}

	ok, err := addDashedLine(fig.Plot, "von Kármán (1/7 power law)", lf.ReynoldsX, lf.CfTheory, logLawColor, ax)
	if err != nil {
		return nil, err
	}
	if ok {
		series++
	}
	if series == 0 {
		return nil, fmt.Errorf("%s: %w", fig.Name, ErrNothingToPlot)
	}
	padLogAxis(&fig.Plot.X)
	padLogAxis(&fig.Plot.Y)
	return fig, nil
}
