package report

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gonum.org/v1/plot/vg"

	"github.com/user/bl_analyzer_go/internal/analysis"
	"github.com/user/bl_analyzer_go/internal/config"
	"github.com/user/bl_analyzer_go/internal/parser"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func flatPlateResults(t *testing.T) *analysis.AnalysisResults {
	t.Helper()
	velocity := parser.VelocityProfile{Y: []float64{0.0, 0.01, 0.1}, U: []float64{0.0, 0.5, 1.0}}
	shear := parser.WallShearProfile{X: []float64{1.0}, Tau: []float64{0.002}}
	res, err := analysis.AnalyzeBoundaryLayer(velocity, shear, config.Default())
	require.NoError(t, err)
	return res
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateFigures(t *testing.T) {
	figs, err := CreateFigures(flatPlateResults(t))
	require.NoError(t, err)

	names := make([]string, len(figs))
	for i, f := range figs {
		names[i] = f.Name
	}
	assert.Equal(t, []string{
		"velocity_plus_data", "velocity_plus_theory",
		"velocity_physical_data", "velocity_physical_theory",
		"friction_data", "friction_theory",
	}, names)

	assert.Contains(t, figs[0].Title, "CFD + theory")
	assert.Contains(t, figs[1].Title, "- theory")
	assert.NotContains(t, figs[1].Title, "CFD")
}

func TestCreateVelocityPlusPlot_DropsWallPoint(t *testing.T) {
	fig, err := CreateVelocityPlusPlot(flatPlateResults(t), true)
	require.NoError(t, err)
	assert.Equal(t, 1, fig.Dropped) // y+ = 0 cannot sit on a log axis

	fig, err = CreateVelocityPlusPlot(flatPlateResults(t), false)
	require.NoError(t, err)
	assert.Zero(t, fig.Dropped)
}

func TestCreateFrictionPlot_SingleRowIsPadded(t *testing.T) {
	fig, err := CreateFrictionPlot(flatPlateResults(t), true)
	require.NoError(t, err)
	assert.InEpsilon(t, 1e5, fig.Plot.X.Min, 1e-9)
	assert.InEpsilon(t, 1e7, fig.Plot.X.Max, 1e-9)
}

func TestCreateFrictionPlot_NothingAtLeadingEdge(t *testing.T) {
	res := flatPlateResults(t)
	res.Friction = analysis.LocalFriction{
		X:         []float64{0},
		ReynoldsX: []float64{0},
		Cf:        []float64{0.01},
		CfTheory:  []float64{math.NaN()},
	}
	_, err := CreateFrictionPlot(res, false)
	assert.ErrorIs(t, err, ErrNothingToPlot)
}

func TestToXYs(t *testing.T) {
	pts, dropped := toXYs([]float64{-1, 0, 1, 2}, []float64{1, 1, 0, 3}, axes{logX: true, logY: true})
	assert.Equal(t, 3, dropped)
	require.Len(t, pts, 1)
	assert.Equal(t, 2.0, pts[0].X)

	pts, dropped = toXYs([]float64{-1, 0}, []float64{1, 0}, axes{})
	assert.Zero(t, dropped)
	assert.Len(t, pts, 2)
}

func TestRenderAndWriteFigures(t *testing.T) {
	figs, err := CreateFigures(flatPlateResults(t))
	require.NoError(t, err)

	rendered, err := RenderFigures(context.Background(), figs, RenderOptions{
		Width: 5 * vg.Inch, Height: 3.5 * vg.Inch, Format: "svg", WithPNG: true,
	})
	require.NoError(t, err)
	require.Len(t, rendered, len(figs))
	for i, r := range rendered {
		assert.Same(t, figs[i], r.Figure)
		assert.Contains(t, string(r.Data), "<svg")
		assert.True(t, bytes.HasPrefix(r.PNG, pngMagic), r.Figure.Name)
	}

	dir := filepath.Join(t.TempDir(), "out")
	paths, err := WriteFigures(rendered, dir, discardLogger())
	require.NoError(t, err)
	require.Len(t, paths, 6)
	assert.Equal(t, filepath.Join(dir, "velocity_plus_data.svg"), paths[0])
	for _, p := range paths {
		assert.FileExists(t, p)
	}
}

func TestRenderFigures_Cancelled(t *testing.T) {
	figs, err := CreateFigures(flatPlateResults(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = RenderFigures(ctx, figs, RenderOptions{Width: vg.Inch, Height: vg.Inch, Format: "png"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, flatPlateResults(t)))

	out := buf.String()
	assert.Contains(t, out, "u* = 4.472136e-02 m/s")
	assert.Contains(t, out, "(simulated): c_f = 4.000000e-03")
	assert.Contains(t, out, "(von Kármán): c_f = 3.722648e-03")
	assert.Contains(t, out, "Re_x = 1.000e+06")
}

func TestBuildPDFReport(t *testing.T) {
	res := flatPlateResults(t)
	res.AnalysisWarnings = append(res.AnalysisWarnings, "Minimum wall-normal coordinate is 1.00e-03 m; offset subtracted.")
	figs, err := CreateFigures(res)
	require.NoError(t, err)
	rendered, err := RenderFigures(context.Background(), figs, RenderOptions{
		Width: 7 * vg.Inch, Height: 5 * vg.Inch, Format: "png", WithPNG: true,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, BuildPDFReport(path, res, config.Default(), rendered))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestPNGAspect(t *testing.T) {
	assert.Equal(t, 0.5, pngAspect([]byte("not a png"), 0.5))
}
