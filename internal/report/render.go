package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot/vg"

	"github.com/user/bl_analyzer_go/internal/analysis"
)

// maxParallelRenders bounds concurrent rasterisation.
const maxParallelRenders = 4

// Rendered holds a figure encoded in the requested format and, when asked
// for, a PNG copy for embedding in the PDF report.
type Rendered struct {
	Figure *Figure
	Format string
	Data   []byte
	PNG    []byte
}

// RenderOptions sets the output size and encoding.
type RenderOptions struct {
	Width, Height vg.Length
	Format        string
	WithPNG       bool
}

// CreateFigures builds the three comparisons in both variants: with the CFD
// data overlaid, then theory only.
func CreateFigures(res *analysis.AnalysisResults) ([]*Figure, error) {
	builders := []func(*analysis.AnalysisResults, bool) (*Figure, error){
		CreateVelocityPlusPlot,
		CreateVelocityPhysicalPlot,
		CreateFrictionPlot,
	}
	figs := make([]*Figure, 0, 2*len(builders))
	for _, build := range builders {
		for _, withData := range []bool{true, false} {
			fig, err := build(res, withData)
			if err != nil {
				return nil, err
			}
			figs = append(figs, fig)
		}
	}
	return figs, nil
}

func encode(fig *Figure, w, h vg.Length, format string) ([]byte, error) {
	writer, err := fig.Plot.WriterTo(w, h, format)
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer for %s: %w", fig.Name, err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot %s to buffer: %w", fig.Name, err)
	}
	return buf.Bytes(), nil
}

// RenderFigures encodes the figures concurrently. The result keeps the order of figs.
func RenderFigures(ctx context.Context, figs []*Figure, opts RenderOptions) ([]Rendered, error) {
	format := strings.ToLower(opts.Format)
	out := make([]Rendered, len(figs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelRenders)
	for i, fig := range figs {
		i, fig := i, fig
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := encode(fig, opts.Width, opts.Height, format)
			if err != nil {
				return err
			}
			r := Rendered{Figure: fig, Format: format, Data: data}
			if opts.WithPNG {
				if format == "png" {
					r.PNG = data
				} else if r.PNG, err = encode(fig, opts.Width, opts.Height, "png"); err != nil {
					return err
				}
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteFigures saves each rendered figure as <dir>/<name>.<format> and
// returns the paths written.
func WriteFigures(rendered []Rendered, dir string, logger *slog.Logger) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	paths := make([]string, 0, len(rendered))
	for _, r := range rendered {
		path := filepath.Join(dir, r.Figure.Name+"."+r.Format)
		if err := os.WriteFile(path, r.Data, 0644); err != nil {
			return paths, fmt.Errorf("failed to write figure %s: %w", r.Figure.Name, err)
		}
		logger.Info("figure written", "path", path, "title", r.Figure.Title)
		if r.Figure.Dropped > 0 {
			logger.Warn("points not drawable on a log axis were left out", "figure", r.Figure.Name, "dropped", r.Figure.Dropped)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
