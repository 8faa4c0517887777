package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gonum.org/v1/plot/vg"

	"github.com/user/bl_analyzer_go/internal/analysis"
	"github.com/user/bl_analyzer_go/internal/config"
	"github.com/user/bl_analyzer_go/internal/parser"
	"github.com/user/bl_analyzer_go/internal/report"
)

// App runs one post-processing pass.
type App struct {
	cfg    config.Config
	logger *slog.Logger
	stdout io.Writer
}

// NewApp creates an App for a validated configuration.
func NewApp(cfg config.Config, logger *slog.Logger, stdout io.Writer) *App {
	return &App{cfg: cfg, logger: logger, stdout: stdout}
}

func (a *App) logNotes(source string, notes []string) {
	for _, n := range notes {
		a.logger.Warn(n, "source", source)
	}
}

// Run loads both inputs, analyses them, prints the summary and writes the figures
// and, if configured, the PDF report. Any error aborts the whole run.
func (a *App) Run(ctx context.Context) error {
	in := a.cfg.Input
	opts := parser.Options{Delimiter: in.DelimiterRune()}

	a.logger.Info("parsing velocity profile", "file", in.VelocityFile)
	velocity, notes, err := parser.ParseVelocityProfile(in.VelocityFile, in.WallNormalCol, in.VelocityCol, opts)
	a.logNotes(in.VelocityFile, notes)
	if err != nil {
		return fmt.Errorf("error parsing velocity profile: %w", err)
	}
	a.logger.Info("parsed velocity profile", "points", velocity.Len())

	a.logger.Info("parsing wall shear stress", "file", in.ShearFile)
	shear, notes, err := parser.ParseWallShearProfile(in.ShearFile, in.StreamwiseCol, in.WallShearCol, opts)
	a.logNotes(in.ShearFile, notes)
	if err != nil {
		return fmt.Errorf("error parsing wall shear stress: %w", err)
	}
	a.logger.Info("parsed wall shear stress", "points", shear.Len())

	results, err := analysis.AnalyzeBoundaryLayer(velocity, shear, a.cfg)
	if err != nil {
		return fmt.Errorf("error analyzing data: %w", err)
	}
	for _, w := range results.AnalysisWarnings {
		a.logger.Warn(w)
	}
	sh := results.Reference.Shear
	a.logger.Info("resolved wall shear stress", "x_ref", sh.XRef, "tau_w", sh.TauW, "method", sh.Method.String())

	if err := report.WriteSummary(a.stdout, results); err != nil {
		return fmt.Errorf("error writing summary: %w", err)
	}

	a.logger.Info("generating plots")
	figs, err := report.CreateFigures(results)
	if err != nil {
		return fmt.Errorf("error generating plots: %w", err)
	}
	out := a.cfg.Output
	rendered, err := report.RenderFigures(ctx, figs, report.RenderOptions{
		Width:   vg.Points(out.Width),
		Height:  vg.Points(out.Height),
		Format:  out.Format,
		WithPNG: out.PDFReport != "",
	})
	if err != nil {
		return fmt.Errorf("error rendering plots: %w", err)
	}
	if _, err := report.WriteFigures(rendered, out.Dir, a.logger); err != nil {
		return err
	}

	if out.PDFReport != "" {
		a.logger.Info("generating PDF", "path", out.PDFReport)
		if err := report.BuildPDFReport(out.PDFReport, results, a.cfg, rendered); err != nil {
			return fmt.Errorf("error generating PDF report: %w", err)
		}
		a.logger.Info("PDF report successfully generated", "path", out.PDFReport)
	}
	return nil
}
