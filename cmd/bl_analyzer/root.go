package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/user/bl_analyzer_go/internal/config"
)

type rootFlags struct {
	configPath string
	velocity   string
	shear      string
	outDir     string
	format     string
	pdf        string
	xRef       float64
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:   "bl_analyzer",
		Short: "Compare CFD boundary-layer output against the law of the wall and the 1/7-power friction law",
		Long: `bl_analyzer reads a wall-normal velocity traverse and a wall shear stress
distribution exported from a CFD run, computes the friction velocity and
skin-friction coefficient at a reference position, and plots the data in wall
units against the viscous sublayer, the log law and the 0.059 Re_x^-0.2
friction correlation.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(f.logLevel)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			app := NewApp(cfg, logger, cmd.OutOrStdout())
			if err := app.Run(cmd.Context()); err != nil {
				logger.Error("post-processing failed", "err", err)
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.configPath, "config", "c", "bl_analyzer.yaml", "YAML configuration file (defaults are used if it does not exist)")
	flags.StringVar(&f.velocity, "velocity", "", "velocity profile file (overrides config)")
	flags.StringVar(&f.shear, "shear", "", "wall shear stress file (overrides config)")
	flags.StringVarP(&f.outDir, "out", "o", "", "directory for figures (overrides config)")
	flags.StringVar(&f.format, "format", "", "figure format: png, svg, pdf, jpg, tiff or eps (overrides config)")
	flags.StringVar(&f.pdf, "pdf", "", "also write a PDF report to this path")
	flags.Float64Var(&f.xRef, "x-ref", 0, "reference streamwise position in m (overrides config)")
	flags.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	return cmd
}

// loadConfig applies explicitly set flags on top of the configuration file.
func loadConfig(cmd *cobra.Command, f rootFlags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("velocity") {
		cfg.Input.VelocityFile = f.velocity
	}
	if flags.Changed("shear") {
		cfg.Input.ShearFile = f.shear
	}
	if flags.Changed("out") {
		cfg.Output.Dir = f.outDir
	}
	if flags.Changed("format") {
		cfg.Output.Format = f.format
	}
	if flags.Changed("pdf") {
		cfg.Output.PDFReport = f.pdf
	}
	if flags.Changed("x-ref") {
		cfg.Physics.ReferenceX = f.xRef
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.TimeOnly,
	})), nil
}
