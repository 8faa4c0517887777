package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of a boundary-layer post-processing run.
// It is built once and passed by value; nothing mutates it after Validate.
type Config struct {
	Physics  PhysicsConfig  `yaml:"physics"`
	Resolver ResolverConfig `yaml:"resolver"`
	Theory   TheoryConfig   `yaml:"theory"`
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
}

// PhysicsConfig holds the flow constants.
type PhysicsConfig struct {
	Density            float64 `yaml:"density"`              // rho [kg/m³]
	KinematicViscosity float64 `yaml:"kinematic_viscosity"`  // nu [m²/s]
	Kappa              float64 `yaml:"kappa"`                // von Kármán constant
	LogLawIntercept    float64 `yaml:"log_law_intercept"`    // B
	FreeStreamVelocity float64 `yaml:"free_stream_velocity"` // U_inf [m/s]
	ReferenceX         float64 `yaml:"reference_x"`          // x_ref [m]
}

// ResolverConfig holds the tolerances used when picking the reference wall shear stress.
type ResolverConfig struct {
	MatchTolerance  float64 `yaml:"match_tolerance"`  // absolute, length units
	OffsetTolerance float64 `yaml:"offset_tolerance"` // wall-normal datum offset that triggers an advisory
}

// TheoryConfig describes the synthetic law-of-the-wall grid and the power-law friction correlation.
type TheoryConfig struct {
	Points              int     `yaml:"points"`
	YPlusMin            float64 `yaml:"y_plus_min"`
	YPlusMax            float64 `yaml:"y_plus_max"`
	ViscousLimit        float64 `yaml:"viscous_limit"`
	LogLayerStart       float64 `yaml:"log_layer_start"`
	FrictionCoefficient float64 `yaml:"friction_coefficient"`
	FrictionExponent    float64 `yaml:"friction_exponent"`
}

// InputConfig names the input files and the columns read from them.
type InputConfig struct {
	VelocityFile  string `yaml:"velocity_file"`
	ShearFile     string `yaml:"shear_file"`
	WallNormalCol string `yaml:"wall_normal_column"`
	VelocityCol   string `yaml:"velocity_column"`
	StreamwiseCol string `yaml:"streamwise_column"`
	WallShearCol  string `yaml:"wall_shear_column"`
	Delimiter     string `yaml:"delimiter"`
}

// OutputConfig controls where figures and the optional PDF report go.
type OutputConfig struct {
	Dir       string  `yaml:"dir"`
	Format    string  `yaml:"format"`
	Width     float64 `yaml:"width"`  // points
	Height    float64 `yaml:"height"` // points
	PDFReport string  `yaml:"pdf_report"`
}

// SupportedFormats lists the image formats the gonum vg backends can write.
var SupportedFormats = []string{"png", "svg", "pdf", "jpg", "jpeg", "tif", "tiff", "eps"}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			Density:            1.0,
			KinematicViscosity: 1e-6,
			Kappa:              0.41,
			LogLawIntercept:    5.0,
			FreeStreamVelocity: 1.0,
			ReferenceX:         1.0,
		},
		Resolver: ResolverConfig{
			MatchTolerance:  1e-3,
			OffsetTolerance: 1e-6,
		},
		Theory: TheoryConfig{
			Points:              300,
			YPlusMin:            1,
			YPlusMax:            1000,
			ViscousLimit:        5,
			LogLayerStart:       30,
			FrictionCoefficient: 0.059,
			FrictionExponent:    -0.2,
		},
		Input: InputConfig{
			VelocityFile:  "data1.txt",
			ShearFile:     "data2.txt",
			WallNormalCol: "Points:1",
			VelocityCol:   "U:0",
			StreamwiseCol: "Points:0",
			WallShearCol:  "wallShearStress:0",
			Delimiter:     ",",
		},
		Output: OutputConfig{
			Dir:    ".",
			Format: "png",
			Width:  504, // 7in
			Height: 360, // 5in
		},
	}
}

// Load reads a YAML file on top of Default. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// DelimiterRune returns the field separator as a rune, defaulting to a comma.
func (c InputConfig) DelimiterRune() rune {
	switch c.Delimiter {
	case "", ",":
		return ','
	case `\t`, "tab":
		return '\t'
	}
	return []rune(c.Delimiter)[0]
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	p := c.Physics
	if !(p.Density > 0) {
		errs = append(errs, fmt.Errorf("density must be positive, got %g", p.Density))
	}
	if !(p.KinematicViscosity > 0) {
		errs = append(errs, fmt.Errorf("kinematic viscosity must be positive, got %g", p.KinematicViscosity))
	}
	if !(p.Kappa > 0) {
		errs = append(errs, fmt.Errorf("kappa must be positive, got %g", p.Kappa))
	}
	if !(p.FreeStreamVelocity > 0) {
		errs = append(errs, fmt.Errorf("free-stream velocity must be positive, got %g", p.FreeStreamVelocity))
	}
	if c.Resolver.MatchTolerance < 0 || c.Resolver.OffsetTolerance < 0 {
		errs = append(errs, errors.New("resolver tolerances must be non-negative"))
	}

	t := c.Theory
	if t.Points < 2 {
		errs = append(errs, fmt.Errorf("theory grid needs at least 2 points, got %d", t.Points))
	}
	if !(t.YPlusMin > 0) || !(t.YPlusMin < t.YPlusMax) {
		errs = append(errs, fmt.Errorf("theory y+ range must satisfy 0 < min < max, got [%g, %g]", t.YPlusMin, t.YPlusMax))
	}
	if t.ViscousLimit > t.LogLayerStart {
		errs = append(errs, fmt.Errorf("viscous limit %g exceeds log-layer start %g", t.ViscousLimit, t.LogLayerStart))
	}

	if c.Input.VelocityFile == "" || c.Input.ShearFile == "" {
		errs = append(errs, errors.New("both input files must be named"))
	}
	if len([]rune(c.Input.Delimiter)) > 1 && c.Input.Delimiter != `\t` && c.Input.Delimiter != "tab" {
		errs = append(errs, fmt.Errorf("delimiter must be a single character, got %q", c.Input.Delimiter))
	}

	if !isSupportedFormat(c.Output.Format) {
		errs = append(errs, fmt.Errorf("unsupported image format %q (want one of %s)", c.Output.Format, strings.Join(SupportedFormats, ", ")))
	}
	if !(c.Output.Width > 0) || !(c.Output.Height > 0) {
		errs = append(errs, fmt.Errorf("figure size must be positive, got %gx%g", c.Output.Width, c.Output.Height))
	}
	return errors.Join(errs...)
}

func isSupportedFormat(f string) bool {
	f = strings.ToLower(f)
	for _, s := range SupportedFormats {
		if f == s {
			return true
		}
	}
	return false
}
