package analysis

import (
	"errors"

	"github.com/user/bl_analyzer_go/internal/parser"
)

var (
	// ErrNonPositiveShear is returned when the resolved wall shear stress is
	// zero or not finite, which leaves the friction velocity undefined.
	ErrNonPositiveShear = errors.New("wall shear stress must be positive")
	// ErrNotMonotonic is returned when interpolation is needed but the
	// streamwise positions are not strictly increasing.
	ErrNotMonotonic = errors.New("streamwise positions are not strictly increasing")
	// ErrInsufficientData is returned when interpolation is needed with fewer than two rows.
	ErrInsufficientData = errors.New("at least two rows are required to interpolate")
	// ErrDegenerateVelocity is returned when there is no velocity profile to scale.
	ErrDegenerateVelocity = errors.New("velocity profile is empty")
)

// ResolutionMethod tells which branch produced the reference shear stress.
type ResolutionMethod int

const (
	ExactMatch ResolutionMethod = iota
	Interpolated
)

func (m ResolutionMethod) String() string {
	switch m {
	case ExactMatch:
		return "exact match"
	case Interpolated:
		return "linear interpolation"
	}
	return "unknown"
}

// ShearResolution is the wall shear stress picked at the reference position.
type ShearResolution struct {
	Method       ResolutionMethod
	XRef         float64
	TauW         float64 // |tau_w| at XRef
	Row          int     // matched row for ExactMatch, -1 otherwise
	Matches      int     // rows within the match tolerance
	Extrapolated bool    // XRef outside the data range; value clamped to the end row
}

// ReferenceState holds the scalars derived once per run.
type ReferenceState struct {
	Shear            ShearResolution
	FrictionVelocity float64 // u* [m/s]
	ReynoldsX        float64 // Re_x at x_ref
	CfSimulated      float64
	CfTheoretical    float64
}

// DimensionlessProfile is the velocity profile in wall units.
type DimensionlessProfile struct {
	YPlus []float64
	UPlus []float64
}

// Segment is one ordered run of a closed-form curve.
type Segment struct {
	X []float64
	Y []float64
}

// Len returns the number of points.
func (s Segment) Len() int { return len(s.X) }

// LawOfWall is the two-part theoretical velocity profile. The buffer layer
// between the viscous limit and the log-layer start is left empty.
type LawOfWall struct {
	Viscous  Segment
	LogLayer Segment
}

// LocalFriction holds the per-row friction coefficient along the plate, in
// the order of the shear table.
type LocalFriction struct {
	X         []float64
	ReynoldsX []float64
	Cf        []float64
	CfTheory  []float64 // NaN where ReynoldsX <= 0
}

// AnalysisResults holds everything the report stage needs.
type AnalysisResults struct {
	Profile          parser.VelocityProfile // wall-normal coordinate shifted to start at zero
	WallOffset       float64                // minimum raw wall-normal coordinate that was subtracted
	Reference        ReferenceState
	Dimensionless    DimensionlessProfile
	TheoryPlus       LawOfWall // wall units
	TheoryPhysical   LawOfWall // metres, m/s
	Friction         LocalFriction
	AnalysisWarnings []string
}

func NewAnalysisResults() *AnalysisResults {
	return &AnalysisResults{
		AnalysisWarnings: make([]string, 0),
	}
}
