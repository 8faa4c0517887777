package analysis

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/bl_analyzer_go/internal/config"
	"github.com/user/bl_analyzer_go/internal/parser"
)

func TestAnalyzeBoundaryLayer_FlatPlate(t *testing.T) {
	velocity := parser.VelocityProfile{Y: []float64{0.0, 0.01, 0.1}, U: []float64{0.0, 0.5, 1.0}}
	shear := parser.WallShearProfile{X: []float64{1.0}, Tau: []float64{0.002}}

	res, err := AnalyzeBoundaryLayer(velocity, shear, config.Default())
	require.NoError(t, err)

	ref := res.Reference
	assert.Equal(t, ExactMatch, ref.Shear.Method)
	assert.Equal(t, 0, ref.Shear.Row)
	assert.InDelta(t, math.Sqrt(0.002), ref.FrictionVelocity, 1e-15)
	assert.InDelta(t, 0.04472, ref.FrictionVelocity, 1e-5)
	assert.InDelta(t, 1e6, ref.ReynoldsX, 1e-6)
	assert.InDelta(t, 0.004, ref.CfSimulated, 1e-15)
	assert.InDelta(t, 0.059*math.Pow(1e6, -0.2), ref.CfTheoretical, 1e-15)
	assert.InDelta(t, 0.003723, ref.CfTheoretical, 1e-6)

	assert.Zero(t, res.WallOffset)
	assert.Empty(t, res.AnalysisWarnings)

	uStar := ref.FrictionVelocity
	wantYPlus := []float64{0, uStar * 0.01 / 1e-6, uStar * 0.1 / 1e-6}
	wantUPlus := []float64{0, 0.5 / uStar, 1 / uStar}
	approx := cmpopts.EquateApprox(1e-12, 0)
	if diff := cmp.Diff(wantYPlus, res.Dimensionless.YPlus, approx); diff != "" {
		t.Errorf("y+ mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantUPlus, res.Dimensionless.UPlus, approx); diff != "" {
		t.Errorf("U+ mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, res.Friction.Cf, 1)
	assert.InDelta(t, 0.004, res.Friction.Cf[0], 1e-15)
	assert.InDelta(t, ref.CfTheoretical, res.Friction.CfTheory[0], 1e-15)
}

func TestAnalyzeBoundaryLayer_OffsetAdvisory(t *testing.T) {
	velocity := parser.VelocityProfile{Y: []float64{0.5, 0.51, 0.6}, U: []float64{0.0, 0.5, 1.0}}
	shear := parser.WallShearProfile{X: []float64{0.5, 1.5}, Tau: []float64{-0.001, -0.003}}

	res, err := AnalyzeBoundaryLayer(velocity, shear, config.Default())
	require.NoError(t, err)

	assert.Equal(t, 0.5, res.WallOffset)
	assert.Equal(t, 0.0, res.Profile.Y[0])
	assert.Equal(t, Interpolated, res.Reference.Shear.Method)
	assert.InDelta(t, 0.002, res.Reference.Shear.TauW, 1e-15)
	require.Len(t, res.AnalysisWarnings, 1)
	assert.Contains(t, res.AnalysisWarnings[0], "offset subtracted")

	// The input is not modified.
	assert.Equal(t, 0.5, velocity.Y[0])
}

func TestAnalyzeBoundaryLayer_ZeroShear(t *testing.T) {
	velocity := parser.VelocityProfile{Y: []float64{0, 1}, U: []float64{0, 1}}
	shear := parser.WallShearProfile{X: []float64{1.0}, Tau: []float64{0}}

	_, err := AnalyzeBoundaryLayer(velocity, shear, config.Default())
	assert.ErrorIs(t, err, ErrNonPositiveShear)
}

func TestAnalyzeBoundaryLayer_EmptyVelocity(t *testing.T) {
	shear := parser.WallShearProfile{X: []float64{1.0}, Tau: []float64{0.002}}

	_, err := AnalyzeBoundaryLayer(parser.VelocityProfile{}, shear, config.Default())
	assert.ErrorIs(t, err, ErrDegenerateVelocity)
}

func TestAnalyzeBoundaryLayer_ReferenceConditions(t *testing.T) {
	tests := []struct {
		name string
		uInf float64
		xRef float64
		nu   float64
		reX  float64
	}{
		{"default", 1.0, 1.0, 1e-6, 1e6},
		{"faster", 10.0, 1.0, 1e-6, 1e7},
		{"upstream", 1.0, 0.25, 1e-6, 2.5e5},
		{"air", 1.0, 1.0, 1.5e-5, 1.0 / 1.5e-5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Physics.FreeStreamVelocity = tc.uInf
			cfg.Physics.ReferenceX = tc.xRef
			cfg.Physics.KinematicViscosity = tc.nu

			velocity := parser.VelocityProfile{Y: []float64{0, 0.01}, U: []float64{0, 0.5}}
			shear := parser.WallShearProfile{X: []float64{0, 2}, Tau: []float64{0.004, 0.002}}

			res, err := AnalyzeBoundaryLayer(velocity, shear, cfg)
			require.NoError(t, err)
			assert.InEpsilon(t, tc.reX, res.Reference.ReynoldsX, 1e-12)

			tau := 0.004 - 0.001*tc.xRef
			assert.InEpsilon(t, tau, res.Reference.Shear.TauW, 1e-12)
			assert.InEpsilon(t, 2*tau/(tc.uInf*tc.uInf), res.Reference.CfSimulated, 1e-12)
		})
	}
}
