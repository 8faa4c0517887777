package analysis

import (
	"fmt"

	"github.com/user/bl_analyzer_go/internal/config"
	"github.com/user/bl_analyzer_go/internal/parser"
)

// AnalyzeBoundaryLayer runs the numerical pipeline: resolve the reference
// wall shear stress, normalise the wall-normal coordinate, scale to wall
// units and evaluate the theoretical curves. It does no I/O.
func AnalyzeBoundaryLayer(velocity parser.VelocityProfile, shear parser.WallShearProfile, cfg config.Config) (*AnalysisResults, error) {
	if velocity.Len() == 0 {
		return nil, ErrDegenerateVelocity
	}
	phys := cfg.Physics
	results := NewAnalysisResults()

	resolution, warnings, err := ResolveWallShear(shear, phys.ReferenceX, cfg.Resolver.MatchTolerance)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve wall shear stress: %w", err)
	}
	results.AnalysisWarnings = append(results.AnalysisWarnings, warnings...)
	if !(resolution.TauW > 0) {
		return nil, fmt.Errorf("resolved tau_w=%g at x_ref=%g (%s): %w", resolution.TauW, phys.ReferenceX, resolution.Method, ErrNonPositiveShear)
	}

	y, offset, shifted := NormalizeWallNormal(velocity.Y, cfg.Resolver.OffsetTolerance)
	results.WallOffset = offset
	if shifted {
		results.AnalysisWarnings = append(results.AnalysisWarnings, fmt.Sprintf("Minimum wall-normal coordinate is %.2e m; offset subtracted.", offset))
	}
	results.Profile = parser.VelocityProfile{Y: y, U: append([]float64(nil), velocity.U...)}

	uStar, err := FrictionVelocity(resolution.TauW, phys.Density)
	if err != nil {
		return nil, err
	}
	reX := ReynoldsNumber(phys.FreeStreamVelocity, phys.ReferenceX, phys.KinematicViscosity)
	results.Reference = ReferenceState{
		Shear:            resolution,
		FrictionVelocity: uStar,
		ReynoldsX:        reX,
		CfSimulated:      SkinFriction(resolution.TauW, phys.Density, phys.FreeStreamVelocity),
		CfTheoretical:    PowerLawFriction(reX, cfg.Theory.FrictionCoefficient, cfg.Theory.FrictionExponent),
	}

	results.Dimensionless, err = ToWallUnits(results.Profile, uStar, phys.KinematicViscosity)
	if err != nil {
		return nil, err
	}

	results.TheoryPlus = NewLawOfWall(cfg.Theory, phys.Kappa, phys.LogLawIntercept)
	results.TheoryPhysical = results.TheoryPlus.Physical(uStar, phys.KinematicViscosity)
	results.Friction = NewLocalFriction(shear.X, shear.Tau, phys, cfg.Theory)

	return results, nil
}
