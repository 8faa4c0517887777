package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/user/bl_analyzer_go/internal/parser"
)

// FrictionVelocity returns u* = sqrt(tau_w / rho).
func FrictionVelocity(tauW, rho float64) (float64, error) {
	if !(rho > 0) {
		return math.NaN(), fmt.Errorf("density must be positive, got %g", rho)
	}
	if tauW < 0 || math.IsNaN(tauW) || math.IsInf(tauW, 0) {
		return math.NaN(), fmt.Errorf("tau_w=%g: %w", tauW, ErrNonPositiveShear)
	}
	return math.Sqrt(tauW / rho), nil
}

// ToWallUnits converts a velocity profile to y+ = u* y / nu and U+ = U / u*.
func ToWallUnits(p parser.VelocityProfile, uStar, nu float64) (DimensionlessProfile, error) {
	if p.Len() == 0 {
		return DimensionlessProfile{}, ErrDegenerateVelocity
	}
	if !(uStar > 0) {
		return DimensionlessProfile{}, fmt.Errorf("u*=%g: %w", uStar, ErrNonPositiveShear)
	}
	if !(nu > 0) {
		return DimensionlessProfile{}, fmt.Errorf("kinematic viscosity must be positive, got %g", nu)
	}
	return DimensionlessProfile{
		YPlus: floats.ScaleTo(make([]float64, p.Len()), uStar/nu, p.Y),
		UPlus: floats.ScaleTo(make([]float64, p.Len()), 1/uStar, p.U),
	}, nil
}
