package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/user/bl_analyzer_go/internal/parser"
)

// ResolveWallShear picks |tau_w| at xRef. If any streamwise position lies
// within tol of xRef the first such row wins; otherwise |tau| is linearly
// interpolated over the positions, which must then be strictly increasing.
// Warnings describe ambiguous matches and clamped extrapolation.
func ResolveWallShear(shear parser.WallShearProfile, xRef, tol float64) (ShearResolution, []string, error) {
	var warnings []string
	res := ShearResolution{XRef: xRef, Row: -1}

	if shear.Len() == 0 {
		return res, nil, ErrInsufficientData
	}

	first := -1
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, x := range shear.X {
		if math.Abs(x-xRef) > tol {
			continue
		}
		res.Matches++
		tau := math.Abs(shear.Tau[i])
		lo, hi = math.Min(lo, tau), math.Max(hi, tau)
		if first < 0 {
			first = i
		}
	}

	if first >= 0 {
		res.Method = ExactMatch
		res.Row = first
		res.TauW = math.Abs(shear.Tau[first])
		if res.Matches > 1 && hi != lo {
			warnings = append(warnings, fmt.Sprintf("%d rows lie within %g of x_ref=%g with |tau_w| between %.6e and %.6e; using row %d.", res.Matches, tol, xRef, lo, hi, first+1))
		}
		return res, warnings, nil
	}

	res.Method = Interpolated
	if shear.Len() < 2 {
		return res, warnings, fmt.Errorf("no row within %g of x_ref=%g: %w", tol, xRef, ErrInsufficientData)
	}
	for i := 1; i < shear.Len(); i++ {
		if !(shear.X[i] > shear.X[i-1]) {
			return res, warnings, fmt.Errorf("rows %d and %d (x=%g, x=%g): %w", i, i+1, shear.X[i-1], shear.X[i], ErrNotMonotonic)
		}
	}

	absTau := make([]float64, shear.Len())
	for i, tau := range shear.Tau {
		absTau[i] = math.Abs(tau)
	}

	xMin, xMax := shear.X[0], shear.X[shear.Len()-1]
	switch {
	case xRef <= xMin:
		res.TauW = absTau[0]
	case xRef >= xMax:
		res.TauW = absTau[len(absTau)-1]
	default:
		var pl interp.PiecewiseLinear
		if err := pl.Fit(shear.X, absTau); err != nil {
			return res, warnings, fmt.Errorf("failed to fit shear stress: %w", err)
		}
		res.TauW = pl.Predict(xRef)
	}
	if xRef < xMin || xRef > xMax {
		res.Extrapolated = true
		warnings = append(warnings, fmt.Sprintf("x_ref=%g lies outside the shear data range [%g, %g]; using the nearest end value.", xRef, xMin, xMax))
	}
	return res, warnings, nil
}

// NormalizeWallNormal shifts y so that its minimum becomes zero. It returns
// the shifted copy, the subtracted offset and whether the offset exceeded tol.
func NormalizeWallNormal(y []float64, tol float64) ([]float64, float64, bool) {
	if len(y) == 0 {
		return nil, 0, false
	}
	offset := floats.Min(y)
	out := make([]float64, len(y))
	copy(out, y)
	floats.AddConst(-offset, out)
	return out, offset, offset > tol
}
