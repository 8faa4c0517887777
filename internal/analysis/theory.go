package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/user/bl_analyzer_go/internal/config"
)

// YPlusGrid returns t.Points values log-spaced over [YPlusMin, YPlusMax].
func YPlusGrid(t config.TheoryConfig) []float64 {
	return floats.LogSpan(make([]float64, t.Points), t.YPlusMin, t.YPlusMax)
}

// NewLawOfWall evaluates the viscous sublayer (U+ = y+ for y+ < ViscousLimit)
// and the log law (U+ = ln(y+)/kappa + B for y+ > LogLayerStart) on the grid.
func NewLawOfWall(t config.TheoryConfig, kappa, b float64) LawOfWall {
	var law LawOfWall
	for _, yp := range YPlusGrid(t) {
		switch {
		case yp < t.ViscousLimit:
			law.Viscous.X = append(law.Viscous.X, yp)
			law.Viscous.Y = append(law.Viscous.Y, yp)
		case yp > t.LogLayerStart:
			law.LogLayer.X = append(law.LogLayer.X, yp)
			law.LogLayer.Y = append(law.LogLayer.Y, LogLaw(yp, kappa, b))
		}
	}
	return law
}

// LogLaw returns U+ = ln(y+)/kappa + b.
func LogLaw(yPlus, kappa, b float64) float64 {
	return math.Log(yPlus)/kappa + b
}

// Physical rescales a wall-unit law to y = y+ nu/u* and U = U+ u*.
func (l LawOfWall) Physical(uStar, nu float64) LawOfWall {
	scale := func(s Segment) Segment {
		return Segment{
			X: floats.ScaleTo(make([]float64, s.Len()), nu/uStar, s.X),
			Y: floats.ScaleTo(make([]float64, s.Len()), uStar, s.Y),
		}
	}
	return LawOfWall{Viscous: scale(l.Viscous), LogLayer: scale(l.LogLayer)}
}

// ReynoldsNumber returns U_inf x / nu.
func ReynoldsNumber(uInf, x, nu float64) float64 {
	return uInf * x / nu
}

// SkinFriction returns c_f = 2 |tau_w| / (rho U_inf^2).
func SkinFriction(tauW, rho, uInf float64) float64 {
	return 2 * math.Abs(tauW) / (rho * uInf * uInf)
}

// PowerLawFriction returns the empirical c_f = coef * Re_x^exp (0.059 Re_x^-0.2
// for the 1/7-power profile). It is NaN for Re_x <= 0.
func PowerLawFriction(reX, coef, exp float64) float64 {
	if !(reX > 0) {
		return math.NaN()
	}
	return coef * math.Pow(reX, exp)
}

// NewLocalFriction evaluates the simulated and power-law friction
// coefficients on every row of the shear table.
func NewLocalFriction(x, tau []float64, p config.PhysicsConfig, t config.TheoryConfig) LocalFriction {
	lf := LocalFriction{
		X:         append([]float64(nil), x...),
		ReynoldsX: make([]float64, len(x)),
		Cf:        make([]float64, len(x)),
		CfTheory:  make([]float64, len(x)),
	}
	for i := range x {
		lf.ReynoldsX[i] = ReynoldsNumber(p.FreeStreamVelocity, x[i], p.KinematicViscosity)
		lf.Cf[i] = SkinFriction(tau[i], p.Density, p.FreeStreamVelocity)
		lf.CfTheory[i] = PowerLawFriction(lf.ReynoldsX[i], t.FrictionCoefficient, t.FrictionExponent)
	}
	return lf
}
