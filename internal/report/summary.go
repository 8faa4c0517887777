package report

import (
	"fmt"
	"io"

	"github.com/user/bl_analyzer_go/internal/analysis"
)

// WriteSummary prints the reference-state scalars.
func WriteSummary(w io.Writer, res *analysis.AnalysisResults) error {
	ref := res.Reference
	_, err := fmt.Fprintf(w, "\nFriction velocity: u* = %.6e m/s\n"+
		"\nSkin-friction coefficient (simulated): c_f = %.6e\n"+
		"Skin-friction coefficient (von Kármán): c_f = %.6e\n"+
		"Re_x = %.3e\n",
		ref.FrictionVelocity, ref.CfSimulated, ref.CfTheoretical, ref.ReynoldsX)
	return err
}
