package report

import (
	"bytes"
	"fmt"
	"image/png"
	"math"

	"github.com/jung-kurt/gofpdf"

	"github.com/user/bl_analyzer_go/internal/analysis"
	"github.com/user/bl_analyzer_go/internal/config"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// pdfStyler holds reusable styling and the flowing Y position.
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	tr          func(string) string
	styles      map[string]func()
	lineHeight  float64
	currentY    float64
	pageHeight  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		tr:          pdf.UnicodeTranslatorFromDescriptor(""), // core fonts are cp1252
		styles:      make(map[string]func()),
		lineHeight:  6,
		pageHeight:  pdfPageHeightLandscape - pdfMargin,
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 13)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["warning"] = func() {
		s.pdf.SetFont("Arial", "I", 10)
		s.pdf.SetTextColor(180, 90, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.newPage()
	}
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	lines := s.pdf.SplitLines([]byte(s.tr(text)), pdfContentWidth)
	s.checkAddPage(math.Max(1, float64(len(lines))) * s.lineHeight)

	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, s.tr(text), "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

func (s *pdfStyler) addTable(headers []string, colWidthsRel []float64, rows [][]string) {
	colWidths := make([]float64, len(colWidthsRel))
	for i, rel := range colWidthsRel {
		colWidths[i] = rel * pdfContentWidth
	}
	s.checkAddPage(s.lineHeight * float64(len(rows)+1))

	writeRow := func(cells []string, style string, fill bool) {
		s.checkAddPage(s.lineHeight)
		s.applyStyle(style)
		x := pdfMargin
		for i, cell := range cells {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(colWidths[i], s.lineHeight, s.tr(cell), "1", 0, "C", fill, 0, "")
			x += colWidths[i]
		}
		s.currentY += s.lineHeight
	}
	writeRow(headers, "tableHeader", true)
	for _, row := range rows {
		writeRow(row, "tableCell", false)
	}
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width, height float64, caption string) {
	s.pdf.RegisterImageReader(imageName, "PNG", bytes.NewReader(imageBytes))

	if width > pdfContentWidth {
		height *= pdfContentWidth / width
		width = pdfContentWidth
	}
	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	x := pdfMargin + (pdfContentWidth-width)/2
	s.pdf.Image(imageName, x, s.currentY, width, height, false, "PNG", 0, "")
	s.currentY += height

	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	s.addSpacer(2)
}

// pngAspect returns height/width of an encoded PNG, or fallback if it cannot be read.
func pngAspect(data []byte, fallback float64) float64 {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width == 0 {
		return fallback
	}
	return float64(cfg.Height) / float64(cfg.Width)
}

// referenceRows tabulates the reference state.
func referenceRows(res *analysis.AnalysisResults, cfg config.Config) [][]string {
	ref := res.Reference
	sh := ref.Shear
	source := fmt.Sprintf("%s (%d rows within %g m)", sh.Method, sh.Matches, cfg.Resolver.MatchTolerance)
	if sh.Method == analysis.ExactMatch {
		source = fmt.Sprintf("%s, data row %d (%d rows within %g m)", sh.Method, sh.Row+1, sh.Matches, cfg.Resolver.MatchTolerance)
	}
	return [][]string{
		{"Reference position x_ref", fmt.Sprintf("%g", sh.XRef), "m"},
		{"Wall shear stress |tau_w|", fmt.Sprintf("%.6e", sh.TauW), "Pa"},
		{"tau_w source", source, ""},
		{"Friction velocity u*", fmt.Sprintf("%.6e", ref.FrictionVelocity), "m/s"},
		{"Reynolds number Re_x", fmt.Sprintf("%.3e", ref.ReynoldsX), "-"},
		{"c_f simulated", fmt.Sprintf("%.6e", ref.CfSimulated), "-"},
		{"c_f von Kármán (0.059 Re_x^-0.2)", fmt.Sprintf("%.6e", ref.CfTheoretical), "-"},
		{"Wall-normal offset removed", fmt.Sprintf("%.2e", res.WallOffset), "m"},
	}
}

// BuildPDFReport writes a report with the reference-state table, the
// analysis warnings and every figure that has a PNG rendering.
func BuildPDFReport(filepath string, res *analysis.AnalysisResults, cfg config.Config, rendered []Rendered) error {
	if res == nil {
		return fmt.Errorf("no analysis results to report")
	}

	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetTitle("Boundary-layer post-processing report", true)

	styler := newPDFStyler(pdf)
	styler.newPage()

	styler.writeParagraph("Turbulent Boundary-Layer Post-Processing Report", "h1", "C")
	styler.addSpacer(3)
	styler.writeParagraph(fmt.Sprintf("Velocity profile: %s (%d points)    Wall shear stress: %s (%d points)",
		cfg.Input.VelocityFile, res.Profile.Len(), cfg.Input.ShearFile, len(res.Friction.X)), "normal", "L")
	styler.writeParagraph(fmt.Sprintf("rho = %g kg/m³, nu = %g m²/s, kappa = %g, B = %g, U_inf = %g m/s",
		cfg.Physics.Density, cfg.Physics.KinematicViscosity, cfg.Physics.Kappa, cfg.Physics.LogLawIntercept, cfg.Physics.FreeStreamVelocity), "normal", "L")
	styler.addSpacer(4)

	styler.writeParagraph("Reference State", "h2", "L")
	styler.addTable([]string{"Quantity", "Value", "Unit"}, []float64{0.4, 0.4, 0.2}, referenceRows(res, cfg))
	styler.addSpacer(4)

	styler.writeParagraph("Warnings", "h2", "L")
	if len(res.AnalysisWarnings) == 0 {
		styler.writeParagraph("None.", "normal", "L")
	}
	for _, w := range res.AnalysisWarnings {
		styler.writeParagraph("- "+w, "warning", "L")
	}

	imgWidth := pdfContentWidth * 0.75
	for _, r := range rendered {
		if len(r.PNG) == 0 {
			continue
		}
		styler.newPage()
		styler.writeParagraph(r.Figure.Title, "h2", "L")
		aspect := pngAspect(r.PNG, 5.0/7.0)
		caption := ""
		if r.Figure.Dropped > 0 {
			caption = fmt.Sprintf("%d data points with non-positive coordinates are not shown on the logarithmic axis.", r.Figure.Dropped)
		}
		styler.addImage(r.PNG, r.Figure.Name, imgWidth, imgWidth*aspect, caption)
	}

	return pdf.OutputFileAndClose(filepath)
}
