package compliance

import (
	"fmt"
	"io"
	"strings"
	"time"

	gofpdf "github.com/go-pdf/fpdf"
)

var pdfStatusColors = map[string][]int{
	"compliant":           {22, 163, 74},
	"partially_compliant": {217, 119, 6},
	"non_compliant":       {220, 38, 38},
}

// WritePDF renders a report as a single A4 document.
func WritePDF(w io.Writer, title string, generated time.Time, rep Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.SetCreator("compliance-hub", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, "Generated "+generated.UTC().Format(time.RFC1123), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	addPDFSection(pdf, "Compliance")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdfKeyValue(pdf, "Overall", fmt.Sprintf("%.2f%%", rep.OverallCompliance))
	for _, fw := range rep.Frameworks {
		pdfKeyValue(pdf, fw.Name, fmt.Sprintf("%.2f%% (%d of %d compliant)", fw.Percentage, fw.Compliant, fw.Total))
	}
	pdf.Ln(3)

	addPDFSection(pdf, "Status and risk")
	pdf.SetFont("Helvetica", "", 10)
	for _, k := range orderedKeys(rep.StatusCounts, statusOrder) {
		pdfKeyValue(pdf, humanize(k), fmt.Sprintf("%d", rep.StatusCounts[k]))
	}
	for _, k := range orderedKeys(rep.RiskCounts, riskOrder) {
		pdfKeyValue(pdf, humanize(k)+" risk", fmt.Sprintf("%d", rep.RiskCounts[k]))
	}
	pdf.Ln(3)

	addPDFSection(pdf, "Detailed results")
	if len(rep.DetailedResults) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 6, "No results recorded.", "", 1, "L", false, 0, "")
		return pdf.Output(w)
	}

	widths := []float64{22, 24, 78, 38, 18}
	headers := []string{"Control", "Framework", "Title", "Status", "Risk"}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(30, 41, 59)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, d := range rep.DetailedResults {
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(widths[0], 6, tr(d.ControlID), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, tr(d.Framework), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, tr(truncate(d.Title, 52)), "1", 0, "L", false, 0, "")
		if c, ok := pdfStatusColors[d.Status]; ok {
			pdf.SetTextColor(c[0], c[1], c[2])
		}
		pdf.CellFormat(widths[3], 6, tr(humanize(d.Status)), "1", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(widths[4], 6, tr(d.RiskLevel), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

func addPDFSection(pdf *gofpdf.Fpdf, name string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(0, 8, name, "B", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func pdfKeyValue(pdf *gofpdf.Fpdf, key, value string) {
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(50, 6, key, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func humanize(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
