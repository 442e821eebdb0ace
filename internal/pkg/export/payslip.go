package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/haulops/payroll-engine/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
)

// PayslipPDF renders a published payslip as a single A4 document.
func PayslipPDF(p payroll.Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("Payslip %04d-%02d", p.Year, p.Month), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Payslip %s %d", time.Month(p.Month), p.Year))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	name := p.EmployeeID
	if p.EmployeeName != nil {
		name = *p.EmployeeName
	}
	pdf.Cell(0, 7, tr(fmt.Sprintf("Employee: %s", name)))
	pdf.Ln(6)
	if p.EmployeeCode != nil {
		pdf.Cell(0, 7, fmt.Sprintf("Code: %s", *p.EmployeeCode))
		pdf.Ln(6)
	}
	if !p.GeneratedAt.IsZero() {
		pdf.Cell(0, 7, fmt.Sprintf("Generated: %s", p.GeneratedAt.Format("2006-01-02 15:04")))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	widths := []float64{10, 70, 30, 30, 35}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range []string{"#", "Concept", "Quantity", "Rate", "Amount"} {
		align := "R"
		if i == 1 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 7, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, l := range p.Lines {
		pdf.CellFormat(widths[0], 7, fmt.Sprint(l.Position), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[1], 7, tr(l.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, l.Quantity.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, l.Rate.StringFixed(4), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, l.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
		if l.Notes != "" {
			pdf.SetFont("Helvetica", "I", 8)
			pdf.MultiCell(0, 4, tr(l.Notes), "", "L", false)
			pdf.SetFont("Helvetica", "", 10)
		}
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3], 8, "Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(widths[4], 8, p.TotalAmount.StringFixed(2), "1", 0, "R", true, 0, "")
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// PayslipFileName is the download name of a payslip document.
func PayslipFileName(p payroll.Payslip) string {
	who := p.EmployeeID
	if p.EmployeeCode != nil && *p.EmployeeCode != "" {
		who = *p.EmployeeCode
	}
	return fmt.Sprintf("payslip-%s-%04d-%02d.pdf", who, p.Year, p.Month)
}
