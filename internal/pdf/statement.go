package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"gripinvest/internal/models"
)

// Generator — интерфейс (удобно мокать в тестах)
type Generator interface {
	InvestmentStatement(user *models.User, inv *models.Investment) ([]byte, error)
}

type StatementGenerator struct{}

func NewStatementGenerator() *StatementGenerator {
	return &StatementGenerator{}
}

// InvestmentStatement renders a one-page receipt for a placed investment.
func (g *StatementGenerator) InvestmentStatement(user *models.User, inv *models.Investment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Investment Statement %s", inv.ID), false)
	pdf.SetAuthor("Grip Invest", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "INVESTMENT STATEMENT", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Ref %s / %s", inv.ID, inv.CreatedAt.Format("02.01.2006")),
		"", 1, "C", false, 0, "")
	hr(pdf)
	pdf.Ln(3)

	sectionTitle(pdf, "Investor")
	kvLine(pdf, "Name", fmt.Sprintf("%s %s", user.FirstName, user.LastName))
	kvLine(pdf, "Email", user.Email)
	pdf.Ln(2)
	hr(pdf)

	sectionTitle(pdf, "Investment")
	kvLine(pdf, "Product", inv.ProductName)
	kvLine(pdf, "Type", inv.InvestmentType)
	kvLine(pdf, "Risk level", inv.RiskLevel)
	kvLine(pdf, "Amount", fmt.Sprintf("%.2f", inv.Amount))
	kvLine(pdf, "Expected return", fmt.Sprintf("%.2f", inv.ExpectedReturn))
	kvLine(pdf, "Maturity date", inv.MaturityDate.Format("02.01.2006"))
	pdf.Ln(2)
	hr(pdf)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Expected returns are indicative and not guaranteed. Generated by Grip Invest.",
		"", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render statement: %w", err)
	}
	return buf.Bytes(), nil
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func kvLine(pdf *gofpdf.Fpdf, key, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(45, 6, key, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func hr(pdf *gofpdf.Fpdf) {
	x, y := pdf.GetXY()
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	pdf.Line(left, y, pageW-right, y)
	pdf.SetXY(x, y+1)
}
