package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets and fee receipts into PDF documents.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			value := row[header]
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// ReceiptData carries the fields printed on a payment receipt.
type ReceiptData struct {
	SchoolName  string
	ReceiptNo   string
	StudentName string
	RegNo       string
	ClassLabel  string
	AmountPaid  string
	PaymentMode string
	PaymentDate string
	BalanceDue  string
}

// RenderReceipt produces a single-payment fee receipt.
func (e *PDFExporter) RenderReceipt(data ReceiptData) ([]byte, error) {
	if data.ReceiptNo == "" {
		return nil, fmt.Errorf("receipt requires a receipt number")
	}
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 14, 12)
	pdf.AddPage()

	title := data.SchoolName
	if title == "" {
		title = "FEE RECEIPT"
	}
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 9, strings.ToUpper(title), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Fee Payment Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	rows := [][2]string{
		{"Receipt No", data.ReceiptNo},
		{"Student", data.StudentName},
		{"Registration No", data.RegNo},
		{"Class", data.ClassLabel},
		{"Amount Paid", data.AmountPaid},
		{"Payment Mode", data.PaymentMode},
		{"Payment Date", data.PaymentDate},
		{"Balance Due", data.BalanceDue},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(45, 8, row[0], "1", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 8, row[1], "1", 1, "", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}
