package services

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"

	"handyhub/backend/models"
)

// WriteCSV streams records as CSV using the same projection the table view
// renders, header row first.
func WriteCSV(w io.Writer, records []models.Record, columns []models.Column) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers(columns)); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range Project(records, columns) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePDF renders records as a landscape table, header row on every page.
func WritePDF(w io.Writer, title string, records []models.Record, columns []models.Column) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, false)

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(columns))

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(30, 108, 179)
		pdf.SetTextColor(255, 255, 255)
		for _, h := range Headers(columns) {
			pdf.CellFormat(colW, 8, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()
	for _, row := range Project(records, columns) {
		for _, cell := range row {
			pdf.CellFormat(colW, 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}
