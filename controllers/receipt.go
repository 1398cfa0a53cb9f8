package controllers

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/LokeshAnde180/docspot/models"
)

// generateReceiptPDF renders the payment receipt attached to the
// confirmation email.
func generateReceiptPDF(appointment *models.Appointment, customer *models.User, doctorName, receiptID string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(128, 0, 128)
	pdf.CellFormat(0, 10, "DocSpot - Clinic Appointment Booking", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "Payment Receipt", "1", 1, "C", false, 0, "")

	addReceiptDetail(pdf, "Receipt ID", receiptID)
	addReceiptDetail(pdf, "Customer", customer.Username)
	addReceiptDetail(pdf, "Doctor", doctorName)
	addReceiptDetail(pdf, "Appointment ID", fmt.Sprintf("%d", appointment.ID))
	addReceiptDetail(pdf, "Date", appointment.Date)
	addReceiptDetail(pdf, "Time", appointment.Time)
	addReceiptDetail(pdf, "Status", string(appointment.Status))
	addReceiptDetail(pdf, "Payment Status", string(appointment.PaymentStatus))

	pdf.SetY(pdf.GetY() + 12)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 10, "This is a computer generated receipt", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addReceiptDetail(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(45, 10, label, "1", 0, "", false, 0, "")
	pdf.CellFormat(0, 10, value, "1", 1, "", false, 0, "")
}
