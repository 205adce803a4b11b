package admin

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"lexbook/models"
)

// ExportFilename builds the attachment name for a CSV export.
func ExportFilename(kind string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", kind, now.Format("2006-01-02"))
}

// WriteConsultationsCSV streams the consultation listing as CSV.
func WriteConsultationsCSV(w io.Writer, rows []models.AdminConsultation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"ID", "First Name", "Last Name", "Email", "Phone", "Practice Area",
		"Type", "Status", "Preferred Date", "Preferred Time", "Message", "Created At",
	}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.ID, row.FirstName, row.LastName, row.Email, row.Phone,
			row.PracticeArea, row.ConsultationType, row.Status,
			row.PreferredDate, row.PreferredTime, row.Message, row.CreatedAt,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePaymentsCSV streams the payment listing as CSV.
func WritePaymentsCSV(w io.Writer, rows []models.AdminPayment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"ID", "Transaction ID", "Amount", "Payment Method", "Status",
		"Client Name", "Client Email", "Created At",
	}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.ID, row.TransactionID, strconv.Itoa(row.Amount), row.PaymentMethod,
			row.Status, row.ClientName, row.ClientEmail, row.CreatedAt,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteUsersCSV streams the contact listing as CSV.
func WriteUsersCSV(w io.Writer, rows []models.AdminUser) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"ID", "First Name", "Last Name", "Email", "Phone",
		"Free Consultation Used", "Total Consultations", "Total Paid", "Created At",
	}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.ID, row.FirstName, row.LastName, row.Email, row.Phone,
			strconv.FormatBool(row.FreeConsultationUsed),
			strconv.Itoa(row.TotalConsultations), strconv.Itoa(row.TotalPaid),
			row.CreatedAt,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
