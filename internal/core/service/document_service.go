package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/scholarspoint/coaching-admin/internal/api/metrics"
	"github.com/scholarspoint/coaching-admin/internal/core/domain"
	"github.com/scholarspoint/coaching-admin/internal/core/ports"
)

// DocumentService renders receipt and hall-ticket PDFs. Each document embeds
// a QR code encoding the record reference so the front desk can scan it back
// into the system.
type DocumentService struct {
	payments ports.PaymentRepository
	students ports.StudentRepository
	instName string
	logger   zerolog.Logger
}

func NewDocumentService(payments ports.PaymentRepository, students ports.StudentRepository, instName string, logger zerolog.Logger) *DocumentService {
	if instName == "" {
		instName = "Scholars Point Coaching"
	}
	return &DocumentService{payments: payments, students: students, instName: instName, logger: logger}
}

func (s *DocumentService) Receipt(ctx context.Context, paymentID string) ([]byte, error) {
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	blob, err := s.render("Fee Receipt", "receipt:"+payment.ReceiptNo, [][2]string{
		{"Receipt No", payment.ReceiptNo},
		{"Student", payment.StudentName},
		{"Amount", fmt.Sprintf("Rs. %.2f", payment.Amount)},
		{"Mode", payment.Mode},
		{"Date", payment.PaidAt.Format("02 Jan 2006")},
	})
	if err != nil {
		return nil, err
	}
	metrics.DocumentsRenderedTotal.WithLabelValues("receipt").Inc()
	s.logger.Info().Str("receipt_no", payment.ReceiptNo).Msg("receipt rendered")
	return blob, nil
}

// HallTicket verifies the supplied mother name against the student record
// before rendering. The comparison is case-insensitive and ignores
// surrounding whitespace; a mismatch is domain.ErrMotherNameMismatch.
func (s *DocumentService) HallTicket(ctx context.Context, studentID, motherName string) ([]byte, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(strings.TrimSpace(student.MotherName), strings.TrimSpace(motherName)) {
		return nil, domain.ErrMotherNameMismatch
	}

	blob, err := s.render("Hall Ticket - Mock Board Exam", "hallticket:"+student.ID, [][2]string{
		{"Seat No", student.SeatNumber},
		{"Name", student.Name},
		{"Father's Name", student.FatherName},
		{"Standard", student.Standard},
		{"School", student.School},
		{"Centre", student.Centre},
	})
	if err != nil {
		return nil, err
	}
	metrics.DocumentsRenderedTotal.WithLabelValues("hall_ticket").Inc()
	s.logger.Info().Str("student_id", student.ID).Msg("hall ticket rendered")
	return blob, nil
}

// render lays out a one-page document: header, label/value rows, QR code.
func (s *DocumentService) render(title, qrContent string, rows [][2]string) ([]byte, error) {
	qrPNG, err := qrcode.Encode(qrContent, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, s.instName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 20, 30, 30, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
