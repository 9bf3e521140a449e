package ports

import "context"

// DocumentService renders PDF blobs for receipts and hall tickets. Each blob
// embeds a QR code encoding the record reference.
type DocumentService interface {
	// Receipt renders the receipt PDF for a payment.
	Receipt(ctx context.Context, paymentID string) ([]byte, error)
	// HallTicket renders the exam-admission PDF for a student after
	// verifying the supplied mother name against the record. A mismatch is
	// domain.ErrMotherNameMismatch.
	HallTicket(ctx context.Context, studentID, motherName string) ([]byte, error)
}
