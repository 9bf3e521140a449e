package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/scholarspoint/coaching-admin/internal/core/domain"
	"github.com/scholarspoint/coaching-admin/internal/core/ports"
	"github.com/scholarspoint/coaching-admin/internal/core/query"
)

// PaymentService records fee payments and lists them through the filter
// pipeline.
type PaymentService struct {
	payments ports.PaymentRepository
	students ports.StudentRepository
	logger   zerolog.Logger
}

func NewPaymentService(payments ports.PaymentRepository, students ports.StudentRepository, logger zerolog.Logger) *PaymentService {
	return &PaymentService{payments: payments, students: students, logger: logger}
}

func (s *PaymentService) Record(ctx context.Context, input ports.RecordPaymentInput) (*domain.Payment, error) {
	student, err := s.students.FindByID(ctx, input.StudentID)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		ReceiptNo:    generateReceiptNo(),
		StudentID:    student.ID,
		StudentName:  student.Name,
		CounsellorID: input.CounsellorID,
		Amount:       input.Amount,
		Mode:         input.Mode,
		PaidAt:       time.Now().UTC(),
	}

	created, err := s.payments.Create(ctx, payment)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to record payment")
		return nil, err
	}
	s.logger.Info().Str("receipt_no", created.ReceiptNo).Str("student_id", created.StudentID).Msg("payment recorded")
	return created, nil
}

func (s *PaymentService) List(ctx context.Context, input ports.ListInput) (*ports.ListResult, error) {
	payments, err := s.payments.FindAll(ctx, scope(input))
	if err != nil {
		return nil, err
	}

	records := make([]query.Record, len(payments))
	for i, p := range payments {
		records[i] = query.FromPayment(p)
	}

	filtered, stats := query.Apply(records, input.Criteria())
	page := query.Paginate(filtered, input.Page, input.Limit)
	return &ports.ListResult{Page: page, Stats: stats}, nil
}

// generateReceiptNo returns a unique receipt number in the format RC-XXXXXXXX.
func generateReceiptNo() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("RC-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("RC-%08X", b)
}
