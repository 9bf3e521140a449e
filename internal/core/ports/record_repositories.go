package ports

import (
	"context"

	"github.com/scholarspoint/coaching-admin/internal/core/domain"
)

// StudentRepository persists student records.
type StudentRepository interface {
	Create(ctx context.Context, s *domain.Student) (*domain.Student, error)
	FindByID(ctx context.Context, id string) (*domain.Student, error)
	// FindAll returns the full record set for the view's cache. When
	// counsellorID is non-empty the query is scoped to that counsellor.
	FindAll(ctx context.Context, counsellorID string) ([]*domain.Student, error)
}

// ChallanRepository persists challans. Stored item shapes may be legacy;
// implementations normalize them before returning.
type ChallanRepository interface {
	Create(ctx context.Context, c *domain.Challan) (*domain.Challan, error)
	FindByID(ctx context.Context, id string) (*domain.Challan, error)
	FindAll(ctx context.Context, counsellorID string) ([]*domain.Challan, error)
	// MarkGiven / MarkReceived flip the respective flag with a timestamp.
	MarkGiven(ctx context.Context, id string) error
	MarkReceived(ctx context.Context, id string) error
}

// PaymentRepository persists fee payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
	FindAll(ctx context.Context, counsellorID string) ([]*domain.Payment, error)
}

// VisitRepository persists counsellor visits.
type VisitRepository interface {
	Create(ctx context.Context, v *domain.Visit) (*domain.Visit, error)
	FindAll(ctx context.Context, counsellorID string) ([]*domain.Visit, error)
}

// TemplateRepository persists WhatsApp message templates.
type TemplateRepository interface {
	Create(ctx context.Context, t *domain.MessageTemplate) (*domain.MessageTemplate, error)
	FindAll(ctx context.Context) ([]*domain.MessageTemplate, error)
	Update(ctx context.Context, t *domain.MessageTemplate) error
	Delete(ctx context.Context, id string) error
}
