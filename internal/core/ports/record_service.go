package ports

import (
	"context"
	"time"

	"github.com/scholarspoint/coaching-admin/internal/core/domain"
	"github.com/scholarspoint/coaching-admin/internal/core/query"
)

// ListInput carries the filter and paging parameters shared by every list
// endpoint. Role and CounsellorID enforce scoping: a counsellor only sees
// their own records, an admin sees everything.
type ListInput struct {
	Role         string
	CounsellorID string

	Search string
	Fields map[string]string
	From   time.Time
	To     time.Time
	Page   int
	Limit  int
}

// Criteria converts the input into pipeline criteria.
func (in ListInput) Criteria() query.Criteria {
	return query.Criteria{
		Search: in.Search,
		Fields: in.Fields,
		From:   in.From,
		To:     in.To,
	}
}

// ListResult is the filtered, paginated view plus its derived statistics.
type ListResult struct {
	Page  query.Page
	Stats query.Stats
}

// ChallanService lists challans through the filter pipeline and flips their
// given/received flags. Mutations refetch the whole list rather than patching
// one record, so the caller always sees a consistent view.
type ChallanService interface {
	Create(ctx context.Context, input CreateChallanInput) (*domain.Challan, error)
	List(ctx context.Context, input ListInput) (*ListResult, error)
	MarkGiven(ctx context.Context, id string, input ListInput) (*ListResult, error)
	MarkReceived(ctx context.Context, id string, input ListInput) (*ListResult, error)
}

// CreateChallanInput carries a new challan. Items may arrive in the legacy
// shape; the service normalizes them.
type CreateChallanInput struct {
	ChallanNumber string
	CounsellorID  string
	Centre        string
	Items         []domain.RawChallanItem
}

// RegisterStudentInput carries a new student registration.
type RegisterStudentInput struct {
	Name         string
	FatherName   string
	MotherName   string
	Standard     string
	School       string
	Phone        string
	Centre       string
	CounsellorID string
}

// StudentService registers and lists students and counsellor visits.
type StudentService interface {
	Register(ctx context.Context, input RegisterStudentInput) (*domain.Student, error)
	List(ctx context.Context, input ListInput) (*ListResult, error)
	RecordVisit(ctx context.Context, visit *domain.Visit) (*domain.Visit, error)
	ListVisits(ctx context.Context, input ListInput) (*ListResult, error)
}

// RecordPaymentInput carries a new fee payment.
type RecordPaymentInput struct {
	StudentID    string
	CounsellorID string
	Amount       float64
	Mode         string
}

// PaymentService records and lists fee payments.
type PaymentService interface {
	Record(ctx context.Context, input RecordPaymentInput) (*domain.Payment, error)
	List(ctx context.Context, input ListInput) (*ListResult, error)
}

// TemplateService manages the WhatsApp template catalogue.
type TemplateService interface {
	Create(ctx context.Context, name, body, createdBy string) (*domain.MessageTemplate, error)
	List(ctx context.Context) ([]*domain.MessageTemplate, error)
	Update(ctx context.Context, id, name, body string) error
	Delete(ctx context.Context, id string) error
}
