package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/scholarspoint/coaching-admin/internal/api/metrics"
	"github.com/scholarspoint/coaching-admin/internal/core/domain"
	"github.com/scholarspoint/coaching-admin/internal/core/ports"
	"github.com/scholarspoint/coaching-admin/internal/core/query"
)

// StudentService registers students and lists students and visits through
// the filter pipeline.
type StudentService struct {
	students ports.StudentRepository
	visits   ports.VisitRepository
	logger   zerolog.Logger
}

func NewStudentService(students ports.StudentRepository, visits ports.VisitRepository, logger zerolog.Logger) *StudentService {
	return &StudentService{students: students, visits: visits, logger: logger}
}

func (s *StudentService) Register(ctx context.Context, input ports.RegisterStudentInput) (*domain.Student, error) {
	student := &domain.Student{
		Name:         input.Name,
		FatherName:   input.FatherName,
		MotherName:   input.MotherName,
		Standard:     input.Standard,
		School:       input.School,
		Phone:        input.Phone,
		Centre:       input.Centre,
		CounsellorID: input.CounsellorID,
		RegisteredAt: time.Now().UTC(),
	}

	created, err := s.students.Create(ctx, student)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to register student")
		return nil, err
	}
	metrics.StudentsRegisteredTotal.Inc()
	s.logger.Info().Str("student_id", created.ID).Str("counsellor_id", created.CounsellorID).Msg("student registered")
	return created, nil
}

func (s *StudentService) List(ctx context.Context, input ports.ListInput) (*ports.ListResult, error) {
	students, err := s.students.FindAll(ctx, scope(input))
	if err != nil {
		return nil, err
	}

	records := make([]query.Record, len(students))
	for i, st := range students {
		records[i] = query.FromStudent(st)
	}

	filtered, stats := query.Apply(records, input.Criteria())
	page := query.Paginate(filtered, input.Page, input.Limit)
	return &ports.ListResult{Page: page, Stats: stats}, nil
}

func (s *StudentService) RecordVisit(ctx context.Context, visit *domain.Visit) (*domain.Visit, error) {
	if visit.VisitedAt.IsZero() {
		visit.VisitedAt = time.Now().UTC()
	}
	created, err := s.visits.Create(ctx, visit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to record visit")
		return nil, err
	}
	return created, nil
}

func (s *StudentService) ListVisits(ctx context.Context, input ports.ListInput) (*ports.ListResult, error) {
	visits, err := s.visits.FindAll(ctx, scope(input))
	if err != nil {
		return nil, err
	}

	records := make([]query.Record, len(visits))
	for i, v := range visits {
		records[i] = query.FromVisit(v)
	}

	filtered, stats := query.Apply(records, input.Criteria())
	page := query.Paginate(filtered, input.Page, input.Limit)
	return &ports.ListResult{Page: page, Stats: stats}, nil
}
