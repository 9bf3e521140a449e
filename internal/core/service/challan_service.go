package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/scholarspoint/coaching-admin/internal/api/metrics"
	"github.com/scholarspoint/coaching-admin/internal/core/domain"
	"github.com/scholarspoint/coaching-admin/internal/core/ports"
	"github.com/scholarspoint/coaching-admin/internal/core/query"
)

// ChallanService lists challans through the filter pipeline and flips their
// given/received flags. List fetches the full scoped record set and runs the
// whole pipeline over it; mutations refetch the list rather than patching the
// one record, so the caller never sees a half-applied view.
type ChallanService struct {
	repo   ports.ChallanRepository
	logger zerolog.Logger
}

func NewChallanService(repo ports.ChallanRepository, logger zerolog.Logger) *ChallanService {
	return &ChallanService{repo: repo, logger: logger}
}

func (s *ChallanService) Create(ctx context.Context, input ports.CreateChallanInput) (*domain.Challan, error) {
	challan := &domain.Challan{
		ChallanNumber: input.ChallanNumber,
		CounsellorID:  input.CounsellorID,
		Centre:        input.Centre,
		Items:         domain.NormalizeItems(input.Items),
		CreatedAt:     time.Now().UTC(),
	}
	if challan.ChallanNumber == "" {
		challan.ChallanNumber = generateChallanNumber()
	}

	created, err := s.repo.Create(ctx, challan)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create challan")
		return nil, err
	}
	s.logger.Info().Str("challan_number", created.ChallanNumber).Str("counsellor_id", created.CounsellorID).Msg("challan created")
	return created, nil
}

func (s *ChallanService) List(ctx context.Context, input ports.ListInput) (*ports.ListResult, error) {
	challans, err := s.repo.FindAll(ctx, scope(input))
	if err != nil {
		return nil, err
	}

	records := make([]query.Record, len(challans))
	for i, c := range challans {
		records[i] = query.FromChallan(c)
	}

	filtered, stats := query.Apply(records, input.Criteria())
	page := query.Paginate(filtered, input.Page, input.Limit)
	return &ports.ListResult{Page: page, Stats: stats}, nil
}

// MarkGiven flips the given flag, then refetches the filtered list so the
// response reflects the mutation.
func (s *ChallanService) MarkGiven(ctx context.Context, id string, input ports.ListInput) (*ports.ListResult, error) {
	if err := s.repo.MarkGiven(ctx, id); err != nil {
		return nil, err
	}
	metrics.ChallansMarkedTotal.WithLabelValues("given").Inc()
	s.logger.Info().Str("challan_id", id).Msg("challan marked given")
	return s.List(ctx, input)
}

// MarkReceived flips the received flag, then refetches the filtered list.
func (s *ChallanService) MarkReceived(ctx context.Context, id string, input ports.ListInput) (*ports.ListResult, error) {
	if err := s.repo.MarkReceived(ctx, id); err != nil {
		return nil, err
	}
	metrics.ChallansMarkedTotal.WithLabelValues("received").Inc()
	s.logger.Info().Str("challan_id", id).Msg("challan marked received")
	return s.List(ctx, input)
}

// scope restricts counsellors to their own records; admins see everything.
func scope(input ports.ListInput) string {
	if input.Role == domain.RoleAdmin {
		return ""
	}
	return input.CounsellorID
}

// generateChallanNumber returns a unique number in the format CH-XXXXXXXX.
func generateChallanNumber() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("CH-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("CH-%08X", b)
}
