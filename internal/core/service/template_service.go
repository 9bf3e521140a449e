package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/scholarspoint/coaching-admin/internal/core/domain"
	"github.com/scholarspoint/coaching-admin/internal/core/ports"
)

// TemplateService manages the WhatsApp template catalogue. Sending messages
// is out of scope.
type TemplateService struct {
	repo   ports.TemplateRepository
	logger zerolog.Logger
}

func NewTemplateService(repo ports.TemplateRepository, logger zerolog.Logger) *TemplateService {
	return &TemplateService{repo: repo, logger: logger}
}

func (s *TemplateService) Create(ctx context.Context, name, body, createdBy string) (*domain.MessageTemplate, error) {
	now := time.Now().UTC()
	tpl := &domain.MessageTemplate{
		Name:      name,
		Body:      body,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.repo.Create(ctx, tpl)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create template")
		return nil, err
	}
	return created, nil
}

func (s *TemplateService) List(ctx context.Context) ([]*domain.MessageTemplate, error) {
	return s.repo.FindAll(ctx)
}

func (s *TemplateService) Update(ctx context.Context, id, name, body string) error {
	return s.repo.Update(ctx, &domain.MessageTemplate{
		ID:        id,
		Name:      name,
		Body:      body,
		UpdatedAt: time.Now().UTC(),
	})
}

func (s *TemplateService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
