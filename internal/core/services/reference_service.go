package services

import (
	"context"

	"github.com/jupiterclapton/filmotek/internal/core/domain"
	"github.com/jupiterclapton/filmotek/internal/core/ports"
)

// referenceService expose les vocabulaires fixes. Pas de logique : le
// repository renvoie déjà ErrNotFound pour un ID inconnu.
type referenceService struct {
	refs ports.ReferenceRepository
}

func NewReferenceService(refs ports.ReferenceRepository) ports.ReferenceService {
	return &referenceService{refs: refs}
}

func (s *referenceService) Mpas(ctx context.Context) ([]domain.Mpa, error) {
	return s.refs.Mpas(ctx)
}

func (s *referenceService) Mpa(ctx context.Context, id int) (*domain.Mpa, error) {
	return s.refs.Mpa(ctx, id)
}

func (s *referenceService) Genres(ctx context.Context) ([]domain.Genre, error) {
	return s.refs.Genres(ctx)
}

func (s *referenceService) Genre(ctx context.Context, id int) (*domain.Genre, error) {
	return s.refs.Genre(ctx, id)
}
