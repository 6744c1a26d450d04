package memory

import (
	"context"

	"github.com/jupiterclapton/filmotek/internal/core/domain"
)

// ReferenceRepo sert les deux vocabulaires fixes (MPA, genres) depuis des
// tables embarquées. Lecture seule : aucune dynamique, aucun verrou.
type ReferenceRepo struct {
	mpas   []domain.Mpa
	genres []domain.Genre
}

func NewReferenceRepo() *ReferenceRepo {
	return &ReferenceRepo{
		mpas: []domain.Mpa{
			{ID: 1, Name: "G"},
			{ID: 2, Name: "PG"},
			{ID: 3, Name: "PG-13"},
			{ID: 4, Name: "R"},
			{ID: 5, Name: "NC-17"},
		},
		genres: []domain.Genre{
			{ID: 1, Name: "Comédie"},
			{ID: 2, Name: "Drame"},
			{ID: 3, Name: "Dessin animé"},
			{ID: 4, Name: "Thriller"},
			{ID: 5, Name: "Documentaire"},
			{ID: 6, Name: "Action"},
		},
	}
}

func (r *ReferenceRepo) Mpas(ctx context.Context) ([]domain.Mpa, error) {
	out := make([]domain.Mpa, len(r.mpas))
	copy(out, r.mpas)
	return out, nil
}

func (r *ReferenceRepo) Mpa(ctx context.Context, id int) (*domain.Mpa, error) {
	for _, m := range r.mpas {
		if m.ID == id {
			mpa := m
			return &mpa, nil
		}
	}
	return nil, domain.NotFoundf("mpa rating with id %d not found", id)
}

func (r *ReferenceRepo) Genres(ctx context.Context) ([]domain.Genre, error) {
	out := make([]domain.Genre, len(r.genres))
	copy(out, r.genres)
	return out, nil
}

func (r *ReferenceRepo) Genre(ctx context.Context, id int) (*domain.Genre, error) {
	for _, g := range r.genres {
		if g.ID == id {
			genre := g
			return &genre, nil
		}
	}
	return nil, domain.NotFoundf("genre with id %d not found", id)
}
