package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jupiterclapton/filmotek/internal/core/domain"
)

// ReferenceRepo sert les vocabulaires fixes depuis les tables rating/genre
// (seedées par EnsureSchema).
type ReferenceRepo struct {
	db *pgxpool.Pool
}

func NewReferenceRepo(db *pgxpool.Pool) *ReferenceRepo {
	return &ReferenceRepo{db: db}
}

func (r *ReferenceRepo) Mpas(ctx context.Context) ([]domain.Mpa, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM rating ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db: list mpa: %w", err)
	}
	defer rows.Close()

	var mpas []domain.Mpa
	for rows.Next() {
		var m domain.Mpa
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("db: mpa scan: %w", err)
		}
		mpas = append(mpas, m)
	}
	return mpas, rows.Err()
}

func (r *ReferenceRepo) Mpa(ctx context.Context, id int) (*domain.Mpa, error) {
	var m domain.Mpa
	err := r.db.QueryRow(ctx, `SELECT id, name FROM rating WHERE id = $1`, id).
		Scan(&m.ID, &m.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundf("mpa rating with id %d not found", id)
		}
		return nil, fmt.Errorf("db: get mpa: %w", err)
	}
	return &m, nil
}

func (r *ReferenceRepo) Genres(ctx context.Context) ([]domain.Genre, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM genre ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db: list genres: %w", err)
	}
	defer rows.Close()

	var genres []domain.Genre
	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("db: genre scan: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

func (r *ReferenceRepo) Genre(ctx context.Context, id int) (*domain.Genre, error) {
	var g domain.Genre
	err := r.db.QueryRow(ctx, `SELECT id, name FROM genre WHERE id = $1`, id).
		Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundf("genre with id %d not found", id)
		}
		return nil, fmt.Errorf("db: get genre: %w", err)
	}
	return &g, nil
}
