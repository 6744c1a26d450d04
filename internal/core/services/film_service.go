package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jupiterclapton/filmotek/internal/core/domain"
	"github.com/jupiterclapton/filmotek/internal/core/ports"
)

// filmService implémente ports.FilmService (Application Business Rules).
// Il orchestre : validation, résolution des références MPA/genres, checks
// d'existence croisés (user) avant de toucher au graphe des likes, et le
// classement par popularité (avec cache best effort).
type filmService struct {
	films  ports.FilmRepository
	users  ports.UserRepository
	refs   ports.ReferenceRepository
	broker ports.EventPublisher
	cache  ports.PopularCache
}

// DefaultPopularCount : taille du classement quand le caller n'en donne pas.
const DefaultPopularCount = 10

// NewFilmService est le constructeur avec injection de dépendances.
func NewFilmService(
	films ports.FilmRepository,
	users ports.UserRepository,
	refs ports.ReferenceRepository,
	broker ports.EventPublisher,
	cache ports.PopularCache,
) ports.FilmService {
	return &filmService{films: films, users: users, refs: refs, broker: broker, cache: cache}
}

func (s *filmService) Films(ctx context.Context) ([]domain.Film, error) {
	return s.films.List(ctx)
}

func (s *filmService) Film(ctx context.Context, id int64) (*domain.Film, error) {
	return s.films.Get(ctx, id)
}

func (s *filmService) AddFilm(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	slog.Debug("adding film", "name", film.Name)

	// On travaille sur une copie : l'original du caller n'est jamais muté,
	// même par la résolution des libellés MPA/genres.
	f := film.Clone()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if err := s.resolveReferences(ctx, f); err != nil {
		return nil, err
	}

	stored, err := s.films.Save(ctx, f)
	if err != nil {
		return nil, err
	}

	// Best effort : la publication ne fait jamais échouer la mutation commise.
	_ = s.broker.PublishFilmCreated(ctx, stored)
	s.cache.Invalidate(ctx)

	return stored, nil
}

func (s *filmService) UpdateFilm(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	slog.Debug("updating film", "id", film.ID)

	f := film.Clone()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if err := s.resolveReferences(ctx, f); err != nil {
		return nil, err
	}

	stored, err := s.films.Update(ctx, f)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return stored, nil
}

func (s *filmService) AddLike(ctx context.Context, filmID, userID int64) error {
	slog.Debug("adding like", "film_id", filmID, "user_id", userID)

	// Les deux existences d'abord : chaque absence produit une erreur
	// distincte nommant l'ID manquant. Aucune mutation avant les checks.
	if _, err := s.films.Get(ctx, filmID); err != nil {
		return err
	}
	if _, err := s.users.Get(ctx, userID); err != nil {
		return err
	}

	if err := s.films.AddLike(ctx, filmID, userID); err != nil {
		return err
	}

	_ = s.broker.PublishLikeAdded(ctx, filmID, userID)
	s.cache.Invalidate(ctx)
	return nil
}

func (s *filmService) RemoveLike(ctx context.Context, filmID, userID int64) error {
	slog.Debug("removing like", "film_id", filmID, "user_id", userID)

	if _, err := s.films.Get(ctx, filmID); err != nil {
		return err
	}
	if _, err := s.users.Get(ctx, userID); err != nil {
		return err
	}

	if err := s.films.RemoveLike(ctx, filmID, userID); err != nil {
		return err
	}

	_ = s.broker.PublishLikeRemoved(ctx, filmID, userID)
	s.cache.Invalidate(ctx)
	return nil
}

func (s *filmService) Likes(ctx context.Context, filmID int64) ([]int64, error) {
	if _, err := s.films.Get(ctx, filmID); err != nil {
		return nil, err
	}
	return s.films.Likes(ctx, filmID)
}

func (s *filmService) Popular(ctx context.Context, count int) ([]domain.Film, error) {
	if count < 1 {
		return nil, domain.Invalidf("popular count must be a positive integer, got %d", count)
	}

	if films, ok := s.cache.Get(ctx, count); ok {
		return films, nil
	}

	films, err := s.films.Popular(ctx, count)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, count, films)
	return films, nil
}

// resolveReferences vérifie que chaque référence MPA/genre existe dans le
// vocabulaire AU MOMENT de l'écriture, et remplit les libellés. Un ID
// inconnu est une erreur de validation (faute du caller), pas un NotFound.
// Les genres sont dédupliqués : l'ensemble est sans multiplicité.
func (s *filmService) resolveReferences(ctx context.Context, film *domain.Film) error {
	if film.Mpa != nil {
		mpa, err := s.refs.Mpa(ctx, film.Mpa.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.Invalidf("mpa rating %d is not in the reference list", film.Mpa.ID)
			}
			return err
		}
		film.Mpa = mpa
	}

	if len(film.Genres) > 0 {
		seen := make(map[int]bool, len(film.Genres))
		resolved := make([]domain.Genre, 0, len(film.Genres))
		for _, g := range film.Genres {
			if seen[g.ID] {
				continue
			}
			seen[g.ID] = true

			genre, err := s.refs.Genre(ctx, g.ID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return domain.Invalidf("genre %d is not in the reference list", g.ID)
				}
				return err
			}
			resolved = append(resolved, *genre)
		}
		film.Genres = resolved
	}

	return nil
}
