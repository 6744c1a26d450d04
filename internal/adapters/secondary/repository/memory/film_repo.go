// Package memory fournit les adapters de persistance en mémoire : des maps
// id -> enregistrement gardées par un RWMutex. C'est le backend par défaut
// (dev, tests) ; chaque séquence lecture-modification-écriture y est atomique
// vis-à-vis des callers concurrents.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jupiterclapton/filmotek/internal/core/domain"
)

// FilmRepo possède les films et le graphe des likes (film -> set d'users).
// Le compteur d'IDs appartient à l'instance, pas au process : il n'est remis
// à zéro que par Clear.
type FilmRepo struct {
	mu     sync.RWMutex
	lastID int64
	films  map[int64]*domain.Film
	likes  map[int64]map[int64]struct{}
}

func NewFilmRepo() *FilmRepo {
	return &FilmRepo{
		films: make(map[int64]*domain.Film),
		likes: make(map[int64]map[int64]struct{}),
	}
}

func (r *FilmRepo) List(ctx context.Context) ([]domain.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	films := make([]domain.Film, 0, len(r.films))
	for _, f := range r.films {
		films = append(films, *f.Clone())
	}
	return films, nil
}

func (r *FilmRepo) Get(ctx context.Context, id int64) (*domain.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.films[id]
	if !ok {
		return nil, domain.NotFoundf("film with id %d not found", id)
	}
	return f.Clone(), nil
}

// Save attribue l'ID suivant et stocke une copie indépendante : muter
// l'original du caller après coup ne touche pas l'enregistrement.
func (r *FilmRepo) Save(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	stored := film.Clone()
	stored.ID = r.lastID
	r.films[stored.ID] = stored

	return stored.Clone(), nil
}

// Update remplace l'enregistrement complet. Les likes vivent dans une map
// séparée et survivent donc au remplacement.
func (r *FilmRepo) Update(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.films[film.ID]; !ok {
		return nil, domain.NotFoundf("film with id %d not found", film.ID)
	}
	stored := film.Clone()
	r.films[stored.ID] = stored

	return stored.Clone(), nil
}

func (r *FilmRepo) AddLike(ctx context.Context, filmID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.likes[filmID]
	if !ok {
		set = make(map[int64]struct{})
		r.likes[filmID] = set
	}
	set[userID] = struct{}{} // idempotent par construction
	return nil
}

func (r *FilmRepo) RemoveLike(ctx context.Context, filmID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.likes[filmID], userID)
	return nil
}

func (r *FilmRepo) Likes(ctx context.Context, filmID int64) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.likes[filmID]))
	for id := range r.likes[filmID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Popular : scan complet + tri (pas de structure top-k incrémentale, le
// volume reste borné par le nombre de films). Likes décroissants, ex aequo
// par nom croissant, tronqué à count. Demander plus que le total n'est pas
// une erreur : on rend tout.
func (r *FilmRepo) Popular(ctx context.Context, count int) ([]domain.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	films := make([]domain.Film, 0, len(r.films))
	for _, f := range r.films {
		films = append(films, *f.Clone())
	}

	sort.Slice(films, func(i, j int) bool {
		li, lj := len(r.likes[films[i].ID]), len(r.likes[films[j].ID])
		if li != lj {
			return li > lj
		}
		return films[i].Name < films[j].Name
	})

	if count < len(films) {
		films = films[:count]
	}
	return films, nil
}

// Clear vide tout et remet le compteur d'IDs à zéro (reset de test).
func (r *FilmRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID = 0
	r.films = make(map[int64]*domain.Film)
	r.likes = make(map[int64]map[int64]struct{})
	return nil
}
