package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jupiterclapton/filmotek/internal/core/domain"
)

// sqlFilm est le DTO interne : tampon entre la base et le domaine pour les
// colonnes nullables (description, rating).
type sqlFilm struct {
	ID          int64
	Name        string
	Description *string
	ReleaseDate time.Time
	Duration    int
	RatingID    *int
	RatingName  *string
}

type FilmRepo struct {
	db *pgxpool.Pool
}

func NewFilmRepo(db *pgxpool.Pool) *FilmRepo {
	return &FilmRepo{db: db}
}

const filmColumns = `f.id, f.name, f.description, f.release_date, f.duration, f.rating_id, r.name`

func (r *FilmRepo) List(ctx context.Context) ([]domain.Film, error) {
	q := `SELECT ` + filmColumns + `
	      FROM films f LEFT JOIN rating r ON f.rating_id = r.id
	      ORDER BY f.id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("db: list films: %w", err)
	}
	defer rows.Close()

	films, err := r.collectFilms(ctx, rows)
	if err != nil {
		return nil, err
	}
	return films, nil
}

func (r *FilmRepo) Get(ctx context.Context, id int64) (*domain.Film, error) {
	q := `SELECT ` + filmColumns + `
	      FROM films f LEFT JOIN rating r ON f.rating_id = r.id
	      WHERE f.id = $1`

	var f sqlFilm
	err := r.db.QueryRow(ctx, q, id).Scan(
		&f.ID, &f.Name, &f.Description, &f.ReleaseDate, &f.Duration, &f.RatingID, &f.RatingName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Traduction technique -> domaine
			return nil, domain.NotFoundf("film with id %d not found", id)
		}
		return nil, fmt.Errorf("db: get film: %w", err)
	}

	film := toDomainFilm(&f)
	genres, err := r.filmGenres(ctx, id)
	if err != nil {
		return nil, err
	}
	film.Genres = genres
	return film, nil
}

func (r *FilmRepo) Save(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("db: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	q := `INSERT INTO films (name, description, release_date, duration, rating_id)
	      VALUES (@name, @description, @release_date, @duration, @rating_id)
	      RETURNING id`

	var id int64
	err = tx.QueryRow(ctx, q, filmArgs(film)).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("db: insert film: %w", err)
	}

	if err := replaceGenres(ctx, tx, id, film.Genres); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("db: commit: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *FilmRepo) Update(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("db: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	q := `UPDATE films
	      SET name = @name, description = @description, release_date = @release_date,
	          duration = @duration, rating_id = @rating_id
	      WHERE id = @id`

	args := filmArgs(film)
	args["id"] = film.ID

	tag, err := tx.Exec(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("db: update film: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.NotFoundf("film with id %d not found", film.ID)
	}

	if err := replaceGenres(ctx, tx, film.ID, film.Genres); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("db: commit: %w", err)
	}

	return r.Get(ctx, film.ID)
}

// AddLike : insert idempotent, l'arête (film, user) est une clé primaire.
func (r *FilmRepo) AddLike(ctx context.Context, filmID, userID int64) error {
	q := `INSERT INTO film_like (film_id, user_id) VALUES ($1, $2)
	      ON CONFLICT DO NOTHING`
	if _, err := r.db.Exec(ctx, q, filmID, userID); err != nil {
		return fmt.Errorf("db: add like: %w", err)
	}
	return nil
}

func (r *FilmRepo) RemoveLike(ctx context.Context, filmID, userID int64) error {
	q := `DELETE FROM film_like WHERE film_id = $1 AND user_id = $2`
	if _, err := r.db.Exec(ctx, q, filmID, userID); err != nil {
		return fmt.Errorf("db: remove like: %w", err)
	}
	return nil
}

func (r *FilmRepo) Likes(ctx context.Context, filmID int64) ([]int64, error) {
	q := `SELECT user_id FROM film_like WHERE film_id = $1 ORDER BY user_id`

	rows, err := r.db.Query(ctx, q, filmID)
	if err != nil {
		return nil, fmt.Errorf("db: likes: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db: likes scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Popular : le tri (likes décroissants, nom croissant) et la troncature sont
// faits par la base, même sémantique que l'adapter mémoire.
func (r *FilmRepo) Popular(ctx context.Context, count int) ([]domain.Film, error) {
	q := `SELECT ` + filmColumns + `,
	             (SELECT count(*) FROM film_like l WHERE l.film_id = f.id) AS count_likes
	      FROM films f LEFT JOIN rating r ON f.rating_id = r.id
	      ORDER BY count_likes DESC, f.name
	      LIMIT $1`

	rows, err := r.db.Query(ctx, q, count)
	if err != nil {
		return nil, fmt.Errorf("db: popular: %w", err)
	}
	defer rows.Close()

	films := make([]domain.Film, 0, count)
	for rows.Next() {
		var f sqlFilm
		var likes int64
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.ReleaseDate,
			&f.Duration, &f.RatingID, &f.RatingName, &likes); err != nil {
			return nil, fmt.Errorf("db: popular scan: %w", err)
		}
		films = append(films, *toDomainFilm(&f))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return r.attachGenres(ctx, films)
}

func (r *FilmRepo) Clear(ctx context.Context) error {
	q := `TRUNCATE films, film_genre, film_like RESTART IDENTITY`
	if _, err := r.db.Exec(ctx, q); err != nil {
		return fmt.Errorf("db: clear films: %w", err)
	}
	return nil
}

// --- HELPERS ---

func filmArgs(film *domain.Film) pgx.NamedArgs {
	var description *string
	if film.Description != "" {
		description = &film.Description
	}
	var ratingID *int
	if film.Mpa != nil {
		ratingID = &film.Mpa.ID
	}
	return pgx.NamedArgs{
		"name":         film.Name,
		"description":  description,
		"release_date": film.ReleaseDate.Time,
		"duration":     film.Duration,
		"rating_id":    ratingID,
	}
}

func toDomainFilm(f *sqlFilm) *domain.Film {
	film := &domain.Film{
		ID:          f.ID,
		Name:        f.Name,
		ReleaseDate: domain.Date{Time: f.ReleaseDate},
		Duration:    f.Duration,
	}
	if f.Description != nil {
		film.Description = *f.Description
	}
	if f.RatingID != nil {
		film.Mpa = &domain.Mpa{ID: *f.RatingID}
		if f.RatingName != nil {
			film.Mpa.Name = *f.RatingName
		}
	}
	return film
}

// replaceGenres réécrit l'ensemble des genres du film (delete + insert,
// dans la transaction de l'écriture du film).
func replaceGenres(ctx context.Context, tx pgx.Tx, filmID int64, genres []domain.Genre) error {
	if _, err := tx.Exec(ctx, `DELETE FROM film_genre WHERE film_id = $1`, filmID); err != nil {
		return fmt.Errorf("db: delete genres: %w", err)
	}
	for _, g := range genres {
		_, err := tx.Exec(ctx,
			`INSERT INTO film_genre (film_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			filmID, g.ID)
		if err != nil {
			return fmt.Errorf("db: insert genre: %w", err)
		}
	}
	return nil
}

func (r *FilmRepo) filmGenres(ctx context.Context, filmID int64) ([]domain.Genre, error) {
	q := `SELECT g.id, g.name
	      FROM film_genre fg JOIN genre g ON fg.genre_id = g.id
	      WHERE fg.film_id = $1
	      ORDER BY g.id`

	rows, err := r.db.Query(ctx, q, filmID)
	if err != nil {
		return nil, fmt.Errorf("db: film genres: %w", err)
	}
	defer rows.Close()

	var genres []domain.Genre
	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("db: film genres scan: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// collectFilms scanne un rowset de films puis rattache les genres en une
// seule requête groupée (pas de N+1 sur la liste complète).
func (r *FilmRepo) collectFilms(ctx context.Context, rows pgx.Rows) ([]domain.Film, error) {
	films := make([]domain.Film, 0)
	for rows.Next() {
		var f sqlFilm
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.ReleaseDate,
			&f.Duration, &f.RatingID, &f.RatingName); err != nil {
			return nil, fmt.Errorf("db: film scan: %w", err)
		}
		films = append(films, *toDomainFilm(&f))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return r.attachGenres(ctx, films)
}

func (r *FilmRepo) attachGenres(ctx context.Context, films []domain.Film) ([]domain.Film, error) {
	if len(films) == 0 {
		return films, nil
	}

	q := `SELECT fg.film_id, g.id, g.name
	      FROM film_genre fg JOIN genre g ON fg.genre_id = g.id
	      ORDER BY fg.film_id, g.id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("db: attach genres: %w", err)
	}
	defer rows.Close()

	byFilm := make(map[int64][]domain.Genre)
	for rows.Next() {
		var filmID int64
		var g domain.Genre
		if err := rows.Scan(&filmID, &g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("db: attach genres scan: %w", err)
		}
		byFilm[filmID] = append(byFilm[filmID], g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range films {
		films[i].Genres = byFilm[films[i].ID]
	}
	return films, nil
}
