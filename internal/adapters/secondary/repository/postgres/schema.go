// Package postgres fournit les adapters de persistance sur PostgreSQL
// (pgx/v5). Les graphes de relations sont deux tables d'arêtes toutes
// simples (film_like, friendship), jamais des références embarquées dans
// les enregistrements.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema crée les tables et seed les vocabulaires fixes (idempotent).
// Les IDs de films/users sont des BIGSERIAL : attribution monotone par la
// base, remise à zéro uniquement par Clear (TRUNCATE ... RESTART IDENTITY).
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS rating (
			id   INT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS genre (
			id   INT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS films (
			id           BIGSERIAL PRIMARY KEY,
			name         TEXT NOT NULL,
			description  TEXT,
			release_date DATE NOT NULL,
			duration     INT  NOT NULL,
			rating_id    INT REFERENCES rating (id)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id       BIGSERIAL PRIMARY KEY,
			email    TEXT NOT NULL,
			login    TEXT NOT NULL,
			name     TEXT NOT NULL,
			birthday DATE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS film_genre (
			film_id  BIGINT NOT NULL REFERENCES films (id) ON DELETE CASCADE,
			genre_id INT    NOT NULL REFERENCES genre (id),
			PRIMARY KEY (film_id, genre_id)
		)`,
		`CREATE TABLE IF NOT EXISTS film_like (
			film_id BIGINT NOT NULL REFERENCES films (id) ON DELETE CASCADE,
			user_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			PRIMARY KEY (film_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS friendship (
			from_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			to_id   BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			PRIMARY KEY (from_id, to_id)
		)`,
		// Seed des vocabulaires (ON CONFLICT : relançable sans effet)
		`INSERT INTO rating (id, name) VALUES
			(1, 'G'), (2, 'PG'), (3, 'PG-13'), (4, 'R'), (5, 'NC-17')
		 ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO genre (id, name) VALUES
			(1, 'Comédie'), (2, 'Drame'), (3, 'Dessin animé'),
			(4, 'Thriller'), (5, 'Documentaire'), (6, 'Action')
		 ON CONFLICT (id) DO NOTHING`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("db: ensure schema: %w", err)
		}
	}
	return nil
}
