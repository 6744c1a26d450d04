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

type sqlUser struct {
	ID       int64
	Email    string
	Login    string
	Name     string
	Birthday time.Time
}

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	q := `SELECT id, email, login, name, birthday FROM users ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("db: list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u sqlUser
		if err := rows.Scan(&u.ID, &u.Email, &u.Login, &u.Name, &u.Birthday); err != nil {
			return nil, fmt.Errorf("db: user scan: %w", err)
		}
		users = append(users, *toDomainUser(&u))
	}
	return users, rows.Err()
}

func (r *UserRepo) Get(ctx context.Context, id int64) (*domain.User, error) {
	q := `SELECT id, email, login, name, birthday FROM users WHERE id = $1`

	var u sqlUser
	err := r.db.QueryRow(ctx, q, id).Scan(&u.ID, &u.Email, &u.Login, &u.Name, &u.Birthday)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundf("user with id %d not found", id)
		}
		return nil, fmt.Errorf("db: get user: %w", err)
	}
	return toDomainUser(&u), nil
}

func (r *UserRepo) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	q := `INSERT INTO users (email, login, name, birthday)
	      VALUES (@email, @login, @name, @birthday)
	      RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, q, userArgs(user)).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("db: insert user: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *UserRepo) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	q := `UPDATE users
	      SET email = @email, login = @login, name = @name, birthday = @birthday
	      WHERE id = @id`

	args := userArgs(user)
	args["id"] = user.ID

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("db: update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.NotFoundf("user with id %d not found", user.ID)
	}
	return r.Get(ctx, user.ID)
}

func (r *UserRepo) Clear(ctx context.Context) error {
	q := `TRUNCATE users, friendship, film_like RESTART IDENTITY`
	if _, err := r.db.Exec(ctx, q); err != nil {
		return fmt.Errorf("db: clear users: %w", err)
	}
	return nil
}

// --- HELPERS ---

func userArgs(user *domain.User) pgx.NamedArgs {
	return pgx.NamedArgs{
		"email":    user.Email,
		"login":    user.Login,
		"name":     user.Name,
		"birthday": user.Birthday.Time,
	}
}

func toDomainUser(u *sqlUser) *domain.User {
	return &domain.User{
		ID:       u.ID,
		Email:    u.Email,
		Login:    u.Login,
		Name:     u.Name,
		Birthday: domain.Date{Time: u.Birthday},
	}
}
