package ports

import (
	"context"

	"github.com/jupiterclapton/filmotek/internal/core/domain"
)

// --- PORTS DRIVING (API) ---
// C'est le contrat exposé à l'adapter primaire (REST). Toutes les opérations
// sont synchrones : soit la mutation est visible et une copie est retournée,
// soit l'appel échoue sans état partiel.

// FilmService gère les films, le graphe des likes et le classement.
type FilmService interface {
	Films(ctx context.Context) ([]domain.Film, error)
	Film(ctx context.Context, id int64) (*domain.Film, error)
	AddFilm(ctx context.Context, film *domain.Film) (*domain.Film, error)
	UpdateFilm(ctx context.Context, film *domain.Film) (*domain.Film, error)

	// AddLike est idempotent : re-liker n'est pas une erreur.
	// Film et user doivent exister (erreur distincte nommant l'ID manquant).
	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
	Likes(ctx context.Context, filmID int64) ([]int64, error)

	// Popular retourne les films triés par nombre de likes décroissant,
	// ex aequo départagés par nom croissant, tronqués à count (>= 1).
	Popular(ctx context.Context, count int) ([]domain.Film, error)
}

// UserService gère les utilisateurs et le graphe d'amitié.
type UserService interface {
	Users(ctx context.Context) ([]domain.User, error)
	User(ctx context.Context, id int64) (*domain.User, error)
	AddUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error)

	// AddFriend : les deux utilisateurs doivent exister. La symétrie de la
	// relation dépend du FriendshipMode configuré (mutual ou directed).
	AddFriend(ctx context.Context, userID, friendID int64) error
	RemoveFriend(ctx context.Context, userID, friendID int64) error

	// Friends et CommonFriends tolèrent les arêtes périmées : un ID d'ami qui
	// ne résout plus est sauté silencieusement, jamais une erreur.
	Friends(ctx context.Context, userID int64) ([]domain.User, error)
	CommonFriends(ctx context.Context, userID, otherID int64) ([]domain.User, error)
}

// ReferenceService expose les vocabulaires fixes (MPA, genres).
type ReferenceService interface {
	Mpas(ctx context.Context) ([]domain.Mpa, error)
	Mpa(ctx context.Context, id int) (*domain.Mpa, error)
	Genres(ctx context.Context) ([]domain.Genre, error)
	Genre(ctx context.Context, id int) (*domain.Genre, error)
}
