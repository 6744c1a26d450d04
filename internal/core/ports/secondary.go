package ports

import (
	"context"

	"github.com/jupiterclapton/filmotek/internal/core/domain"
)

// --- PORTS DRIVEN (PERSISTANCE, BROKER, CACHE) ---

// FilmRepository possède les enregistrements Film et le graphe des likes
// (adjacence film -> set d'IDs utilisateurs).
// Contrat commun à tous les adapters (mémoire, postgres) :
//   - Save attribue l'ID suivant (compteur propre au store) et stocke une
//     copie indépendante ; la copie stockée est retournée.
//   - Update exige un ID existant, sinon domain.ErrNotFound. Remplacement
//     complet des champs ; les arêtes de likes survivent à l'Update.
//   - AddLike est un insert idempotent, RemoveLike un no-op si absent.
//     L'existence du film/user est vérifiée plus haut (service).
//   - Clear vide tout et remet le compteur d'IDs à zéro (reset de test).
type FilmRepository interface {
	List(ctx context.Context) ([]domain.Film, error)
	Get(ctx context.Context, id int64) (*domain.Film, error)
	Save(ctx context.Context, film *domain.Film) (*domain.Film, error)
	Update(ctx context.Context, film *domain.Film) (*domain.Film, error)

	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
	Likes(ctx context.Context, filmID int64) ([]int64, error)

	// Popular est la seule requête algorithmique : scan complet + tri
	// (likes décroissants, puis nom croissant), tronqué à count.
	Popular(ctx context.Context, count int) ([]domain.Film, error)

	Clear(ctx context.Context) error
}

// UserRepository possède les enregistrements User. Même contrat de copie,
// d'attribution d'ID et de Clear que FilmRepository.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Clear(ctx context.Context) error
}

// FriendGraph stocke les arêtes d'amitié, toujours DIRIGÉES (from -> to).
// La politique de symétrie (ajouter l'arête inverse ou non) appartient au
// service, pas au stockage. AddEdge est idempotent, RemoveEdge no-op si
// l'arête n'existe pas.
type FriendGraph interface {
	AddEdge(ctx context.Context, fromID, toID int64) error
	RemoveEdge(ctx context.Context, fromID, toID int64) error
	EdgesFrom(ctx context.Context, fromID int64) ([]int64, error)
	Clear(ctx context.Context) error
}

// ReferenceRepository résout les vocabulaires fixes. Un ID inconnu donne
// domain.ErrNotFound ; c'est le service appelant qui décide d'en faire une
// erreur de validation (référence dans un film) ou un 404 (lookup direct).
type ReferenceRepository interface {
	Mpas(ctx context.Context) ([]domain.Mpa, error)
	Mpa(ctx context.Context, id int) (*domain.Mpa, error)
	Genres(ctx context.Context) ([]domain.Genre, error)
	Genre(ctx context.Context, id int) (*domain.Genre, error)
}

// EventPublisher notifie le reste du système (NATS). Best effort : les
// services ignorent l'erreur de publication, elle ne doit jamais faire
// échouer la mutation déjà commise.
type EventPublisher interface {
	PublishUserCreated(ctx context.Context, user *domain.User) error
	PublishFilmCreated(ctx context.Context, film *domain.Film) error
	PublishLikeAdded(ctx context.Context, filmID, userID int64) error
	PublishLikeRemoved(ctx context.Context, filmID, userID int64) error
	PublishFriendAdded(ctx context.Context, userID, friendID int64) error
	PublishFriendRemoved(ctx context.Context, userID, friendID int64) error
}

// PopularCache est un cache optionnel du classement (Redis). Best effort :
// un miss ou une erreur côté cache ne remonte jamais au caller.
type PopularCache interface {
	Get(ctx context.Context, count int) ([]domain.Film, bool)
	Set(ctx context.Context, count int, films []domain.Film)
	// Invalidate rend obsolètes toutes les entrées (appelé à chaque mutation
	// qui peut changer le classement : like, unlike, ajout/édition de film).
	Invalidate(ctx context.Context)
}
