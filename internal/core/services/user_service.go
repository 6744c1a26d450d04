package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jupiterclapton/filmotek/internal/core/domain"
	"github.com/jupiterclapton/filmotek/internal/core/ports"
)

// FriendshipMode fixe la sémantique de l'amitié. Le produit a connu les deux
// comportements ; plutôt que d'en choisir un en silence, c'est un choix de
// configuration explicite (FRIENDSHIP_MODE).
type FriendshipMode string

const (
	// FriendshipMutual : AddFriend(A,B) crée A->B ET B->A (pas de demande
	// d'ami à approuver, l'amitié est immédiatement réciproque).
	FriendshipMutual FriendshipMode = "mutual"
	// FriendshipDirected : AddFriend(A,B) crée uniquement A->B.
	FriendshipDirected FriendshipMode = "directed"
)

// ParseFriendshipMode valide la valeur venant de la config.
func ParseFriendshipMode(s string) (FriendshipMode, error) {
	switch FriendshipMode(s) {
	case FriendshipMutual, FriendshipDirected:
		return FriendshipMode(s), nil
	default:
		return "", fmt.Errorf("unknown friendship mode %q (want %q or %q)",
			s, FriendshipMutual, FriendshipDirected)
	}
}

// userService implémente ports.UserService. Les enregistrements vivent dans
// le UserRepository, les arêtes d'amitié (toujours dirigées) dans le
// FriendGraph ; la symétrie éventuelle est appliquée ICI, au niveau policy.
type userService struct {
	users  ports.UserRepository
	graph  ports.FriendGraph
	broker ports.EventPublisher
	mode   FriendshipMode
}

// NewUserService est le constructeur avec injection de dépendances.
func NewUserService(
	users ports.UserRepository,
	graph ports.FriendGraph,
	broker ports.EventPublisher,
	mode FriendshipMode,
) ports.UserService {
	return &userService{users: users, graph: graph, broker: broker, mode: mode}
}

func (s *userService) Users(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) User(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.Get(ctx, id)
}

func (s *userService) AddUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	slog.Debug("adding user", "login", user.Login)

	// Copie de travail : la validation est pure, le défaut (nom vide ->
	// login) est appliqué explicitement AVANT la persistance, et c'est bien
	// la valeur défautée qui est stockée.
	u := user.Clone()
	if err := u.Validate(); err != nil {
		return nil, err
	}
	u.ApplyDefaults()

	stored, err := s.users.Save(ctx, u)
	if err != nil {
		return nil, err
	}

	_ = s.broker.PublishUserCreated(ctx, stored)
	return stored, nil
}

func (s *userService) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	slog.Debug("updating user", "id", user.ID)

	u := user.Clone()
	if err := u.Validate(); err != nil {
		return nil, err
	}
	u.ApplyDefaults()

	// Remplacement complet des champs ; les arêtes d'amitié vivent dans le
	// FriendGraph et survivent donc à l'Update.
	return s.users.Update(ctx, u)
}

func (s *userService) AddFriend(ctx context.Context, userID, friendID int64) error {
	slog.Debug("adding friend", "user_id", userID, "friend_id", friendID, "mode", s.mode)

	if err := s.checkUsersExist(ctx, userID, friendID); err != nil {
		return err
	}

	if err := s.graph.AddEdge(ctx, userID, friendID); err != nil {
		return err
	}
	if s.mode == FriendshipMutual {
		if err := s.graph.AddEdge(ctx, friendID, userID); err != nil {
			return err
		}
	}

	_ = s.broker.PublishFriendAdded(ctx, userID, friendID)
	return nil
}

func (s *userService) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	slog.Debug("removing friend", "user_id", userID, "friend_id", friendID, "mode", s.mode)

	if err := s.checkUsersExist(ctx, userID, friendID); err != nil {
		return err
	}

	// Retirer une arête qui n'existe pas est un no-op, pas une erreur.
	if err := s.graph.RemoveEdge(ctx, userID, friendID); err != nil {
		return err
	}
	if s.mode == FriendshipMutual {
		if err := s.graph.RemoveEdge(ctx, friendID, userID); err != nil {
			return err
		}
	}

	_ = s.broker.PublishFriendRemoved(ctx, userID, friendID)
	return nil
}

func (s *userService) Friends(ctx context.Context, userID int64) ([]domain.User, error) {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, err
	}

	ids, err := s.graph.EdgesFrom(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolveUsers(ctx, ids)
}

func (s *userService) CommonFriends(ctx context.Context, userID, otherID int64) ([]domain.User, error) {
	if err := s.checkUsersExist(ctx, userID, otherID); err != nil {
		return nil, err
	}

	ids, err := s.graph.EdgesFrom(ctx, userID)
	if err != nil {
		return nil, err
	}
	otherIDs, err := s.graph.EdgesFrom(ctx, otherID)
	if err != nil {
		return nil, err
	}

	// Intersection des deux ensembles d'adjacence. Pas de doublons possibles,
	// les sources sont des sets.
	otherSet := make(map[int64]bool, len(otherIDs))
	for _, id := range otherIDs {
		otherSet[id] = true
	}
	common := make([]int64, 0)
	for _, id := range ids {
		if otherSet[id] {
			common = append(common, id)
		}
	}

	return s.resolveUsers(ctx, common)
}

// checkUsersExist vérifie les deux IDs, dans l'ordre, et laisse remonter
// l'erreur NotFound du repository (elle nomme l'ID fautif).
func (s *userService) checkUsersExist(ctx context.Context, a, b int64) error {
	if _, err := s.users.Get(ctx, a); err != nil {
		return err
	}
	if _, err := s.users.Get(ctx, b); err != nil {
		return err
	}
	return nil
}

// resolveUsers transforme des IDs en enregistrements, en tolérant les arêtes
// périmées : un ID qui ne résout plus est sauté, jamais une erreur.
func (s *userService) resolveUsers(ctx context.Context, ids []int64) ([]domain.User, error) {
	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		u, err := s.users.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue // arête périmée
			}
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}
