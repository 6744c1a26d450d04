package eventbroker

import (
	"context"

	"github.com/jupiterclapton/filmotek/internal/core/domain"
)

// Noop est le publisher utilisé quand NATS n'est pas configuré (dev, tests).
type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) PublishUserCreated(ctx context.Context, user *domain.User) error   { return nil }
func (Noop) PublishFilmCreated(ctx context.Context, film *domain.Film) error   { return nil }
func (Noop) PublishLikeAdded(ctx context.Context, filmID, userID int64) error  { return nil }
func (Noop) PublishLikeRemoved(ctx context.Context, filmID, userID int64) error {
	return nil
}
func (Noop) PublishFriendAdded(ctx context.Context, userID, friendID int64) error {
	return nil
}
func (Noop) PublishFriendRemoved(ctx context.Context, userID, friendID int64) error {
	return nil
}
