// Package eventbroker notifie le reste du système des mutations (NATS).
// Contrat implicite avec les consommateurs : sujets "user.*" et "film.*",
// payload JSON, trace-id propagé dans les headers.
package eventbroker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/jupiterclapton/filmotek/internal/core/domain"
)

type NatsPublisher struct {
	nc *nats.Conn
}

func NewNatsPublisher(nc *nats.Conn) *NatsPublisher {
	return &NatsPublisher{nc: nc}
}

// --- STRUCTURES D'ÉVÉNEMENTS ---

type UserCreatedEvent struct {
	UserID    int64     `json:"user_id"`
	Login     string    `json:"login"`
	CreatedAt time.Time `json:"created_at"`
}

type FilmCreatedEvent struct {
	FilmID    int64     `json:"film_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type LikeEvent struct {
	FilmID int64     `json:"film_id"`
	UserID int64     `json:"user_id"`
	At     time.Time `json:"at"`
}

type FriendEvent struct {
	UserID   int64     `json:"user_id"`
	FriendID int64     `json:"friend_id"`
	At       time.Time `json:"at"`
}

func (p *NatsPublisher) PublishUserCreated(ctx context.Context, user *domain.User) error {
	return p.publish(ctx, "user.created", UserCreatedEvent{
		UserID:    user.ID,
		Login:     user.Login,
		CreatedAt: time.Now().UTC(),
	})
}

func (p *NatsPublisher) PublishFilmCreated(ctx context.Context, film *domain.Film) error {
	return p.publish(ctx, "film.created", FilmCreatedEvent{
		FilmID:    film.ID,
		Name:      film.Name,
		CreatedAt: time.Now().UTC(),
	})
}

func (p *NatsPublisher) PublishLikeAdded(ctx context.Context, filmID, userID int64) error {
	return p.publish(ctx, "film.liked", LikeEvent{FilmID: filmID, UserID: userID, At: time.Now().UTC()})
}

func (p *NatsPublisher) PublishLikeRemoved(ctx context.Context, filmID, userID int64) error {
	return p.publish(ctx, "film.unliked", LikeEvent{FilmID: filmID, UserID: userID, At: time.Now().UTC()})
}

func (p *NatsPublisher) PublishFriendAdded(ctx context.Context, userID, friendID int64) error {
	return p.publish(ctx, "user.friended", FriendEvent{UserID: userID, FriendID: friendID, At: time.Now().UTC()})
}

func (p *NatsPublisher) PublishFriendRemoved(ctx context.Context, userID, friendID int64) error {
	return p.publish(ctx, "user.unfriended", FriendEvent{UserID: userID, FriendID: friendID, At: time.Now().UTC()})
}

func (p *NatsPublisher) publish(ctx context.Context, subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}

	msg := &nats.Msg{
		Subject: subject,
		Data:    data,
		Header:  nats.Header{},
	}
	// Injection du trace-id dans les headers NATS : le contexte de la requête
	// HTTP suit l'événement jusque chez les consommateurs.
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(msg.Header))

	return p.nc.PublishMsg(msg)
}
