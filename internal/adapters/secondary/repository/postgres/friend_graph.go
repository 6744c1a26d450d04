package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// FriendGraph stocke les arêtes d'amitié dirigées dans la table friendship.
// L'idempotence vient de la clé primaire (from_id, to_id).
type FriendGraph struct {
	db *pgxpool.Pool
}

func NewFriendGraph(db *pgxpool.Pool) *FriendGraph {
	return &FriendGraph{db: db}
}

func (g *FriendGraph) AddEdge(ctx context.Context, fromID, toID int64) error {
	q := `INSERT INTO friendship (from_id, to_id) VALUES ($1, $2)
	      ON CONFLICT DO NOTHING`
	if _, err := g.db.Exec(ctx, q, fromID, toID); err != nil {
		return fmt.Errorf("db: add friendship edge: %w", err)
	}
	return nil
}

func (g *FriendGraph) RemoveEdge(ctx context.Context, fromID, toID int64) error {
	q := `DELETE FROM friendship WHERE from_id = $1 AND to_id = $2`
	if _, err := g.db.Exec(ctx, q, fromID, toID); err != nil {
		return fmt.Errorf("db: remove friendship edge: %w", err)
	}
	return nil
}

func (g *FriendGraph) EdgesFrom(ctx context.Context, fromID int64) ([]int64, error) {
	q := `SELECT to_id FROM friendship WHERE from_id = $1 ORDER BY to_id`

	rows, err := g.db.Query(ctx, q, fromID)
	if err != nil {
		return nil, fmt.Errorf("db: friendship edges: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db: friendship edges scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (g *FriendGraph) Clear(ctx context.Context) error {
	if _, err := g.db.Exec(ctx, `TRUNCATE friendship`); err != nil {
		return fmt.Errorf("db: clear friendship: %w", err)
	}
	return nil
}
