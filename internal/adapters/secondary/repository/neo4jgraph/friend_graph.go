// Package neo4jgraph porte le graphe d'amitié sur Neo4j. Backend alternatif
// à la table friendship : utile quand le graphe social devient le gros du
// trafic (traversées, recommandations), les enregistrements restant en SQL.
package neo4jgraph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type FriendGraph struct {
	driver neo4j.DriverWithContext
}

func NewFriendGraph(driver neo4j.DriverWithContext) *FriendGraph {
	return &FriendGraph{driver: driver}
}

// EnsureSchema crée la contrainte d'unicité sur User.id (idempotent),
// ce qui crée aussi l'index pour les lookups O(1).
func (g *FriendGraph) EnsureSchema(ctx context.Context) error {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE`
		_, err := tx.Run(ctx, query, nil)
		return nil, err
	})
	return err
}

// AddEdge : MERGE est idempotent, re-créer la même arête est un no-op.
func (g *FriendGraph) AddEdge(ctx context.Context, fromID, toID int64) error {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MERGE (a:User {id: $fromId})
			MERGE (b:User {id: $toId})
			MERGE (a)-[r:FRIEND]->(b)
			ON CREATE SET r.created_at = datetime()
		`
		_, err := tx.Run(ctx, query, map[string]any{"fromId": fromID, "toId": toID})
		return nil, err
	})
	return err
}

func (g *FriendGraph) RemoveEdge(ctx context.Context, fromID, toID int64) error {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (a:User {id: $fromId})-[r:FRIEND]->(b:User {id: $toId})
			DELETE r
		`
		_, err := tx.Run(ctx, query, map[string]any{"fromId": fromID, "toId": toID})
		return nil, err
	})
	return err
}

func (g *FriendGraph) EdgesFrom(ctx context.Context, fromID int64) ([]int64, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (a:User {id: $fromId})-[:FRIEND]->(b:User)
			RETURN b.id AS friendId
			ORDER BY friendId
		`
		res, err := tx.Run(ctx, query, map[string]any{"fromId": fromID})
		if err != nil {
			return nil, err
		}

		var ids []int64
		for res.Next(ctx) {
			raw, _ := res.Record().Get("friendId")
			if id, ok := raw.(int64); ok {
				ids = append(ids, id)
			}
		}
		return ids, res.Err()
	})
	if err != nil {
		return nil, err
	}
	return result.([]int64), nil
}

func (g *FriendGraph) Clear(ctx context.Context) error {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, `MATCH (:User)-[r:FRIEND]->(:User) DELETE r`, nil)
		return nil, err
	})
	return err
}
