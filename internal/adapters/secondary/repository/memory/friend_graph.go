package memory

import (
	"context"
	"sort"
	"sync"
)

// FriendGraph stocke les arêtes d'amitié sous forme d'adjacence dirigée
// (map from -> set de to), PAS de pointeurs dans les entités. La politique
// de symétrie appartient au service ; ici on ne voit que des arêtes.
type FriendGraph struct {
	mu    sync.RWMutex
	edges map[int64]map[int64]struct{}
}

func NewFriendGraph() *FriendGraph {
	return &FriendGraph{edges: make(map[int64]map[int64]struct{})}
}

func (g *FriendGraph) AddEdge(ctx context.Context, fromID, toID int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	set, ok := g.edges[fromID]
	if !ok {
		set = make(map[int64]struct{})
		g.edges[fromID] = set
	}
	set[toID] = struct{}{}
	return nil
}

func (g *FriendGraph) RemoveEdge(ctx context.Context, fromID, toID int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.edges[fromID], toID)
	return nil
}

func (g *FriendGraph) EdgesFrom(ctx context.Context, fromID int64) ([]int64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := make([]int64, 0, len(g.edges[fromID]))
	for id := range g.edges[fromID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (g *FriendGraph) Clear(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.edges = make(map[int64]map[int64]struct{})
	return nil
}
