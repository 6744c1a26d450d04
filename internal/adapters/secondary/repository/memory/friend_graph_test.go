package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendGraphEdgesAreDirected(t *testing.T) {
	ctx := context.Background()
	g := NewFriendGraph()

	require.NoError(t, g.AddEdge(ctx, 1, 2))

	from1, err := g.EdgesFrom(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, from1)

	// le stockage ne fabrique jamais l'arête inverse : c'est une policy service
	from2, err := g.EdgesFrom(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, from2)
}

func TestFriendGraphAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	g := NewFriendGraph()

	require.NoError(t, g.AddEdge(ctx, 1, 2))
	require.NoError(t, g.AddEdge(ctx, 1, 2))

	ids, err := g.EdgesFrom(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestFriendGraphRemoveMissingEdgeIsNoop(t *testing.T) {
	ctx := context.Background()
	g := NewFriendGraph()

	require.NoError(t, g.RemoveEdge(ctx, 1, 2))

	require.NoError(t, g.AddEdge(ctx, 1, 2))
	require.NoError(t, g.RemoveEdge(ctx, 1, 2))

	ids, err := g.EdgesFrom(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
