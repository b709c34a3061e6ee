package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The shared fixture: U1-I1, U1-I2, U2-I2, U2-I3, U3-I1.
func fixtureEdges() []Edge {
	return []Edge{
		{User: 1, Item: 1},
		{User: 1, Item: 2},
		{User: 2, Item: 2},
		{User: 2, Item: 3},
		{User: 3, Item: 1},
	}
}

func TestBuildGraph_Symmetry(t *testing.T) {
	g := BuildGraph(fixtureEdges())

	for _, e := range fixtureEdges() {
		_, userSide := g.UserItems(e.User)[e.Item]
		_, itemSide := g.ItemUsers(e.Item)[e.User]
		assert.True(t, userSide, "item %d missing from user %d adjacency", e.Item, e.User)
		assert.True(t, itemSide, "user %d missing from item %d adjacency", e.User, e.Item)
	}

	assert.Equal(t, 3, g.NumUsers())
	assert.Equal(t, 3, g.NumItems())
	assert.Equal(t, 5, g.NumEdges())
}

func TestBuildGraph_IdempotentRebuild(t *testing.T) {
	a := BuildGraph(fixtureEdges())
	b := BuildGraph(fixtureEdges())

	assert.Equal(t, a.NumUsers(), b.NumUsers())
	assert.Equal(t, a.NumItems(), b.NumItems())
	assert.Equal(t, a.NumEdges(), b.NumEdges())
	for u := range map[UserID]struct{}{1: {}, 2: {}, 3: {}} {
		assert.Equal(t, a.UserItems(u), b.UserItems(u))
	}
}

func TestBuildGraph_DuplicateEdgesCollapse(t *testing.T) {
	edges := append(fixtureEdges(), Edge{User: 1, Item: 1})
	g := BuildGraph(edges)

	assert.Equal(t, 5, g.NumEdges())
	assert.Len(t, g.UserItems(1), 2)
}

func TestSimilarUsers_Fixture(t *testing.T) {
	g := BuildGraph(fixtureEdges())

	t.Run("both overlap-1 candidates returned for U1", func(t *testing.T) {
		neighbors := g.SimilarUsers(1, 2)
		require.Len(t, neighbors, 2)

		// Equal weight, tie broken by ascending user id.
		assert.Equal(t, Neighbor{User: 2, Overlap: 1}, neighbors[0])
		assert.Equal(t, Neighbor{User: 3, Overlap: 1}, neighbors[1])
	})

	t.Run("truncates to k", func(t *testing.T) {
		neighbors := g.SimilarUsers(1, 1)
		require.Len(t, neighbors, 1)
		assert.Equal(t, UserID(2), neighbors[0].User)
	})

	t.Run("never includes the target", func(t *testing.T) {
		for _, n := range g.SimilarUsers(1, 10) {
			assert.NotEqual(t, UserID(1), n.User)
		}
	})
}

func TestSimilarUsers_WeightsByOverlap(t *testing.T) {
	// U2 shares two items with U1, U3 only one; U2 must rank first
	// regardless of id ordering.
	g := BuildGraph([]Edge{
		{User: 1, Item: 1}, {User: 1, Item: 2}, {User: 1, Item: 3},
		{User: 3, Item: 1},
		{User: 2, Item: 2}, {User: 2, Item: 3},
	})

	neighbors := g.SimilarUsers(1, 2)
	require.Len(t, neighbors, 2)
	assert.Equal(t, Neighbor{User: 2, Overlap: 2}, neighbors[0])
	assert.Equal(t, Neighbor{User: 3, Overlap: 1}, neighbors[1])
}

func TestSimilarUsers_EmptyHistory(t *testing.T) {
	g := BuildGraph(fixtureEdges())

	t.Run("user with no likes", func(t *testing.T) {
		assert.Empty(t, g.SimilarUsers(99, 5))
	})

	t.Run("empty graph", func(t *testing.T) {
		assert.Empty(t, BuildGraph(nil).SimilarUsers(1, 5))
	})

	t.Run("non-positive k", func(t *testing.T) {
		assert.Empty(t, g.SimilarUsers(1, 0))
	})
}

func TestSimilarUsers_Deterministic(t *testing.T) {
	g := BuildGraph(fixtureEdges())

	first := g.SimilarUsers(1, 2)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, g.SimilarUsers(1, 2))
	}
}

func TestRecommendFrom_Fixture(t *testing.T) {
	g := BuildGraph(fixtureEdges())

	// Neighbors' items {I2,I3} ∪ {I1} minus U1's own {I1,I2} = {I3}.
	items := g.RecommendFrom(1, g.SimilarUsers(1, 2))
	assert.Equal(t, []ItemID{3}, items)
}

func TestRecommendFrom_NeverRecommendsOwnItems(t *testing.T) {
	g := BuildGraph(fixtureEdges())

	for _, target := range []UserID{1, 2, 3} {
		own := g.UserItems(target)
		for _, item := range g.RecommendFrom(target, g.SimilarUsers(target, 10)) {
			_, liked := own[item]
			assert.False(t, liked, "user %d got back own item %d", target, item)
		}
	}
}

func TestRecommendFrom_DuplicatesAcrossNeighborsCollapse(t *testing.T) {
	// U2 and U3 both share I1 with U1 and both like I9.
	g := BuildGraph([]Edge{
		{User: 1, Item: 1},
		{User: 2, Item: 1}, {User: 2, Item: 9},
		{User: 3, Item: 1}, {User: 3, Item: 9},
	})

	items := g.RecommendFrom(1, g.SimilarUsers(1, 5))
	assert.Equal(t, []ItemID{9}, items)
}

func TestRecommendFrom_NoNeighbors(t *testing.T) {
	g := BuildGraph(fixtureEdges())
	assert.Empty(t, g.RecommendFrom(99, nil))
}
