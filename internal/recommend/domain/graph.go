package domain

import "sort"

// UserID is the canonical join key for user nodes. Numeric ids are used
// instead of emails because emails are mutable.
type UserID int64

// ItemID is the canonical join key for item nodes.
type ItemID int64

// Edge is one recorded "like": the user liked the item. The store
// guarantees at most one edge per (user, item) pair.
type Edge struct {
	User UserID `json:"user_id"`
	Item ItemID `json:"item_id"`
}

// Graph is the bipartite user-item interaction graph. It is rebuilt
// fresh from a store snapshot for every computation and never mutated
// afterwards, so it is safe to share across goroutines once built.
type Graph struct {
	userItems map[UserID]map[ItemID]struct{}
	itemUsers map[ItemID]map[UserID]struct{}
	edges     int
}

// BuildGraph materializes the interaction graph from a full snapshot of
// like edges. Only users and items that participate in at least one
// edge become nodes. Duplicate edges collapse.
func BuildGraph(edges []Edge) *Graph {
	g := &Graph{
		userItems: make(map[UserID]map[ItemID]struct{}),
		itemUsers: make(map[ItemID]map[UserID]struct{}),
	}
	for _, e := range edges {
		g.addEdge(e.User, e.Item)
	}
	return g
}

func (g *Graph) addEdge(u UserID, i ItemID) {
	items, ok := g.userItems[u]
	if !ok {
		items = make(map[ItemID]struct{})
		g.userItems[u] = items
	}
	if _, dup := items[i]; dup {
		return
	}
	items[i] = struct{}{}

	users, ok := g.itemUsers[i]
	if !ok {
		users = make(map[UserID]struct{})
		g.itemUsers[i] = users
	}
	users[u] = struct{}{}
	g.edges++
}

// UserItems returns the set of items adjacent to u. The returned map is
// the graph's own adjacency set and must not be modified.
func (g *Graph) UserItems(u UserID) map[ItemID]struct{} {
	return g.userItems[u]
}

// ItemUsers returns the set of users adjacent to i.
func (g *Graph) ItemUsers(i ItemID) map[UserID]struct{} {
	return g.itemUsers[i]
}

func (g *Graph) NumUsers() int { return len(g.userItems) }
func (g *Graph) NumItems() int { return len(g.itemUsers) }
func (g *Graph) NumEdges() int { return g.edges }

// SimilarUsers runs the single-hop kNN over the bipartite graph: every
// user who shares at least one liked item with target is a candidate,
// weighted by the size of the item overlap. A target with no edges (or
// absent from the graph entirely) yields an empty result, not an error.
//
// Ordering is deterministic: overlap descending, then UserID ascending.
func (g *Graph) SimilarUsers(target UserID, k int) []Neighbor {
	if k <= 0 {
		return nil
	}

	targetItems := g.userItems[target]
	if len(targetItems) == 0 {
		return nil
	}

	overlap := make(map[UserID]int)
	for item := range targetItems {
		for user := range g.itemUsers[item] {
			if user == target {
				continue
			}
			overlap[user]++
		}
	}

	neighbors := make([]Neighbor, 0, len(overlap))
	for user, weight := range overlap {
		neighbors = append(neighbors, Neighbor{User: user, Overlap: weight})
	}
	sort.Slice(neighbors, func(a, b int) bool {
		if neighbors[a].Overlap != neighbors[b].Overlap {
			return neighbors[a].Overlap > neighbors[b].Overlap
		}
		return neighbors[a].User < neighbors[b].User
	})

	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}

// RecommendFrom derives the candidate item set for target from the
// given neighbors: the union of the neighbors' liked items minus the
// target's own liked items. Duplicates across neighbors collapse and
// no frequency weighting is applied. The result is sorted by ItemID
// for stable output only; callers must not read the order as a rank.
func (g *Graph) RecommendFrom(target UserID, neighbors []Neighbor) []ItemID {
	targetItems := g.userItems[target]

	seen := make(map[ItemID]struct{})
	for _, n := range neighbors {
		for item := range g.userItems[n.User] {
			if _, own := targetItems[item]; own {
				continue
			}
			seen[item] = struct{}{}
		}
	}

	items := make([]ItemID, 0, len(seen))
	for item := range seen {
		items = append(items, item)
	}
	sort.Slice(items, func(a, b int) bool { return items[a] < items[b] })
	return items
}
