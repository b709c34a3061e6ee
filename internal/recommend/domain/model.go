package domain

// Neighbor is a user ranked as similar to a target user, with the item
// overlap that produced the ranking.
type Neighbor struct {
	User    UserID `json:"user_id"`
	Overlap int    `json:"overlap"`
}

// RankedItem is an item with its externally-maintained like counter,
// as returned by the popularity query.
type RankedItem struct {
	Item  ItemID `json:"item_id"`
	Likes int    `json:"likes"`
}

// Statistics is the result of a statistics request: the users with the
// most similar interaction history and the globally most liked items.
type Statistics struct {
	SimilarUsers []Neighbor   `json:"similar_users"`
	PopularItems []RankedItem `json:"popular_items"`
}
