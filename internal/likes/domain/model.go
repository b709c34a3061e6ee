package domain

import "time"

// Like is one recorded "user likes item" edge. The (user, item) pair is
// unique; postgres enforces it.
type Like struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ItemID    int64     `json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
}
