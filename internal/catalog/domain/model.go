package domain

import "time"

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Item struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Image       string     `json:"image,omitempty"`
	CategoryID  int64      `json:"category_id"`
	OwnerID     int64      `json:"owner_id"`
	IsPublished bool       `json:"is_published"`
	LikesCount  int        `json:"likes_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
