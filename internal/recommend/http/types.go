package http

import (
	"github.com/inspirefinder/likes-backend/internal/recommend/domain"
	"github.com/inspirefinder/likes-backend/internal/users"
)

type recommendResponse struct {
	OK     bool            `json:"ok"`
	UserID domain.UserID   `json:"user_id"`
	Items  []domain.ItemID `json:"items"`
}

type statisticsResponse struct {
	OK           bool                `json:"ok"`
	UserID       domain.UserID       `json:"user_id"`
	SimilarUsers []users.User        `json:"similar_users"`
	PopularItems []domain.RankedItem `json:"popular_items"`
	Fresh        bool                `json:"fresh"`
}

type flushResponse struct {
	OK      bool `json:"ok"`
	Dropped int  `json:"dropped"`
}
