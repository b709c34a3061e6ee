package http

type itemReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	CategoryID  int64  `json:"category_id"`
	IsPublished bool   `json:"is_published"`
}
