package domain

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrNotOwner         = errors.New("item belongs to another user")
)
