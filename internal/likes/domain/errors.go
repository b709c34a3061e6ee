package domain

import "errors"

var (
	ErrItemNotFound = errors.New("item not found")
	ErrOwnItem      = errors.New("cannot like your own item")
	ErrNotPublished = errors.New("item is not published")
	ErrAlreadyLiked = errors.New("item already liked")
	ErrLikeNotFound = errors.New("like not found")
)
