package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrOutOfStock indicates the requested amount exceeds the available stock.
	ErrOutOfStock = errors.New("out of stock")
)
