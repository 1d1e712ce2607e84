// Package usecase implements the business logic for the watchlist feature.
package usecase

import "errors"

var (
	// ErrStockNotFound is returned when no watchlist entry exists for the given ID.
	ErrStockNotFound = errors.New("stock not found")
)
