package usecase

import "errors"

var (
	// ErrUpstream is returned when the market data provider call fails
	// (network error, non-2xx status, or malformed payload).
	ErrUpstream = errors.New("market data provider error")

	// ErrEmptyQuery is returned when a search is requested without a query.
	ErrEmptyQuery = errors.New("search query is required")

	// ErrEmptySymbol is returned when a quote is requested without a symbol.
	ErrEmptySymbol = errors.New("symbol is required")
)
