// Package dto defines data transfer objects for the watchlist HTTP API.
package dto

import (
	"time"

	"stockwatch/internal/feature/watchlist/domain/entity"
)

// SaveStockRequest represents the request body for POST /stocks/save.
type SaveStockRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// WatchedStockResponse はウォッチリスト1件のレスポンスDTOです。
type WatchedStockResponse struct {
	ID        uint      `json:"id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Change    float64   `json:"change"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewWatchedStockResponse converts a persisted record into its response DTO.
func NewWatchedStockResponse(s entity.WatchedStock) WatchedStockResponse {
	return WatchedStockResponse{
		ID:        s.ID,
		Symbol:    s.Symbol,
		Name:      s.Name,
		Price:     s.Price,
		Change:    s.Change,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
