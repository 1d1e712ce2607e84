package dto

import "stockwatch/internal/feature/stocks/domain/entity"

// NewQuoteResponse converts a domain quote into its response DTO.
func NewQuoteResponse(q entity.Quote) QuoteResponse {
	return QuoteResponse{
		Symbol:        q.Symbol,
		Name:          q.Name,
		Price:         q.Price,
		Change:        q.Change,
		PercentChange: q.PercentChange,
		High:          q.High,
		Low:           q.Low,
		Open:          q.Open,
		PreviousClose: q.PreviousClose,
		Exchange:      q.Exchange,
		Country:       q.Country,
		Currency:      q.Currency,
		Industry:      q.Industry,
	}
}
