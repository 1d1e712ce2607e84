// Package dto defines data transfer objects for the stocks HTTP API.
package dto

// SearchResultItem は銘柄検索結果のレスポンスDTOです。
type SearchResultItem struct {
	Description   string `json:"description"`
	DisplaySymbol string `json:"displaySymbol"`
	Symbol        string `json:"symbol"`
	Type          string `json:"type"`
}

// QuoteResponse は株価と企業情報を統合したレスポンスDTOです。
type QuoteResponse struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percentChange"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previousClose"`
	Exchange      string  `json:"exchange"`
	Country       string  `json:"country"`
	Currency      string  `json:"currency"`
	Industry      string  `json:"industry"`
}

// NewsArticleItem はニュース記事のレスポンスDTOです。
type NewsArticleItem struct {
	Category string `json:"category"`
	Datetime string `json:"datetime"` // ISO-8601 (UTC)
	Headline string `json:"headline"`
	ID       int64  `json:"id"`
	Image    string `json:"image"`
	Related  string `json:"related"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}
