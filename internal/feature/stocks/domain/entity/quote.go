// Package entity defines the domain models for the stocks feature.
package entity

// PriceQuote は銘柄の最新価格情報です。
type PriceQuote struct {
	Current       float64 // 現在値
	Change        float64 // 前日比
	PercentChange float64 // 前日比（%）
	High          float64 // 当日高値
	Low           float64 // 当日安値
	Open          float64 // 始値
	PreviousClose float64 // 前日終値
}

// CompanyProfile は企業の基本情報です。
type CompanyProfile struct {
	Name     string
	Exchange string
	Country  string
	Currency string
	Industry string
	Logo     string
	WebURL   string
}

// Quote is the flattened quote and company snapshot returned to clients.
// Name falls back to Symbol when the provider has no profile name.
type Quote struct {
	Symbol        string
	Name          string
	Price         float64
	Change        float64
	PercentChange float64
	High          float64
	Low           float64
	Open          float64
	PreviousClose float64
	Exchange      string
	Country       string
	Currency      string
	Industry      string
}

// NewQuote merges a price quote and a company profile into one record.
func NewQuote(symbol string, p PriceQuote, c CompanyProfile) Quote {
	name := c.Name
	if name == "" {
		name = symbol
	}
	return Quote{
		Symbol:        symbol,
		Name:          name,
		Price:         p.Current,
		Change:        p.Change,
		PercentChange: p.PercentChange,
		High:          p.High,
		Low:           p.Low,
		Open:          p.Open,
		PreviousClose: p.PreviousClose,
		Exchange:      c.Exchange,
		Country:       c.Country,
		Currency:      c.Currency,
		Industry:      c.Industry,
	}
}
