// Package dto defines data transfer objects for the Finnhub API responses.
package dto

// SearchResponse represents the JSON response from the /search endpoint.
type SearchResponse struct {
	Count  int `json:"count"`
	Result []struct {
		Description   string `json:"description"`
		DisplaySymbol string `json:"displaySymbol"`
		Symbol        string `json:"symbol"`
		Type          string `json:"type"`
	} `json:"result"`
}

// QuoteResponse represents the JSON response from the /quote endpoint.
type QuoteResponse struct {
	C  float64 `json:"c"`  // 現在値
	D  float64 `json:"d"`  // 前日比
	DP float64 `json:"dp"` // 前日比（%）
	H  float64 `json:"h"`  // 当日高値
	L  float64 `json:"l"`  // 当日安値
	O  float64 `json:"o"`  // 始値
	PC float64 `json:"pc"` // 前日終値
}

// ProfileResponse represents the JSON response from the /stock/profile2 endpoint.
type ProfileResponse struct {
	Country              string  `json:"country"`
	Currency             string  `json:"currency"`
	Exchange             string  `json:"exchange"`
	FinnhubIndustry      string  `json:"finnhubIndustry"`
	IPO                  string  `json:"ipo"`
	Logo                 string  `json:"logo"`
	MarketCapitalization float64 `json:"marketCapitalization"`
	Name                 string  `json:"name"`
	Phone                string  `json:"phone"`
	ShareOutstanding     float64 `json:"shareOutstanding"`
	Ticker               string  `json:"ticker"`
	WebURL               string  `json:"weburl"`
}

// NewsItem represents one element of the /news endpoint response.
type NewsItem struct {
	Category string `json:"category"`
	Datetime int64  `json:"datetime"` // epoch seconds
	Headline string `json:"headline"`
	ID       int64  `json:"id"`
	Image    string `json:"image"`
	Related  string `json:"related"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}

// ErrorResponse is the body Finnhub returns on failures.
type ErrorResponse struct {
	Error string `json:"error"`
}
