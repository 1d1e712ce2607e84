package entity

// SearchResult は銘柄検索の1件分の結果です。
type SearchResult struct {
	Description   string
	DisplaySymbol string
	Symbol        string
	Type          string
}
