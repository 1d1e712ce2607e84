package entity

// NewsArticle represents a single market news item.
// Datetime is already formatted as an ISO-8601 UTC string.
type NewsArticle struct {
	ID       int64
	Category string
	Datetime string
	Headline string
	Image    string
	Related  string
	Source   string
	Summary  string
	URL      string
}
