package models

// Search sort keys and orders.
const (
	SortDate   = "date"
	SortSource = "source"
	SortTitle  = "title"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// SearchOptions controls the cross-section search aggregator.
type SearchOptions struct {
	Limit    int
	Sections []Section
	DateFrom string // inclusive, YYYY-MM-DD or RFC3339
	DateTo   string // inclusive, extended to end of day
	Sort     string // date|source|title, default date
	Order    string // asc|desc, default desc
}

// SearchHit is a content item tagged with the section it came from.
type SearchHit struct {
	ContentItem
	Section Section `json:"section"`
}

// SearchResult is the aggregate search response.
type SearchResult struct {
	Results []SearchHit `json:"results"`
	Total   int         `json:"total"`
	Query   string      `json:"query"`
}

// PageMetadata is the result of scraping a URL for clipper prefill.
type PageMetadata struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	URL    string `json:"url"`
}
