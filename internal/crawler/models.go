package crawler

// NewsItem is a single entry from a search results page. URL doubles as
// the dedup and cache key; every other field may be empty.
type NewsItem struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
	PubTime string `json:"pub_time"`
	Source  string `json:"source"`
}

// NewsContent is the extracted text of one article page. Extraction can
// legitimately fail, in which case callers receive nil rather than a
// partially filled value.
type NewsContent struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	PubTime string `json:"pub_time"`
	URL     string `json:"url"`
	Author  string `json:"author"`
	Source  string `json:"source"`
}
