// Package crawler fetches Sina news search results and article pages
// and extracts their content despite the site's varying layouts.
package crawler

import (
	"time"

	"opinion-news/internal/cache"
	"opinion-news/internal/config"
)

const (
	searchCacheTTL   = time.Hour
	contentCacheTTL  = 2 * time.Hour
	headlineCacheTTL = 30 * time.Minute
)

// Crawler searches for news by keyword and extracts article content.
// Search results, article content and headlines are memoized in
// independent caches.
type Crawler struct {
	baseURL string
	homeURL string
	http    *httpClient

	searchCache   *cache.Cache
	contentCache  *cache.Cache
	headlineCache *cache.Cache
}

// New creates a Crawler from the given configuration.
func New(cfg *config.Config) *Crawler {
	return &Crawler{
		baseURL:       cfg.SearchBaseURL,
		homeURL:       cfg.NewsHomeURL,
		http:          newHTTPClient(cfg.MaxRetries, cfg.Timeout, cfg.DelayMin, cfg.DelayMax),
		searchCache:   cache.New(searchCacheTTL),
		contentCache:  cache.New(contentCacheTTL),
		headlineCache: cache.New(headlineCacheTTL),
	}
}
