package crawler

import (
	"strconv"
	"strings"

	"github.com/gocolly/colly/v2"

	"opinion-news/internal/cache"
)

// Headlines shorter than this are navigation labels, not stories.
const minHeadlineRunes = 10

// TopHeadlines scrapes the news homepage for current top stories and
// returns up to limit unique article links. Memoized for 30 minutes.
func (c *Crawler) TopHeadlines(limit int) ([]NewsItem, error) {
	key := cache.Key("headlines", "top_headlines", strconv.Itoa(limit))
	return cache.Do(c.headlineCache, key, func() ([]NewsItem, error) {
		return c.topHeadlines(limit)
	})
}

func (c *Crawler) topHeadlines(limit int) ([]NewsItem, error) {
	collector := colly.NewCollector(
		colly.UserAgent(browserUserAgent),
		colly.MaxDepth(1),
	)
	collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Delay:       c.http.delayMin,
		RandomDelay: c.http.delayMax - c.http.delayMin,
	})

	seen := make(map[string]bool)
	items := []NewsItem{}
	var fetchErr error

	collector.OnHTML("a[href]", func(e *colly.HTMLElement) {
		if len(items) >= limit {
			return
		}

		title := strings.Join(strings.Fields(e.Text), " ")
		if len([]rune(title)) < minHeadlineRunes {
			return
		}

		link := e.Request.AbsoluteURL(e.Attr("href"))
		// Story pages end in .shtml; everything else is section chrome.
		if !strings.HasSuffix(link, ".shtml") {
			return
		}
		if seen[link] {
			return
		}
		seen[link] = true

		items = append(items, NewsItem{
			Title:  title,
			URL:    link,
			Source: "新浪新闻",
		})
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = &RequestError{URL: c.homeURL, Status: r.StatusCode, Err: err}
	})

	if err := collector.Visit(c.homeURL); err != nil {
		return nil, &RequestError{URL: c.homeURL, Err: err}
	}
	collector.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	return items, nil
}
