package crawler

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"opinion-news/internal/cache"
)

// SearchNews returns up to limit news items for keyword. Results are
// memoized for an hour, so repeated searches inside that window return
// the original list even if the live page has changed.
func (c *Crawler) SearchNews(keyword string, limit int) ([]NewsItem, error) {
	key := cache.Key("search", "search_news", keyword, strconv.Itoa(limit))
	return cache.Do(c.searchCache, key, func() ([]NewsItem, error) {
		return c.searchNews(keyword, limit)
	})
}

func (c *Crawler) searchNews(keyword string, limit int) ([]NewsItem, error) {
	searchURL := fmt.Sprintf("%snews?q=%s&range=all&c=news", c.baseURL, url.QueryEscape(keyword))

	body, err := c.http.get(searchURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &ParseError{Stage: "search results", Err: err}
	}

	items := []NewsItem{}
	doc.Find("div.box-result").EachWithBreak(func(_ int, result *goquery.Selection) bool {
		if len(items) >= limit {
			return false
		}

		link := result.Find("h2 a").First()
		if link.Length() == 0 {
			// Neither a title nor a link; not a usable result block.
			return true
		}
		title := strings.TrimSpace(link.Text())
		href := strings.TrimSpace(link.AttrOr("href", ""))
		if title == "" && href == "" {
			return true
		}

		items = append(items, NewsItem{
			Title:   title,
			URL:     href,
			Summary: strings.TrimSpace(result.Find("p.content").First().Text()),
			PubTime: strings.TrimSpace(result.Find("span.fgray_time").First().Text()),
			Source:  strings.TrimSpace(result.Find("span.fgray_src").First().Text()),
		})
		return true
	})

	return items, nil
}
