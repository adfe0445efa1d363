package crawler

import (
	"bytes"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"opinion-news/internal/cache"
)

// Sina serves several article templates; each field is resolved through
// an ordered candidate list, first match wins.
var (
	bodyCandidates = []string{
		"div.article",
		"div#artibody",
		"div.article-content-left",
		"div.news_content",
	}
	titleCandidates = []string{
		"h1.main-title",
		"h1.article-title",
		"h1",
	}
	timeCandidates = []string{
		"span.date",
		"span.time-source",
		"span.time",
		"div.date-source",
		"div.date",
	}
	authorCandidates = []string{
		"p.author",
		"span.author",
		"div.author",
	}
	sourceCandidates = []string{
		"span.source",
		"a.source",
		"span.source-box",
		"div.source",
		"a.media_name",
	}
)

const sourceMarker = "来源："

// Lines containing any of these are boilerplate, not article text.
var boilerplateMarkers = []string{
	"责任编辑",
	"声明：",
	"关注我们：",
	"微信扫一扫",
	"新浪声明",
	"作者：",
	"来源：",
	"编辑：",
}

// FetchContent fetches and extracts one article. A page with no
// recognizable body yields (nil, nil): a logged, non-exceptional
// outcome. Extractions are memoized by URL for two hours.
func (c *Crawler) FetchContent(articleURL string) (*NewsContent, error) {
	key := cache.Key("content", "fetch_content", articleURL)
	return cache.Do(c.contentCache, key, func() (*NewsContent, error) {
		return c.fetchContent(articleURL)
	})
}

func (c *Crawler) fetchContent(articleURL string) (*NewsContent, error) {
	body, err := c.http.get(articleURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &ParseError{Stage: "article page", Err: err}
	}

	article := firstMatch(doc, bodyCandidates)
	if article == nil {
		log.Printf("No article container found: %s", articleURL)
		return nil, nil
	}

	title := textOf(firstMatch(doc, titleCandidates))
	pubTime := textOf(firstMatch(doc, timeCandidates))
	author := textOf(firstMatch(doc, authorCandidates))
	source := textOf(firstMatch(doc, sourceCandidates))

	pubTime, source = cleanTimeAndSource(pubTime, source)

	content := assembleBody(article)
	if content == "" {
		log.Printf("No article text extracted: %s", articleURL)
		return nil, nil
	}

	return &NewsContent{
		Title:   title,
		Content: content,
		PubTime: pubTime,
		URL:     articleURL,
		Author:  author,
		Source:  source,
	}, nil
}

// firstMatch returns the first element matched by the first selector
// that matches anything. Candidates are never merged.
func firstMatch(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		if s := doc.Find(sel); s.Length() > 0 {
			return s.First()
		}
	}
	return nil
}

func textOf(s *goquery.Selection) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(s.Text())
}

// cleanTimeAndSource normalizes a Chinese date string and splits an
// embedded "来源：" marker into publish time and source. A source found
// independently on the page takes precedence over the embedded one.
func cleanTimeAndSource(pubTime, source string) (string, string) {
	pubTime = strings.NewReplacer("年", "-", "月", "-", "日", "").Replace(pubTime)

	if i := strings.Index(pubTime, sourceMarker); i >= 0 {
		embedded := strings.TrimSpace(pubTime[i+len(sourceMarker):])
		pubTime = strings.TrimSpace(pubTime[:i])
		if source == "" {
			source = embedded
		}
	}

	if strings.Contains(source, sourceMarker) {
		source = strings.TrimSpace(strings.ReplaceAll(source, sourceMarker, ""))
	}
	return pubTime, source
}

// assembleBody collects text from paragraph and block nodes inside the
// article container, skipping the footer and boilerplate lines, and
// joins the survivors with single newlines.
func assembleBody(article *goquery.Selection) string {
	var lines []string
	article.Find("p, div").Each(func(_ int, node *goquery.Selection) {
		if strings.Contains(node.AttrOr("class", ""), "article-footer") {
			return
		}
		text := strings.TrimSpace(node.Text())
		if text == "" || isBoilerplate(text) {
			return
		}
		lines = append(lines, text)
	})
	return strings.Join(lines, "\n")
}

func isBoilerplate(line string) bool {
	for _, marker := range boilerplateMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
