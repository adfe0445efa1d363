package crawler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"opinion-news/internal/config"
)

func newTestCrawler(searchBase, homeURL string, maxRetries int) *Crawler {
	c := New(&config.Config{
		SearchBaseURL: searchBase,
		NewsHomeURL:   homeURL,
		MaxRetries:    maxRetries,
		Timeout:       5 * time.Second,
	})
	c.http.sleep = func(time.Duration) {}
	return c
}

const searchPage = `<html><body>
<div class="box-result">
  <h2><a href="https://news.example.com/a1.shtml">特斯拉降价引发车主不满</a></h2>
  <p class="content">车主集体抗议降价策略</p>
  <span class="fgray_time">2024年1月2日</span>
  <span class="fgray_src">新浪财经</span>
</div>
<div class="box-result">
  <p class="content">没有标题和链接的块</p>
</div>
<div class="box-result">
  <h2><a href="https://news.example.com/a2.shtml">特斯拉发布新款车型</a></h2>
</div>
</body></html>`

func TestSearchNewsParsesResultBlocks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchPage))
	}))
	defer srv.Close()

	c := newTestCrawler(srv.URL+"/", "", 1)
	items, err := c.SearchNews("特斯拉", 10)
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.Equal(t, "特斯拉降价引发车主不满", items[0].Title)
	require.Equal(t, "https://news.example.com/a1.shtml", items[0].URL)
	require.Equal(t, "车主集体抗议降价策略", items[0].Summary)
	require.Equal(t, "2024年1月2日", items[0].PubTime)
	require.Equal(t, "新浪财经", items[0].Source)

	// Missing sub-fields come back empty, never fail the block.
	require.Equal(t, "特斯拉发布新款车型", items[1].Title)
	require.Empty(t, items[1].Summary)
	require.Empty(t, items[1].PubTime)
	require.Empty(t, items[1].Source)
}

func TestSearchNewsBuildsQueryURL(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	c := newTestCrawler(srv.URL+"/", "", 1)
	_, err := c.SearchNews("big news", 5)
	require.NoError(t, err)

	require.Equal(t, "/news", gotPath)
	require.Contains(t, gotQuery, "q=big+news")
	require.Contains(t, gotQuery, "range=all")
	require.Contains(t, gotQuery, "c=news")
}

func TestSearchNewsTruncatesAfterFiltering(t *testing.T) {
	// One invalid block between two valid ones: the limit applies to
	// valid blocks only.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
<div class="box-result"><h2><a href="/a1">第一条有效新闻</a></h2></div>
<div class="box-result"><p class="content">无效</p></div>
<div class="box-result"><h2><a href="/a2">第二条有效新闻</a></h2></div>
<div class="box-result"><h2><a href="/a3">第三条有效新闻</a></h2></div>
</body></html>`)
	}))
	defer srv.Close()

	c := newTestCrawler(srv.URL+"/", "", 1)
	items, err := c.SearchNews("新闻", 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "第一条有效新闻", items[0].Title)
	require.Equal(t, "第二条有效新闻", items[1].Title)
}

func TestSearchNewsEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>no results here</body></html>"))
	}))
	defer srv.Close()

	c := newTestCrawler(srv.URL+"/", "", 1)
	items, err := c.SearchNews("nothing", 10)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestSearchNewsMemoizedWithinWindow(t *testing.T) {
	var calls atomic.Int32
	mutated := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if mutated {
			w.Write([]byte(`<html><div class="box-result"><h2><a href="/changed">页面已经被改掉了</a></h2></div></html>`))
			return
		}
		w.Write([]byte(searchPage))
	}))
	defer srv.Close()

	c := newTestCrawler(srv.URL+"/", "", 1)

	first, err := c.SearchNews("特斯拉", 10)
	require.NoError(t, err)

	mutated = true
	second, err := c.SearchNews("特斯拉", 10)
	require.NoError(t, err)

	require.Equal(t, first, second, "cached list survives a mutated live page")
	require.Equal(t, int32(1), calls.Load())
}

func TestSearchNewsServerErrorSurfacesAsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestCrawler(srv.URL+"/", "", 1)
	_, err := c.SearchNews("特斯拉", 10)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	require.Equal(t, http.StatusServiceUnavailable, reqErr.Status)
}

func TestSearchNewsFailureNotCached(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(searchPage))
	}))
	defer srv.Close()

	c := newTestCrawler(srv.URL+"/", "", 1)

	_, err := c.SearchNews("特斯拉", 10)
	require.Error(t, err)

	items, err := c.SearchNews("特斯拉", 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
}
