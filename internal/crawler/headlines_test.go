package crawler

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

const homePage = `<html><body>
<a href="/news/story-one.shtml">某地突发重大安全事故引发关注</a>
<a href="/news/story-one.shtml">某地突发重大安全事故引发关注</a>
<a href="/news/story-two.shtml">新能源汽车销量创下历史新高</a>
<a href="/news/">要闻</a>
<a href="/about.html">关于新浪新闻中心的介绍页面</a>
<a href="/news/story-three.shtml">多部门联合出台住房保障新政策</a>
</body></html>`

func TestTopHeadlinesCollectsUniqueStories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(homePage))
	}))
	defer srv.Close()

	c := newTestCrawler("", srv.URL+"/", 1)
	items, err := c.TopHeadlines(10)
	require.NoError(t, err)
	require.Len(t, items, 3)

	require.Equal(t, "某地突发重大安全事故引发关注", items[0].Title)
	require.Equal(t, srv.URL+"/news/story-one.shtml", items[0].URL)
	require.Equal(t, "新浪新闻", items[0].Source)
	require.Equal(t, "新能源汽车销量创下历史新高", items[1].Title)
	require.Equal(t, "多部门联合出台住房保障新政策", items[2].Title)
}

func TestTopHeadlinesHonorsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(homePage))
	}))
	defer srv.Close()

	c := newTestCrawler("", srv.URL+"/", 1)
	items, err := c.TopHeadlines(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestTopHeadlinesSkipsShortTitles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><a href="/short.shtml">短标题</a></body></html>`))
	}))
	defer srv.Close()

	c := newTestCrawler("", srv.URL+"/", 1)
	items, err := c.TopHeadlines(10)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestTopHeadlinesMemoized(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(homePage))
	}))
	defer srv.Close()

	c := newTestCrawler("", srv.URL+"/", 1)
	_, err := c.TopHeadlines(10)
	require.NoError(t, err)
	_, err = c.TopHeadlines(10)
	require.NoError(t, err)
	require.Equal(t, int32(1), calls.Load())
}

func TestTopHeadlinesFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestCrawler("", srv.URL+"/", 1)
	_, err := c.TopHeadlines(10)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
}
