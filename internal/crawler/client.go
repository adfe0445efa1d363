package crawler

import (
	"io"
	"math/rand"
	"net/http"
	"time"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Shared across every request so the pages see an ordinary browser.
var browserHeaders = map[string]string{
	"User-Agent":      browserUserAgent,
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language": "zh-CN,zh;q=0.9,en;q=0.8",
}

var retryableStatus = map[int]bool{
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Retries back off as retryBackoffBase * 2^(attempt-1).
const retryBackoffBase = 500 * time.Millisecond

// httpClient performs GETs with a browser-like header set, a random
// pre-request delay and bounded retries on server-class failures.
// The underlying http.Client pools connections across calls.
type httpClient struct {
	client     *http.Client
	maxRetries int
	delayMin   time.Duration
	delayMax   time.Duration
	sleep      func(time.Duration)
}

func newHTTPClient(maxRetries int, timeout, delayMin, delayMax time.Duration) *httpClient {
	return &httpClient{
		client:     &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		delayMin:   delayMin,
		delayMax:   delayMax,
		sleep:      time.Sleep,
	}
}

// randomDelay pauses for a uniform random duration in [delayMin,
// delayMax] to avoid hammering the upstream site.
func (h *httpClient) randomDelay() {
	d := h.delayMin
	if span := h.delayMax - h.delayMin; span > 0 {
		d += time.Duration(rand.Int63n(int64(span) + 1))
	}
	if d > 0 {
		h.sleep(d)
	}
}

// get fetches url and returns the raw body. Only 500, 502, 503 and 504
// are retried, up to maxRetries times with exponential backoff; any
// other failure is returned immediately as a RequestError.
func (h *httpClient) get(url string) ([]byte, error) {
	h.randomDelay()

	backoff := retryBackoffBase
	for attempt := 0; ; attempt++ {
		body, status, err := h.do(url)
		if err != nil {
			return nil, &RequestError{URL: url, Err: err}
		}
		if status < 400 {
			return body, nil
		}
		if !retryableStatus[status] || attempt >= h.maxRetries {
			return nil, &RequestError{URL: url, Status: status}
		}
		h.sleep(backoff)
		backoff *= 2
	}
}

func (h *httpClient) do(url string) ([]byte, int, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}
