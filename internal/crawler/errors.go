package crawler

import "fmt"

// RequestError reports an HTTP or network failure while fetching a page.
type RequestError struct {
	URL    string
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request failed for %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("request failed for %s: status %d", e.URL, e.Status)
}

func (e *RequestError) Unwrap() error { return e.Err }

// ParseError reports a failure to interpret a fetched document.
type ParseError struct {
	Stage string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s failed: %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
