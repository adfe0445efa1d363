package main

import (
	"errors"
	"strings"

	"opinion-news/internal/analyzer"
	"opinion-news/internal/crawler"
)

const (
	defaultArticleCount = 30
	maxArticleCount     = 50
	maxKeywordRunes     = 50
)

// AnalyzeRequest is the body of POST /api/v1/analyze.
type AnalyzeRequest struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"opinion_count"`
}

// validate normalizes and checks the request, applying the default
// article count.
func (r *AnalyzeRequest) validate() error {
	r.Keyword = strings.TrimSpace(r.Keyword)
	if r.Keyword == "" {
		return errors.New("keyword must not be empty")
	}
	if len([]rune(r.Keyword)) > maxKeywordRunes {
		return errors.New("keyword must be at most 50 characters")
	}
	if r.Count == 0 {
		r.Count = defaultArticleCount
	}
	if r.Count < 1 || r.Count > maxArticleCount {
		return errors.New("opinion_count must be between 1 and 50")
	}
	return nil
}

// AnalyzeResponse reports the outcome of one analysis run.
type AnalyzeResponse struct {
	Keyword      string                    `json:"keyword"`
	TotalCount   int                       `json:"total_count"`
	OpinionCount int                       `json:"opinion_count"`
	Opinions     []analyzer.AnalysisResult `json:"opinions"`
}

// HeadlinesResponse is the body of GET /api/v1/headlines.
type HeadlinesResponse struct {
	Success bool               `json:"success"`
	Data    []crawler.NewsItem `json:"data"`
	Count   int                `json:"count"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
