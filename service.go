package main

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"opinion-news/internal/analyzer"
	"opinion-news/internal/crawler"
)

// OpinionService handles public-opinion analysis operations.
type OpinionService struct {
	crawler  *crawler.Crawler
	analyzer *analyzer.Analyzer
}

// NewOpinionService creates a new opinion service instance.
func NewOpinionService(c *crawler.Crawler, a *analyzer.Analyzer) *OpinionService {
	return &OpinionService{crawler: c, analyzer: a}
}

// runAnalysis searches for articles matching keyword, extracts and
// analyzes each one, and returns the opinion-positive results. A
// failure on the initial search surfaces directly; per-article failures
// only skip that article.
func (s *OpinionService) runAnalysis(ctx context.Context, keyword string, limit int) (*AnalyzeResponse, error) {
	items, err := s.crawler.SearchNews(keyword, limit)
	if err != nil {
		return nil, err
	}

	resp := &AnalyzeResponse{
		Keyword:  keyword,
		Opinions: []analyzer.AnalysisResult{},
	}
	if len(items) == 0 {
		return resp, nil
	}
	resp.TotalCount = len(items)

	for _, item := range items {
		content, err := s.crawler.FetchContent(item.URL)
		if err != nil {
			log.Printf("Error fetching content from %s: %v", item.URL, err)
			continue
		}
		if content == nil {
			// Extraction found nothing usable; a valid outcome.
			continue
		}

		result, err := s.analyzer.Analyze(ctx, item.Title, item.URL, content.Content, content.PubTime, content.Source)
		if err != nil {
			log.Printf("Error analyzing %s: %v", item.URL, err)
			continue
		}
		if result.IsOpinion {
			resp.Opinions = append(resp.Opinions, *result)
		}
	}

	resp.OpinionCount = len(resp.Opinions)
	return resp, nil
}

// AnalyzeKeyword handles POST /api/v1/analyze.
func (s *OpinionService) AnalyzeKeyword(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "invalid_request",
			Message: "Request body must be valid JSON",
		})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	resp, err := s.runAnalysis(c.Request.Context(), req.Keyword, req.Count)
	if err != nil {
		log.Printf("Error analyzing keyword %q: %v", req.Keyword, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   "analysis_failed",
			Message: "Failed to analyze news for the given keyword",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetHeadlines handles GET /api/v1/headlines.
func (s *OpinionService) GetHeadlines(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxArticleCount {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Success: false,
				Error:   "invalid_request",
				Message: "limit must be between 1 and 50",
			})
			return
		}
		limit = n
	}

	items, err := s.crawler.TopHeadlines(limit)
	if err != nil {
		log.Printf("Error fetching headlines: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   "fetch_error",
			Message: "Failed to fetch headlines",
		})
		return
	}

	c.JSON(http.StatusOK, HeadlinesResponse{
		Success: true,
		Data:    items,
		Count:   len(items),
	})
}
