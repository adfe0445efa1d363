package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"opinion-news/internal/analyzer"
	"opinion-news/internal/config"
	"opinion-news/internal/crawler"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Initialize crawler and analyzer
	newsCrawler := crawler.New(cfg)
	opinionAnalyzer, err := analyzer.New(cfg)
	if err != nil {
		log.Fatal("Failed to initialize analyzer:", err)
	}

	// Setup routes
	service := NewOpinionService(newsCrawler, opinionAnalyzer)
	setupRoutes(r, service)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	log.Println("Starting opinion analysis API server on", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func setupRoutes(r *gin.Engine, service *OpinionService) {
	api := r.Group("/api/v1")
	{
		api.POST("/analyze", service.AnalyzeKeyword)
		api.GET("/headlines", service.GetHeadlines)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
		})
	}
}
