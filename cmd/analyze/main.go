// Command analyze runs one public-opinion analysis from the command
// line and prints a human-readable report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"opinion-news/internal/analyzer"
	"opinion-news/internal/config"
	"opinion-news/internal/crawler"
)

func main() {
	keyword := flag.String("keyword", "", "search keyword")
	count := flag.Int("count", 10, "number of articles to analyze (1-50)")
	flag.Parse()

	if *keyword == "" {
		log.Fatal("usage: analyze -keyword <keyword> [-count <n>]")
	}
	if *count < 1 || *count > 50 {
		log.Fatal("count must be between 1 and 50")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	newsCrawler := crawler.New(cfg)
	opinionAnalyzer, err := analyzer.New(cfg)
	if err != nil {
		log.Fatal("Failed to initialize analyzer:", err)
	}

	items, err := newsCrawler.SearchNews(*keyword, *count)
	if err != nil {
		log.Fatal("Search failed:", err)
	}

	ctx := context.Background()
	var opinions []analyzer.AnalysisResult
	for _, item := range items {
		content, err := newsCrawler.FetchContent(item.URL)
		if err != nil {
			log.Printf("Error fetching content from %s: %v", item.URL, err)
			continue
		}
		if content == nil {
			continue
		}
		result, err := opinionAnalyzer.Analyze(ctx, item.Title, item.URL, content.Content, content.PubTime, content.Source)
		if err != nil {
			log.Printf("Error analyzing %s: %v", item.URL, err)
			continue
		}
		if result.IsOpinion {
			opinions = append(opinions, *result)
		}
	}

	printReport(*keyword, len(items), opinions)
}

func printReport(keyword string, total int, opinions []analyzer.AnalysisResult) {
	fmt.Println("\n=== 舆情分析结果 ===")
	fmt.Printf("关键词: %s\n", keyword)
	fmt.Printf("搜索到的新闻总数: %d\n", total)
	fmt.Printf("舆情新闻数量: %d\n", len(opinions))

	if len(opinions) == 0 {
		return
	}

	fmt.Println("\n具体舆情:")
	for i, op := range opinions {
		fmt.Printf("\n[%d] %s\n", i+1, op.Title)
		fmt.Printf("发布时间: %s\n", orUnknown(op.PubTime))
		fmt.Printf("来源: %s\n", orUnknown(op.Source))
		fmt.Printf("链接: %s\n", op.URL)
		fmt.Printf("情感: %s\n", op.Sentiment)
		fmt.Printf("摘要: %s\n", op.Summary)
		printEntities("相关机构", op.Companies)
		printEntities("相关人物", op.People)
		printEntities("相关地点", op.Locations)
		printEntities("相关项目", op.Projects)
		if len(op.Keywords) > 0 {
			fmt.Printf("关键词: %s\n", strings.Join(op.Keywords, ", "))
		}
	}
}

func printEntities(label string, entities []analyzer.Entity) {
	if len(entities) == 0 {
		return
	}
	names := make([]string, len(entities))
	for i, e := range entities {
		names[i] = e.Name
	}
	fmt.Printf("%s: %s\n", label, strings.Join(names, ", "))
}

func orUnknown(s string) string {
	if s == "" {
		return "未知"
	}
	return s
}
