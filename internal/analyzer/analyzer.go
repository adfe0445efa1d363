// Package analyzer turns article text into a structured public-opinion
// verdict via the DeepSeek chat-completions API.
package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"opinion-news/internal/cache"
	"opinion-news/internal/config"
)

const (
	defaultModel      = "deepseek-chat"
	completionTimeout = 30 * time.Second
	maxContentRunes   = 2000
	analysisCacheTTL  = 2 * time.Hour
	affirmativeToken  = "是"
	defaultCategory   = "其他"
)

// Analyzer classifies news articles using an OpenAI-compatible
// text-generation endpoint. Single-facet calls are memoized; the
// combined Analyze call is not.
type Analyzer struct {
	client *openai.Client
	model  string
	cache  *cache.Cache
}

// New creates an Analyzer from the given configuration.
func New(cfg *config.Config) (*Analyzer, error) {
	if cfg.DeepseekAPIKey == "" {
		return nil, errors.New("DEEPSEEK_API_KEY is not configured")
	}
	cc := openai.DefaultConfig(cfg.DeepseekAPIKey)
	cc.BaseURL = cfg.DeepseekBaseURL
	return &Analyzer{
		client: openai.NewClientWithConfig(cc),
		model:  defaultModel,
		cache:  cache.New(analysisCacheTTL),
	}, nil
}

// completion sends one prompt and returns the model's text. The call
// carries its own timeout and is never retried; a failure here is
// terminal for the current article.
func (a *Analyzer) completion(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPersona},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// combinedPayload mirrors the JSON object the combined prompt asks for.
type combinedPayload struct {
	IsYuqing  string   `json:"is_yuqing"`
	Sentiment string   `json:"sentiment"`
	Summary   string   `json:"summary"`
	Companies []Entity `json:"companies"`
	People    []Entity `json:"people"`
	Locations []Entity `json:"locations"`
	Projects  []Entity `json:"projects"`
	Category  string   `json:"category"`
	Keywords  []string `json:"keywords"`
}

// Analyze runs the combined classification over one article: opinion
// flag, sentiment, summary, entities, category and keywords in a single
// round trip. Any failure yields an AnalysisError and no result.
func (a *Analyzer) Analyze(ctx context.Context, title, articleURL, content, pubTime, source string) (*AnalysisResult, error) {
	prompt := fmt.Sprintf(combinedPrompt, truncateRunes(content, maxContentRunes))

	raw, err := a.completion(ctx, prompt)
	if err != nil {
		return nil, &AnalysisError{Op: "analysis", Err: err}
	}

	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var payload combinedPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		log.Printf("Failed to decode analysis response: %v", err)
		return nil, &AnalysisError{Op: "analysis", Raw: raw, Err: fmt.Errorf("decoding model JSON: %w", err)}
	}

	companies, err := validateEntities(payload.Companies)
	if err != nil {
		return nil, &AnalysisError{Op: "analysis", Raw: raw, Err: err}
	}
	people, err := validateEntities(payload.People)
	if err != nil {
		return nil, &AnalysisError{Op: "analysis", Raw: raw, Err: err}
	}
	locations, err := validateEntities(payload.Locations)
	if err != nil {
		return nil, &AnalysisError{Op: "analysis", Raw: raw, Err: err}
	}
	projects, err := validateEntities(payload.Projects)
	if err != nil {
		return nil, &AnalysisError{Op: "analysis", Raw: raw, Err: err}
	}

	keywords := payload.Keywords
	if len(keywords) > 0 {
		category := payload.Category
		if category == "" {
			category = defaultCategory
		}
		keywords = append([]string{"[" + category + "]"}, keywords...)
	}

	return &AnalysisResult{
		Title:     title,
		URL:       articleURL,
		PubTime:   pubTime,
		Source:    source,
		Sentiment: normalizeSentiment(payload.Sentiment),
		IsOpinion: payload.IsYuqing == affirmativeToken,
		Companies: companies,
		People:    people,
		Locations: locations,
		Projects:  projects,
		Keywords:  keywords,
		Summary:   payload.Summary,
	}, nil
}

// AnalyzeSentiment classifies the sentiment of text. Unrecognized
// labels map to neutral; an empty model response is an error.
func (a *Analyzer) AnalyzeSentiment(ctx context.Context, text string) (string, error) {
	key := cache.Key("analysis", "analyze_sentiment", text)
	return cache.Do(a.cache, key, func() (string, error) {
		raw, err := a.completion(ctx, fmt.Sprintf(sentimentPrompt, text))
		if err != nil {
			return "", &AnalysisError{Op: "sentiment analysis", Err: err}
		}
		label := strings.TrimSpace(raw)
		if label == "" {
			return "", &AnalysisError{Op: "sentiment analysis", Err: errors.New("empty model response")}
		}
		return normalizeSentiment(label), nil
	})
}

// ExtractEntities extracts named entities from text, grouped by
// category.
func (a *Analyzer) ExtractEntities(ctx context.Context, text string) (*EntitySet, error) {
	key := cache.Key("analysis", "extract_entities", text)
	return cache.Do(a.cache, key, func() (*EntitySet, error) {
		raw, err := a.completion(ctx, fmt.Sprintf(entitiesPrompt, text))
		if err != nil {
			return nil, &AnalysisError{Op: "entity extraction", Err: err}
		}

		var payload struct {
			Companies []Entity `json:"companies"`
			People    []Entity `json:"people"`
			Locations []Entity `json:"locations"`
			Projects  []Entity `json:"projects"`
		}
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, &AnalysisError{Op: "entity extraction", Raw: raw, Err: fmt.Errorf("decoding model JSON: %w", err)}
		}

		set := &EntitySet{}
		if set.Companies, err = validateEntities(payload.Companies); err != nil {
			return nil, &AnalysisError{Op: "entity extraction", Raw: raw, Err: err}
		}
		if set.People, err = validateEntities(payload.People); err != nil {
			return nil, &AnalysisError{Op: "entity extraction", Raw: raw, Err: err}
		}
		if set.Locations, err = validateEntities(payload.Locations); err != nil {
			return nil, &AnalysisError{Op: "entity extraction", Raw: raw, Err: err}
		}
		if set.Projects, err = validateEntities(payload.Projects); err != nil {
			return nil, &AnalysisError{Op: "entity extraction", Raw: raw, Err: err}
		}
		return set, nil
	})
}

// ExtractKeywords returns the non-empty lines of the model's keyword
// response, trimmed.
func (a *Analyzer) ExtractKeywords(ctx context.Context, text string) ([]string, error) {
	key := cache.Key("analysis", "extract_keywords", text)
	return cache.Do(a.cache, key, func() ([]string, error) {
		raw, err := a.completion(ctx, fmt.Sprintf(keywordsPrompt, text))
		if err != nil {
			return nil, &AnalysisError{Op: "keyword extraction", Err: err}
		}
		var keywords []string
		for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				keywords = append(keywords, line)
			}
		}
		return keywords, nil
	})
}

// IsOpinionNews reports whether the model judges text to be a
// public-opinion event. Only the literal affirmative token counts.
func (a *Analyzer) IsOpinionNews(ctx context.Context, text string) (bool, error) {
	key := cache.Key("analysis", "is_opinion_news", text)
	return cache.Do(a.cache, key, func() (bool, error) {
		raw, err := a.completion(ctx, fmt.Sprintf(opinionPrompt, text))
		if err != nil {
			return false, &AnalysisError{Op: "opinion judgement", Err: err}
		}
		return strings.TrimSpace(raw) == affirmativeToken, nil
	})
}

// GenerateSummary returns a one-line summary of text.
func (a *Analyzer) GenerateSummary(ctx context.Context, text string) (string, error) {
	key := cache.Key("analysis", "generate_summary", text)
	return cache.Do(a.cache, key, func() (string, error) {
		raw, err := a.completion(ctx, fmt.Sprintf(summaryPrompt, text))
		if err != nil {
			return "", &AnalysisError{Op: "summary generation", Err: err}
		}
		return strings.TrimSpace(raw), nil
	})
}

// validateEntities rejects entities missing a required field rather
// than dropping them silently; a mention count the model omitted
// defaults to 1.
func validateEntities(entities []Entity) ([]Entity, error) {
	out := make([]Entity, 0, len(entities))
	for _, e := range entities {
		if e.Name == "" || e.Type == "" {
			return nil, fmt.Errorf("entity missing required field: %+v", e)
		}
		if e.Mentions < 1 {
			e.Mentions = 1
		}
		out = append(out, e)
	}
	return out, nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
