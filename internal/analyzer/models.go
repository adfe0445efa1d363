package analyzer

// Normalized sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// The model replies in Chinese; anything unrecognized maps to neutral.
var sentimentLabels = map[string]string{
	"积极": SentimentPositive,
	"消极": SentimentNegative,
	"中性": SentimentNeutral,
}

func normalizeSentiment(label string) string {
	if s, ok := sentimentLabels[label]; ok {
		return s
	}
	return SentimentNeutral
}

// Entity is a named company, person, location or project mentioned in
// an article, with a mention count.
type Entity struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Mentions int    `json:"mentions"`
}

// EntitySet groups extracted entities by category. Entities are passed
// through exactly as the model returned them; duplicates across
// categories or calls are not merged.
type EntitySet struct {
	Companies []Entity `json:"companies"`
	People    []Entity `json:"people"`
	Locations []Entity `json:"locations"`
	Projects  []Entity `json:"projects"`
}

// AnalysisResult is the complete verdict for one article. It is only
// ever returned whole; a failed analysis yields no partial result.
type AnalysisResult struct {
	Title     string   `json:"title"`
	URL       string   `json:"url"`
	PubTime   string   `json:"pub_time"`
	Source    string   `json:"source"`
	Sentiment string   `json:"sentiment"`
	IsOpinion bool     `json:"is_opinion"`
	Companies []Entity `json:"companies"`
	People    []Entity `json:"people"`
	Locations []Entity `json:"locations"`
	Projects  []Entity `json:"projects"`
	Keywords  []string `json:"keywords"`
	Summary   string   `json:"summary"`
}
