package extract

import (
	"context"
	"strings"

	"golang.org/x/net/html"
)

// heuristicClass groups extraction keywords under a topic tag with a
// per-class confidence.
type heuristicClass struct {
	topic      string
	confidence float64
	keywords   []string
}

// HeuristicExtractor extracts candidate facts from plain text or HTML by
// keyword matching over sentences. It is the offline fallback when no LLM
// extractor is configured.
type HeuristicExtractor struct {
	classes []heuristicClass
}

// NewHeuristicExtractor creates a heuristic extractor with the built-in
// keyword classes.
func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{
		classes: []heuristicClass{
			{
				topic:      "origin",
				confidence: 0.6,
				keywords: []string{
					"originated", "origin", "first", "introduced", "invented",
					"founded", "created", "discovered", "established",
				},
			},
			{
				topic:      "definition",
				confidence: 0.7,
				keywords: []string{
					"is defined as", "means", "refers to", "is known as",
				},
			},
			{
				topic:      "causation",
				confidence: 0.5,
				keywords: []string{
					"because", "caused", "led to", "resulted in", "due to",
				},
			},
			{
				topic:      "attribution",
				confidence: 0.5,
				keywords: []string{
					"according to", "developed", "wrote", "proposed", "argued",
				},
			},
		},
	}
}

// Name returns the extractor name.
func (e *HeuristicExtractor) Name() string {
	return "heuristic"
}

// ExtractFacts extracts keyword-matched sentences as facts. HTML input is
// reduced to visible text first.
func (e *HeuristicExtractor) ExtractFacts(ctx context.Context, text string) ([]RawFact, error) {
	if looksLikeHTML(text) {
		stripped, err := visibleText(text)
		if err == nil {
			text = stripped
		}
	}

	var facts []RawFact
	seen := make(map[string]bool)

	for _, sentence := range splitSentences(text) {
		lower := strings.ToLower(sentence)
		for _, class := range e.classes {
			matched := false
			for _, keyword := range class.keywords {
				if strings.Contains(lower, keyword) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
			if !seen[sentence] {
				seen[sentence] = true
				facts = append(facts, RawFact{
					Text:       sentence,
					Confidence: class.confidence,
					Topic:      class.topic,
				})
			}
			break // one class per sentence
		}
	}

	return facts, nil
}

func looksLikeHTML(text string) bool {
	return strings.Contains(text, "</") || strings.Contains(text, "/>")
}

// visibleText extracts text nodes from HTML, skipping scripts and styles.
func visibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return buf.String(), nil
}

// splitSentences splits text on sentence terminators, keeping sentences of
// a plausible length.
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		if len(sentence) >= 20 && len(sentence) <= 500 {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	for i, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 >= len(text) || text[i+1] == ' ' || text[i+1] == '\t' {
				flush()
			}
		}
	}
	flush()

	return sentences
}
