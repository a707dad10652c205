package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ppiankov/vkm/internal/config"
)

const extractionPrompt = `Extract factual claims from the transcript below.

Return ONLY a JSON array. Each element must be an object with exactly these
fields:
  "text": the claim, as one self-contained sentence
  "confidence": how certain the speaker is, from 0.0 to 1.0
  "topic": a one-word lowercase category

Transcript:
%s`

// ClaudeExtractor extracts facts with the Anthropic Messages API.
type ClaudeExtractor struct {
	client    anthropic.Client
	model     string
	maxTokens int
	timeout   time.Duration
}

// NewClaudeExtractor creates an Anthropic-backed extractor. The API key is
// taken from configuration, falling back to ANTHROPIC_API_KEY.
func NewClaudeExtractor(cfg config.ExtractConfig) (*ClaudeExtractor, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required (set ANTHROPIC_API_KEY or extract.api_key)")
	}

	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &ClaudeExtractor{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
		timeout:   timeout,
	}, nil
}

// Name returns the extractor name.
func (e *ClaudeExtractor) Name() string {
	return "anthropic"
}

// ExtractFacts asks the model for claim triples and parses its JSON reply.
func (e *ClaudeExtractor) ExtractFacts(ctx context.Context, text string) ([]RawFact, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(e.model),
		MaxTokens: int64(e.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(fmt.Sprintf(extractionPrompt, text))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic extraction: %w", err)
	}

	var reply strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			reply.WriteString(block.Text)
		}
	}

	facts, err := parseFactArray(reply.String())
	if err != nil {
		return nil, fmt.Errorf("parse extraction response: %w", err)
	}
	return facts, nil
}

// parseFactArray pulls the first JSON array out of a model reply, tolerating
// surrounding prose or fencing.
func parseFactArray(reply string) ([]RawFact, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var facts []RawFact
	if err := json.Unmarshal([]byte(reply[start:end+1]), &facts); err != nil {
		return nil, err
	}
	return facts, nil
}
