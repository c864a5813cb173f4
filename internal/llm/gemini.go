package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateGrounded generates content with the Google Search tool enabled.
// The Gemini API does not allow combining search grounding with a response
// schema, so the output contract lives in the instructions and the caller
// re-validates the JSON against its own schema.
func (c *GeminiClient) GenerateGrounded(ctx context.Context, systemInstruction, prompt string) (*Result, error) {
	modelName := c.config.Model
	if modelName == "" {
		return nil, fmt.Errorf("no model configured")
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](0.2), // Low temperature for consistent output
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}

	return &Result{
		Text:  text,
		Trace: extractTraceFromResponse(resp),
	}, nil
}

// ModelName returns the model used for grounded generation.
func (c *GeminiClient) ModelName() string {
	return c.config.Model
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	// The genai HTTP client holds no resources needing explicit release.
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			parts = append(parts, part.Text)
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// extractTraceFromResponse maps the candidate's grounding metadata onto the
// ordered tool-event trace. The grounding chunks are the search results the
// model actually saw, in the order the API recorded them.
func extractTraceFromResponse(resp *genai.GenerateContentResponse) []ToolEvent {
	if len(resp.Candidates) == 0 {
		return nil
	}
	gm := resp.Candidates[0].GroundingMetadata
	if gm == nil {
		return nil
	}

	var trace []ToolEvent

	if len(gm.WebSearchQueries) > 0 {
		trace = append(trace, ToolEvent{
			Kind:    EventSearchQueries,
			Queries: gm.WebSearchQueries,
		})
	}

	if len(gm.GroundingChunks) > 0 {
		ev := ToolEvent{Kind: EventSearchSources}
		for _, chunk := range gm.GroundingChunks {
			if chunk == nil || chunk.Web == nil {
				continue
			}
			ev.Sources = append(ev.Sources, SourceRef{
				URL:   chunk.Web.URI,
				Title: chunk.Web.Title,
			})
		}
		trace = append(trace, ev)
	}

	return trace
}
