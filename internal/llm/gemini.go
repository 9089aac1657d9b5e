package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultModel = "gemini-1.5-flash"

// GeminiBackend implements Backend on Google's Gemini API.
type GeminiBackend struct {
	client  *genai.Client
	modelID string
}

func NewGeminiBackend(ctx context.Context, apiKey, modelID string) (*GeminiBackend, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("llm: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("llm: failed to create gemini client: %w", err)
	}

	return &GeminiBackend{
		client:  client,
		modelID: modelID,
	}, nil
}

func (b *GeminiBackend) Generate(ctx context.Context, prompt string) (string, error) {
	return b.GenerateParts(ctx, genai.Text(prompt))
}

// GenerateParts sends arbitrary content parts, such as audio blobs, in one
// request and returns the concatenated text of the first candidate.
func (b *GeminiBackend) GenerateParts(ctx context.Context, parts ...genai.Part) (string, error) {
	model := b.client.GenerativeModel(b.modelID)

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", Wrap(err)
	}

	text, err := candidateText(resp)
	if err != nil {
		return "", Wrap(err)
	}
	return text, nil
}

func (b *GeminiBackend) Close() error {
	if b.client != nil {
		return b.client.Close()
	}
	return nil
}

func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("gemini returned empty content")
	}

	var out strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	return strings.TrimSpace(out.String()), nil
}

var _ Backend = (*GeminiBackend)(nil)
