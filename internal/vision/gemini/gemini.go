package gemini

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/genai"

	"github.com/vbonduro/fieldlog/internal/vision"
)

const defaultModel = "gemini-2.5-flash"

type GeminiCaptioner struct {
	client *genai.Client
	model  string
}

// NewGeminiCaptioner creates a captioner backed by the Gemini API. baseURL
// overrides the API endpoint and is normally empty.
func NewGeminiCaptioner(ctx context.Context, apiKey, model, baseURL string) (*GeminiCaptioner, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiCaptioner{client: client, model: model}, nil
}

func (g *GeminiCaptioner) Describe(ctx context.Context, r io.Reader, mimeType string) (string, error) {
	imageData, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(imageData, mimeType),
			genai.NewPartFromText(vision.CaptionPrompt),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to call gemini: %w", err)
	}

	return vision.CleanCaption(resp.Text()), nil
}
