package flows

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"

	"github.com/sushilduseja/saarthi/internal/config"
)

// openaiImageGenerator renders cover art through the Images API and returns
// it as a PNG data URI, matching what the web client expects to drop straight
// into an img src.
type openaiImageGenerator struct {
	client openaiclient.Client
	model  string
}

// NewImageGenerator builds an ImageGenerator from the first enabled provider.
// Anthropic providers have no image endpoint, so the generator always speaks
// the OpenAI Images API.
func NewImageGenerator(cfg config.AIConfig) (ImageGenerator, error) {
	provider := selectProvider(cfg)
	if provider == nil {
		return nil, errors.New("no enabled AI provider configured")
	}
	if isAnthropicProviderType(provider.Type) {
		return nil, fmt.Errorf("AI provider %s: anthropic has no image generation endpoint", provider.ID)
	}
	if strings.TrimSpace(provider.APIKey) == "" {
		return nil, fmt.Errorf("AI provider %s: api key is empty", provider.ID)
	}

	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(strings.TrimSpace(provider.APIKey)),
		openaioption.WithMaxRetries(0),
	}
	if normalized := normalizeOpenAIBaseURL(provider.Endpoint); normalized != "" {
		opts = append(opts, openaioption.WithBaseURL(normalized))
	}

	model := strings.TrimSpace(cfg.ImageModel)
	if model == "" {
		model = "gpt-image-1"
	}

	return &openaiImageGenerator{
		client: openaiclient.NewClient(opts...),
		model:  model,
	}, nil
}

func (g *openaiImageGenerator) GenerateImage(ctx context.Context, prompt string, safety []SafetySetting) (string, error) {
	// Gemini-style endpoints honor relaxed content filters through an extra
	// safety_settings key; other backends ignore it.
	var opts []openaioption.RequestOption
	if len(safety) > 0 {
		opts = append(opts, openaioption.WithJSONSet("safety_settings", safety))
	}

	resp, err := g.client.Images.Generate(ctx, openaiclient.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openaiclient.ImageModel(g.model),
		N:              openaiclient.Int(1),
		ResponseFormat: openaiclient.ImageGenerateParamsResponseFormatB64JSON,
	}, opts...)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Data) == 0 || strings.TrimSpace(resp.Data[0].B64JSON) == "" {
		return "", errors.New("image generation returned no image data")
	}
	return "data:image/png;base64," + resp.Data[0].B64JSON, nil
}
