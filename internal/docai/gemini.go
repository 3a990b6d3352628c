package docai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider scans receipts with Google Gemini vision models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Name identifies the provider in health checks and logs.
func (p *GeminiProvider) Name() string { return "gemini" }

// ScanReceipt sends the image plus the receipt-parser prompt and decodes the
// entity JSON from the response.
func (p *GeminiProvider) ScanReceipt(ctx context.Context, image []byte, mimeType string) (*RawOcrOutput, error) {
	// genai.ImageData wants the bare format suffix, not the full MIME type
	format := strings.TrimPrefix(mimeType, "image/")
	if format == mimeType || format == "" {
		format = "jpeg"
	}

	resp, err := p.model.GenerateContent(ctx,
		genai.ImageData(format, image),
		genai.Text(buildReceiptPrompt()),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini scan failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return parseScanResponse(sb.String())
}

// Close releases the underlying client.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}
