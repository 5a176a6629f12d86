// Package gemini provides a Generator implementation using Google's Gemini
// API via the official Go SDK: https://github.com/googleapis/go-genai
package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/jfickel/gemcanvas"
	"google.golang.org/genai"
)

// DefaultModel is the multimodal model used for both text-to-image and
// image editing/analysis requests.
const DefaultModel = "gemini-2.5-flash-image-preview"

// Generator implements gemcanvas.Generator using the Gemini API.
type Generator struct {
	client *genai.Client
	model  string
}

var _ gemcanvas.Generator = (*Generator)(nil)

// New creates a Generator authenticated with the given API key. An empty key
// is rejected here so the caller can surface the missing-credential state
// instead of failing on the first remote call.
func New(ctx context.Context, apiKey string) (*Generator, error) {
	return NewWithModel(ctx, apiKey, DefaultModel)
}

// NewWithModel creates a Generator targeting a specific model identifier.
func NewWithModel(ctx context.Context, apiKey, model string) (*Generator, error) {
	if apiKey == "" {
		return nil, gemcanvas.ErrCredentialMissing
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Generator{client: client, model: model}, nil
}

// Model returns the model identifier requests are sent to.
func (g *Generator) Model() string {
	return g.model
}

// GenerateContent sends the prompt and optional source image to the model.
// The payload order is prompt first, then image.
func (g *Generator) GenerateContent(ctx context.Context, prompt string, image *gemcanvas.InputImage) (*gemcanvas.Response, error) {
	parts := []*genai.Part{
		{Text: prompt},
	}
	if image != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				Data:     image.Data,
				MIMEType: image.MIMEType,
			},
		})
	}

	contents := []*genai.Content{
		{Parts: parts},
	}

	genConfig := &genai.GenerateContentConfig{
		// The model decides whether to answer with an image or text
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, genConfig)
	if err != nil {
		return nil, wrapAPIError(err)
	}

	return toResponse(result), nil
}

// Close releases any resources held by the generator.
func (g *Generator) Close() error {
	// The genai.Client doesn't require explicit closing in the current SDK
	return nil
}

// toResponse flattens the SDK response into provider-agnostic content parts.
// Thought parts are dropped; they are reasoning, not an answer.
func toResponse(result *genai.GenerateContentResponse) *gemcanvas.Response {
	resp := &gemcanvas.Response{}
	if result == nil {
		return resp
	}

	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Thought {
				continue
			}
			if part.InlineData != nil && part.InlineData.Data != nil {
				resp.Parts = append(resp.Parts, gemcanvas.Part{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
				})
				continue
			}
			if part.Text != "" {
				resp.Parts = append(resp.Parts, gemcanvas.Part{Text: part.Text})
			}
		}
	}

	if result.UsageMetadata != nil {
		resp.Usage = &gemcanvas.Usage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CandidatesTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}

	return resp
}

// wrapAPIError converts a structured Gemini API failure into a ServiceError
// so the dispatcher can preserve its code and message. Transport-level
// faults pass through unchanged.
func wrapAPIError(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	return &gemcanvas.ServiceError{
		Code:    apiErr.Code,
		Status:  apiErr.Status,
		Message: apiErr.Message,
		Err:     err,
	}
}
