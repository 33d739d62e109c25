// Package provider implements the hosted text-generation model.
package provider

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured. The widget
// first shipped on gemini-1.5-flash, which Google has since retired.
const DefaultModel = "gemini-2.5-flash"

// GeminiConfig holds the settings for the Gemini client.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// generateFunc issues one generation request.
type generateFunc func(ctx context.Context, model, prompt string) (*genai.GenerateContentResponse, error)

// Gemini generates answers using Google's Gemini API.
type Gemini struct {
	model    string
	generate generateFunc
	initErr  error
}

// NewGemini creates a Gemini provider. A missing or rejected API key is not
// reported here; the first Generate call returns the client's error instead.
func NewGemini(ctx context.Context, cfg GeminiConfig) *Gemini {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}

	g := &Gemini{model: model}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		slog.Warn("gemini client unavailable", "model", model, "error", err)
		g.initErr = fmt.Errorf("failed to create Gemini client: %w", err)
		return g
	}

	g.generate = func(ctx context.Context, model, prompt string) (*genai.GenerateContentResponse, error) {
		return client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	}
	return g
}

// Generate sends the prompt as the entire request, with no system prompt or
// prior turns, and returns the response text. A nil response yields "".
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g.initErr != nil {
		return "", g.initErr
	}

	resp, err := g.generate(ctx, g.model, prompt)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

// Model returns the configured model name.
func (g *Gemini) Model() string {
	return g.model
}
