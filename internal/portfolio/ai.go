// ABOUTME: AI text generation through the backend
// ABOUTME: Results are never cached; empty prompts are rejected before sending

package portfolio

import (
	"context"
	"errors"
	"strings"

	"github.com/markalston/portfolio-admin/internal/client"
	"github.com/markalston/portfolio-admin/internal/models"
)

// ErrEmptyPrompt is returned for a blank prompt
var ErrEmptyPrompt = errors.New("prompt must not be empty")

// AI calls the backend text generator
type AI struct {
	api *client.Client
}

// Generate returns the generated text for prompt
func (a *AI) Generate(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	var out models.GenerateResponse
	if err := a.api.Post(ctx, "/ai/generate", models.GenerateRequest{Prompt: prompt}, &out); err != nil {
		return "", err
	}
	return out.Result, nil
}
