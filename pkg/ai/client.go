// Package ai talks to the remote vision/language model.
package ai

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("LLM is not configured")

// Image is an optional picture sent along with the prompt.
type Image struct {
	Data     []byte
	MIMEType string
}

type Client interface {
	// Generate returns the model's text reply. img may be nil.
	Generate(ctx context.Context, prompt string, img *Image) (string, error)
	Configured() bool
}

// Options selects and configures a provider.
type Options struct {
	Provider     string
	GeminiAPIKey string
	GeminiModel  string
	Endpoint     string
	APIKey       string
	Model        string
}

// New builds the configured provider, or a disabled client when credentials
// are missing.
func New(ctx context.Context, o Options) (Client, error) {
	switch o.Provider {
	case "openai":
		if o.Endpoint == "" || o.APIKey == "" {
			return NewDisabled(), nil
		}
		return NewOpenAI(o.Endpoint, o.APIKey, o.Model), nil
	default:
		if o.GeminiAPIKey == "" {
			return NewDisabled(), nil
		}
		return NewGemini(ctx, o.GeminiAPIKey, o.GeminiModel)
	}
}
