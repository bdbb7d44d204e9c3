package generation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"studykit/internal/config"
)

type gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *slog.Logger
}

// NewGemini creates a generation client backed by the Gemini API.
// The client is constructed once at startup and injected into consumers;
// its lifecycle belongs to process initialization.
func NewGemini(ctx context.Context, cfg *config.GeminiConfig, logger *slog.Logger) (Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &gemini{
		client: client,
		model:  client.GenerativeModel(cfg.Model),
		logger: logger.With("system", "generation", "model", cfg.Model),
	}, nil
}

func (g *gemini) Generate(ctx context.Context, req Request) (*Response, error) {
	parts := []genai.Part{genai.Text(req.Instruction)}
	if req.Media != nil {
		parts = append(parts, genai.Blob{
			MIMEType: req.Media.MIMEType,
			Data:     req.Media.Data,
		})
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		g.logger.Error("generation failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	return fromGenai(resp), nil
}

func (g *gemini) Close() error {
	return g.client.Close()
}

// fromGenai flattens the SDK response into the backend-neutral shape the
// normalizer consumes. Non-text parts are dropped.
func fromGenai(resp *genai.GenerateContentResponse) *Response {
	out := &Response{}
	if resp == nil {
		return out
	}

	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		candidate := Candidate{}
		for _, p := range c.Content.Parts {
			if text, ok := p.(genai.Text); ok {
				candidate.Content.Parts = append(candidate.Content.Parts, string(text))
			}
		}
		out.Candidates = append(out.Candidates, candidate)
	}
	return out
}
