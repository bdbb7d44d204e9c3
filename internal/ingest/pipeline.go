package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"studykit/internal/generation"
	"studykit/internal/storage"
)

// Artifact is one inbound file upload, staged in transient blob storage
// and owned exclusively by the request that created it.
type Artifact struct {
	MediaType  string
	StorageKey string
	SizeBytes  int64
}

// Submission is one generation request: inline text or a staged artifact,
// plus the requested flashcard count (0 means use the default).
type Submission struct {
	Text      string
	Artifact  *Artifact
	CardCount int
}

// System defines the pipeline operation consumed by the HTTP handler.
type System interface {
	Run(ctx context.Context, sub Submission) (string, error)
}

// Pipeline drives a submission through classification, extraction, prompt
// construction, generation, and normalization. It is stateless across
// requests; every run is independent.
type Pipeline struct {
	storage storage.System
	backend generation.Client
	logger  *slog.Logger
}

// New creates a pipeline with its storage and generation collaborators.
func New(store storage.System, backend generation.Client, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		storage: store,
		backend: backend,
		logger:  logger.With("system", "ingest"),
	}
}

// Run executes the pipeline for one submission and returns the normalized
// generation output.
//
// When the submission carries an artifact, its transient storage is
// released exactly once before Run returns, on every path — success or
// any failure. A release failure is logged and never overrides the
// primary result.
func (p *Pipeline) Run(ctx context.Context, sub Submission) (string, error) {
	if sub.Artifact != nil {
		defer p.release(ctx, sub.Artifact)
	}

	if sub.Artifact == nil && strings.TrimSpace(sub.Text) == "" {
		return "", ErrNoInput
	}

	strategy := StrategyText
	if sub.Artifact != nil {
		strategy = Classify(sub.Artifact.MediaType)
	}
	if strategy == StrategyUnsupported {
		return "", ErrUnsupportedType
	}

	req, err := p.buildRequest(ctx, strategy, sub)
	if err != nil {
		return "", err
	}

	resp, err := p.backend.Generate(ctx, req)
	if err != nil {
		return "", err
	}

	result := resp.Normalize()
	p.logger.Info("generation complete", "strategy", strategy, "result_bytes", len(result))
	return result, nil
}

func (p *Pipeline) buildRequest(ctx context.Context, strategy Strategy, sub Submission) (generation.Request, error) {
	if strategy == StrategyImage {
		data, err := p.storage.Retrieve(ctx, sub.Artifact.StorageKey)
		if err != nil {
			return generation.Request{}, fmt.Errorf("%w: read upload: %v", ErrExtraction, err)
		}
		return BuildImagePrompt(sub.Artifact.MediaType, data, sub.CardCount), nil
	}

	text := sub.Text
	if sub.Artifact != nil {
		data, err := p.storage.Retrieve(ctx, sub.Artifact.StorageKey)
		if err != nil {
			return generation.Request{}, fmt.Errorf("%w: read upload: %v", ErrExtraction, err)
		}

		switch strategy {
		case StrategyPDF:
			text, err = extractPDF(data)
		case StrategyDOCX:
			text, err = extractDOCX(data)
		case StrategyText:
			text = string(data)
		}
		if err != nil {
			return generation.Request{}, fmt.Errorf("%w: %v", ErrExtraction, err)
		}
	}

	return BuildTextPrompt(text, sub.CardCount)
}

// release removes the artifact's transient storage. The cleanup context is
// detached from the request so a dropped connection cannot leak the file.
func (p *Pipeline) release(ctx context.Context, artifact *Artifact) {
	if err := p.storage.Delete(context.WithoutCancel(ctx), artifact.StorageKey); err != nil {
		p.logger.Warn("artifact cleanup failed", "storage_key", artifact.StorageKey, "error", err)
	}
}
