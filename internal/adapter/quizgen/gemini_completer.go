package quizgen

import (
	"context"
	"fmt"
	"time"

	"quizmaster/internal/config"
	"quizmaster/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

// GeminiCompleter implements domain.TextCompleter against Google's Gemini
// models through the LangchainGo googleai client.
type GeminiCompleter struct {
	llm         *googleai.GoogleAI
	temperature float64
	timeout     time.Duration
	logger      *zap.Logger
}

// NewGeminiCompleter creates the Gemini-backed completer. A missing API key
// or model name is a configuration error and fails construction; per-call
// model problems are reported by Complete instead.
func NewGeminiCompleter(cfg config.LLMConfig, logger *zap.Logger) (*GeminiCompleter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("google API key cannot be empty")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("gemini model name cannot be empty")
	}

	logger.Info("Initializing Gemini completer", zap.String("model", cfg.Model))

	llm, err := googleai.New(
		context.Background(),
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiCompleter{
		llm:         llm,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		logger:      logger,
	}, nil
}

// Complete sends one prompt to the model and returns its raw text output.
func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	response, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(g.temperature))
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			g.logger.Error("LLM request timed out", zap.Error(err))
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		g.logger.Error("Failed to get response from LLM", zap.Error(err))
		return "", fmt.Errorf("LLM call failed: %w", err)
	}

	return response, nil
}

var _ domain.TextCompleter = (*GeminiCompleter)(nil)
