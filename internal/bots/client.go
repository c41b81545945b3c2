package bots

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/yourusername/trackside/internal/config"
)

// Generator produces raw model text for a prompt. It is the seam the
// orchestrator uses so tests can run without a live Gemini endpoint.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient calls the Gemini API for race analysis prompts
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *logrus.Logger
}

// NewGeminiClient creates a Gemini-backed generator from config
func NewGeminiClient(cfg *config.BotsConfig, logger *logrus.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"model":   model,
		"timeout": timeout,
	}).Info("Gemini client initialized")

	return &GeminiClient{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Generate sends a prompt and returns the model's text response. The
// model is asked for JSON output so downstream parsing stays strict.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr[float32](0.2),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrBotUnavailable, err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}

	c.logger.WithFields(logrus.Fields{
		"model":      c.model,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Debug("Gemini response received")

	return text, nil
}
