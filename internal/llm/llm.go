// Package llm implements the external-service grading backend on top of an
// OpenAI-compatible chat completion API.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultTimeout bounds a single grading call. A timeout is a per-question
// failure, not a whole-run abort.
const DefaultTimeout = 60 * time.Second

// GradeResult holds the model's assessment of a single answer pair.
type GradeResult struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api     *openai.Client
	model   string
	variant PromptVariant
	timeout time.Duration
}

// New creates a new LLM client.
func New(baseURL, apiKey, modelName, variant string) (*Client, error) {
	if !IsValidVariant(variant) {
		return nil, fmt.Errorf("unknown prompt variant %q", variant)
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:     openai.NewClientWithConfig(config),
		model:   modelName,
		variant: PromptVariant(variant),
		timeout: DefaultTimeout,
	}, nil
}

// Ping verifies the endpoint is reachable and the model responds.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: "ping"}},
		MaxTokens: 1,
	})
	if err != nil {
		return fmt.Errorf("LLM health check: %w", err)
	}
	return nil
}

// GradeAnswer submits one student answer and its reference answer for
// grading and returns the model's score (out of 10) and feedback.
func (c *Client) GradeAnswer(ctx context.Context, questionID, student, reference string) (*GradeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(c.variant)},
			{Role: openai.ChatMessageRoleUser, Content: gradingPrompt(questionID, student, reference)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("LLM returned no choices")
	}

	raw := resp.Choices[0].Message.Content
	slog.Debug("LLM response", "question", questionID, "raw", raw)

	var result GradeResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		// Some models ignore JSON mode; take the whole reply as feedback
		// rather than failing the question.
		return &GradeResult{Feedback: raw}, nil
	}
	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 10 {
		result.Score = 10
	}
	return &result, nil
}
