package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrNoCompletion means the provider answered but the response carried no
// completion choices (rate limit, invalid model, error payload and so on).
var ErrNoCompletion = errors.New("provider response has no completion")

// TransportError wraps a network-level failure talking to the provider,
// including per-call timeouts.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("provider transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// GroqClient talks to an OpenAI-compatible chat completion API
type GroqClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewGroqClient creates a completion client
func NewGroqClient(baseURL, apiKey, model string, timeout time.Duration, logger *zap.Logger) *GroqClient {
	return &GroqClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Message is one chat turn
type Message struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

// CompletionRequest is the chat completion request body
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

// CompletionResponse is the chat completion response body
type CompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat completion request and returns the reply text.
// A missing choices field is reported as ErrNoCompletion with the raw
// payload attached so callers can log what the provider actually said.
func (c *GroqClient) Complete(ctx context.Context, messages []Message, temperature float64) (string, error) {
	reqBody := CompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling completion request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating completion request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	var completion CompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoCompletion, truncate(body, 512))
	}

	if len(completion.Choices) == 0 {
		// error payloads come back without choices; keep the raw body
		return "", fmt.Errorf("%w: status %d, body %s", ErrNoCompletion, resp.StatusCode, truncate(body, 512))
	}

	c.logger.Debug("completion received",
		zap.Int("status", resp.StatusCode),
		zap.Int("length", len(completion.Choices[0].Message.Content)))

	return completion.Choices[0].Message.Content, nil
}

// SimpleChat runs a single system+user round trip
func (c *GroqClient) SimpleChat(ctx context.Context, systemPrompt, userMessage string, temperature float64) (string, error) {
	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userMessage},
	}
	return c.Complete(ctx, messages, temperature)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
